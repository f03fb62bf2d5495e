package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultUserAgent is the browser-like User-Agent sent with image downloads
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Config holds all configuration options for pairfetch
type Config struct {
	// Input and output pairs files
	Pairs PairsConfig `yaml:"pairs" json:"pairs"`

	// Image search provider settings
	Search SearchConfig `yaml:"search" json:"search"`

	// Image download settings
	Download DownloadConfig `yaml:"download" json:"download"`

	// Inter-item throttling
	RateLimit RateLimitConfig `yaml:"rate_limit" json:"rate_limit"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// PairsConfig names the pairs file that is read and the one that is written.
// They are the same file in normal operation.
type PairsConfig struct {
	Source string `yaml:"source" json:"source"`
	Output string `yaml:"output" json:"output"`
}

// SearchConfig holds image search configuration
type SearchConfig struct {
	BaseURL    string        `yaml:"base_url" json:"base_url"`
	MaxResults int           `yaml:"max_results" json:"max_results"`
	Region     string        `yaml:"region" json:"region"`
	SafeSearch string        `yaml:"safe_search" json:"safe_search"`
	Timeout    time.Duration `yaml:"timeout" json:"timeout"`
	MaxPages   int           `yaml:"max_pages" json:"max_pages"`
}

// DownloadConfig holds download-specific configuration
type DownloadConfig struct {
	Timeout   time.Duration `yaml:"timeout" json:"timeout"`
	UserAgent string        `yaml:"user_agent" json:"user_agent"`
	Referer   string        `yaml:"referer" json:"referer"`
}

// RateLimitConfig holds the fixed delay applied after every searched item
type RateLimitConfig struct {
	ItemDelay time.Duration `yaml:"item_delay" json:"item_delay"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Pairs: PairsConfig{
			Source: "pairs.json",
			Output: "pairs.json",
		},
		Search: SearchConfig{
			BaseURL:    "https://duckduckgo.com",
			MaxResults: 5,
			Region:     "wt-wt",
			SafeSearch: "moderate",
			Timeout:    10 * time.Second,
			MaxPages:   2,
		},
		Download: DownloadConfig{
			Timeout:   10 * time.Second,
			UserAgent: DefaultUserAgent,
			Referer:   "https://www.google.com/",
		},
		RateLimit: RateLimitConfig{
			ItemDelay: 5500 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
	}
}

// LoadFromEnv loads configuration from environment variables
func (c *Config) LoadFromEnv() error {
	var errs []error

	if source := os.Getenv("PAIRFETCH_SOURCE"); source != "" {
		c.Pairs.Source = source
	}
	if output := os.Getenv("PAIRFETCH_OUTPUT"); output != "" {
		c.Pairs.Output = output
	}

	if maxResults := os.Getenv("PAIRFETCH_MAX_RESULTS"); maxResults != "" {
		val, err := strconv.Atoi(maxResults)
		if err != nil {
			errs = append(errs, fmt.Errorf("PAIRFETCH_MAX_RESULTS: %w", err))
		} else {
			c.Search.MaxResults = val
		}
	}

	if region := os.Getenv("PAIRFETCH_SEARCH_REGION"); region != "" {
		c.Search.Region = region
	}

	if delay := os.Getenv("PAIRFETCH_ITEM_DELAY"); delay != "" {
		val, err := time.ParseDuration(delay)
		if err != nil {
			errs = append(errs, fmt.Errorf("PAIRFETCH_ITEM_DELAY: %w", err))
		} else {
			c.RateLimit.ItemDelay = val
		}
	}

	if timeout := os.Getenv("PAIRFETCH_DOWNLOAD_TIMEOUT"); timeout != "" {
		val, err := time.ParseDuration(timeout)
		if err != nil {
			errs = append(errs, fmt.Errorf("PAIRFETCH_DOWNLOAD_TIMEOUT: %w", err))
		} else {
			c.Download.Timeout = val
		}
	}

	if logLevel := os.Getenv("PAIRFETCH_LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}

	return errors.Join(errs...)
}

// LoadFromFile loads configuration from a YAML file
func (c *Config) LoadFromFile(path string) error {
	// If path is empty, try default locations
	if path == "" {
		path = c.findConfigFile()
		if path == "" {
			return nil // No config file found, not an error
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// findConfigFile searches for config file in standard locations
func (c *Config) findConfigFile() string {
	home := os.Getenv("HOME")
	locations := []string{
		".pairfetch.yaml",
		".pairfetch.yml",
		filepath.Join(home, ".config", "pairfetch", "config.yaml"),
		filepath.Join(home, ".config", "pairfetch", "config.yml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	if c.Pairs.Source == "" {
		errs = append(errs, errors.New("pairs source file is required"))
	}
	if c.Pairs.Output == "" {
		errs = append(errs, errors.New("pairs output file is required"))
	}

	if c.Search.BaseURL == "" {
		errs = append(errs, errors.New("search base URL is required"))
	}
	if c.Search.MaxResults <= 0 {
		errs = append(errs, errors.New("max results must be positive"))
	}
	if c.Search.MaxPages <= 0 || c.Search.MaxPages > 10 {
		errs = append(errs, errors.New("max pages must be between 1 and 10"))
	}
	if c.Search.Timeout <= 0 {
		errs = append(errs, errors.New("search timeout must be positive"))
	}
	validSafeSearch := map[string]bool{
		"on": true, "moderate": true, "off": true,
	}
	if !validSafeSearch[strings.ToLower(c.Search.SafeSearch)] {
		errs = append(errs, errors.New("safe search must be one of on, moderate, off"))
	}

	if c.Download.Timeout <= 0 {
		errs = append(errs, errors.New("download timeout must be positive"))
	}
	if c.Download.UserAgent == "" {
		errs = append(errs, errors.New("download user agent is required"))
	}

	if c.RateLimit.ItemDelay < 0 {
		errs = append(errs, errors.New("item delay cannot be negative"))
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, errors.New("invalid log level"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Save saves the configuration to a file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeCommandLineFlags merges command line flags into the configuration.
// Only keys present in the map are applied.
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if source, ok := flags["source"].(string); ok && source != "" {
		c.Pairs.Source = source
	}
	if output, ok := flags["output"].(string); ok && output != "" {
		c.Pairs.Output = output
	}
	if maxResults, ok := flags["max-results"].(int); ok && maxResults > 0 {
		c.Search.MaxResults = maxResults
	}
	if region, ok := flags["region"].(string); ok && region != "" {
		c.Search.Region = region
	}
	if delay, ok := flags["delay"].(time.Duration); ok {
		c.RateLimit.ItemDelay = delay
	}
	if timeout, ok := flags["download-timeout"].(time.Duration); ok && timeout > 0 {
		c.Download.Timeout = timeout
	}
	if logLevel, ok := flags["log-level"].(string); ok && logLevel != "" {
		c.Logging.Level = logLevel
	}
}

// Load loads configuration from all sources with proper precedence
// Precedence order: Command line flags > Environment variables > .env file > Config file > Defaults
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	// Try to load .env files (don't fail if they don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".pairfetch.env"))

	config := DefaultConfig()

	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	config.MergeCommandLineFlags(flags)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}
