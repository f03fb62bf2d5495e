package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Pairs.Source != "pairs.json" || config.Pairs.Output != "pairs.json" {
		t.Errorf("Expected source and output to default to pairs.json, got %s and %s", config.Pairs.Source, config.Pairs.Output)
	}

	if config.Search.MaxResults != 5 {
		t.Errorf("Expected default max results to be 5, got %d", config.Search.MaxResults)
	}

	if config.Download.Timeout != 10*time.Second {
		t.Errorf("Expected default download timeout to be 10s, got %v", config.Download.Timeout)
	}

	if config.RateLimit.ItemDelay != 5500*time.Millisecond {
		t.Errorf("Expected default item delay to be 5.5s, got %v", config.RateLimit.ItemDelay)
	}

	if config.Download.Referer != "https://www.google.com/" {
		t.Errorf("Unexpected default referer %s", config.Download.Referer)
	}

	assert.NoError(t, config.Validate())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PAIRFETCH_SOURCE", "in.json")
	t.Setenv("PAIRFETCH_OUTPUT", "out.json")
	t.Setenv("PAIRFETCH_MAX_RESULTS", "8")
	t.Setenv("PAIRFETCH_SEARCH_REGION", "de-de")
	t.Setenv("PAIRFETCH_ITEM_DELAY", "2s")
	t.Setenv("PAIRFETCH_DOWNLOAD_TIMEOUT", "30s")
	t.Setenv("PAIRFETCH_LOG_LEVEL", "debug")

	config := DefaultConfig()
	require.NoError(t, config.LoadFromEnv())

	assert.Equal(t, "in.json", config.Pairs.Source)
	assert.Equal(t, "out.json", config.Pairs.Output)
	assert.Equal(t, 8, config.Search.MaxResults)
	assert.Equal(t, "de-de", config.Search.Region)
	assert.Equal(t, 2*time.Second, config.RateLimit.ItemDelay)
	assert.Equal(t, 30*time.Second, config.Download.Timeout)
	assert.Equal(t, "debug", config.Logging.Level)
}

func TestLoadFromEnvInvalidValues(t *testing.T) {
	t.Setenv("PAIRFETCH_MAX_RESULTS", "many")
	t.Setenv("PAIRFETCH_ITEM_DELAY", "soon")

	config := DefaultConfig()
	err := config.LoadFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PAIRFETCH_MAX_RESULTS")
	assert.Contains(t, err.Error(), "PAIRFETCH_ITEM_DELAY")

	// Invalid values leave defaults untouched
	assert.Equal(t, 5, config.Search.MaxResults)
}

func TestLoadFromFile(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	configContent := `
pairs:
  source: letters.json
  output: letters.out.json
search:
  max_results: 3
  safe_search: "off"
download:
  timeout: 15s
rate_limit:
  item_delay: 250ms
logging:
  level: warn
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	config := DefaultConfig()
	require.NoError(t, config.LoadFromFile(configPath))

	assert.Equal(t, "letters.json", config.Pairs.Source)
	assert.Equal(t, "letters.out.json", config.Pairs.Output)
	assert.Equal(t, 3, config.Search.MaxResults)
	assert.Equal(t, "off", config.Search.SafeSearch)
	assert.Equal(t, 15*time.Second, config.Download.Timeout)
	assert.Equal(t, 250*time.Millisecond, config.RateLimit.ItemDelay)
	assert.Equal(t, "warn", config.Logging.Level)

	// Values absent from the file keep their defaults
	assert.Equal(t, "https://duckduckgo.com", config.Search.BaseURL)
	assert.Equal(t, DefaultUserAgent, config.Download.UserAgent)
}

func TestLoadFromFileErrors(t *testing.T) {
	config := DefaultConfig()
	err := config.LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	badPath := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(badPath, []byte("pairs: [unclosed"), 0644))
	err = config.LoadFromFile(badPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{"empty source", func(c *Config) { c.Pairs.Source = "" }, "pairs source file is required"},
		{"empty output", func(c *Config) { c.Pairs.Output = "" }, "pairs output file is required"},
		{"zero max results", func(c *Config) { c.Search.MaxResults = 0 }, "max results must be positive"},
		{"too many pages", func(c *Config) { c.Search.MaxPages = 11 }, "max pages must be between 1 and 10"},
		{"bad safe search", func(c *Config) { c.Search.SafeSearch = "strict" }, "safe search must be one of"},
		{"zero download timeout", func(c *Config) { c.Download.Timeout = 0 }, "download timeout must be positive"},
		{"negative delay", func(c *Config) { c.RateLimit.ItemDelay = -time.Second }, "item delay cannot be negative"},
		{"bad log level", func(c *Config) { c.Logging.Level = "chatty" }, "invalid log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.modify(config)
			err := config.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	t.Run("zero delay is allowed", func(t *testing.T) {
		config := DefaultConfig()
		config.RateLimit.ItemDelay = 0
		assert.NoError(t, config.Validate())
	})
}

func TestMergeCommandLineFlags(t *testing.T) {
	config := DefaultConfig()
	config.MergeCommandLineFlags(map[string]interface{}{
		"source":           "a.json",
		"output":           "b.json",
		"max-results":      7,
		"delay":            time.Duration(0),
		"download-timeout": 3 * time.Second,
		"log-level":        "error",
	})

	assert.Equal(t, "a.json", config.Pairs.Source)
	assert.Equal(t, "b.json", config.Pairs.Output)
	assert.Equal(t, 7, config.Search.MaxResults)
	assert.Equal(t, time.Duration(0), config.RateLimit.ItemDelay)
	assert.Equal(t, 3*time.Second, config.Download.Timeout)
	assert.Equal(t, "error", config.Logging.Level)
}

func TestLoadPrecedence(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("search:\n  max_results: 3\n  region: fr-fr\n"), 0644))

	t.Setenv("PAIRFETCH_MAX_RESULTS", "4")

	config, err := Load(configPath, map[string]interface{}{"region": "it-it"})
	require.NoError(t, err)

	assert.Equal(t, 4, config.Search.MaxResults, "env overrides file")
	assert.Equal(t, "it-it", config.Search.Region, "flags override file")
}

func TestLoadValidationFailure(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("logging:\n  level: loud\n"), 0644))

	_, err := Load(configPath, nil)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "configuration validation failed"))
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "pairfetch.yaml")

	original := DefaultConfig()
	original.Search.MaxResults = 9
	original.RateLimit.ItemDelay = 1500 * time.Millisecond
	require.NoError(t, original.Save(path))

	loaded := DefaultConfig()
	require.NoError(t, loaded.LoadFromFile(path))
	assert.Equal(t, original, loaded)
}
