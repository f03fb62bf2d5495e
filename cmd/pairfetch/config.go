package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	"pairfetch/pkg/config"
	"pairfetch/pkg/ui"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration files",
	Long: `Manage pairfetch configuration files.

Configuration can be loaded from:
  - Command line flags (highest priority)
  - Environment variables (PAIRFETCH_*)
  - .env files
  - Configuration file
  - Default values (lowest priority)`,
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an example configuration file",
	Long: `Create an example configuration file with all available options.

The file will be created in the current directory as '.pairfetch.yaml'
unless a different path is specified with the --config flag.`,
	Run: runConfigInit,
}

var saveConfigPath string

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long: `Show the effective configuration after flags, environment variables,
.env files and the configuration file have been applied.

With --save the same configuration is also written as YAML to the given path.`,
	Run: runConfigShow,
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration file",
	Long: `Validate a configuration file for syntax errors and invalid values.

This command checks:
  - YAML syntax
  - Value ranges
  - Log file directory`,
	Run: runConfigValidate,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(initCmd)
	configCmd.AddCommand(showCmd)
	configCmd.AddCommand(validateCmd)

	showCmd.Flags().StringVar(&saveConfigPath, "save", "", "also write the effective configuration to this file")
}

const exampleConfig = `# pairfetch configuration file
#
# Environment variables override these values, for example:
# PAIRFETCH_SOURCE, PAIRFETCH_ITEM_DELAY, PAIRFETCH_LOG_LEVEL

# Pairs file read at start and rewritten at the end
pairs:
  source: "pairs.json"
  output: "pairs.json"

# Image search
search:
  base_url: "https://duckduckgo.com"

  # Candidates tried per word, in order
  max_results: 5

  region: "wt-wt"

  # on, moderate or off
  safe_search: "moderate"

  timeout: 10s

  # Result pages fetched when the first page has too few images
  # Range: 1-10
  max_pages: 2

# Image download
download:
  timeout: 10s
  user_agent: "` + config.DefaultUserAgent + `"
  referer: "https://www.google.com/"

# Pause after every record that needed a search
rate_limit:
  item_delay: 5.5s

logging:
  # debug, info, warn, error
  level: "info"

  # Leave empty to log to stderr only
  file: ""
`

func runConfigInit(cmd *cobra.Command, args []string) {
	configPath := configFile
	if configPath == "" {
		configPath = ".pairfetch.yaml"
	}

	if _, err := os.Stat(configPath); err == nil {
		ui.PrintError("Configuration file already exists", configPath)
		fmt.Println("\nTo overwrite, first remove the existing file:")
		fmt.Printf("  rm %s\n", configPath)
		os.Exit(1)
	}

	if err := os.WriteFile(configPath, []byte(exampleConfig), 0644); err != nil {
		ui.PrintError("Failed to create configuration file", err.Error())
		os.Exit(1)
	}

	ui.PrintSuccess("Configuration file created: " + configPath)
	fmt.Println("\nNext steps:")
	fmt.Println("1. Edit the configuration file")
	fmt.Println("2. Run 'pairfetch config validate' to check it")
	fmt.Println("3. Run 'pairfetch' next to your pairs.json")
}

func runConfigShow(cmd *cobra.Command, args []string) {
	flags := commandFlags(cmd)
	if !verbose && !cmd.Flags().Changed("log-level") {
		delete(flags, "log-level")
	}

	cfg, err := config.Load(configFile, flags)
	if err != nil {
		ui.PrintError("Failed to load configuration", err.Error())
		os.Exit(1)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		ui.PrintError("Failed to format configuration", err.Error())
		os.Exit(1)
	}

	fmt.Println(ui.Magenta("Current Configuration"))
	fmt.Println()
	fmt.Print(string(data))

	fmt.Println("\nConfiguration sources (in order of priority):")
	fmt.Println("1. Command line flags")
	fmt.Println("2. Environment variables (PAIRFETCH_*)")
	fmt.Println("3. .env and ~/.pairfetch.env")
	if configFile != "" {
		fmt.Printf("4. Configuration file: %s\n", configFile)
	} else {
		fmt.Println("4. Configuration file: (default locations)")
	}
	fmt.Println("5. Default values")

	if saveConfigPath != "" {
		if err := cfg.Save(saveConfigPath); err != nil {
			ui.PrintError("Failed to save configuration", err.Error())
			os.Exit(1)
		}
		fmt.Println()
		ui.PrintSuccess("Configuration saved: " + saveConfigPath)
	}
}

func runConfigValidate(cmd *cobra.Command, args []string) {
	path := configFile
	if path == "" {
		home := os.Getenv("HOME")
		for _, candidate := range []string{
			".pairfetch.yaml",
			".pairfetch.yml",
			filepath.Join(home, ".config", "pairfetch", "config.yaml"),
			filepath.Join(home, ".config", "pairfetch", "config.yml"),
		} {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}

		if path == "" {
			ui.PrintError("No configuration file found", "Specify a file with --config flag")
			os.Exit(1)
		}
	}

	ui.PrintInfo("Validating configuration", path)

	cfg, err := config.Load(path, nil)
	if err != nil {
		ui.PrintError("Configuration validation failed", err.Error())
		os.Exit(1)
	}

	var warnings []string
	if cfg.Pairs.Source != cfg.Pairs.Output {
		warnings = append(warnings, "source and output differ; the source file will not be updated")
	}
	if _, err := os.Stat(cfg.Pairs.Source); err != nil {
		warnings = append(warnings, fmt.Sprintf("pairs source %s not found", cfg.Pairs.Source))
	}

	if cfg.Logging.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Logging.File), 0755); err != nil {
			ui.PrintError("Cannot create log directory", err.Error())
			os.Exit(1)
		}
	}

	if len(warnings) > 0 {
		ui.PrintWarning("Configuration warnings:")
		for _, warn := range warnings {
			fmt.Printf("  - %s\n", warn)
		}
		fmt.Println()
	}

	ui.PrintSuccess("Configuration is valid")

	fmt.Println("\nConfiguration summary:")
	fmt.Printf("  Pairs file: %s -> %s\n", cfg.Pairs.Source, cfg.Pairs.Output)
	fmt.Printf("  Search: %s (max %d results, region %s)\n", cfg.Search.BaseURL, cfg.Search.MaxResults, cfg.Search.Region)
	fmt.Printf("  Download timeout: %s\n", cfg.Download.Timeout)
	fmt.Printf("  Item delay: %s\n", cfg.RateLimit.ItemDelay)
	fmt.Printf("  Log level: %s\n", cfg.Logging.Level)
}
