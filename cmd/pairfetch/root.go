package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"pairfetch/pkg/batch"
	"pairfetch/pkg/config"
	perrors "pairfetch/pkg/errors"
	"pairfetch/pkg/logger"
	"pairfetch/pkg/ui"
)

var (
	// Version information
	version   = "1.0.0"
	gitCommit = "unknown"
	buildDate = "unknown"

	// Global flags
	configFile      string
	logLevel        string
	noColor         bool
	quiet           bool
	verbose         bool
	sourceFile      string
	outputFile      string
	maxResults      int
	region          string
	itemDelay       time.Duration
	downloadTimeout time.Duration
)

// rootCmd runs the batch when called without a subcommand
var rootCmd = &cobra.Command{
	Use:   "pairfetch",
	Short: "Download one illustrative image for every word in a pairs file",
	Long: `pairfetch reads a JSON list of {pair, word, image} records and, for every
record whose image file does not exist yet, searches DuckDuckGo Images for the
word and saves the first candidate that downloads successfully.

Records are processed in file order, one at a time, with a fixed delay after
each searched record. The pairs file is rewritten at the end with only the
pair, word and image fields of every record. Running it again only fetches
images that are still missing.`,
	Example: `  # Process pairs.json in the current directory
  pairfetch

  # Use another pairs file and a shorter delay
  pairfetch --source words.json --output words.json --delay 2s

  # Show which images are still missing
  pairfetch status`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, gitCommit, buildDate),
	Args:    cobra.NoArgs,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor {
			ui.SetColor(false)
		}
	},
	Run: runBatch,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default is .pairfetch.yaml or ~/.config/pairfetch/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress progress output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "show debug logs alongside progress")
	rootCmd.PersistentFlags().StringVar(&sourceFile, "source", "", "pairs file to read (default: pairs.json)")
	rootCmd.PersistentFlags().StringVar(&outputFile, "output", "", "pairs file to write (default: pairs.json)")

	rootCmd.Flags().IntVar(&maxResults, "max-results", 0, "number of image candidates to request per word (default: 5)")
	rootCmd.Flags().StringVar(&region, "region", "", "search region code (default: wt-wt)")
	rootCmd.Flags().DurationVar(&itemDelay, "delay", 0, "pause after every searched record (default: 5.5s)")
	rootCmd.Flags().DurationVar(&downloadTimeout, "download-timeout", 0, "timeout for a single image download (default: 10s)")

	rootCmd.SetVersionTemplate(`pairfetch {{.Version}}
Go Version: ` + runtime.Version() + `
OS/Arch: ` + runtime.GOOS + `/` + runtime.GOARCH + `
`)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// commandFlags collects the flags the user actually set. Logs stay at error
// level unless --verbose or --log-level asks for more, so progress lines are
// not interleaved with diagnostics.
func commandFlags(cmd *cobra.Command) map[string]interface{} {
	flags := make(map[string]interface{})
	changed := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f != nil && f.Changed
	}

	if changed("source") {
		flags["source"] = sourceFile
	}
	if changed("output") {
		flags["output"] = outputFile
	} else if changed("source") {
		flags["output"] = sourceFile
	}
	if changed("max-results") {
		flags["max-results"] = maxResults
	}
	if changed("region") {
		flags["region"] = region
	}
	if changed("delay") {
		flags["delay"] = itemDelay
	}
	if changed("download-timeout") {
		flags["download-timeout"] = downloadTimeout
	}

	switch {
	case verbose:
		flags["log-level"] = "debug"
	case changed("log-level"):
		flags["log-level"] = logLevel
	default:
		flags["log-level"] = "error"
	}

	return flags
}

// loadConfig loads configuration and initializes the global logger
func loadConfig(cmd *cobra.Command) *config.Config {
	cfg, err := config.Load(configFile, commandFlags(cmd))
	if err != nil {
		ui.PrintError("Failed to load configuration", err.Error())
		os.Exit(1)
	}

	if err := logger.Initialize(&cfg.Logging); err != nil {
		ui.PrintError("Failed to initialize logger", err.Error())
		os.Exit(1)
	}

	return cfg
}

// exitOnPairsError reports a pairs file that could not be loaded or saved and exits
func exitOnPairsError(err error) {
	switch perrors.TypeOf(err) {
	case perrors.ErrorTypeMissingSource:
		ui.PrintError("Source file missing.")
	case perrors.ErrorTypeStorage:
		ui.PrintError("Pairs file error", err.Error())
	default:
		ui.PrintError("Failed to read pairs file", err.Error())
	}
	os.Exit(1)
}

func runBatch(cmd *cobra.Command, args []string) {
	cfg := loadConfig(cmd)
	logger.WithField("version", version).Info("pairfetch starting")

	var out io.Writer = os.Stdout
	if quiet {
		out = io.Discard
	}

	runner, err := batch.New(cfg, logger.GetLogger(), out)
	if err != nil {
		ui.PrintError("Failed to initialize batch", err.Error())
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := runner.Run(ctx); err != nil {
		switch {
		case ctx.Err() != nil:
			ui.PrintWarning("Interrupted, pairs file not written")
			os.Exit(130)
		case perrors.IsFatal(perrors.TypeOf(err)):
			exitOnPairsError(err)
		default:
			logger.WithError(err).Error("Batch failed")
			ui.PrintError("Batch failed", err.Error())
			os.Exit(1)
		}
	}
}
