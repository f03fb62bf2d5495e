package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"pairfetch/pkg/batch"
	"pairfetch/pkg/storage"
	"pairfetch/pkg/ui"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "List records whose image is still missing",
	Long: `Load the pairs file and check every image path on disk.

No search or download requests are made.`,
	Args: cobra.NoArgs,
	Run:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) {
	cfg := loadConfig(cmd)

	files := storage.NewFiles()
	items, err := storage.NewPairStore(files).Load(cfg.Pairs.Source)
	if err != nil {
		exitOnPairsError(err)
	}

	st := batch.CheckStatus(items, files)

	ui.PrintInfo("Pairs file", cfg.Pairs.Source)
	ui.PrintInfo("Present", strconv.Itoa(len(st.Present)))
	ui.PrintInfo("Missing", strconv.Itoa(len(st.Missing)))

	if len(st.Missing) == 0 {
		ui.PrintSuccess("All images present")
		return
	}

	fmt.Println()
	for _, item := range st.Missing {
		fmt.Printf("  %-8s %-25s %s\n", item.PairString(), item.Word, ui.Dim(item.Image))
	}
}
