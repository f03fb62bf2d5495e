package ui

import (
	"fmt"
	"io"
	"strings"

	"pairfetch/pkg/models"
)

const (
	bannerWidth = 50
	wordWidth   = 25
	urlWidth    = 60
	indent      = "      "
)

// Console prints per-item batch progress. Output is for people, not parsers.
type Console struct {
	out io.Writer
}

// NewConsole creates a Console writing to out
func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

func (c *Console) rule() string {
	return strings.Repeat("=", bannerWidth)
}

// Start prints the opening banner
func (c *Console) Start(total int) {
	fmt.Fprintf(c.out, "%s\n%s\n%s\n", c.rule(), Cyan(fmt.Sprintf("STARTING DOWNLOADER (%d items)", total)), c.rule())
}

// Item prints the index and word that begin an item's line
func (c *Console) Item(index, total int, word string) {
	fmt.Fprintf(c.out, "[%03d/%d] %-*s", index, total, wordWidth, word)
}

// Skipped finishes the item line for an image already on disk
func (c *Console) Skipped() {
	fmt.Fprintf(c.out, " ->  %s\n", Dim("[SKIP] (File Exists)"))
}

// Searching finishes the item line before candidates are listed
func (c *Console) Searching() {
	fmt.Fprintln(c.out)
}

// SearchFailed reports a failed search
func (c *Console) SearchFailed(err error) {
	fmt.Fprintf(c.out, "%s%s\n", indent, Red(fmt.Sprintf("[!] Search Error: %v", err)))
}

// NoResults reports a search without candidates
func (c *Console) NoResults() {
	fmt.Fprintf(c.out, "%s%s\n", indent, Yellow("[!] No results found."))
}

// Attempt prints the start of a download attempt
func (c *Console) Attempt(n int, url string) {
	fmt.Fprintf(c.out, "%sTry %d: %-*s ...", indent, n, urlWidth, truncate(url, urlWidth))
}

// AttemptResult finishes a download attempt line
func (c *Console) AttemptResult(saved bool) {
	if saved {
		fmt.Fprintln(c.out, Green("SAVED"))
		return
	}
	fmt.Fprintln(c.out, Red("FAILED"))
}

// Exhausted reports that no candidate could be downloaded
func (c *Console) Exhausted(word string) {
	fmt.Fprintf(c.out, "%s%s\n", indent, Red(fmt.Sprintf("[!] Could not download any image for '%s'", word)))
}

// Complete prints the closing banner
func (c *Console) Complete(output string, summary models.Summary) {
	fmt.Fprintf(c.out, "\n%s\n%s\n%s\n%s\n",
		c.rule(),
		Green(fmt.Sprintf("COMPLETE. Saved to %s", output)),
		fmt.Sprintf("saved: %d | skipped: %d | failed: %d", summary.Saved, summary.Skipped, summary.Exhausted),
		c.rule())
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width])
}
