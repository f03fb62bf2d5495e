package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"pairfetch/pkg/models"
)

func newTestConsole() (*Console, *bytes.Buffer) {
	SetColor(false)
	buf := &bytes.Buffer{}
	return NewConsole(buf), buf
}

func TestConsoleSkipLine(t *testing.T) {
	c, buf := newTestConsole()
	c.Item(7, 120, "cat")
	c.Skipped()

	assert.Equal(t, "[007/120] cat                       ->  [SKIP] (File Exists)\n", buf.String())
}

func TestConsoleAttemptLines(t *testing.T) {
	c, buf := newTestConsole()
	c.Item(1, 1, "cat")
	c.Searching()
	c.Attempt(1, "http://a/1.jpg")
	c.AttemptResult(false)
	c.Attempt(2, "http://b/"+strings.Repeat("x", 100))
	c.AttemptResult(true)

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 3)
	assert.Equal(t, "      Try 1: http://a/1.jpg"+strings.Repeat(" ", 46)+" ...FAILED", lines[1])
	assert.True(t, strings.HasSuffix(lines[2], " ...SAVED"))
	assert.Equal(t, len("      Try 2: ")+60+len(" ...SAVED"), len(lines[2]), "long URLs are cut to 60 characters")
}

func TestConsoleFailureNotices(t *testing.T) {
	c, buf := newTestConsole()
	c.SearchFailed(errors.New("boom"))
	c.NoResults()
	c.Exhausted("cat")

	expected := "      [!] Search Error: boom\n" +
		"      [!] No results found.\n" +
		"      [!] Could not download any image for 'cat'\n"
	assert.Equal(t, expected, buf.String())
}

func TestConsoleBanners(t *testing.T) {
	c, buf := newTestConsole()
	c.Start(3)
	c.Complete("pairs.json", models.Summary{Total: 3, Saved: 1, Skipped: 1, Exhausted: 1})

	out := buf.String()
	assert.Contains(t, out, "STARTING DOWNLOADER (3 items)")
	assert.Contains(t, out, "COMPLETE. Saved to pairs.json")
	assert.Contains(t, out, "saved: 1 | skipped: 1 | failed: 1")
	assert.Equal(t, 4, strings.Count(out, strings.Repeat("=", 50)))
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "héll", truncate("héllo", 4))
	assert.Equal(t, "abc", truncate("abc", 60))
}

func TestIsTerminalNonFile(t *testing.T) {
	assert.False(t, IsTerminal(&bytes.Buffer{}))
}
