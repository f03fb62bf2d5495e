// Package logger provides structured logging for pairfetch on top of zerolog.
//
// Diagnostics are written to stderr through a zerolog ConsoleWriter (and
// optionally appended to a file), leaving stdout to the progress display.
//
//	log, err := logger.New(&cfg.Logging)
//	log.WithField("word", "cat").Debug("searching")
//
// Tests use NewTestLogger to capture and assert on messages, or NewNopLogger
// to discard them.
package logger
