// Package fetch downloads candidate images.
//
// Fetcher.Download reports only a boolean: HTTP 200 with a fully read body
// is success and is written to disk; any other status, transport error or
// timeout is failure, logged at debug level and otherwise invisible to the
// caller.
package fetch
