package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"pairfetch/pkg/config"
	perrors "pairfetch/pkg/errors"
	"pairfetch/pkg/logger"
)

// FileWriter persists downloaded bytes
type FileWriter interface {
	WriteFile(path string, data []byte) error
}

// Fetcher downloads a single URL to a destination file
type Fetcher struct {
	httpClient *http.Client
	headers    map[string]string
	files      FileWriter
	logger     logger.Logger
}

// New creates a Fetcher that sends cfg's User-Agent and Referer and gives up
// after cfg.Timeout.
func New(cfg config.DownloadConfig, files FileWriter, log logger.Logger) *Fetcher {
	if log == nil {
		log = logger.GetLogger()
	}

	headers := map[string]string{
		"User-Agent": cfg.UserAgent,
	}
	if cfg.Referer != "" {
		headers["Referer"] = cfg.Referer
	}

	return &Fetcher{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		headers: headers,
		files:   files,
		logger:  log.WithField("component", "fetcher"),
	}
}

// Download fetches url and writes the body to destination.
// It returns true only for an HTTP 200 response whose body was read and
// written in full. Every other outcome returns false and leaves destination
// untouched; errors are logged, never returned.
func (f *Fetcher) Download(ctx context.Context, url, destination string) bool {
	data, err := f.fetch(ctx, url)
	if err != nil {
		f.logger.WithError(err).DebugWithFields("download failed", map[string]interface{}{
			"url":         url,
			"destination": destination,
		})
		return false
	}

	if err := f.files.WriteFile(destination, data); err != nil {
		f.logger.WithError(err).WarnWithFields("failed to write image", map[string]interface{}{
			"url":         url,
			"destination": destination,
		})
		return false
	}

	f.logger.DebugWithFields("image saved", map[string]interface{}{
		"url":         url,
		"destination": destination,
		"size":        len(data),
	})
	return true
}

// fetch performs the GET and returns the full body of a 200 response
func (f *Fetcher) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrorTypeDownload, err, "failed to create request")
	}
	for key, value := range f.headers {
		req.Header.Set(key, value)
	}

	start := time.Now()
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrorTypeNetwork, err, "request failed")
	}
	defer resp.Body.Close()

	logger.LogRequest(f.logger, req.Method, url, resp.StatusCode, float64(time.Since(start).Milliseconds()))

	if resp.StatusCode != http.StatusOK {
		// Drain a little so the connection can be reused
		_, _ = io.CopyN(io.Discard, resp.Body, 4096)
		return nil, &perrors.Error{
			Type:    perrors.ErrorTypeDownload,
			Message: fmt.Sprintf("unexpected status code: %d", resp.StatusCode),
			Code:    resp.StatusCode,
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &perrors.Error{
			Type:    perrors.ErrorTypeNetwork,
			Message: fmt.Sprintf("failed to read response body: %v", err),
			Code:    resp.StatusCode,
			Err:     err,
		}
	}

	return data, nil
}
