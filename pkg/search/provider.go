package search

import (
	"context"
	stderrors "errors"

	perrors "pairfetch/pkg/errors"
	"pairfetch/pkg/logger"
)

// DefaultMaxResults is how many candidates are requested per query
const DefaultMaxResults = 5

// ImageSearcher is implemented by image search backends
type ImageSearcher interface {
	Images(ctx context.Context, query string, max int) ([]Image, error)
}

// CandidateList is the outcome of one search: the candidate URLs in trial
// order, and the search failure if there was one. A failed search has no URLs.
type CandidateList struct {
	URLs []string
	Err  *perrors.Error
}

// Empty reports whether there is nothing to try
func (l CandidateList) Empty() bool {
	return len(l.URLs) == 0
}

// Failed reports whether the search itself failed
func (l CandidateList) Failed() bool {
	return l.Err != nil
}

// CandidateProvider turns a query into an ordered list of image URLs.
// It never fails: a search error becomes an empty list carrying the error.
type CandidateProvider struct {
	searcher   ImageSearcher
	maxResults int
	logger     logger.Logger
}

// NewCandidateProvider creates a provider requesting up to maxResults hits
func NewCandidateProvider(searcher ImageSearcher, maxResults int, log logger.Logger) *CandidateProvider {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	if log == nil {
		log = logger.GetLogger()
	}
	return &CandidateProvider{
		searcher:   searcher,
		maxResults: maxResults,
		logger:     log.WithField("component", "candidates"),
	}
}

// Candidates searches for query. The query is passed through unchanged.
func (p *CandidateProvider) Candidates(ctx context.Context, query string) CandidateList {
	images, err := p.searcher.Images(ctx, query, p.maxResults)
	if err != nil {
		searchErr := asSearchError(err)
		p.logger.WithError(searchErr).WarnWithFields("image search failed", map[string]interface{}{
			"query":      query,
			"error_type": string(searchErr.Type),
		})
		return CandidateList{Err: searchErr}
	}

	urls := make([]string, 0, len(images))
	for _, img := range images {
		if img.Image == "" {
			continue
		}
		urls = append(urls, img.Image)
		if len(urls) == p.maxResults {
			break
		}
	}

	p.logger.DebugWithFields("candidates found", map[string]interface{}{
		"query":      query,
		"candidates": len(urls),
	})

	return CandidateList{URLs: urls}
}

func asSearchError(err error) *perrors.Error {
	var e *perrors.Error
	if stderrors.As(err, &e) {
		return e
	}
	return perrors.Wrap(perrors.ErrorTypeSearch, err, "search failed")
}
