package batch

import (
	"context"

	"pairfetch/pkg/models"
	"pairfetch/pkg/search"
)

// CandidateSource returns the ordered candidate URLs for a word
type CandidateSource interface {
	Candidates(ctx context.Context, query string) search.CandidateList
}

// Downloader saves url to destination and reports success
type Downloader interface {
	Download(ctx context.Context, url, destination string) bool
}

// FileChecker reports whether an image is already on disk
type FileChecker interface {
	Exists(path string) bool
}

// Store loads and saves the pairs file
type Store interface {
	Load(path string) ([]models.WorkItem, error)
	Save(path string, items []models.WorkItem) error
}

// Reporter receives progress events in processing order
type Reporter interface {
	Start(total int)
	Item(index, total int, word string)
	Skipped()
	Searching()
	SearchFailed(err error)
	NoResults()
	Attempt(n int, url string)
	AttemptResult(saved bool)
	Exhausted(word string)
	Complete(output string, summary models.Summary)
}
