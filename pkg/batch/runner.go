package batch

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"pairfetch/pkg/config"
	"pairfetch/pkg/fetch"
	"pairfetch/pkg/logger"
	"pairfetch/pkg/models"
	"pairfetch/pkg/ratelimit"
	"pairfetch/pkg/search"
	"pairfetch/pkg/storage"
	"pairfetch/pkg/ui"
)

// Dependencies are the collaborators a Runner drives
type Dependencies struct {
	Candidates CandidateSource
	Downloader Downloader
	Files      FileChecker
	Store      Store
	Limiter    ratelimit.Limiter
	Reporter   Reporter
}

// Runner makes a single sequential pass over the pairs file
type Runner struct {
	candidates CandidateSource
	downloader Downloader
	files      FileChecker
	store      Store
	limiter    ratelimit.Limiter
	reporter   Reporter
	pairs      config.PairsConfig
	logger     logger.Logger
}

// NewRunner creates a Runner from explicit dependencies
func NewRunner(deps Dependencies, pairs config.PairsConfig, log logger.Logger) *Runner {
	if deps.Limiter == nil {
		deps.Limiter = ratelimit.Nop{}
	}
	if log == nil {
		log = logger.GetLogger()
	}
	return &Runner{
		candidates: deps.Candidates,
		downloader: deps.Downloader,
		files:      deps.Files,
		store:      deps.Store,
		limiter:    deps.Limiter,
		reporter:   deps.Reporter,
		pairs:      pairs,
		logger:     log,
	}
}

// New wires a Runner from configuration: DuckDuckGo search, HTTP fetcher,
// local files, a fixed inter-item delay and console progress on out.
func New(cfg *config.Config, log logger.Logger, out io.Writer) (*Runner, error) {
	if log == nil {
		log = logger.GetLogger()
	}

	files := storage.NewFiles()

	client, err := search.NewClient(cfg.Search, cfg.Download.UserAgent, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create search client: %w", err)
	}

	limiter := ratelimit.NewFixedDelay(cfg.RateLimit.ItemDelay)

	logger.LogComponentStart(log, "batch", map[string]interface{}{
		"source":      cfg.Pairs.Source,
		"output":      cfg.Pairs.Output,
		"max_results": cfg.Search.MaxResults,
		"item_delay":  limiter.Interval(),
		"timeout":     cfg.Download.Timeout,
	})

	return NewRunner(Dependencies{
		Candidates: search.NewCandidateProvider(client, cfg.Search.MaxResults, log),
		Downloader: fetch.New(cfg.Download, files, log),
		Files:      files,
		Store:      storage.NewPairStore(files),
		Limiter:    limiter,
		Reporter:   ui.NewConsole(out),
	}, cfg.Pairs, log), nil
}

// Run loads the pairs file, processes every item and writes the normalized
// records to the output file. Nothing is written if loading fails or ctx is
// cancelled mid-run.
func (r *Runner) Run(ctx context.Context) (models.Summary, error) {
	log := r.logger.WithField("run_id", uuid.New().String())

	items, err := r.store.Load(r.pairs.Source)
	if err != nil {
		log.WithError(err).WithField("source", r.pairs.Source).Error("Failed to load pairs")
		return models.Summary{}, err
	}

	log.InfoWithFields("Starting batch", map[string]interface{}{
		"source": r.pairs.Source,
		"items":  len(items),
	})

	output, results, err := r.process(ctx, log, items)
	if err != nil {
		log.WithError(err).Warn("Batch interrupted, output not written")
		return summarize(results, len(items)), err
	}

	summary := summarize(results, len(items))

	if err := r.store.Save(r.pairs.Output, output); err != nil {
		log.WithError(err).WithField("output", r.pairs.Output).Error("Failed to save pairs")
		return summary, err
	}

	r.reporter.Complete(r.pairs.Output, summary)
	log.InfoWithFields("Batch completed", map[string]interface{}{
		"output":    r.pairs.Output,
		"saved":     summary.Saved,
		"skipped":   summary.Skipped,
		"exhausted": summary.Exhausted,
	})

	return summary, nil
}

// Process runs the per-item loop over items without touching the pairs file.
// It returns one normalized record and one result per item, in input order.
func (r *Runner) Process(ctx context.Context, items []models.WorkItem) ([]models.WorkItem, []models.ItemResult, error) {
	return r.process(ctx, r.logger, items)
}

func (r *Runner) process(ctx context.Context, log logger.Logger, items []models.WorkItem) ([]models.WorkItem, []models.ItemResult, error) {
	total := len(items)
	output := make([]models.WorkItem, 0, total)
	results := make([]models.ItemResult, 0, total)

	r.reporter.Start(total)

	for i, item := range items {
		if err := ctx.Err(); err != nil {
			return output, results, err
		}

		output = append(output, item.Normalized())

		result := r.processItem(ctx, i+1, total, item)
		results = append(results, result)

		log.InfoWithFields("Item processed", map[string]interface{}{
			"index":      i + 1,
			"pair":       item.PairString(),
			"word":       item.Word,
			"outcome":    string(result.Outcome),
			"candidates": result.Candidates,
			"attempts":   result.Attempts,
		})

		if result.Outcome == models.OutcomeSkipped {
			continue
		}

		if err := r.limiter.Wait(ctx); err != nil {
			return output, results, err
		}
	}

	return output, results, nil
}

// processItem drives one item to SKIPPED, SAVED or EXHAUSTED
func (r *Runner) processItem(ctx context.Context, index, total int, item models.WorkItem) models.ItemResult {
	result := models.ItemResult{Item: item}

	r.reporter.Item(index, total, item.Word)

	if r.files.Exists(item.Image) {
		r.reporter.Skipped()
		result.Outcome = models.OutcomeSkipped
		return result
	}

	r.reporter.Searching()

	list := r.candidates.Candidates(ctx, item.Word)
	result.Candidates = len(list.URLs)

	if list.Failed() {
		r.reporter.SearchFailed(list.Err)
	}

	if list.Empty() {
		r.reporter.NoResults()
	}

	for n, url := range list.URLs {
		r.reporter.Attempt(n+1, url)
		result.Attempts++

		if r.downloader.Download(ctx, url, item.Image) {
			r.reporter.AttemptResult(true)
			result.Outcome = models.OutcomeSaved
			result.SavedURL = url
			return result
		}
		r.reporter.AttemptResult(false)
	}

	r.reporter.Exhausted(item.Word)
	result.Outcome = models.OutcomeExhausted
	return result
}

func summarize(results []models.ItemResult, total int) models.Summary {
	summary := models.Summary{Total: total}
	for _, res := range results {
		summary.Record(res.Outcome)
	}
	return summary
}
