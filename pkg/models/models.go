package models

import "encoding/json"

// WorkItem is one record of the pairs file. Pair is kept as raw JSON so that
// string and numeric identifiers round-trip unchanged.
type WorkItem struct {
	Pair  json.RawMessage `json:"pair"`
	Word  string          `json:"word"`
	Image string          `json:"image"`
}

// PairString returns the identifier for display, without quotes for strings.
func (w WorkItem) PairString() string {
	var s string
	if err := json.Unmarshal(w.Pair, &s); err == nil {
		return s
	}
	return string(w.Pair)
}

// Normalized returns a fresh copy holding only the persisted fields.
func (w WorkItem) Normalized() WorkItem {
	pair := make(json.RawMessage, len(w.Pair))
	copy(pair, w.Pair)
	return WorkItem{Pair: pair, Word: w.Word, Image: w.Image}
}

// Outcome is the terminal state of one item.
type Outcome string

const (
	OutcomeSkipped   Outcome = "skipped"
	OutcomeSaved     Outcome = "saved"
	OutcomeExhausted Outcome = "exhausted"
)

// ItemResult records how a single item was processed.
type ItemResult struct {
	Item       WorkItem
	Outcome    Outcome
	Candidates int
	Attempts   int
	SavedURL   string
}

// Summary aggregates the outcomes of a batch run.
type Summary struct {
	Total     int
	Saved     int
	Skipped   int
	Exhausted int
}

// Record adds an outcome to the summary.
func (s *Summary) Record(o Outcome) {
	switch o {
	case OutcomeSaved:
		s.Saved++
	case OutcomeSkipped:
		s.Skipped++
	case OutcomeExhausted:
		s.Exhausted++
	}
}
