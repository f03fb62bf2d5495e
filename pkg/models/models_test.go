package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPairString(t *testing.T) {
	assert.Equal(t, "AB", WorkItem{Pair: json.RawMessage(`"AB"`)}.PairString())
	assert.Equal(t, "1", WorkItem{Pair: json.RawMessage(`1`)}.PairString())
}

func TestNormalizedIsIndependentCopy(t *testing.T) {
	in := WorkItem{Pair: json.RawMessage(`"AB"`), Word: "abbey", Image: "img/ab.jpg"}
	out := in.Normalized()

	assert.Equal(t, in, out)
	out.Pair[1] = 'Z'
	assert.Equal(t, `"AB"`, string(in.Pair))
}

func TestSummaryRecord(t *testing.T) {
	var s Summary
	s.Record(OutcomeSaved)
	s.Record(OutcomeSaved)
	s.Record(OutcomeSkipped)
	s.Record(OutcomeExhausted)

	assert.Equal(t, Summary{Saved: 2, Skipped: 1, Exhausted: 1}, s)
}
