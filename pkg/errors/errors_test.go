package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorString(t *testing.T) {
	err := &Error{Type: ErrorTypeSearch, Message: "boom", Code: 403}
	assert.Equal(t, "search error (code 403): boom", err.Error())

	err = &Error{Type: ErrorTypeNetwork, Message: "dial failed"}
	assert.Equal(t, "network error: dial failed", err.Error())
}

func TestWrapAndUnwrap(t *testing.T) {
	cause := stderrors.New("connection reset")
	err := Wrap(ErrorTypeNetwork, cause, "request failed")

	assert.Equal(t, "request failed: connection reset", err.Message)
	assert.True(t, stderrors.Is(err, cause))

	wrapped := fmt.Errorf("outer: %w", err)
	assert.True(t, IsType(wrapped, ErrorTypeNetwork))
	assert.Equal(t, ErrorTypeNetwork, TypeOf(wrapped))
}

func TestTypeOfPlainError(t *testing.T) {
	assert.Equal(t, ErrorTypeUnknown, TypeOf(stderrors.New("plain")))
	assert.False(t, IsType(nil, ErrorTypeSearch))
}

func TestConstructors(t *testing.T) {
	missing := MissingSource("pairs.json")
	assert.Equal(t, ErrorTypeMissingSource, missing.Type)
	assert.Contains(t, missing.Message, "pairs.json")

	malformed := MalformedRecord(3, `missing field "word"`)
	assert.Equal(t, ErrorTypeMalformedRecord, malformed.Type)
	assert.Equal(t, `record 3: missing field "word"`, malformed.Message)
}

func TestIsFatal(t *testing.T) {
	tests := []struct {
		errorType ErrorType
		fatal     bool
	}{
		{ErrorTypeMissingSource, true},
		{ErrorTypeMalformedRecord, true},
		{ErrorTypeStorage, true},
		{ErrorTypeSearch, false},
		{ErrorTypeDownload, false},
		{ErrorTypeNetwork, false},
		{ErrorTypeRateLimit, false},
		{ErrorTypeParsing, false},
		{ErrorTypeUnknown, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.errorType), func(t *testing.T) {
			assert.Equal(t, tt.fatal, IsFatal(tt.errorType))
		})
	}
}

func TestClassifyStatusCode(t *testing.T) {
	assert.Equal(t, ErrorTypeNetwork, ClassifyStatusCode(0))
	assert.Equal(t, ErrorTypeRateLimit, ClassifyStatusCode(429))
	assert.Equal(t, ErrorTypeNetwork, ClassifyStatusCode(503))
	assert.Equal(t, ErrorTypeUnknown, ClassifyStatusCode(404))
}
