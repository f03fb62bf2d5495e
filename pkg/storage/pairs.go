package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	perrors "pairfetch/pkg/errors"
	"pairfetch/pkg/models"
)

var requiredFields = []string{"pair", "word", "image"}

// PairStore loads and saves the pairs file
type PairStore struct {
	files *Files
}

// NewPairStore creates a PairStore that writes through files
func NewPairStore(files *Files) *PairStore {
	if files == nil {
		files = NewFiles()
	}
	return &PairStore{files: files}
}

// Load reads the work items from path in file order.
// A missing file yields an ErrorTypeMissingSource error. A file that is not a
// JSON array, or a record without a pair key, a string word or a string image,
// yields ErrorTypeMalformedRecord. Any pair value is accepted, null included.
func (s *PairStore) Load(path string) ([]models.WorkItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, perrors.MissingSource(path)
		}
		return nil, perrors.Wrap(perrors.ErrorTypeStorage, err, "failed to read pairs file")
	}

	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, perrors.Wrap(perrors.ErrorTypeMalformedRecord, err, "pairs file is not a JSON array")
	}

	items := make([]models.WorkItem, 0, len(records))
	for i, raw := range records {
		item, err := decodeRecord(i, raw)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}

func decodeRecord(index int, raw json.RawMessage) (models.WorkItem, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return models.WorkItem{}, perrors.MalformedRecord(index, "record is not a JSON object")
	}

	for _, name := range requiredFields {
		value, ok := fields[name]
		if !ok {
			return models.WorkItem{}, perrors.MalformedRecord(index, fmt.Sprintf("missing field %q", name))
		}
		if name != "pair" && bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
			return models.WorkItem{}, perrors.MalformedRecord(index, fmt.Sprintf("field %q is not a string", name))
		}
	}

	item := models.WorkItem{Pair: fields["pair"]}
	if err := json.Unmarshal(fields["word"], &item.Word); err != nil {
		return models.WorkItem{}, perrors.MalformedRecord(index, `field "word" is not a string`)
	}
	if err := json.Unmarshal(fields["image"], &item.Image); err != nil {
		return models.WorkItem{}, perrors.MalformedRecord(index, `field "image" is not a string`)
	}

	return item, nil
}

// Save writes items to path as an indented JSON array with the field order
// pair, word, image, replacing any existing file.
func (s *PairStore) Save(path string, items []models.WorkItem) error {
	if items == nil {
		items = []models.WorkItem{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(items); err != nil {
		return perrors.Wrap(perrors.ErrorTypeStorage, err, "failed to encode pairs")
	}

	if err := s.files.WriteFile(path, buf.Bytes()); err != nil {
		return perrors.Wrap(perrors.ErrorTypeStorage, err, "failed to write pairs file")
	}

	return nil
}
