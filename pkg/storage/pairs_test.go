package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	perrors "pairfetch/pkg/errors"
	"pairfetch/pkg/models"
)

func writePairs(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pairs.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadPreservesOrderAndValues(t *testing.T) {
	path := writePairs(t, `[
		{"pair": "AB", "word": "abbey", "image": "img/ab.jpg", "extra": true},
		{"pair": 1, "word": "cat", "image": "img/cat.jpg"}
	]`)

	items, err := NewPairStore(nil).Load(path)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, `"AB"`, string(items[0].Pair))
	assert.Equal(t, "abbey", items[0].Word)
	assert.Equal(t, "img/ab.jpg", items[0].Image)
	assert.Equal(t, `1`, string(items[1].Pair))
	assert.Equal(t, "cat", items[1].Word)
}

func TestLoadMissingSource(t *testing.T) {
	_, err := NewPairStore(nil).Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.True(t, perrors.IsType(err, perrors.ErrorTypeMissingSource))
}

func TestLoadMalformed(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantType perrors.ErrorType
		wantMsg  string
	}{
		{"not an array", `{"pair": "AB"}`, perrors.ErrorTypeMalformedRecord, "not a JSON array"},
		{"invalid json", `[{"pair": `, perrors.ErrorTypeMalformedRecord, "not a JSON array"},
		{"record not object", `["AB"]`, perrors.ErrorTypeMalformedRecord, "record 0: record is not a JSON object"},
		{"missing word", `[{"pair": "AB", "image": "a.jpg"}]`, perrors.ErrorTypeMalformedRecord, `missing field "word"`},
		{"null word", `[{"pair": "AB", "word": null, "image": "a.jpg"}]`, perrors.ErrorTypeMalformedRecord, `field "word" is not a string`},
		{"missing pair", `[{"word": "w", "image": "a.jpg"}]`, perrors.ErrorTypeMalformedRecord, `missing field "pair"`},
		{"numeric image", `[{"pair": "AB", "word": "w", "image": 3}]`, perrors.ErrorTypeMalformedRecord, `field "image" is not a string`},
		{"second record bad", `[{"pair": "AB", "word": "w", "image": "a"}, {"pair": "AC"}]`, perrors.ErrorTypeMalformedRecord, "record 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := NewPairStore(nil).Load(writePairs(t, tt.content))
			require.Error(t, err)
			assert.Nil(t, items)
			assert.Equal(t, tt.wantType, perrors.TypeOf(err))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestNullPairIsKept(t *testing.T) {
	path := writePairs(t, `[{"pair": null, "word": "cat", "image": "img/cat.jpg"}]`)
	store := NewPairStore(nil)

	items, err := store.Load(path)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "null", string(items[0].Pair))
	assert.Equal(t, "cat", items[0].Word)

	out := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, store.Save(out, []models.WorkItem{items[0].Normalized()}))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"pair": null, "word": "cat", "image": "img/cat.jpg"}]`, string(data))
}

func TestSaveFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	items := []models.WorkItem{
		{Pair: json.RawMessage(`1`), Word: "cat", Image: "img/cat.jpg"},
		{Pair: json.RawMessage(`"A&B"`), Word: "a<b", Image: "img/ab.jpg"},
	}

	require.NoError(t, NewPairStore(nil).Save(path, items))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	expected := `[
  {
    "pair": 1,
    "word": "cat",
    "image": "img/cat.jpg"
  },
  {
    "pair": "A&B",
    "word": "a<b",
    "image": "img/ab.jpg"
  }
]
`
	assert.Equal(t, expected, string(data))
}

func TestSaveKeepsUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	items := []models.WorkItem{{Pair: json.RawMessage(`"ÄÖ"`), Word: "café", Image: "img/café.jpg"}}

	require.NoError(t, NewPairStore(nil).Save(path, items))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"word": "café"`)
	assert.NotContains(t, string(data), `\u00e9`)
}

func TestSaveEmptyWritesArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, NewPairStore(nil).Save(path, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestSaveThenLoad(t *testing.T) {
	path := writePairs(t, `[{"pair":"ZZ","word":"zebra","image":"img/zz.png"}]`)
	store := NewPairStore(NewFiles())

	items, err := store.Load(path)
	require.NoError(t, err)
	require.NoError(t, store.Save(path, items))

	again, err := store.Load(path)
	require.NoError(t, err)
	assert.Equal(t, items, again)
}
