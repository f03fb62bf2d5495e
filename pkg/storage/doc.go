// Package storage provides file management for pairfetch.
//
// PairStore loads the pairs file (a JSON array of {pair, word, image}
// records) and writes the normalized records back. Files checks whether an
// image is already on disk and writes downloaded images atomically, creating
// parent directories as needed.
//
//	store := storage.NewPairStore(storage.NewFiles())
//	items, err := store.Load("pairs.json")
//	if err != nil {
//	    return err
//	}
//	err = store.Save("pairs.json", items)
package storage
