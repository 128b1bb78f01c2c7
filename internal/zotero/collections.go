package zotero

import (
	"sort"

	"github.com/matsen/zotion/internal/reference"
	"github.com/rs/zerolog"
)

// CollectionIndex maps collection keys to collection names.
type CollectionIndex map[string]string

// BuildCollectionIndex indexes cols by key. Entries without a key or a
// data.name are logged and skipped.
func BuildCollectionIndex(cols []reference.Collection, log zerolog.Logger) CollectionIndex {
	idx := make(CollectionIndex, len(cols))
	for _, col := range cols {
		if col.Key == "" || col.Data == nil || col.Data.Name == nil {
			log.Warn().Str("key", col.Key).Msg("skipping invalid collection format")
			continue
		}
		idx[col.Key] = *col.Data.Name
	}
	return idx
}

// Resolve maps each id to its collection name, using "" for unknown ids.
// The result has one entry per id, in order.
func (idx CollectionIndex) Resolve(ids []string) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		names = append(names, idx[id])
	}
	return names
}

// Entry is a key/name pair.
type Entry struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// Entries returns the index sorted by name, then key.
func (idx CollectionIndex) Entries() []Entry {
	out := make([]Entry, 0, len(idx))
	for k, v := range idx {
		out = append(out, Entry{Key: k, Name: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Key < out[j].Key
	})
	return out
}
