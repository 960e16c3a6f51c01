package model

import (
	"fmt"
)

// DocumentEntry is the raw stored form of an indexed document. It is kept
// separate from the bit-set tree so text and metadata can be retrieved
// without touching hashing state. Entries are immutable once published.
type DocumentEntry struct {
	Text     string         `json:"text"`
	Metadata map[string]any `json:"meta"`
}

// SearchResult is one ranked query hit.
type SearchResult struct {
	DocID string `json:"doc_id"`
	// Score is the depth-weighted refinement score, in [0, 1].
	Score float64 `json:"score"`
}

// ChildKey addresses one child bit set inside a document tree. Two equal
// subsequence strings at different levels are distinct children, so the level
// is part of the key and must never be collapsed into a single hash.
type ChildKey struct {
	Level       int
	Subsequence string
}

// String renders the key in the canonical "l{level}:{subsequence}" snapshot
// form.
func (k ChildKey) String() string {
	return fmt.Sprintf("l%d:%s", k.Level, k.Subsequence)
}

// SnapshotDoc is the exported form of one document's tree: the root bit set,
// every child bit set, and the stored metadata. Bits are length-m strings of
// '0'/'1' characters.
type SnapshotDoc struct {
	RootBits string            `json:"root_bits"`
	Children map[string]string `json:"children"`
	Meta     map[string]any    `json:"meta"`
}

// Snapshot is a full index export keyed by document id. No compression is
// applied at this layer.
type Snapshot map[string]SnapshotDoc
