package index

import (
	"math/rand"

	"github.com/hupe1980/fsbi/bloom"
	"github.com/hupe1980/fsbi/model"
)

// Snapshot serializes every document's root and child bit sets as length-m
// '0'/'1' strings, plus the stored metadata. No noise and no compression are
// applied; callers that want privacy noise use SnapshotNoisy.
func (idx *Index) Snapshot() model.Snapshot {
	return idx.snapshot(func(n *bloom.Node) string { return n.BitString() })
}

// SnapshotNoisy is Snapshot with every exported bit set replaced by a noisy
// copy: each bit independently flipped with probability flipProb. The stored
// index is never mutated. A nil rng gets a deterministic generator derived
// from the projector seed, which keeps noisy exports reproducible in tests.
func (idx *Index) SnapshotNoisy(flipProb float64, rng *rand.Rand) model.Snapshot {
	if rng == nil {
		rng = rand.New(rand.NewSource(int64(idx.cfg.ProjectorSeed)))
	}
	return idx.snapshot(func(n *bloom.Node) string {
		return n.NoisyCopy(flipProb, rng).BitString()
	})
}

func (idx *Index) snapshot(render func(*bloom.Node) string) model.Snapshot {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	out := make(model.Snapshot, len(idx.trees))
	for docID, t := range idx.trees {
		doc := model.SnapshotDoc{
			RootBits: render(t.root),
			Children: make(map[string]string, len(t.children)),
			Meta:     idx.docs[docID].Metadata,
		}
		for key, child := range t.children {
			doc.Children[key.String()] = render(child)
		}
		out[docID] = doc
	}
	return out
}

// Stats summarizes index occupancy for health reporting.
type Stats struct {
	Documents      int    `json:"documents"`
	Children       int    `json:"children"`
	RootBitsSet    uint64 `json:"root_bits_set"`
	BitsPerNode    uint32 `json:"bits_per_node"`
	LexicalHashes  int    `json:"lexical_hashes"`
	SemanticHashes int    `json:"semantic_hashes"`
}

// Stats returns read-only aggregate counters over the index.
func (idx *Index) Stats() Stats {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	s := Stats{
		Documents:      len(idx.docs),
		BitsPerNode:    idx.cfg.M,
		LexicalHashes:  idx.cfg.KLex,
		SemanticHashes: idx.cfg.KSem,
	}
	for _, t := range idx.trees {
		s.Children += len(t.children)
		s.RootBitsSet += t.root.Count()
	}
	return s
}
