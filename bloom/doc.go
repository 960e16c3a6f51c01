// Package bloom implements the fixed-width probabilistic bit sets that make
// up an FSBI document tree.
//
// Every document is summarized by one root Node holding the hash indexes of
// all of its subsequences, plus one child Node per (level, subsequence) pair.
// Nodes are monotone: bits are only ever set, which is what guarantees that a
// literally-inserted subsequence always matches its own indexes. The only
// operation that clears bits is NoisyCopy, and it operates on a throwaway
// copy for export.
package bloom
