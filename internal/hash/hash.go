package hash

import (
	farmhash "github.com/leemcloughlin/gofarmhash"
)

// Sum32 computes the seeded FarmHash32 of s.
// It is pure and process-stable: the same (s, seed) pair always yields the
// same value, on every platform and in every run.
func Sum32(s string, seed uint32) uint32 {
	return farmhash.Hash32WithSeed([]byte(s), seed)
}

// Indexes derives k independent bit indexes in [0, m) for s by varying the
// seed over 0..k-1 and reducing each hash modulo m.
// m must be non-zero. Any string, including the empty string, is valid input.
func Indexes(s string, k int, m uint32) []uint32 {
	idxs := make([]uint32, k)
	for j := 0; j < k; j++ {
		idxs[j] = Sum32(s, uint32(j)) % m
	}
	return idxs
}
