// Package hash provides the deterministic seeded string hashing used by every
// probabilistic structure in FSBI.
//
// # FarmHash32
//
// All bit indexes in FSBI are derived from seeded FarmHash32:
//
//   - Deterministic across processes and platforms (no per-run entropy)
//   - A family of k independent hash functions is obtained by varying the
//     seed over 0..k-1
//   - Consumers reduce the result modulo the bit-set width m, so any hash
//     magnitude stays in range
//
// Both the lexical hashing of subsequences and the quantized-score hashing of
// the semantic projector go through this package, which is what makes index
// contents reproducible for a fixed configuration.
package hash
