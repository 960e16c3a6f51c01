// Package index implements the FSBI core: fractal decomposition of documents
// into nested bloom trees, combined lexical and pseudo-semantic hashing, and
// two-stage query scoring (coarse root pruning followed by depth-weighted
// child refinement).
//
// # Concurrency
//
// An Index is safe for concurrent use. Document trees are built entirely off
// to the side and published with a single map replacement under the write
// lock, so queries never observe a partially-built tree. Published trees and
// entries are immutable; query evaluation takes a snapshot of the candidate
// set and scores documents in parallel without holding the lock.
package index
