// Package fsbi provides an embedded multi-resolution, privacy-tolerant
// approximate text index for Go.
//
// FSBI (Fractal Semantic Bloom Index) decomposes documents into nested
// levels of subsequences — characters, per-token bigrams, tokens, and phrase
// windows — and hashes every subsequence into fixed-width Bloom-style bit
// sets. Queries run the same decomposition and score stored documents in two
// stages: a coarse root-filter prune followed by a fine-grained,
// depth-weighted refinement against per-subsequence child bit sets. Documents
// match fuzzily at multiple granularities without any inverted postings, and
// snapshots can optionally be exported with randomized bit flips for privacy.
//
// # Quick Start
//
//	ctx := context.Background()
//	db, err := fsbi.New(
//	    fsbi.WithM(2048),            // bits per bloom node
//	    fsbi.WithKLex(2),            // lexical hashes per subsequence
//	    fsbi.WithKSem(2),            // semantic hashes per subsequence
//	)
//	if err != nil {
//	    panic(err)
//	}
//
//	_ = db.IndexDocument(ctx, "d1", "hello world", map[string]any{"lang": "en"})
//
//	results, _ := db.Query(ctx, "hello", 10, nil)
//	for _, r := range results {
//	    fmt.Println(r.DocID, r.Score)
//	}
//
// # Hashing
//
// Each subsequence contributes two families of bit indexes: seeded FarmHash32
// lexical hashes of the literal text, and pseudo-semantic hashes derived from
// a fixed random projection of character n-gram counts. The projection is a
// deterministic placeholder for a real embedding model; see package projector.
//
// # Concurrency
//
// All operations are safe for concurrent use. Re-indexing a document is
// atomic with respect to queries, and query evaluation is read-only and
// parallel across documents.
//
// # Privacy Export
//
// Snapshot exports bit sets exactly; SnapshotNoisy flips each exported bit
// with a configurable probability (default 0.01) in a copy, so the live index
// is never perturbed.
package fsbi
