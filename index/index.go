package index

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/fsbi/bloom"
	"github.com/hupe1980/fsbi/decompose"
	"github.com/hupe1980/fsbi/internal/hash"
	"github.com/hupe1980/fsbi/model"
	"github.com/hupe1980/fsbi/projector"
)

var (
	// ErrMissingField is returned when a required input (doc id) is absent.
	ErrMissingField = errors.New("missing required field")

	// ErrInvalidTopK is returned when a negative top-k is requested.
	ErrInvalidTopK = errors.New("top_k must be non-negative")
)

// ErrInvalidConfig indicates an out-of-range construction parameter.
type ErrInvalidConfig struct {
	Field string
	Value any
}

func (e *ErrInvalidConfig) Error() string {
	return fmt.Sprintf("invalid config: %s = %v", e.Field, e.Value)
}

const (
	// DefaultM is the default bit-set width.
	DefaultM = 2048
	// DefaultKLex is the default number of lexical hash functions.
	DefaultKLex = 2
	// DefaultKSem is the default number of semantic hash functions.
	DefaultKSem = 2

	// defaultRootThreshold prunes candidates whose root score falls below it
	// when the caller supplies no threshold for level 0.
	defaultRootThreshold = 0.01
)

// Config fixes an index's parameters for its lifetime.
type Config struct {
	// M is the width in bits of every bloom node in the index.
	M uint32
	// KLex is the number of lexical hashes per subsequence.
	KLex int
	// KSem is the number of semantic hashes per subsequence.
	KSem int
	// ProjectionDim is the semantic projector's dimension r.
	ProjectionDim int
	// ProjectorSeed controls all projector randomness.
	ProjectorSeed uint32
	// MaxPhraseLen is the longest phrase window, in tokens.
	MaxPhraseLen int
}

// DefaultConfig returns the standard FSBI parameters.
func DefaultConfig() Config {
	return Config{
		M:             DefaultM,
		KLex:          DefaultKLex,
		KSem:          DefaultKSem,
		ProjectionDim: projector.DefaultDim,
		ProjectorSeed: projector.DefaultSeed,
		MaxPhraseLen:  decompose.DefaultMaxPhraseLen,
	}
}

// tree is one document's bit-set hierarchy: a root node aggregating every
// subsequence at every level, plus one child node per (level, subsequence).
// The shared root deliberately blends hash indexes from all levels into one
// bit space; pruning depends on that behavior.
//
// A tree is built fully off to the side and published with a single map
// store, after which it is never mutated. Queries may therefore read it
// without synchronization.
type tree struct {
	root     *bloom.Node
	children map[model.ChildKey]*bloom.Node
}

// Index is the FSBI core: per-document bloom trees, the decomposition and
// hashing pipeline, root pruning, and depth-weighted refinement scoring.
//
// All methods are safe for concurrent use. Indexing a document appears atomic
// to readers: a query observes either the previous tree or the fully-built
// replacement, never a partial state.
type Index struct {
	cfg  Config
	proj *projector.Projector

	mu    sync.RWMutex
	docs  map[string]model.DocumentEntry
	trees map[string]*tree
	order []string // doc ids by first insertion, for stable tie-breaks
}

// New creates an empty Index with the given configuration.
func New(cfg Config) (*Index, error) {
	if cfg.M == 0 {
		return nil, &ErrInvalidConfig{Field: "m", Value: cfg.M}
	}
	if cfg.KLex < 0 {
		return nil, &ErrInvalidConfig{Field: "k_lex", Value: cfg.KLex}
	}
	if cfg.KSem < 0 {
		return nil, &ErrInvalidConfig{Field: "k_sem", Value: cfg.KSem}
	}
	if cfg.KLex+cfg.KSem == 0 {
		return nil, &ErrInvalidConfig{Field: "k_lex+k_sem", Value: 0}
	}
	if cfg.ProjectionDim <= 0 {
		return nil, &ErrInvalidConfig{Field: "projection_dim", Value: cfg.ProjectionDim}
	}
	if cfg.MaxPhraseLen < 1 {
		return nil, &ErrInvalidConfig{Field: "max_phrase_len", Value: cfg.MaxPhraseLen}
	}

	return &Index{
		cfg:   cfg,
		proj:  projector.New(cfg.ProjectionDim, cfg.ProjectorSeed),
		docs:  make(map[string]model.DocumentEntry),
		trees: make(map[string]*tree),
	}, nil
}

// Config returns the index's fixed configuration.
func (idx *Index) Config() Config { return idx.cfg }

// indexes returns the combined lexical+semantic bit indexes for one
// subsequence. The same construction is used for indexing and querying.
func (idx *Index) indexes(subseq string) []uint32 {
	lex := hash.Indexes(subseq, idx.cfg.KLex, idx.cfg.M)
	sem := idx.proj.Hashes(subseq, idx.cfg.KSem, idx.cfg.M)
	return append(lex, sem...)
}

// IndexDocument decomposes text, hashes every subsequence at every level into
// a fresh bloom tree, and publishes the tree together with the stored entry,
// fully replacing any prior state for docID. Metadata is shallow-copied so
// later caller mutations cannot leak into the index.
func (idx *Index) IndexDocument(docID, text string, metadata map[string]any) error {
	if docID == "" {
		return fmt.Errorf("%w: doc_id", ErrMissingField)
	}

	// Build off to the side; no locks held while hashing.
	t := &tree{
		root:     bloom.NewNode(idx.cfg.M),
		children: make(map[model.ChildKey]*bloom.Node),
	}
	for lvl, subseqs := range decompose.Decompose(text, idx.cfg.MaxPhraseLen) {
		for _, subseq := range subseqs {
			idxs := idx.indexes(subseq)
			t.root.Insert(idxs)

			key := model.ChildKey{Level: lvl, Subsequence: subseq}
			child, ok := t.children[key]
			if !ok {
				child = bloom.NewNode(idx.cfg.M)
				t.children[key] = child
			}
			child.Insert(idxs)
		}
	}

	meta := make(map[string]any, len(metadata))
	for k, v := range metadata {
		meta[k] = v
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	if _, exists := idx.docs[docID]; !exists {
		idx.order = append(idx.order, docID)
	}
	idx.docs[docID] = model.DocumentEntry{Text: text, Metadata: meta}
	idx.trees[docID] = t

	return nil
}

// RemoveDocument deletes a document's tree and entry. It reports whether the
// document existed.
func (idx *Index) RemoveDocument(docID string) bool {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if _, ok := idx.docs[docID]; !ok {
		return false
	}

	delete(idx.docs, docID)
	delete(idx.trees, docID)
	for i, id := range idx.order {
		if id == docID {
			idx.order = append(idx.order[:i], idx.order[i+1:]...)
			break
		}
	}
	return true
}

// GetDoc returns the stored entry for docID. A miss is reported via the bool,
// never as an error.
func (idx *Index) GetDoc(docID string) (model.DocumentEntry, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	entry, ok := idx.docs[docID]
	return entry, ok
}

// DocumentCount returns the number of indexed documents.
func (idx *Index) DocumentCount() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return len(idx.docs)
}

// querySubseq is one occurrence of a query subsequence with its precomputed
// combined index set. Duplicate occurrences keep separate entries so that
// root pruning pools them per occurrence, exactly as indexing inserted them.
type querySubseq struct {
	key    model.ChildKey
	idxs   []uint32
	weight float64
}

// decomposeQuery hashes the query decomposition once up front. Levels are
// walked in ascending order so score accumulation is deterministic; index
// sets are memoized per subsequence string since they do not depend on the
// level.
func (idx *Index) decomposeQuery(queryText string) []querySubseq {
	levels := decompose.Decompose(queryText, idx.cfg.MaxPhraseLen)

	lvls := make([]int, 0, len(levels))
	for lvl := range levels {
		lvls = append(lvls, lvl)
	}
	sort.Ints(lvls)

	memo := make(map[string][]uint32)

	var subs []querySubseq
	for _, lvl := range lvls {
		for _, subseq := range levels[lvl] {
			idxs, ok := memo[subseq]
			if !ok {
				idxs = idx.indexes(subseq)
				memo[subseq] = idxs
			}
			subs = append(subs, querySubseq{
				key:    model.ChildKey{Level: lvl, Subsequence: subseq},
				idxs:   idxs,
				weight: 1.0 / float64(1+lvl),
			})
		}
	}
	return subs
}

// scoreTree computes (rootScore, finalScore) for one candidate tree against
// the query decomposition. Pure function of the tree and the query; safe to
// run concurrently across candidates.
func scoreTree(t *tree, subs []querySubseq, rootThreshold float64) (float64, float64, bool) {
	rootHits := 0
	rootTotal := 0
	for _, s := range subs {
		for _, i := range s.idxs {
			if t.root.Test(i) {
				rootHits++
			}
		}
		rootTotal += len(s.idxs)
	}

	rootScore := 0.0
	if rootTotal > 0 {
		rootScore = float64(rootHits) / float64(rootTotal)
	}
	if rootScore < rootThreshold {
		return rootScore, 0, false
	}

	var score, totalW float64
	for _, s := range subs {
		var m float64
		if child, ok := t.children[s.key]; ok {
			m = child.MatchScore(s.idxs)
		} else {
			m = t.root.MatchScore(s.idxs)
		}
		score += s.weight * m
		totalW += s.weight
	}

	final := 0.0
	if totalW > 0 {
		final = score / totalW
	}
	return rootScore, final, true
}

// Query decomposes queryText the same way indexing does, prunes candidates on
// their root score against thresholds[0] (default 0.01), refines survivors
// with depth-weighted child matching, and returns at most topK results sorted
// by score descending. Ties keep the documents' insertion order.
//
// Every candidate must be scanned; scores are not monotone in any document
// ordering, so no early exit is sound. Candidates are scored in parallel.
func (idx *Index) Query(ctx context.Context, queryText string, topK int, thresholds map[int]float64) ([]model.SearchResult, error) {
	if topK < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTopK, topK)
	}

	rootThreshold := defaultRootThreshold
	if v, ok := thresholds[0]; ok {
		rootThreshold = v
	}

	subs := idx.decomposeQuery(queryText)

	// Snapshot the candidate set under the read lock; trees are immutable
	// once published, so scoring proceeds without it.
	idx.mu.RLock()
	ids := make([]string, len(idx.order))
	copy(ids, idx.order)
	trees := make([]*tree, len(ids))
	for i, id := range ids {
		trees[i] = idx.trees[id]
	}
	idx.mu.RUnlock()

	type scored struct {
		kept  bool
		score float64
	}
	results := make([]scored, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range ids {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			_, final, kept := scoreTree(trees[i], subs, rootThreshold)
			results[i] = scored{kept: kept, score: final}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	candidates := make([]model.SearchResult, 0, len(ids))
	for i, r := range results {
		if r.kept {
			candidates = append(candidates, model.SearchResult{DocID: ids[i], Score: r.score})
		}
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		return candidates[a].Score > candidates[b].Score
	})

	if len(candidates) > topK {
		candidates = candidates[:topK]
	}
	return candidates, nil
}
