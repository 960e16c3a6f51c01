package fsbi

import (
	"context"
	"time"

	"github.com/hupe1980/fsbi/index"
	"github.com/hupe1980/fsbi/model"
)

// FSBI is the user-facing handle around the index core. It owns exactly one
// index instance plus the configured logger and metrics collector; there is
// deliberately no process-wide shared index, callers construct an FSBI once
// and pass it to whatever serves requests.
type FSBI struct {
	idx      *index.Index
	flipProb float64
	logger   *Logger
	metrics  MetricsCollector
}

// New creates an FSBI instance. All index parameters are fixed for the
// lifetime of the instance.
//
// Example:
//
//	db, err := fsbi.New(
//	    fsbi.WithM(4096),
//	    fsbi.WithLogLevel(slog.LevelInfo),
//	)
func New(optFns ...Option) (*FSBI, error) {
	o := applyOptions(optFns)

	idx, err := index.New(o.cfg)
	if err != nil {
		return nil, translateError(err)
	}

	return &FSBI{
		idx:      idx,
		flipProb: o.flipProbability,
		logger:   o.logger,
		metrics:  o.metricsCollector,
	}, nil
}

// Config returns the instance's fixed index configuration.
func (f *FSBI) Config() index.Config { return f.idx.Config() }

// IndexDocument indexes text under docID with opaque caller metadata, fully
// replacing any prior document with the same id. The replacement appears
// atomic to concurrent queries.
func (f *FSBI) IndexDocument(ctx context.Context, docID, text string, metadata map[string]any) error {
	start := time.Now()
	err := translateError(f.idx.IndexDocument(docID, text, metadata))
	f.metrics.RecordIndex(time.Since(start), err)
	f.logger.LogIndex(ctx, docID, len(text), err)
	return err
}

// Query returns up to topK documents ranked by the depth-weighted refinement
// score. thresholds may override the level-0 root pruning threshold; pass nil
// for defaults.
func (f *FSBI) Query(ctx context.Context, queryText string, topK int, thresholds map[int]float64) ([]model.SearchResult, error) {
	start := time.Now()
	results, err := f.idx.Query(ctx, queryText, topK, thresholds)
	err = translateError(err)
	f.metrics.RecordQuery(topK, time.Since(start), err)
	f.logger.LogQuery(ctx, topK, len(results), err)
	return results, err
}

// GetDoc returns the stored entry for docID. A miss is reported via the
// bool, never as an error.
func (f *FSBI) GetDoc(docID string) (model.DocumentEntry, bool) {
	return f.idx.GetDoc(docID)
}

// RemoveDocument deletes a document's tree and stored entry, reporting
// whether it existed.
func (f *FSBI) RemoveDocument(ctx context.Context, docID string) bool {
	start := time.Now()
	existed := f.idx.RemoveDocument(docID)
	f.metrics.RecordRemove(time.Since(start), existed)
	f.logger.LogRemove(ctx, docID, existed)
	return existed
}

// DocumentCount returns the number of indexed documents, used for health
// reporting.
func (f *FSBI) DocumentCount() int {
	return f.idx.DocumentCount()
}

// Snapshot exports every document's bit-set tree and metadata, bit-exact.
func (f *FSBI) Snapshot(ctx context.Context) model.Snapshot {
	start := time.Now()
	snap := f.idx.Snapshot()
	f.metrics.RecordSnapshot(time.Since(start), len(snap))
	f.logger.LogSnapshot(ctx, len(snap), false)
	return snap
}

// SnapshotNoisy exports the index with the configured per-bit flip
// probability applied to a copy of every bit set. The stored index is never
// mutated by export.
func (f *FSBI) SnapshotNoisy(ctx context.Context) model.Snapshot {
	start := time.Now()
	snap := f.idx.SnapshotNoisy(f.flipProb, nil)
	f.metrics.RecordSnapshot(time.Since(start), len(snap))
	f.logger.LogSnapshot(ctx, len(snap), true)
	return snap
}

// Stats returns read-only occupancy aggregates.
func (f *FSBI) Stats() index.Stats {
	return f.idx.Stats()
}
