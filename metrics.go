package fsbi

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordIndex is called after each index operation.
	// duration is the total time taken, err is nil if successful.
	RecordIndex(duration time.Duration, err error)

	// RecordQuery is called after each query operation.
	// topK is the number of results requested, duration is the time taken,
	// err is nil if successful.
	RecordQuery(topK int, duration time.Duration, err error)

	// RecordRemove is called after each remove operation.
	RecordRemove(duration time.Duration, existed bool)

	// RecordSnapshot is called after each snapshot export.
	RecordSnapshot(duration time.Duration, docs int)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordIndex(time.Duration, error)      {}
func (NoopMetricsCollector) RecordQuery(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordRemove(time.Duration, bool)      {}
func (NoopMetricsCollector) RecordSnapshot(time.Duration, int)     {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	IndexCount      atomic.Int64
	IndexErrors     atomic.Int64
	IndexTotalNanos atomic.Int64
	QueryCount      atomic.Int64
	QueryErrors     atomic.Int64
	QueryTotalNanos atomic.Int64
	RemoveCount     atomic.Int64
	RemoveMisses    atomic.Int64
	SnapshotCount   atomic.Int64
}

// RecordIndex implements MetricsCollector.
func (b *BasicMetricsCollector) RecordIndex(duration time.Duration, err error) {
	b.IndexCount.Add(1)
	b.IndexTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.IndexErrors.Add(1)
	}
}

// RecordQuery implements MetricsCollector.
func (b *BasicMetricsCollector) RecordQuery(topK int, duration time.Duration, err error) {
	b.QueryCount.Add(1)
	b.QueryTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.QueryErrors.Add(1)
	}
}

// RecordRemove implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRemove(duration time.Duration, existed bool) {
	b.RemoveCount.Add(1)
	if !existed {
		b.RemoveMisses.Add(1)
	}
}

// RecordSnapshot implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSnapshot(duration time.Duration, docs int) {
	b.SnapshotCount.Add(1)
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	IndexCount    int64
	IndexErrors   int64
	IndexAvgNanos int64
	QueryCount    int64
	QueryErrors   int64
	QueryAvgNanos int64
	RemoveCount   int64
	RemoveMisses  int64
	SnapshotCount int64
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		IndexCount:    b.IndexCount.Load(),
		IndexErrors:   b.IndexErrors.Load(),
		IndexAvgNanos: avg(b.IndexTotalNanos.Load(), b.IndexCount.Load()),
		QueryCount:    b.QueryCount.Load(),
		QueryErrors:   b.QueryErrors.Load(),
		QueryAvgNanos: avg(b.QueryTotalNanos.Load(), b.QueryCount.Load()),
		RemoveCount:   b.RemoveCount.Load(),
		RemoveMisses:  b.RemoveMisses.Load(),
		SnapshotCount: b.SnapshotCount.Load(),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}
