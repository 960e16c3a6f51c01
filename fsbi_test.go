package fsbi_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fsbi "github.com/hupe1980/fsbi"
)

func TestNew_Defaults(t *testing.T) {
	db, err := fsbi.New()
	require.NoError(t, err)

	cfg := db.Config()
	assert.Equal(t, uint32(2048), cfg.M)
	assert.Equal(t, 2, cfg.KLex)
	assert.Equal(t, 2, cfg.KSem)
	assert.Equal(t, 64, cfg.ProjectionDim)
}

func TestNew_InvalidConfig(t *testing.T) {
	_, err := fsbi.New(fsbi.WithM(0))
	var ice *fsbi.ErrInvalidConfig
	assert.ErrorAs(t, err, &ice)
}

func TestFSBI_IndexAndQuery(t *testing.T) {
	ctx := context.Background()

	db, err := fsbi.New()
	require.NoError(t, err)

	require.NoError(t, db.IndexDocument(ctx, "d1", "hello world", map[string]any{"lang": "en"}))
	assert.Equal(t, 1, db.DocumentCount())

	results, err := db.Query(ctx, "hello", 5, nil)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "d1", results[0].DocID)

	entry, ok := db.GetDoc("d1")
	require.True(t, ok)
	assert.Equal(t, "hello world", entry.Text)
	assert.Equal(t, "en", entry.Metadata["lang"])
}

func TestFSBI_MissingDocID(t *testing.T) {
	db, err := fsbi.New()
	require.NoError(t, err)

	err = db.IndexDocument(context.Background(), "", "text", nil)
	assert.ErrorIs(t, err, fsbi.ErrMissingField)
}

func TestFSBI_InvalidTopK(t *testing.T) {
	db, err := fsbi.New()
	require.NoError(t, err)

	_, err = db.Query(context.Background(), "q", -1, nil)
	assert.ErrorIs(t, err, fsbi.ErrInvalidTopK)
}

func TestFSBI_Remove(t *testing.T) {
	ctx := context.Background()

	db, err := fsbi.New()
	require.NoError(t, err)
	require.NoError(t, db.IndexDocument(ctx, "d1", "hello world", nil))

	assert.True(t, db.RemoveDocument(ctx, "d1"))
	assert.False(t, db.RemoveDocument(ctx, "d1"))
	assert.Equal(t, 0, db.DocumentCount())

	_, ok := db.GetDoc("d1")
	assert.False(t, ok)
}

func TestFSBI_Snapshots(t *testing.T) {
	ctx := context.Background()

	db, err := fsbi.New(fsbi.WithFlipProbability(0.25))
	require.NoError(t, err)
	require.NoError(t, db.IndexDocument(ctx, "d1", "hello world", nil))

	plain := db.Snapshot(ctx)
	require.Contains(t, plain, "d1")
	assert.Len(t, plain["d1"].RootBits, 2048)

	noisy := db.SnapshotNoisy(ctx)
	assert.NotEqual(t, plain["d1"].RootBits, noisy["d1"].RootBits)

	// Export never perturbs the live index.
	again := db.Snapshot(ctx)
	assert.Equal(t, plain["d1"].RootBits, again["d1"].RootBits)
}

func TestFSBI_Metrics(t *testing.T) {
	ctx := context.Background()
	mc := &fsbi.BasicMetricsCollector{}

	db, err := fsbi.New(fsbi.WithMetricsCollector(mc))
	require.NoError(t, err)

	require.NoError(t, db.IndexDocument(ctx, "d1", "hello world", nil))
	_, err = db.Query(ctx, "hello", 5, nil)
	require.NoError(t, err)
	db.RemoveDocument(ctx, "missing")

	stats := mc.GetStats()
	assert.Equal(t, int64(1), stats.IndexCount)
	assert.Equal(t, int64(1), stats.QueryCount)
	assert.Equal(t, int64(1), stats.RemoveCount)
	assert.Equal(t, int64(1), stats.RemoveMisses)
}

func TestFSBI_SeedReproducibility(t *testing.T) {
	ctx := context.Background()

	a, err := fsbi.New(fsbi.WithProjectorSeed(7))
	require.NoError(t, err)
	b, err := fsbi.New(fsbi.WithProjectorSeed(7))
	require.NoError(t, err)

	require.NoError(t, a.IndexDocument(ctx, "d1", "hello world", nil))
	require.NoError(t, b.IndexDocument(ctx, "d1", "hello world", nil))

	assert.Equal(t, a.Snapshot(ctx)["d1"].RootBits, b.Snapshot(ctx)["d1"].RootBits)
}
