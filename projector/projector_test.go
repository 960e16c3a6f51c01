package projector

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProject_Normalized(t *testing.T) {
	p := New(DefaultDim, DefaultSeed)

	vec := p.Project("hello")
	require.Len(t, vec, DefaultDim)

	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	assert.InDelta(t, 1.0, norm, 1e-9)
}

func TestProject_Lowercases(t *testing.T) {
	p := New(DefaultDim, DefaultSeed)
	assert.Equal(t, p.Project("Hello"), p.Project("hello"))
}

func TestProject_EmptyTokenZeroVector(t *testing.T) {
	p := New(DefaultDim, DefaultSeed)

	vec := p.Project("")
	for _, v := range vec {
		assert.Zero(t, v)
	}
}

func TestHashes_DeterministicAcrossInstances(t *testing.T) {
	const m = 2048

	a := New(DefaultDim, DefaultSeed)
	b := New(DefaultDim, DefaultSeed)

	assert.Equal(t, a.Hashes("hello", 2, m), b.Hashes("hello", 2, m))
	// Repeated calls reuse the same Gaussian directions.
	assert.Equal(t, a.Hashes("hello", 2, m), a.Hashes("hello", 2, m))
}

func TestHashes_Range(t *testing.T) {
	const m = 128

	p := New(DefaultDim, DefaultSeed)
	for _, token := range []string{"hello", "", "a", "zzz"} {
		for _, idx := range p.Hashes(token, 4, m) {
			assert.Less(t, idx, uint32(m))
		}
	}
}

func TestHashes_SeedChangesFamily(t *testing.T) {
	const m = 2048

	a := New(DefaultDim, 1)
	b := New(DefaultDim, 2)
	assert.NotEqual(t, a.Hashes("hello", 4, m), b.Hashes("hello", 4, m))
}

func TestHashes_EmptyToken(t *testing.T) {
	const m = 2048

	p := New(DefaultDim, DefaultSeed)
	idxs := p.Hashes("", 2, m)
	require.Len(t, idxs, 2)
	assert.Equal(t, idxs, p.Hashes("", 2, m))
}

func TestDirections_Gaussian(t *testing.T) {
	p := New(1024, DefaultSeed)
	dir := p.direction(0)

	var mean float64
	for _, v := range dir {
		mean += v
	}
	mean /= float64(len(dir))

	var variance float64
	for _, v := range dir {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(dir))

	// Loose sanity bounds for a standard normal sample of size 1024.
	assert.InDelta(t, 0.0, mean, 0.15)
	assert.InDelta(t, 1.0, variance, 0.25)
	assert.False(t, math.IsNaN(variance))
}
