package bloom

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNode_InsertAndMatch(t *testing.T) {
	n := NewNode(2048)

	idxs := []uint32{1, 7, 2047, 100}
	n.Insert(idxs)

	// Exactly the inserted indexes must match fully.
	assert.Equal(t, 1.0, n.MatchScore(idxs))
	assert.Equal(t, uint64(4), n.Count())
}

func TestNode_InsertIdempotent(t *testing.T) {
	n := NewNode(2048)
	n.Insert([]uint32{5, 5, 5})
	assert.Equal(t, uint64(1), n.Count())

	n.Insert([]uint32{5})
	assert.Equal(t, uint64(1), n.Count())
}

func TestNode_InsertWraps(t *testing.T) {
	n := NewNode(16)
	n.Insert([]uint32{16, 32, 17})

	assert.True(t, n.Test(0))
	assert.True(t, n.Test(1))
	assert.Equal(t, uint64(2), n.Count())
}

func TestNode_MatchScoreEmpty(t *testing.T) {
	n := NewNode(2048)
	assert.Equal(t, 0.0, n.MatchScore(nil))

	n.Insert([]uint32{1, 2, 3})
	assert.Equal(t, 0.0, n.MatchScore([]uint32{}))
}

func TestNode_MatchScorePartial(t *testing.T) {
	n := NewNode(2048)
	n.Insert([]uint32{10, 20})

	assert.InDelta(t, 0.5, n.MatchScore([]uint32{10, 999}), 1e-12)
}

func TestNode_Monotone(t *testing.T) {
	n := NewNode(2048)
	n.Insert([]uint32{3, 9})
	before := n.Count()

	n.Insert([]uint32{4, 3})
	assert.True(t, n.Test(3))
	assert.True(t, n.Test(9))
	assert.GreaterOrEqual(t, n.Count(), before)
}

func TestNode_NoisyCopyDoesNotMutateOriginal(t *testing.T) {
	n := NewNode(512)
	n.Insert([]uint32{1, 2, 3, 4, 5})
	orig := n.Clone()

	rng := rand.New(rand.NewSource(1))
	noisy := n.NoisyCopy(0.5, rng)

	assert.True(t, n.Equal(orig), "original must not change")
	assert.False(t, noisy.Equal(orig), "a 0.5 flip rate over 512 bits should differ")
}

func TestNode_NoisyCopyZeroProbability(t *testing.T) {
	n := NewNode(256)
	n.Insert([]uint32{42, 99})

	noisy := n.NoisyCopy(0, rand.New(rand.NewSource(1)))
	assert.True(t, noisy.Equal(n))

	// And the copy is independent.
	noisy.Insert([]uint32{7})
	assert.False(t, n.Test(7))
}

func TestNode_BitString(t *testing.T) {
	n := NewNode(8)
	n.Insert([]uint32{0, 3})

	s := n.BitString()
	require.Len(t, s, 8)
	assert.Equal(t, "10010000", s)
	assert.Equal(t, 2, strings.Count(s, "1"))
}
