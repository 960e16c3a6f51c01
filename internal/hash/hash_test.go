package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSum32_Deterministic(t *testing.T) {
	a := Sum32("hello", 0)
	b := Sum32("hello", 0)
	assert.Equal(t, a, b)
}

func TestSum32_SeedIndependence(t *testing.T) {
	// Different seeds should behave like different hash functions.
	assert.NotEqual(t, Sum32("hello", 0), Sum32("hello", 1))
}

func TestSum32_EmptyString(t *testing.T) {
	// Empty input is valid and stable.
	assert.Equal(t, Sum32("", 7), Sum32("", 7))
}

func TestIndexes(t *testing.T) {
	const m = 2048

	idxs := Indexes("token", 4, m)
	assert.Len(t, idxs, 4)
	for _, i := range idxs {
		assert.Less(t, i, uint32(m))
	}

	// Same input, same family.
	assert.Equal(t, idxs, Indexes("token", 4, m))
}

func TestIndexes_ZeroK(t *testing.T) {
	assert.Empty(t, Indexes("token", 0, 2048))
}
