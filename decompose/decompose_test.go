package decompose

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecompose_TheCat(t *testing.T) {
	levels := Decompose("The Cat", 3)

	assert.Equal(t, []string{"t", "h", "e", "c", "a", "t"}, levels[LevelChar])
	// Bigrams stay inside token boundaries: no "ec".
	assert.Equal(t, []string{"th", "he", "ca", "at"}, levels[LevelBigram])
	assert.Equal(t, []string{"the", "cat"}, levels[LevelToken])
	assert.Equal(t, []string{"the cat"}, levels[4])
	assert.Equal(t, []string{}, levels[5])
}

func TestDecompose_Deterministic(t *testing.T) {
	a := Decompose("The Cat", 3)
	b := Decompose("The Cat", 3)
	assert.Equal(t, a, b)
}

func TestDecompose_PhraseWindows(t *testing.T) {
	levels := Decompose("alpha beta gamma delta", 3)

	assert.Equal(t, []string{"alpha beta", "beta gamma", "gamma delta"}, levels[4])
	assert.Equal(t, []string{"alpha beta gamma", "beta gamma delta"}, levels[5])
}

func TestDecompose_DuplicatesRetained(t *testing.T) {
	levels := Decompose("aa aa", 3)

	assert.Equal(t, []string{"a", "a", "a", "a"}, levels[LevelChar])
	assert.Equal(t, []string{"aa", "aa"}, levels[LevelBigram])
	assert.Equal(t, []string{"aa", "aa"}, levels[LevelToken])
	assert.Equal(t, []string{"aa aa"}, levels[4])
}

func TestDecompose_Empty(t *testing.T) {
	for _, text := range []string{"", "   ", "\t\n"} {
		levels := Decompose(text, 3)

		require.Len(t, levels, 5)
		for lvl, subseqs := range levels {
			assert.NotNil(t, subseqs, "level %d must be present, not nil", lvl)
			assert.Empty(t, subseqs)
		}
	}
}

func TestDecompose_NormalizesCase(t *testing.T) {
	levels := Decompose("  HeLLo  ", 3)
	assert.Equal(t, []string{"hello"}, levels[LevelToken])
}

func TestDecompose_SingleRuneToken(t *testing.T) {
	levels := Decompose("a", 3)

	assert.Equal(t, []string{"a"}, levels[LevelChar])
	assert.Empty(t, levels[LevelBigram])
	assert.Equal(t, []string{"a"}, levels[LevelToken])
	assert.Empty(t, levels[4])
}

func TestDecompose_Unicode(t *testing.T) {
	levels := Decompose("héllo", 3)

	assert.Equal(t, []string{"h", "é", "l", "l", "o"}, levels[LevelChar])
	assert.Equal(t, []string{"hé", "él", "ll", "lo"}, levels[LevelBigram])
}
