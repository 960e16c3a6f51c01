package projector

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"sync"

	"github.com/hupe1980/fsbi/internal/hash"
)

const (
	// DefaultDim is the default random-projection dimension r.
	DefaultDim = 64
	// DefaultSeed is the default construction seed.
	DefaultSeed = 42

	maxNGram = 3
)

// Projector turns tokens into deterministic pseudo-embeddings and derives
// bit indexes from them via locality-sensitive-style random projections.
//
// The scheme is an intentionally simplified stand-in for a real embedding
// model: a token's character n-gram counts are bucketed into an r-dimensional
// vector, normalized, and dotted against fixed Gaussian directions. The dot
// product is quantized to 6 decimal digits before hashing, so two tokens only
// share an index through this path when their projected scores agree to 6
// decimals. That exact quantization is part of the contract and must not be
// "upgraded".
//
// A Projector is safe for concurrent use.
type Projector struct {
	r    int
	seed uint32

	mu         sync.Mutex
	directions map[int][]float64
}

// New creates a Projector with projection dimension r and the given seed.
// All randomness is derived from the seed; two Projectors constructed with
// the same (r, seed) are interchangeable.
func New(r int, seed uint32) *Projector {
	return &Projector{
		r:          r,
		seed:       seed,
		directions: make(map[int][]float64),
	}
}

// Dim returns the projection dimension r.
func (p *Projector) Dim() int { return p.r }

// Project maps token to an L2-normalized r-dimensional n-gram count vector.
// The token is lowercased first; n-gram lengths 1..3 contribute. A token with
// no n-grams (the empty string) yields the zero vector.
func (p *Projector) Project(token string) []float64 {
	vec := make([]float64, p.r)
	runes := []rune(strings.ToLower(token))

	for n := 1; n <= maxNGram; n++ {
		for i := 0; i+n <= len(runes); i++ {
			ngram := string(runes[i : i+n])
			dim := hash.Sum32(ngram, p.seed) % uint32(p.r)
			vec[dim]++
		}
	}

	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}

// Hashes derives k bit indexes in [0, m) for token. Index j is obtained by
// dotting the projected vector against the j-th fixed Gaussian direction,
// quantizing the score to 6 decimals, and hashing "{token}|{j}|{score}" with
// seed j. The empty token is valid; its zero vector still produces
// deterministic indexes.
func (p *Projector) Hashes(token string, k int, m uint32) []uint32 {
	z := p.Project(token)

	idxs := make([]uint32, k)
	for j := 0; j < k; j++ {
		dir := p.direction(j)

		var score float64
		for i, v := range z {
			score += dir[i] * v
		}

		combined := fmt.Sprintf("%s|%d|%s", token, j, strconv.FormatFloat(score, 'f', 6, 64))
		idxs[j] = hash.Sum32(combined, uint32(j)) % m
	}
	return idxs
}

// direction returns the j-th Gaussian direction, drawing it on first use from
// a PRNG seeded purely from (j, p.seed). The same direction is reused for
// every token and every call.
func (p *Projector) direction(j int) []float64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	if dir, ok := p.directions[j]; ok {
		return dir
	}

	rng := rand.New(rand.NewSource(int64(p.seed)<<20 ^ int64(j)))
	dir := make([]float64, p.r)
	for i := range dir {
		dir[i] = rng.NormFloat64()
	}
	p.directions[j] = dir
	return dir
}
