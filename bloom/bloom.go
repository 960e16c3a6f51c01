package bloom

import (
	"math/rand"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
)

// Node is a fixed-width Bloom-style bit set.
//
// A Node starts all-zero and only ever grows: Insert sets bits and nothing
// clears them. The sole exception is NoisyCopy, which flips bits in a fresh
// copy and never touches the receiver. Membership is probabilistic in the
// usual Bloom sense: unrelated inserts can overlap, so false positives are
// possible, but a bit that was set is never observed unset.
//
// The backing store is a roaring bitmap rather than a dense word array; child
// nodes in an index tree hold only a handful of set bits out of m, which
// roaring represents in a few bytes.
type Node struct {
	m    uint32
	bits *roaring.Bitmap
}

// NewNode creates an all-zero Node of width m bits.
func NewNode(m uint32) *Node {
	return &Node{m: m, bits: roaring.New()}
}

// Len returns the width of the node in bits.
func (n *Node) Len() uint32 { return n.m }

// Count returns the number of set bits.
func (n *Node) Count() uint64 { return n.bits.GetCardinality() }

// Insert sets the bit idx mod m for every idx. Repeated inserts of the same
// indexes are no-ops.
func (n *Node) Insert(idxs []uint32) {
	for _, i := range idxs {
		n.bits.Add(i % n.m)
	}
}

// Test reports whether the bit idx mod m is set.
func (n *Node) Test(idx uint32) bool {
	return n.bits.Contains(idx % n.m)
}

// MatchScore returns the fraction of idxs whose bits are set, in [0, 1].
// An empty index list scores 0.
func (n *Node) MatchScore(idxs []uint32) float64 {
	if len(idxs) == 0 {
		return 0.0
	}
	hits := 0
	for _, i := range idxs {
		if n.bits.Contains(i % n.m) {
			hits++
		}
	}
	return float64(hits) / float64(len(idxs))
}

// Clone returns an independent exact copy of the node.
func (n *Node) Clone() *Node {
	return &Node{m: n.m, bits: n.bits.Clone()}
}

// Equal reports whether both nodes have the same width and the same set bits.
func (n *Node) Equal(o *Node) bool {
	return n.m == o.m && n.bits.Equals(o.bits)
}

// NoisyCopy returns a copy in which every bit has been independently flipped
// with probability p, drawn from rng. The receiver is never mutated; p <= 0
// yields an exact copy. Used for privacy-tolerant snapshot export.
func (n *Node) NoisyCopy(p float64, rng *rand.Rand) *Node {
	out := n.Clone()
	if p <= 0 {
		return out
	}
	for i := uint32(0); i < n.m; i++ {
		if rng.Float64() < p {
			if out.bits.Contains(i) {
				out.bits.Remove(i)
			} else {
				out.bits.Add(i)
			}
		}
	}
	return out
}

// BitString renders the node as a string of exactly m '0'/'1' characters,
// bit 0 first. This is the snapshot wire encoding.
func (n *Node) BitString() string {
	var sb strings.Builder
	sb.Grow(int(n.m))
	for i := uint32(0); i < n.m; i++ {
		if n.bits.Contains(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
