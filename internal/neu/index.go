package neu

import (
	"math"
	"math/rand"

	"github.com/arlojansen/imgquant/internal/pixel"
)

// closestPair is the memoized outcome of a two-candidate nearest
// search: the best and second-best palette index and their distances.
type closestPair struct {
	idx0, idx1   int
	dist0, dist1 int
}

// Index is a trained network's green-sorted palette plus its
// randomized nearest-color search state.
type Index struct {
	palette   []pixel.ARGB
	netIndex  [netSize]int
	maxColors int
	rng       *rand.Rand
	memo      map[pixel.ARGB]closestPair
}

// Inxbuild reads the trained network's neurons into a netSize-entry
// palette, sorted ascending by green, and builds a green-value to
// palette-position index alongside it. When transparentIndex >= 0,
// position 0 holds transparentColor and is left out of the green sort.
//
// The prefix netIndex builds is retained on Index but is not
// consulted by Search below: Search performs a full linear scan, the
// same tradeoff the network this is grounded on makes. netIndex is
// kept because it is cheap to build and useful for callers that want
// a fast approximate lookup of their own.
func Inxbuild(n *Network, maxColors, transparentIndex int, transparentColor pixel.ARGB, rng *rand.Rand) *Index {
	entries := make([]pixel.ARGB, netSize)
	start := 0
	if transparentIndex >= 0 {
		start = 1
	}
	for k := start; k < netSize; k++ {
		nn := n.neurons[k]
		alpha := roundBiased(nn.al)
		r := uint8(n.biasValue(n.unbiasValue(nn.r)))
		g := uint8(n.biasValue(n.unbiasValue(nn.g)))
		b := uint8(n.biasValue(n.unbiasValue(nn.b)))
		entries[k] = pixel.New(alpha, r, g, b)
	}
	if transparentIndex >= 0 {
		entries[0] = transparentColor
	}

	var netIndex [netSize]int
	previousCol := 0
	startPos := 0
	for i := start; i < netSize; i++ {
		smallPos := i
		smallVal := entries[i].G()
		for j := i + 1; j < netSize; j++ {
			if entries[j].G() < smallVal {
				smallPos = j
				smallVal = entries[j].G()
			}
		}
		if i != smallPos {
			entries[i], entries[smallPos] = entries[smallPos], entries[i]
		}
		if int(smallVal) != previousCol {
			netIndex[previousCol] = (startPos + i) >> 1
			for j := previousCol + 1; j < int(smallVal); j++ {
				netIndex[j] = i
			}
			previousCol = int(smallVal)
			startPos = i
		}
	}
	netIndex[previousCol] = (startPos + maxNetPos) >> 1
	for j := previousCol + 1; j < netSize; j++ {
		netIndex[j] = maxNetPos
	}

	if maxColors > netSize {
		maxColors = netSize
	}
	if maxColors < 1 {
		maxColors = 1
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Index{
		palette:   entries,
		netIndex:  netIndex,
		maxColors: maxColors,
		rng:       rng,
		memo:      make(map[pixel.ARGB]closestPair),
	}
}

// Palette returns the first MaxColors entries of the green-sorted
// network, the slice actually searched and emitted.
func (idx *Index) Palette() []pixel.ARGB {
	return idx.palette[:idx.maxColors]
}

func (idx *Index) MaxColors() int { return idx.maxColors }

// Search returns a palette index for c, memoized per distinct input
// color: the first lookup runs a full scan for the best and
// second-best candidates by L1 distance, then randomly picks between
// them weighted by how close the second-best result was. Repeat
// lookups of the same color replay the same two candidates but redraw
// the random choice.
func (idx *Index) Search(c pixel.ARGB) int {
	pair, ok := idx.memo[c]
	if !ok {
		pair = idx.findClosest(c)
		idx.memo[c] = pair
	}
	if pair.dist0 == 0 || idx.rng.Intn(pair.dist1+pair.dist0) <= pair.dist1 {
		return pair.idx0
	}
	return pair.idx1
}

func (idx *Index) findClosest(c pixel.ARGB) closestPair {
	best0, best1 := 0, 0
	bestd0, bestd1 := math.MaxInt32, math.MaxInt32

	for k := 0; k < idx.maxColors; k++ {
		d := c.L1Dist(idx.palette[k])
		if d < bestd0 {
			best1, bestd1 = best0, bestd0
			best0, bestd0 = k, d
		} else if d < bestd1 {
			best1, bestd1 = k, d
		}
	}
	if bestd1 == math.MaxInt32 {
		bestd0 = 0
	}
	return closestPair{idx0: best0, idx1: best1, dist0: bestd0, dist1: bestd1}
}
