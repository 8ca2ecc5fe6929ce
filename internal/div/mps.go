package div

import (
	"sort"

	"github.com/arlojansen/imgquant/internal/pixel"
)

// maxSum is the largest possible a+r+g+b sum (4 * 255), the span the
// sum-sorted palette and its lookup tables are built over.
const maxSum = 4 * 255

type sumEntry struct {
	color pixel.ARGB
	sum   int
	orig  int
}

// MPS implements the Modified Pixel Search nearest-color mapper:
// a palette sorted by channel sum, a squared-distance lower-bound LUT
// used to prune the up/down walk, and a per-sum starting-index LUT.
type MPS struct {
	palette []pixel.ARGB
	sorted  []sumEntry
	lutSSD  []int // index by d + maxSum, d in [-maxSum, maxSum]
	lutInit []int // index by s in [0, maxSum], value is a position into sorted
}

// NewMPS precomputes the sum-sorted palette and both lookup tables
// for palette.
func NewMPS(palette []pixel.ARGB) *MPS {
	sorted := make([]sumEntry, len(palette))
	for i, c := range palette {
		sorted[i] = sumEntry{color: c, sum: c.Sum(), orig: i}
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].sum < sorted[j].sum })

	lutSSD := make([]int, 2*maxSum+1)
	for d := -maxSum; d <= maxSum; d++ {
		lutSSD[d+maxSum] = (d * d) / 3
	}

	lutInit := make([]int, maxSum+1)
	if len(sorted) > 0 {
		pos := 0
		for s := 0; s <= maxSum; s++ {
			for pos+1 < len(sorted) {
				midDouble := sorted[pos].sum + sorted[pos+1].sum
				if s*2 >= midDouble {
					pos++
				} else {
					break
				}
			}
			lutInit[s] = pos
		}
	}

	return &MPS{palette: palette, sorted: sorted, lutSSD: lutSSD, lutInit: lutInit}
}

// Nearest returns the palette index (in the caller's original
// ordering) and L1 distance of the closest entry to c, via a
// sum-bounded up/down walk from the entry whose channel sum is
// closest to c's. A direction stops once the sum gap d alone is at
// least the best L1 distance found: the LUT holds floor(d*d/3), so it
// is compared against minDist*minDist/3 on the same scale.
func (m *MPS) Nearest(c pixel.ARGB) (index, dist int) {
	if len(m.sorted) == 0 {
		return -1, 0
	}
	s := c.Sum()
	pos := m.lutInit[s]
	best := pos
	minDist := c.L1Dist(m.sorted[pos].color)

	for up := pos + 1; up < len(m.sorted); up++ {
		d := s - m.sorted[up].sum
		if m.lutSSD[d+maxSum] > minDist*minDist/3 {
			break
		}
		if dd := c.L1Dist(m.sorted[up].color); dd < minDist {
			minDist = dd
			best = up
		}
	}
	for down := pos - 1; down >= 0; down-- {
		d := s - m.sorted[down].sum
		if m.lutSSD[d+maxSum] > minDist*minDist/3 {
			break
		}
		if dd := c.L1Dist(m.sorted[down].color); dd < minDist {
			minDist = dd
			best = down
		}
	}
	return m.sorted[best].orig, minDist
}

// Map assigns every pixel to its nearest palette index.
func (m *MPS) Map(pixels []pixel.ARGB) []int {
	out := make([]int, len(pixels))
	for i, p := range pixels {
		idx, _ := m.Nearest(p)
		out[i] = idx
	}
	return out
}

// ColorIndex returns the hashed ARGB identifier of palette entry i,
// for callers that need to emit a color identifier instead of a
// positional index when the palette exceeds a byte-indexable size.
func (m *MPS) ColorIndex(i int) uint64 {
	return m.palette[i].Index(true)
}
