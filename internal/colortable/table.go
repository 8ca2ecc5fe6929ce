// Package colortable builds deduplicated, weighted color tables from a
// raw pixel stream, and provides the bit-precision cutter used to
// coarsen channel precision before dedup. Both operations are
// prerequisites the DIV clusterer consumes; neither performs any
// clustering itself.
package colortable

import (
	"math"

	"github.com/arlojansen/imgquant/internal/pixel"
)

// HashSize is the fixed chained-hash-table bucket count used for
// color deduplication. Kept as a named constant because it is a
// bit-exact contract, not a tuning knob.
const HashSize = 20023

// bucket is one node of a hash chain, stored in an arena rather than
// linked through pointers — buckets live only for the duration of one
// CalcColorTable call and never outlive it.
type bucket struct {
	color ARGBKey
	count int
	next  int // index into the arena, or -1
}

// ARGBKey is the color a bucket holds: always the full 32-bit ARGB
// value, matched byte-exactly. Only the choice of hash bucket depends
// on whether alpha is folded into the hash key.
type ARGBKey = pixel.ARGB

// Table is the output of CalcColorTable: unique colors and their
// normalized sampling weights, in hash-bucket emission order. No
// sorting guarantee is made on this order.
type Table struct {
	Colors  []pixel.ARGB
	Weights []float64
}

// CalcColorTable deduplicates pixels via a chained hash table of
// HashSize buckets, optionally subsampling on a row/column stride
// (decFactor). foldAlpha selects whether the alpha channel
// participates in the hash key (colors are still matched on all four
// channels either way) — callers pass true whenever
// semi-transparency is present or a transparent-color index is being
// tracked separately.
//
// The addressing below indexes inPixels[col + row*numRows] rather
// than the conventional col + row*numCols. This is preserved
// intentionally rather than corrected; callers that want the
// conventional addressing must pass numRows == numCols.
func CalcColorTable(inPixels []pixel.ARGB, numRows, numCols, decFactor int, foldAlpha bool) (Table, error) {
	if decFactor < 1 {
		return Table{}, ErrInvalidArgument
	}

	heads := make([]int, HashSize)
	for i := range heads {
		heads[i] = -1
	}
	arena := make([]bucket, 0, 4096)

	sampledRows := 0
	sampledCols := 0
	for row := 0; row < numRows; row += decFactor {
		sampledRows++
	}
	for col := 0; col < numCols; col += decFactor {
		sampledCols++
	}

	for row := 0; row < numRows; row += decFactor {
		for col := 0; col < numCols; col += decFactor {
			idx := col + row*numRows
			if idx < 0 || idx >= len(inPixels) {
				continue
			}
			c := inPixels[idx]
			key := c.Index(foldAlpha) % HashSize

			found := -1
			for bi := heads[key]; bi != -1; bi = arena[bi].next {
				if arena[bi].color == c {
					found = bi
					break
				}
			}
			if found != -1 {
				arena[found].count++
				continue
			}
			arena = append(arena, bucket{color: c, count: 1, next: heads[key]})
			heads[key] = len(arena) - 1
		}
	}

	total := float64(sampledRows) * float64(sampledCols)
	if total <= 0 {
		total = 1
	}

	colors := make([]pixel.ARGB, 0, len(arena))
	weights := make([]float64, 0, len(arena))
	for key := 0; key < HashSize; key++ {
		for bi := heads[key]; bi != -1; bi = arena[bi].next {
			colors = append(colors, arena[bi].color)
			weights = append(weights, float64(arena[bi].count)/total)
		}
	}

	return Table{Colors: colors, Weights: weights}, nil
}

// NormalizeSum rescales weights in place so they sum to exactly 1,
// guarding against the small drift the sampled-grid division in
// CalcColorTable can leave behind. divInput calls this on the
// table.Weights slices it feeds to DIV's weighted branches; the
// uniform-weight branch bypasses CalcColorTable's weights entirely
// (it hands DIV a scalar dataWeight instead) and has no slice to
// normalize.
func NormalizeSum(weights []float64) {
	sum := 0.0
	for _, w := range weights {
		sum += w
	}
	if sum <= 0 || math.Abs(sum-1) < 1e-12 {
		return
	}
	inv := 1 / sum
	for i := range weights {
		weights[i] *= inv
	}
}
