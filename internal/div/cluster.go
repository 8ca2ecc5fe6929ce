// Package div implements the divisive weighted-variance clusterer
// (DIV) and its Modified Pixel Search palette mapper.
package div

import (
	"math"

	"github.com/arlojansen/imgquant/internal/pixel"
)

// Result is the output of Cluster: the emitted palette (K' <= K
// entries, empty clusters skipped) and, for every input point, the
// palette position of its final cluster, filled in after the split
// loop ends.
type Result struct {
	Palette []pixel.ARGB
	Members Members
}

type clusterState struct {
	weight, tse    float64
	mean, variance [4]float64
	points         []int // indices into the caller's colors/weights slices
}

func (c *clusterState) size() int { return len(c.points) }

// Cluster runs the divisive weighted-variance split loop over colors
// (with parallel weights, or dataWeight when weights is nil),
// producing at most k palette entries quantized to numBits of
// precision per channel. maxIters enables local K-means refinement
// per split when > 0.
func Cluster(colors []pixel.ARGB, weights []float64, dataWeight float64, numBits, maxIters, k int) (Result, error) {
	n := len(colors)
	if n == 0 || k < 1 || numBits < 1 || numBits > 8 {
		return Result{}, ErrInvalidArgument
	}
	if weights != nil && len(weights) != n {
		return Result{}, ErrInvalidArgument
	}

	allPoints := make([]int, n)
	for i := range allPoints {
		allPoints[i] = i
	}

	_, totalMean, totalVariance := computeMoments(colors, weights, dataWeight, allPoints)
	totalWeight := 1.0

	clusters := []*clusterState{{
		weight:   totalWeight,
		mean:     totalMean,
		variance: totalVariance,
		points:   allPoints,
	}}

	oldIndex := 0
	for newIndex := 1; newIndex < k; newIndex++ {
		old := clusters[oldIndex]
		axis := pickAxis(old.variance)
		cutPos := old.mean[axis]
		basePoints := old.points

		newPoints, oldPoints := initialPartition(colors, basePoints, axis, cutPos)
		newWeight, newMean, _ := computeMoments(colors, weights, dataWeight, newPoints)
		oldWeight := totalWeight - newWeight
		oldMean := combinedMean(totalWeight, totalMean, newWeight, newMean, oldWeight)

		for it := 0; it < maxIters; it++ {
			reNew, reOld := lkmReassign(colors, basePoints, oldMean, newMean)
			w2, m2, _ := computeMoments(colors, weights, dataWeight, reNew)
			newPoints, oldPoints = reNew, reOld
			newWeight, newMean = w2, m2
			oldWeight = totalWeight - newWeight
			oldMean = combinedMean(totalWeight, totalMean, newWeight, newMean, oldWeight)
		}

		if len(newPoints)+len(oldPoints) != len(basePoints) {
			return Result{}, ErrInternal
		}

		_, _, newVariance := computeMoments(colors, weights, dataWeight, newPoints)
		oldVariance := combinedVariance(totalWeight, totalMean, totalVariance, newWeight, newMean, newVariance, oldWeight, oldMean)

		clusters[oldIndex] = &clusterState{
			weight:   oldWeight,
			mean:     oldMean,
			variance: oldVariance,
			tse:      oldWeight * sumChannels(oldVariance),
			points:   oldPoints,
		}
		clusters = append(clusters, &clusterState{
			weight:   newWeight,
			mean:     newMean,
			variance: newVariance,
			tse:      newWeight * sumChannels(newVariance),
			points:   newPoints,
		})

		best := 0
		for i := 1; i <= newIndex; i++ {
			if clusters[i].tse > clusters[best].tse {
				best = i
			}
		}
		oldIndex = best

		if newIndex == k-1 {
			break
		}
	}

	shift := uint(8 - numBits)
	palette := make([]pixel.ARGB, 0, len(clusters))
	clusterToPalette := make([]int, len(clusters))
	for i, c := range clusters {
		if c.size() == 0 {
			clusterToPalette[i] = -1
			continue
		}
		clusterToPalette[i] = len(palette)
		palette = append(palette, pixel.New(
			quantizeChannel(c.mean[0], shift),
			quantizeChannel(c.mean[1], shift),
			quantizeChannel(c.mean[2], shift),
			quantizeChannel(c.mean[3], shift),
		))
	}

	members := NewMembers(n, k)
	for ci, c := range clusters {
		pi := clusterToPalette[ci]
		if pi < 0 {
			continue
		}
		for _, p := range c.points {
			members.Set(p, pi)
		}
	}

	return Result{Palette: palette, Members: members}, nil
}

func quantizeChannel(v float64, shift uint) uint8 {
	r := math.Round(v)
	if r < 0 {
		r = 0
	}
	iv := int(r) << shift
	if iv > 255 {
		iv = 255
	}
	return uint8(iv)
}

func sumChannels(v [4]float64) float64 {
	return v[0] + v[1] + v[2] + v[3]
}

// pickAxis selects the channel with the largest variance, ties broken
// by the fixed order A < R < G < B: only a strictly greater value
// replaces the running maximum.
func pickAxis(variance [4]float64) int {
	axis := 0
	max := variance[0]
	for ch := 1; ch < 4; ch++ {
		if variance[ch] > max {
			max = variance[ch]
			axis = ch
		}
	}
	return axis
}

// initialPartition splits basePoints by the cutting hyperplane
// cutPos on axis: a point joins the new cluster when cutPos is
// strictly less than its axis component.
func initialPartition(colors []pixel.ARGB, basePoints []int, axis int, cutPos float64) (newPoints, oldPoints []int) {
	for _, p := range basePoints {
		v := float64(colors[p].Channel(axis))
		if cutPos < v {
			newPoints = append(newPoints, p)
		} else {
			oldPoints = append(oldPoints, p)
		}
	}
	return
}

// lkmReassign re-evaluates every point in basePoints against the
// linear discriminant derived from the current old/new means,
// independent of any previous iteration's assignment.
func lkmReassign(colors []pixel.ARGB, basePoints []int, oldMean, newMean [4]float64) (newPoints, oldPoints []int) {
	var lhs float64
	var rhs [4]float64
	for ch := range rhs {
		rhs[ch] = oldMean[ch] - newMean[ch]
		lhs += oldMean[ch]*oldMean[ch] - newMean[ch]*newMean[ch]
	}
	lhs *= 0.5

	for _, p := range basePoints {
		c := colors[p]
		sum := rhs[0]*float64(c.A()) + rhs[1]*float64(c.R()) + rhs[2]*float64(c.G()) + rhs[3]*float64(c.B())
		if lhs < sum {
			oldPoints = append(oldPoints, p)
		} else {
			newPoints = append(newPoints, p)
		}
	}
	return
}

// combinedMean derives the parent-minus-child mean via the standard
// weighted combined-mean identity.
func combinedMean(totalWeight float64, totalMean [4]float64, newWeight float64, newMean [4]float64, oldWeight float64) [4]float64 {
	var oldMean [4]float64
	for ch := range oldMean {
		if oldWeight <= 0 {
			oldMean[ch] = totalMean[ch]
			continue
		}
		oldMean[ch] = (totalWeight*totalMean[ch] - newWeight*newMean[ch]) / oldWeight
	}
	return oldMean
}

// combinedVariance derives the parent-minus-child variance via the
// combined second-moment identity: E[X^2]_old is recovered from the
// parent's and child's second moments, then re-centered on oldMean.
// Every channel is computed independently; none is derived by copying
// another channel's moment.
func combinedVariance(totalWeight float64, totalMean, totalVariance [4]float64, newWeight float64, newMean, newVariance [4]float64, oldWeight float64, oldMean [4]float64) [4]float64 {
	var oldVariance [4]float64
	for ch := range oldVariance {
		if oldWeight <= 0 {
			oldVariance[ch] = totalVariance[ch]
			continue
		}
		totalE2 := totalVariance[ch] + totalMean[ch]*totalMean[ch]
		newE2 := newVariance[ch] + newMean[ch]*newMean[ch]
		oldE2 := (totalE2*totalWeight - newWeight*newE2) / oldWeight
		v := oldE2 - oldMean[ch]*oldMean[ch]
		if v < 0 {
			v = 0
		}
		oldVariance[ch] = v
	}
	return oldVariance
}

// computeMoments returns the weighted total weight, mean, and
// variance of the points named by idx. When weights is nil, the
// per-point weight is the constant dataWeight, and the multiply by
// dataWeight is hoisted outside the accumulation loop to keep a fixed
// floating-point accumulation order regardless of dataWeight's value.
func computeMoments(colors []pixel.ARGB, weights []float64, dataWeight float64, idx []int) (weightSum float64, mean, variance [4]float64) {
	if len(idx) == 0 {
		return 0, mean, variance
	}

	if weights != nil {
		var wsum float64
		var wx, wx2 [4]float64
		for _, p := range idx {
			w := weights[p]
			c := colors[p]
			wsum += w
			for ch := 0; ch < 4; ch++ {
				v := float64(c.Channel(ch))
				wx[ch] += w * v
				wx2[ch] += w * v * v
			}
		}
		if wsum == 0 {
			return 0, mean, variance
		}
		for ch := 0; ch < 4; ch++ {
			mean[ch] = wx[ch] / wsum
			variance[ch] = wx2[ch]/wsum - mean[ch]*mean[ch]
		}
		return wsum, mean, variance
	}

	var xsum, x2sum [4]float64
	for _, p := range idx {
		c := colors[p]
		for ch := 0; ch < 4; ch++ {
			v := float64(c.Channel(ch))
			xsum[ch] += v
			x2sum[ch] += v * v
		}
	}
	n := float64(len(idx))
	wsum := n * dataWeight
	if wsum == 0 {
		return 0, mean, variance
	}
	for ch := 0; ch < 4; ch++ {
		mean[ch] = (xsum[ch] * dataWeight) / wsum
		variance[ch] = (x2sum[ch]*dataWeight)/wsum - mean[ch]*mean[ch]
	}
	return wsum, mean, variance
}
