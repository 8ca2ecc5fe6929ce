// Package preview provides fast, approximate diagnostics that never
// feed into DIV or NEU: a dominant-color swatch, a suggested K, and a
// perceptual distance metric for the run report. All three exist so a
// user can sanity-check a run before or after committing to a
// potentially slow NEU pass.
package preview

import (
	"image"
	"image/color"

	"github.com/cenkalti/dominantcolor"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"

	"github.com/arlojansen/imgquant/internal/pixel"
)

// DominantColors wraps dominantcolor.FindWeight to print a quick
// swatch preview of the n most visually dominant colors in pixels,
// without running DIV or NEU.
func DominantColors(pixels []pixel.ARGB, width, height, n int) []color.RGBA {
	if n <= 0 || len(pixels) == 0 {
		return nil
	}
	img := toNRGBA(pixels, width, height)
	found := dominantcolor.FindWeight(img, n)
	out := make([]color.RGBA, 0, len(found))
	for _, c := range found {
		out = append(out, c.RGBA)
	}
	return out
}

// SuggestK runs a coarse, fast k-means clustering over pixels sampled
// on an even stride (fully transparent ones skipped) in CIE Lab space
// and returns a suggested palette
// size. It is a heuristic preview only: it never feeds into DIV or
// NEU, which pick their own working colors independently.
func SuggestK(pixels []pixel.ARGB, sampleSize int) int {
	if len(pixels) == 0 {
		return 0
	}
	if sampleSize <= 0 || sampleSize > len(pixels) {
		sampleSize = len(pixels)
	}
	stride := len(pixels) / sampleSize
	if stride < 1 {
		stride = 1
	}

	dataset := make(clusters.Observations, 0, sampleSize)
	for i := 0; i < len(pixels); i += stride {
		p := pixels[i]
		if p.A() == 0 {
			continue
		}
		col := colorful.Color{R: float64(p.R()) / 255, G: float64(p.G()) / 255, B: float64(p.B()) / 255}
		l, a, b := col.Lab()
		dataset = append(dataset, clusters.Coordinates{l, a, b})
	}
	if len(dataset) == 0 {
		return 0
	}

	best := 2
	bestScore := -1.0
	km := kmeans.New()
	for k := 2; k <= 24 && k <= len(dataset); k++ {
		cc, err := km.Partition(dataset, k)
		if err != nil {
			continue
		}
		score := silhouetteApprox(cc)
		if score > bestScore {
			bestScore = score
			best = k
		}
	}
	return best
}

// silhouetteApprox is a cheap stand-in for a full silhouette score:
// it rewards clusterings whose members sit close to their own
// center relative to the spread between all centers, without the
// O(n^2) pairwise distance cost of the textbook metric.
func silhouetteApprox(cc clusters.Clusters) float64 {
	if len(cc) < 2 {
		return 0
	}
	var withinSum, betweenSum float64
	var withinCount, betweenCount int
	for i, c := range cc {
		for _, obs := range c.Observations {
			withinSum += obs.Distance(c.Center)
			withinCount++
		}
		for j := i + 1; j < len(cc); j++ {
			betweenSum += c.Center.Distance(cc[j].Center)
			betweenCount++
		}
	}
	if withinCount == 0 || betweenCount == 0 {
		return 0
	}
	avgWithin := withinSum / float64(withinCount)
	avgBetween := betweenSum / float64(betweenCount)
	if avgBetween == 0 {
		return 0
	}
	return avgBetween - avgWithin
}

// DeltaE reports the CIE94 perceptual distance between two colors,
// purely diagnostic: MPS and Inxsearch stay in L1-over-ARGB space and
// never consult this metric.
func DeltaE(a, b pixel.ARGB) float64 {
	ca := colorful.Color{R: float64(a.R()) / 255, G: float64(a.G()) / 255, B: float64(a.B()) / 255}
	cb := colorful.Color{R: float64(b.R()) / 255, G: float64(b.G()) / 255, B: float64(b.B()) / 255}
	return ca.DistanceCIE94(cb)
}

func toNRGBA(pixels []pixel.ARGB, width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			p := pixels[y*width+x]
			img.SetNRGBA(x, y, color.NRGBA{R: p.R(), G: p.G(), B: p.B(), A: p.A()})
		}
	}
	return img
}
