package quantize

import (
	"github.com/arlojansen/imgquant/internal/pixel"
	"github.com/arlojansen/imgquant/internal/preview"
)

// SampleDeltaE reports the average CIE94 perceptual distance between
// source pixels and the palette color each was mapped to, feeding the
// run report's diagnostic DeltaE field. It samples at most sampleSize
// pixels on an even stride rather than the whole image, since the
// metric is informational and never consulted by MPS or Inxsearch.
func SampleDeltaE(pixels []pixel.ARGB, palette Palette, indices Indices, sampleSize int) float64 {
	n := indices.Len()
	if n == 0 || len(palette) == 0 {
		return 0
	}
	if sampleSize <= 0 || sampleSize > n {
		sampleSize = n
	}
	stride := (n + sampleSize - 1) / sampleSize
	if stride < 1 {
		stride = 1
	}

	var sum float64
	var count int
	for i := 0; i < n; i += stride {
		sum += preview.DeltaE(pixels[i], palette[indices.Get(i)])
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}
