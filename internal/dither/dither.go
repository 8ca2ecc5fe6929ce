// Package dither implements Floyd-Steinberg error diffusion as an
// external routine matching the quantize package's DitherFunc
// contract: it never touches an engine directly, only the nearest-
// color function handed to it.
package dither

import "github.com/arlojansen/imgquant/internal/pixel"

// rowError is the accumulated diffusion error carried into a pixel,
// kept in floating point so repeated small errors don't get lost to
// integer rounding.
type rowError struct {
	r, g, b float64
}

// FloydSteinberg diffuses quantization error across each row using
// the classic 7/16, 3/16, 5/16, 1/16 kernel, then maps the corrected
// color through nearest. Semi-transparent pixels and the tracked
// transparent pixel are passed through nearest without diffusion,
// since alpha isn't part of the color error being corrected here.
func FloydSteinberg(pixels []pixel.ARGB, width int, nearest func(pixel.ARGB) (int, pixel.ARGB), hasSemiTransparency bool, transparentPixelIndex int, paletteSize int) []int {
	out := make([]int, len(pixels))
	if width <= 0 || len(pixels) == 0 {
		return out
	}
	height := len(pixels) / width
	errs := make([]rowError, len(pixels))

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := y*width + x
			c := pixels[i]

			if i == transparentPixelIndex || (hasSemiTransparency && c.A() < 255) {
				idx, _ := nearest(c)
				out[i] = idx
				continue
			}

			e := errs[i]
			r := clamp(float64(c.R()) + e.r)
			g := clamp(float64(c.G()) + e.g)
			b := clamp(float64(c.B()) + e.b)
			corrected := pixel.New(c.A(), r, g, b)

			idx, chosen := nearest(corrected)
			out[i] = idx

			dr := float64(r) - float64(chosen.R())
			dg := float64(g) - float64(chosen.G())
			db := float64(b) - float64(chosen.B())
			diffuse(errs, width, height, x, y, dr, dg, db)
		}
	}
	return out
}

func clamp(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func diffuse(errs []rowError, width, height, x, y int, dr, dg, db float64) {
	add := func(xx, yy int, factor float64) {
		if xx < 0 || xx >= width || yy < 0 || yy >= height {
			return
		}
		e := &errs[yy*width+xx]
		e.r += dr * factor
		e.g += dg * factor
		e.b += db * factor
	}
	add(x+1, y, 7.0/16)
	add(x-1, y+1, 3.0/16)
	add(x, y+1, 5.0/16)
	add(x+1, y+1, 1.0/16)
}
