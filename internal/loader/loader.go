// Package loader decodes a source image into the flat ARGB pixel
// buffer the quantize engines operate on.
package loader

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/arlojansen/imgquant/internal/pixel"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Image is a decoded source: its pixels in row-major order plus
// dimensions and a cheap alpha-presence flag.
type Image struct {
	Pixels   []pixel.ARGB
	Width    int
	Height   int
	HasAlpha bool
	Format   string
}

// Load decodes r and flattens it into row-major ARGB pixels.
func Load(r io.Reader) (Image, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return Image{}, fmt.Errorf("loader: decode: %w", err)
	}
	return FromImage(img, format), nil
}

// FromImage flattens an already-decoded image.Image into ARGB pixels.
func FromImage(img image.Image, format string) Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pixels := make([]pixel.ARGB, w*h)

	hasAlpha := false
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if c.A < 255 {
				hasAlpha = true
			}
			pixels[i] = pixel.New(c.A, c.R, c.G, c.B)
			i++
		}
	}

	return Image{Pixels: pixels, Width: w, Height: h, HasAlpha: hasAlpha, Format: format}
}
