package quantize

import (
	"image"
	"image/color"
)

// ToImage materializes a Palette/Indices pair as a standard library
// image.Image ready for an Encoder. Palettes of 256 or fewer colors
// produce an image.Paletted so PNG encoding stays genuinely indexed;
// larger palettes (DIV can exceed 256, NEU cannot) fall back to
// image.NRGBA since image.Paletted's index byte can't hold them.
func ToImage(palette Palette, indices Indices, width, height int) image.Image {
	if len(palette) <= 256 {
		colorPalette := make(color.Palette, len(palette))
		for i, c := range palette {
			colorPalette[i] = color.NRGBA{R: c.R(), G: c.G(), B: c.B(), A: c.A()}
		}
		img := image.NewPaletted(image.Rect(0, 0, width, height), colorPalette)
		for i := 0; i < indices.Len(); i++ {
			img.Pix[i] = uint8(indices.Get(i))
		}
		return img
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < indices.Len(); i++ {
		c := palette[indices.Get(i)]
		img.SetNRGBA(i%width, i/width, color.NRGBA{R: c.R(), G: c.G(), B: c.B(), A: c.A()})
	}
	return img
}
