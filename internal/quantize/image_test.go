package quantize

import (
	"image"
	"testing"

	"github.com/arlojansen/imgquant/internal/pixel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToImageSmallPaletteProducesPaletted(t *testing.T) {
	palette := Palette{pixel.New(255, 0, 0, 0), pixel.New(255, 255, 255, 255)}
	indices := Indices{Narrow: []uint8{0, 1, 1, 0}}

	img := ToImage(palette, indices, 2, 2)
	paletted, ok := img.(*image.Paletted)
	require.True(t, ok, "expected *image.Paletted for small palette")
	assert.Equal(t, uint8(0), paletted.Pix[0])
	assert.Equal(t, uint8(1), paletted.Pix[1])
}

func TestToImageLargePaletteProducesNRGBA(t *testing.T) {
	palette := make(Palette, 300)
	for i := range palette {
		palette[i] = pixel.New(255, uint8(i%256), 0, 0)
	}
	palette[299] = pixel.New(255, 10, 20, 30)
	indices := Indices{Wide: []uint16{0, 299}}

	img := ToImage(palette, indices, 2, 1)
	nrgba, ok := img.(*image.NRGBA)
	require.True(t, ok, "expected *image.NRGBA for large palette")
	r, g, b, _ := nrgba.At(1, 0).RGBA()
	assert.Equal(t, uint32(10*257), r)
	assert.Equal(t, uint32(20*257), g)
	assert.Equal(t, uint32(30*257), b)
}
