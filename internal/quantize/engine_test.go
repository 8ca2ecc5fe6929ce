package quantize

import (
	"testing"

	"github.com/arlojansen/imgquant/internal/pixel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantizeSolidColorYieldsSinglePaletteEntry(t *testing.T) {
	pixels := make([]pixel.ARGB, 16)
	for i := range pixels {
		pixels[i] = pixel.New(255, 128, 128, 128)
	}
	palette, indices, err := Quantize(pixels, 4, 4, Options{Algorithm: AlgorithmDIV, K: 8})
	require.NoError(t, err)
	require.Len(t, palette, 1)
	assert.Equal(t, pixel.New(255, 128, 128, 128), palette[0])
	for i := 0; i < indices.Len(); i++ {
		assert.Equal(t, 0, indices.Get(i))
	}
}

func TestQuantizeTwoColorCheckerK2(t *testing.T) {
	pixels := []pixel.ARGB{
		pixel.New(255, 0, 0, 0),
		pixel.New(255, 255, 255, 255),
		pixel.New(255, 255, 255, 255),
		pixel.New(255, 0, 0, 0),
	}
	palette, indices, err := Quantize(pixels, 2, 2, Options{Algorithm: AlgorithmDIV, K: 2})
	require.NoError(t, err)
	require.Len(t, palette, 2)

	seen := map[pixel.ARGB]bool{palette[0]: true, palette[1]: true}
	assert.True(t, seen[pixel.New(255, 0, 0, 0)])
	assert.True(t, seen[pixel.New(255, 255, 255, 255)])
	assert.Equal(t, indices.Get(0), indices.Get(3))
	assert.Equal(t, indices.Get(1), indices.Get(2))
	assert.NotEqual(t, indices.Get(0), indices.Get(1))
}

func TestQuantizePreservesTransparencyAtSlotZero(t *testing.T) {
	pixels := []pixel.ARGB{
		pixel.New(0, 0, 0, 0),
		pixel.New(255, 10, 20, 30),
		pixel.New(255, 200, 30, 40),
		pixel.New(255, 40, 200, 30),
	}
	palette, indices, err := Quantize(pixels, 2, 2, Options{Algorithm: AlgorithmDIV, K: 4})
	require.NoError(t, err)
	// K > 2 forces the palette slot the transparent pixel maps to so
	// that it holds the transparent color. Here the first split cuts on
	// alpha and leaves the transparent pixel alone in cluster 0, so
	// that slot is 0.
	assert.Equal(t, pixel.New(0, 0, 0, 0), palette[indices.Get(0)])
	assert.Equal(t, pixel.New(0, 0, 0, 0), palette[0])
	assert.Equal(t, 0, indices.Get(0))
}

func TestQuantizeInvalidArguments(t *testing.T) {
	_, _, err := Quantize(nil, 0, 0, Options{Algorithm: AlgorithmDIV, K: 4})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	pixels := []pixel.ARGB{pixel.New(255, 0, 0, 0)}
	_, _, err = Quantize(pixels, 1, 1, Options{Algorithm: AlgorithmDIV, K: 0})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestQuantizeNEUClampsToTwoFiftySix(t *testing.T) {
	pixels := make([]pixel.ARGB, 64)
	for i := range pixels {
		pixels[i] = pixel.New(255, uint8(i*4), uint8(255-i*4), uint8(i*2))
	}
	palette, indices, err := Quantize(pixels, 8, 8, Options{Algorithm: AlgorithmNEU, K: 4096, Seed: 0})
	require.NoError(t, err)
	assert.LessOrEqual(t, len(palette), 256)
	for i := 0; i < indices.Len(); i++ {
		v := indices.Get(i)
		require.GreaterOrEqual(t, v, 0)
		require.Less(t, v, len(palette))
	}
}

func TestQuantizeNEUReproducibleWithFixedSeed(t *testing.T) {
	pixels := make([]pixel.ARGB, 256)
	for i := range pixels {
		pixels[i] = pixel.New(255, uint8(i), uint8(255-i), uint8(i*3))
	}
	opts := Options{Algorithm: AlgorithmNEU, K: 64, Seed: 0}

	p1, i1, err := Quantize(pixels, 16, 16, opts)
	require.NoError(t, err)
	p2, i2, err := Quantize(pixels, 16, 16, opts)
	require.NoError(t, err)

	require.Equal(t, len(p1), len(p2))
	for i := range p1 {
		assert.Equal(t, p1[i], p2[i])
	}
	for i := 0; i < i1.Len(); i++ {
		assert.Equal(t, i1.Get(i), i2.Get(i))
	}
}

func TestQuantizeDIVMappingMatchesBruteForceNearest(t *testing.T) {
	pixels := make([]pixel.ARGB, 512)
	for i := range pixels {
		pixels[i] = pixel.New(255, uint8(i*37), uint8(i*59), uint8(i*97))
	}
	palette, indices, err := Quantize(pixels, 32, 16, Options{Algorithm: AlgorithmDIV, K: 16})
	require.NoError(t, err)

	for i, p := range pixels {
		got := indices.Get(i)
		gotDist := p.L1Dist(palette[got])
		for j, c := range palette {
			if j == got {
				continue
			}
			assert.LessOrEqual(t, gotDist, p.L1Dist(c))
		}
	}
}
