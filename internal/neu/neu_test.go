package neu

import (
	"math/rand"
	"testing"

	"github.com/arlojansen/imgquant/internal/pixel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNetworkFrequenciesSumToInitializedShare(t *testing.T) {
	n := NewNetwork(1.0)
	var sum float64
	for i := 0; i < netSize; i++ {
		sum += n.freq[i]
	}
	assert.InDelta(t, float64(netSize-specials)/netSize, sum, 1e-9)
}

func TestLearnInvalidArguments(t *testing.T) {
	n := NewNetwork(1.0)
	assert.ErrorIs(t, n.Learn(nil, 1), ErrInvalidArgument)
	assert.ErrorIs(t, n.Learn([]pixel.ARGB{pixel.New(255, 0, 0, 0)}, 0), ErrInvalidArgument)
}

func TestLearnRunsOverSmallSample(t *testing.T) {
	rng := rand.New(rand.NewSource(0))
	pixels := make([]pixel.ARGB, 200)
	for i := range pixels {
		pixels[i] = pixel.New(255, uint8(rng.Intn(256)), uint8(rng.Intn(256)), uint8(rng.Intn(256)))
	}
	n := NewNetwork(1.0)
	require.NoError(t, n.Learn(pixels, 1))
}

func TestInxbuildPaletteSortedByGreen(t *testing.T) {
	n := NewNetwork(1.0)
	idx := Inxbuild(n, 256, -1, 0, rand.New(rand.NewSource(1)))
	palette := idx.Palette()
	for i := 1; i < len(palette); i++ {
		assert.LessOrEqual(t, palette[i-1].G(), palette[i].G())
	}
}

func TestInxbuildReservesTransparentSlot(t *testing.T) {
	n := NewNetwork(1.0)
	transparent := pixel.New(0, 1, 2, 3)
	idx := Inxbuild(n, 256, 0, transparent, rand.New(rand.NewSource(1)))
	assert.Equal(t, transparent, idx.Palette()[0])
}

func TestInxbuildClampsMaxColors(t *testing.T) {
	n := NewNetwork(1.0)
	idx := Inxbuild(n, 4096, -1, 0, rand.New(rand.NewSource(1)))
	assert.Equal(t, netSize, idx.MaxColors())
}

func TestSearchExactMatchIsDeterministic(t *testing.T) {
	idx := &Index{
		palette:   []pixel.ARGB{pixel.New(255, 0, 0, 0), pixel.New(255, 10, 10, 10)},
		maxColors: 2,
		rng:       rand.New(rand.NewSource(1)),
		memo:      make(map[pixel.ARGB]closestPair),
	}
	c := pixel.New(255, 0, 0, 0)
	for i := 0; i < 10; i++ {
		assert.Equal(t, 0, idx.Search(c))
	}
}

func TestSearchOnlyEverReturnsATrueCandidate(t *testing.T) {
	rng := rand.New(rand.NewSource(0))
	palette := make([]pixel.ARGB, 8)
	for i := range palette {
		palette[i] = pixel.New(255, uint8(rng.Intn(256)), uint8(rng.Intn(256)), uint8(rng.Intn(256)))
	}
	idx := &Index{
		palette:   palette,
		maxColors: len(palette),
		rng:       rand.New(rand.NewSource(2)),
		memo:      make(map[pixel.ARGB]closestPair),
	}
	for i := 0; i < 256; i++ {
		c := pixel.New(255, uint8(rng.Intn(256)), uint8(rng.Intn(256)), uint8(rng.Intn(256)))
		got := idx.Search(c)
		require.GreaterOrEqual(t, got, 0)
		require.Less(t, got, len(palette))
	}
}
