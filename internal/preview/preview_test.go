package preview

import (
	"testing"

	"github.com/arlojansen/imgquant/internal/pixel"
)

func checkerboard(w, h int) []pixel.ARGB {
	pixels := make([]pixel.ARGB, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x+y)%2 == 0 {
				pixels[y*w+x] = pixel.New(255, 0, 0, 0)
			} else {
				pixels[y*w+x] = pixel.New(255, 255, 255, 255)
			}
		}
	}
	return pixels
}

func TestDominantColorsReturnsAtMostRequestedCount(t *testing.T) {
	pixels := checkerboard(8, 8)
	colors := DominantColors(pixels, 8, 8, 2)
	if len(colors) == 0 {
		t.Fatal("expected at least one dominant color")
	}
	if len(colors) > 2 {
		t.Errorf("expected at most 2 colors, got %d", len(colors))
	}
}

func TestDominantColorsEmptyInput(t *testing.T) {
	if colors := DominantColors(nil, 0, 0, 4); colors != nil {
		t.Errorf("expected nil for empty input, got %v", colors)
	}
}

func TestSuggestKMonochrome(t *testing.T) {
	pixels := make([]pixel.ARGB, 64)
	for i := range pixels {
		pixels[i] = pixel.New(255, 100, 100, 100)
	}
	k := SuggestK(pixels, 64)
	if k < 2 {
		t.Errorf("expected suggested K >= 2, got %d", k)
	}
}

func TestSuggestKEmpty(t *testing.T) {
	if k := SuggestK(nil, 10); k != 0 {
		t.Errorf("expected 0 for empty input, got %d", k)
	}
}

func TestDeltaEIdenticalColorsIsZero(t *testing.T) {
	c := pixel.New(255, 128, 64, 32)
	if d := DeltaE(c, c); d != 0 {
		t.Errorf("expected 0 for identical colors, got %v", d)
	}
}

func TestDeltaEDistinctColorsIsPositive(t *testing.T) {
	a := pixel.New(255, 0, 0, 0)
	b := pixel.New(255, 255, 255, 255)
	if d := DeltaE(a, b); d <= 0 {
		t.Errorf("expected positive delta-E for distinct colors, got %v", d)
	}
}
