package analyze

import (
	"math"
	"testing"

	"github.com/arlojansen/imgquant/internal/pixel"
)

func TestChannelStatsConstantImage(t *testing.T) {
	pixels := make([]pixel.ARGB, 100)
	for i := range pixels {
		pixels[i] = pixel.New(255, 10, 20, 30)
	}
	s := ChannelStats(pixels)
	if s.Red.Mean != 10 || s.Green.Mean != 20 || s.Blue.Mean != 30 {
		t.Errorf("mean: got %+v", s)
	}
	if s.Red.Variance != 0 || s.Green.Variance != 0 || s.Blue.Variance != 0 {
		t.Errorf("expected zero variance for constant image, got %+v", s)
	}
}

func TestChannelStatsVariedImage(t *testing.T) {
	pixels := []pixel.ARGB{
		pixel.New(255, 0, 0, 0),
		pixel.New(255, 255, 255, 255),
	}
	s := ChannelStats(pixels)
	if math.Abs(s.Red.Mean-127.5) > 1e-9 {
		t.Errorf("red mean: got %v", s.Red.Mean)
	}
	if s.Red.Variance <= 0 {
		t.Errorf("expected positive variance, got %v", s.Red.Variance)
	}
}

func TestChannelStatsEmpty(t *testing.T) {
	s := ChannelStats(nil)
	if s != (Stats{}) {
		t.Errorf("expected zero-value Stats for empty input, got %+v", s)
	}
}

func TestUniqueColors(t *testing.T) {
	pixels := []pixel.ARGB{
		pixel.New(255, 0, 0, 0),
		pixel.New(255, 0, 0, 0),
		pixel.New(255, 1, 1, 1),
	}
	if got := UniqueColors(pixels); got != 2 {
		t.Errorf("unique colors: got %d, want 2", got)
	}
}
