// Package analyze computes source-image channel statistics for the
// inspect subcommand, using gonum's stat package the way
// setanarut-layerbuilder drives its numeric pipeline.
package analyze

import (
	"gonum.org/v1/gonum/stat"

	"github.com/arlojansen/imgquant/internal/pixel"
)

// ChannelStat is the mean and variance of one color channel across an
// image's pixels.
type ChannelStat struct {
	Mean     float64
	Variance float64
}

// Stats holds per-channel statistics for A, R, G, B.
type Stats struct {
	Alpha ChannelStat
	Red   ChannelStat
	Green ChannelStat
	Blue  ChannelStat
}

// ChannelStats computes per-channel mean/variance over pixels using
// stat.MeanVariance, unweighted.
func ChannelStats(pixels []pixel.ARGB) Stats {
	if len(pixels) == 0 {
		return Stats{}
	}

	a := make([]float64, len(pixels))
	r := make([]float64, len(pixels))
	g := make([]float64, len(pixels))
	b := make([]float64, len(pixels))
	for i, p := range pixels {
		a[i] = float64(p.A())
		r[i] = float64(p.R())
		g[i] = float64(p.G())
		b[i] = float64(p.B())
	}

	var s Stats
	s.Alpha.Mean, s.Alpha.Variance = stat.MeanVariance(a, nil)
	s.Red.Mean, s.Red.Variance = stat.MeanVariance(r, nil)
	s.Green.Mean, s.Green.Variance = stat.MeanVariance(g, nil)
	s.Blue.Mean, s.Blue.Variance = stat.MeanVariance(b, nil)
	return s
}

// UniqueColors counts distinct ARGB values, the "source colors"
// figure carried into the run report.
func UniqueColors(pixels []pixel.ARGB) int {
	seen := make(map[pixel.ARGB]struct{}, len(pixels))
	for _, p := range pixels {
		seen[p] = struct{}{}
	}
	return len(seen)
}
