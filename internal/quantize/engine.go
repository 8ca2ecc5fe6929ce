// Package quantize is the façade that owns one quantization
// invocation end to end: transparency scratch, engine routing between
// DIV and NEU, nearest-color mapping or dithering, and the final
// transparent-slot fixup.
package quantize

import (
	"math/rand"

	"github.com/arlojansen/imgquant/internal/colortable"
	"github.com/arlojansen/imgquant/internal/div"
	"github.com/arlojansen/imgquant/internal/neu"
	"github.com/arlojansen/imgquant/internal/pixel"
)

// NearestFn maps a color to a palette index and the palette color at
// that index. It is handed to an external dither routine so dithering
// never needs to know which engine produced the palette, while still
// having the chosen color available to compute diffusion error. This
// is a type alias, not a defined type, so an external dither package
// can implement it against the plain function signature without
// importing this package.
type NearestFn = func(pixel.ARGB) (int, pixel.ARGB)

// DitherFunc is supplied by the caller; imgquant's core never
// performs error diffusion itself.
type DitherFunc func(pixels []pixel.ARGB, width int, nearest NearestFn, hasSemiTransparency bool, transparentPixelIndex int, paletteSize int) []int

// Options configures one Quantize call.
type Options struct {
	Algorithm Algorithm
	K         int
	Dither    bool
	DitherFn  DitherFunc
	Seed      int64

	NumBits   int // DIV output precision per channel, 1..8; 0 means 8.
	DecFactor int // DIV subsampling stride; 0 means 1.
	MaxIters  int // DIV local K-means iterations; 0 disables it.
}

func (o Options) numBits() int {
	if o.NumBits == 0 {
		return 8
	}
	return o.NumBits
}

func (o Options) decFactor() int {
	if o.DecFactor == 0 {
		return 1
	}
	return o.DecFactor
}

// Quantize reduces pixels (width*height ARGB values, row-major) to a
// palette of at most K colors and a matching per-pixel index array.
func Quantize(pixels []pixel.ARGB, width, height int, opts Options) (Palette, Indices, error) {
	if len(pixels) == 0 || width <= 0 || height <= 0 || len(pixels) != width*height {
		return nil, Indices{}, newError("quantize", ErrKindInvalidArgument, ErrInvalidArgument)
	}
	if opts.K < 1 {
		return nil, Indices{}, newError("quantize", ErrKindInvalidArgument, ErrInvalidArgument)
	}

	t := scanTransparency(pixels)

	var palette Palette
	var indices Indices
	var err error

	switch opts.Algorithm {
	case AlgorithmNEU:
		palette, indices, err = quantizeNEU(pixels, width, opts, t)
	default:
		palette, indices, err = quantizeDIV(pixels, width, height, opts, t)
	}
	if err != nil {
		return nil, Indices{}, err
	}

	applyTransparencyFixup(palette, indices, opts, t)
	return palette, indices, nil
}

func applyTransparencyFixup(palette Palette, indices Indices, opts Options, t transparency) {
	if t.transparentPixelIndex < 0 {
		return
	}
	if opts.K > 2 {
		slot := indices.Get(t.transparentPixelIndex)
		palette[slot] = t.transparentColor
		return
	}
	if palette[0] != t.transparentColor {
		palette[0], palette[1] = palette[1], palette[0]
		for i := 0; i < indices.Len(); i++ {
			switch indices.Get(i) {
			case 0:
				indices.set(i, 1)
			case 1:
				indices.set(i, 0)
			}
		}
	}
}

func mapPixels(pixels []pixel.ARGB, width int, opts Options, t transparency, paletteSize int, nearest NearestFn) Indices {
	indices := newIndices(len(pixels), opts.K)
	if opts.Dither && opts.DitherFn != nil {
		out := opts.DitherFn(pixels, width, nearest, t.hasSemiTransparency, t.transparentPixelIndex, paletteSize)
		for i, v := range out {
			indices.set(i, v)
		}
		return indices
	}
	for i, p := range pixels {
		idx, _ := nearest(p)
		indices.set(i, idx)
	}
	return indices
}

func quantizeDIV(pixels []pixel.ARGB, width, height int, opts Options, t transparency) (Palette, Indices, error) {
	if opts.K <= 2 {
		var palette Palette
		if t.transparentPixelIndex >= 0 {
			palette = Palette{t.transparentColor, pixel.New(255, 0, 0, 0)}
		} else {
			palette = Palette{pixel.New(255, 0, 0, 0), pixel.New(255, 255, 255, 255)}
		}
		mps := div.NewMPS(palette)
		nearest := func(c pixel.ARGB) (int, pixel.ARGB) {
			idx, _ := mps.Nearest(c)
			return idx, palette[idx]
		}
		return palette, mapPixels(pixels, width, opts, t, len(palette), nearest), nil
	}

	numBits := opts.numBits()
	decFactor := opts.decFactor()
	foldAlpha := t.hasSemiTransparency || t.transparentPixelIndex >= 0

	colors, weights, dataWeight, err := divInput(pixels, width, height, numBits, decFactor, foldAlpha)
	if err != nil {
		return nil, Indices{}, newError("quantize-div", ErrKindInvalidArgument, err)
	}

	res, err := div.Cluster(colors, weights, dataWeight, numBits, opts.MaxIters, opts.K)
	if err != nil {
		return nil, Indices{}, newError("quantize-div", classifyDIVErr(err), err)
	}

	palette := Palette(res.Palette)
	mps := div.NewMPS(res.Palette)
	nearest := func(c pixel.ARGB) (int, pixel.ARGB) {
		idx, _ := mps.Nearest(c)
		return idx, palette[idx]
	}
	indices := mapPixels(pixels, width, opts, t, len(palette), nearest)
	return palette, indices, nil
}

// divInput implements the pipeline branching that decides whether
// DIV clusters raw pixels with uniform weighting, a deduplicated
// table at full precision, or a deduplicated table after coarsening
// channel precision first.
func divInput(pixels []pixel.ARGB, width, height, numBits, decFactor int, foldAlpha bool) ([]pixel.ARGB, []float64, float64, error) {
	table, err := colortable.CalcColorTable(pixels, height, width, decFactor, foldAlpha)
	if err != nil {
		return nil, nil, 0, err
	}
	allUnique := decFactor == 1 && len(table.Colors) == len(pixels)

	switch {
	case allUnique && numBits == 8 && decFactor == 1:
		return pixels, nil, 1.0 / float64(len(pixels)), nil
	case numBits == 8:
		colortable.NormalizeSum(table.Weights)
		return table.Colors, table.Weights, 0, nil
	default:
		cut := make([]pixel.ARGB, len(pixels))
		copy(cut, pixels)
		colortable.CutBits(cut, numBits, numBits, numBits, numBits)
		table2, err := colortable.CalcColorTable(cut, height, width, decFactor, foldAlpha)
		if err != nil {
			return nil, nil, 0, err
		}
		colortable.NormalizeSum(table2.Weights)
		return table2.Colors, table2.Weights, 0, nil
	}
}

func classifyDIVErr(err error) ErrKind {
	if err == div.ErrInternal {
		return ErrKindInternal
	}
	return ErrKindInvalidArgument
}

func quantizeNEU(pixels []pixel.ARGB, width int, opts Options, t transparency) (Palette, Indices, error) {
	k := opts.K
	if k > 256 {
		k = 256
	}

	sampleFac := 1
	if opts.Dither {
		sampleFac = 5
	}

	network := neu.NewNetwork(1.0)
	if err := network.Learn(pixels, sampleFac); err != nil {
		return nil, Indices{}, newError("quantize-neu", ErrKindInvalidArgument, err)
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	index := neu.Inxbuild(network, k, t.transparentPixelIndex, t.transparentColor, rng)

	palette := Palette(index.Palette())
	nearest := func(c pixel.ARGB) (int, pixel.ARGB) {
		idx := index.Search(c)
		return idx, palette[idx]
	}
	indices := mapPixels(pixels, width, opts, t, len(palette), nearest)
	return palette, indices, nil
}
