package quantize

import "github.com/arlojansen/imgquant/internal/pixel"

// Algorithm selects the quantization engine.
type Algorithm int

const (
	AlgorithmDIV Algorithm = iota
	AlgorithmNEU
)

func (a Algorithm) String() string {
	if a == AlgorithmNEU {
		return "neu"
	}
	return "div"
}

// ParseAlgorithm accepts "div" or "neu" (case-insensitive prefix
// matching is intentionally not supported: callers pass exact CLI
// flag values).
func ParseAlgorithm(s string) (Algorithm, error) {
	switch s {
	case "div":
		return AlgorithmDIV, nil
	case "neu":
		return AlgorithmNEU, nil
	default:
		return 0, newError("parse-algorithm", ErrKindInvalidArgument, ErrInvalidArgument)
	}
}

// Palette is an ordered list of at most K ARGB entries. When the
// source image had a transparent pixel, whichever slot that pixel
// maps to is forced to hold the transparent color (slot 0 only in
// the K<=2 synthesized-palette case).
type Palette []pixel.ARGB

// Indices is a width-tagged per-pixel palette assignment: Narrow is
// populated when the requested K is at most 256, Wide otherwise, even
// if the emitted palette is smaller. Exactly one of the two is non-nil.
type Indices struct {
	Narrow []uint8
	Wide   []uint16
}

func newIndices(n, paletteSize int) Indices {
	if paletteSize <= 256 {
		return Indices{Narrow: make([]uint8, n)}
	}
	return Indices{Wide: make([]uint16, n)}
}

// Len returns the number of pixel assignments held.
func (ix Indices) Len() int {
	if ix.Narrow != nil {
		return len(ix.Narrow)
	}
	return len(ix.Wide)
}

// Get returns the palette index assigned to pixel i.
func (ix Indices) Get(i int) int {
	if ix.Narrow != nil {
		return int(ix.Narrow[i])
	}
	return int(ix.Wide[i])
}

func (ix Indices) set(i, v int) {
	if ix.Narrow != nil {
		ix.Narrow[i] = uint8(v)
		return
	}
	ix.Wide[i] = uint16(v)
}

// transparency is the per-invocation scratch the façade populates
// while scanning the source pixels and consults again while emitting
// the palette and mapping pixels.
type transparency struct {
	hasSemiTransparency   bool
	transparentPixelIndex int
	transparentColor      pixel.ARGB
}

func scanTransparency(pixels []pixel.ARGB) transparency {
	t := transparency{transparentPixelIndex: -1}
	for i, p := range pixels {
		if a := p.A(); a < 255 {
			t.hasSemiTransparency = true
			if a == 0 && t.transparentPixelIndex < 0 {
				t.transparentPixelIndex = i
				t.transparentColor = p
			}
		}
	}
	return t
}
