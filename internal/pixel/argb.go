// Package pixel defines the 32-bit ARGB color model shared by every
// engine in imgquant, plus the distance and hashing helpers both the
// DIV and NEU quantizers build on.
package pixel

// ARGB packs alpha, red, green, and blue channels into a single
// 32-bit value, alpha in the high byte.
type ARGB uint32

// New assembles an ARGB value from its four 8-bit channels.
func New(a, r, g, b uint8) ARGB {
	return ARGB(a)<<24 | ARGB(r)<<16 | ARGB(g)<<8 | ARGB(b)
}

func (c ARGB) A() uint8 { return uint8(c >> 24) }
func (c ARGB) R() uint8 { return uint8(c >> 16) }
func (c ARGB) G() uint8 { return uint8(c >> 8) }
func (c ARGB) B() uint8 { return uint8(c) }

// Sum is a + r + g + b, the key the Modified Pixel Search sorts and
// prunes on.
func (c ARGB) Sum() int {
	return int(c.A()) + int(c.R()) + int(c.G()) + int(c.B())
}

// SqDist returns the squared Euclidean distance across all four
// channels. DIV's variance and TSE bookkeeping compute their own
// weighted moments and do not call it.
func (c ARGB) SqDist(o ARGB) int {
	da := int(c.A()) - int(o.A())
	dr := int(c.R()) - int(o.R())
	dg := int(c.G()) - int(o.G())
	db := int(c.B()) - int(o.B())
	return da*da + dr*dr + dg*dg + db*db
}

// L1Dist returns the sum of absolute per-channel differences, the
// distance metric both MPS and NEU's Contest/Inxsearch use.
func (c ARGB) L1Dist(o ARGB) int {
	return absInt(int(c.A())-int(o.A())) +
		absInt(int(c.R())-int(o.R())) +
		absInt(int(c.G())-int(o.G())) +
		absInt(int(c.B())-int(o.B()))
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Index folds the pixel into a hash key. When alpha participates
// (semi-transparency present, or a transparent pixel is tracked
// elsewhere in the image) the full 32-bit value is used; otherwise
// alpha is masked out so fully-opaque pixels that only differ in a
// don't-care alpha byte collide.
func (c ARGB) Index(foldAlpha bool) uint64 {
	if foldAlpha {
		return uint64(c)
	}
	return uint64(c & 0x00FFFFFF)
}

// CutBits right-shifts (then re-expands to the emission scale by the
// caller) is not performed here — see colortable.CutBits, which
// operates on slices in place. Channel exposes the four channels as
// an indexable array for code that needs to iterate axes generically
// (DIV's cutting-axis selection).
func (c ARGB) Channel(i int) uint8 {
	switch i {
	case 0:
		return c.A()
	case 1:
		return c.R()
	case 2:
		return c.G()
	default:
		return c.B()
	}
}

// Axis identifies one of the four ARGB channels, in the tie-break
// order (A < R < G < B) DIV's cutting-axis selection uses.
type Axis int

const (
	AxisA Axis = iota
	AxisR
	AxisG
	AxisB
)

func (a Axis) String() string {
	switch a {
	case AxisA:
		return "A"
	case AxisR:
		return "R"
	case AxisG:
		return "G"
	default:
		return "B"
	}
}
