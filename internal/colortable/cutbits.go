package colortable

import "github.com/arlojansen/imgquant/internal/pixel"

// CutBits right-shifts each channel independently by 8-numBitsX,
// coarsening color precision before dedup. Any numBitsX outside
// [1,8] makes the whole call a silent no-op; this is intentionally
// not an error return.
func CutBits(pixels []pixel.ARGB, numBitsA, numBitsR, numBitsG, numBitsB int) {
	if !inRange(numBitsA) || !inRange(numBitsR) || !inRange(numBitsG) || !inRange(numBitsB) {
		return
	}
	sa := 8 - numBitsA
	sr := 8 - numBitsR
	sg := 8 - numBitsG
	sb := 8 - numBitsB
	for i, c := range pixels {
		pixels[i] = pixel.New(
			c.A()>>sa,
			c.R()>>sr,
			c.G()>>sg,
			c.B()>>sb,
		)
	}
}

func inRange(n int) bool {
	return n >= 1 && n <= 8
}
