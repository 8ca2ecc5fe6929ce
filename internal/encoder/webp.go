package encoder

import (
	"bytes"
	"image"

	nativewebp "github.com/HugoSmits86/nativewebp"
)

// WebPEncoder encodes images to WebP using a pure-Go in-process
// encoder rather than shelling out to cwebp. Quantized output is
// exactly the case lossless WebP suits: a handful of palette colors
// compress well without a lossy quality knob, so quality is accepted
// for interface symmetry but unused.
type WebPEncoder struct{}

func (e *WebPEncoder) Format() string    { return "webp" }
func (e *WebPEncoder) Extension() string { return "webp" }
func (e *WebPEncoder) Available() bool   { return true }

func (e *WebPEncoder) Encode(img image.Image, _ int) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(256 * 1024)
	if err := nativewebp.Encode(&buf, img, nil); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
