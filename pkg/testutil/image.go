package testutil

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
)

// PNGImage renders a small deterministic test image. Different seeds give
// perceptually different content.
func PNGImage(t mockTB, seed uint8) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			v := uint8(x * 4)
			if (x/8+y/8+int(seed))%2 == 0 {
				v = 255 - v
			}
			img.Set(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}

	return buf.Bytes()
}
