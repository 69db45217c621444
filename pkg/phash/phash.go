// Package phash computes a 64-bit difference hash of an image. Bit-identical
// and near-identical images map to the same fingerprint, which is what the
// proof duplicate check needs.
package phash

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/nfnt/resize"
)

// Func is the perceptual hash contract consumed by the proof guard. The
// fingerprint must be deterministic for the same payload.
type Func func(data []byte) (string, error)

// DHash downsamples the image to a 9x8 grayscale grid and records whether each
// pixel is brighter than its right neighbor, giving 64 gradient bits.
func DHash(data []byte) (string, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("cannot decode image: %w", err)
	}

	small := resize.Resize(9, 8, img, resize.Bilinear)

	var hash uint64
	bounds := small.Bounds()
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			left := gray(small.At(bounds.Min.X+x, bounds.Min.Y+y))
			right := gray(small.At(bounds.Min.X+x+1, bounds.Min.Y+y))

			hash <<= 1
			if left > right {
				hash |= 1
			}
		}
	}

	return fmt.Sprintf("%016x", hash), nil
}

func gray(c interface{ RGBA() (r, g, b, a uint32) }) uint32 {
	r, g, b, _ := c.RGBA()
	// Standard luma weights.
	return (299*r + 587*g + 114*b) / 1000
}
