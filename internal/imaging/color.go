package imaging

import (
	"math"

	"github.com/disintegration/imaging"
)

// maskStrength is the fraction of the tint applied to a fully opaque pixel.
const maskStrength = 0.5

// ColorMask blends a flat RGB tint into every pixel, weighted by the pixel's
// own alpha.
//
// For a pixel with alpha a, each color channel becomes
//
//	tint·(a/255)·0.5 + src·(1 − (a/255)·0.5)
//
// rounded to the nearest integer. Alpha is unchanged, so fully transparent
// pixels keep their color and an opaque pixel moves halfway toward the tint.
func ColorMask(img Image, r, g, b uint8) (Image, error) {
	src, err := decodeFor("color_mask", img)
	if err != nil {
		return Image{}, err
	}
	dst := imaging.Clone(src)
	tint := [3]float64{float64(r), float64(g), float64(b)}

	for i := 0; i+3 < len(dst.Pix); i += 4 {
		weight := float64(dst.Pix[i+3]) / 255 * maskStrength
		for c := 0; c < 3; c++ {
			v := tint[c]*weight + float64(dst.Pix[i+c])*(1-weight)
			dst.Pix[i+c] = uint8(clamp(math.Round(v), 0, 255))
		}
	}
	return encodeResult("color_mask", dst)
}
