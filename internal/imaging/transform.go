package imaging

import (
	"image/color"

	"github.com/disintegration/imaging"
)

// Resize scales the image to exactly width×height with a Lanczos filter,
// ignoring the source aspect ratio.
func Resize(img Image, width, height int) (Image, error) {
	if width <= 0 || height <= 0 {
		return Image{}, newErr("resize", ErrInput, "target size %dx%d must be positive", width, height)
	}
	src, err := decodeFor("resize", img)
	if err != nil {
		return Image{}, err
	}
	return encodeResult("resize", imaging.Resize(src, width, height, imaging.Lanczos))
}

// Rotate turns the image about its centre by degrees, clockwise for positive
// values, with bilinear sampling.
//
// The output keeps the source dimensions: corners that rotate out of the
// canvas are clipped and uncovered pixels are fully transparent.
func Rotate(img Image, degrees float64) (Image, error) {
	src, err := decodeFor("rotate", img)
	if err != nil {
		return Image{}, err
	}
	b := src.Bounds()

	// imaging rotates counter-clockwise onto an enlarged canvas.
	rotated := imaging.Rotate(src, -degrees, color.Transparent)
	canvas := imaging.New(b.Dx(), b.Dy(), color.NRGBA{})
	return encodeResult("rotate", imaging.PasteCenter(canvas, rotated))
}

// Flip mirrors the image along the axis selected by mode.
func Flip(img Image, mode FlipMode) (Image, error) {
	src, err := decodeFor("flip", img)
	if err != nil {
		return Image{}, err
	}
	switch mode {
	case FlipHorizontal:
		return encodeResult("flip", imaging.FlipH(src))
	case FlipVertical:
		return encodeResult("flip", imaging.FlipV(src))
	default:
		return Image{}, newErr("flip", ErrInput, "unknown flip mode %d", int(mode))
	}
}

// Grayscale replaces each pixel's color with its BT.601 luma
// (0.299R + 0.587G + 0.114B), keeping alpha.
func Grayscale(img Image) (Image, error) {
	src, err := decodeFor("grayscale", img)
	if err != nil {
		return Image{}, err
	}
	return encodeResult("grayscale", imaging.Grayscale(src))
}

// Invert replaces each color channel c with 255-c, keeping alpha.
func Invert(img Image) (Image, error) {
	src, err := decodeFor("invert", img)
	if err != nil {
		return Image{}, err
	}
	return encodeResult("invert", imaging.Invert(src))
}
