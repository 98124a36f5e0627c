package imaging

import (
	"image"

	"github.com/disintegration/imaging"
)

// Crop extracts the rectangle of size width×height whose top-left corner is
// (left, top). Pixels are copied verbatim and the result is encoded as PNG.
//
// Returns an ErrBounds error if the rectangle is empty or extends past the
// source dimensions.
func Crop(img Image, left, top, width, height int) (Image, error) {
	src, err := decodeFor("crop", img)
	if err != nil {
		return Image{}, err
	}
	w, h := src.Bounds().Dx(), src.Bounds().Dy()

	if width <= 0 || height <= 0 {
		return Image{}, newErr("crop", ErrBounds, "crop size %dx%d must be positive", width, height)
	}
	if left < 0 || top < 0 || left+width > w || top+height > h {
		return Image{}, newErr("crop", ErrBounds, "crop region (%d,%d) %dx%d outside image bounds %dx%d",
			left, top, width, height, w, h)
	}

	cropped := imaging.Crop(src, image.Rect(left, top, left+width, top+height))
	return encodeResult("crop", cropped)
}

// CropRegion crops a named region of the image: one of the four quadrants
// ("top-left", "top-right", "bottom-left", "bottom-right"), a half ("top-half",
// "bottom-half", "left-half", "right-half") or "center", the middle 50%.
func CropRegion(img Image, region string) (Image, error) {
	dims, err := Dimensions(img)
	if err != nil {
		return Image{}, err
	}
	w, h := dims.Width, dims.Height
	midX, midY := w/2, h/2

	var x1, y1, x2, y2 int
	switch region {
	case "top-left":
		x1, y1, x2, y2 = 0, 0, midX, midY
	case "top-right":
		x1, y1, x2, y2 = midX, 0, w, midY
	case "bottom-left":
		x1, y1, x2, y2 = 0, midY, midX, h
	case "bottom-right":
		x1, y1, x2, y2 = midX, midY, w, h
	case "top-half":
		x1, y1, x2, y2 = 0, 0, w, midY
	case "bottom-half":
		x1, y1, x2, y2 = 0, midY, w, h
	case "left-half":
		x1, y1, x2, y2 = 0, 0, midX, h
	case "right-half":
		x1, y1, x2, y2 = midX, 0, w, h
	case "center":
		qW, qH := w/4, h/4
		x1, y1, x2, y2 = qW, qH, w-qW, h-qH
	default:
		return Image{}, newErr("crop_region", ErrInput, "unknown region: %s", region)
	}

	return Crop(img, x1, y1, x2-x1, y2-y1)
}
