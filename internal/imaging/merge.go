package imaging

import (
	"image"
	"image/color"
	"time"

	"github.com/anthonynsimon/bild/transform"
	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
	xdraw "golang.org/x/image/draw"
)

// DefaultFrameDelay is used by MergeGIF when no positive delay is given.
const DefaultFrameDelay = 20 * time.Millisecond

// Merge concatenates images into a single PNG.
//
// MergeHorizontal scales every image to the smallest height in the list,
// keeping its aspect ratio (the new width is truncated), and lays them out
// left to right. MergeVertical stretches every image to the largest width in
// the list without touching its height, and stacks them top to bottom.
// Resampling uses a linear filter; images already at their target size are
// copied as-is. Transparent regions of the canvas stay transparent.
//
// Decoding and resizing run in parallel, see WithWorkers.
//
// # Errors
//
//   - ErrInput if images is empty
//   - ErrDecode if any image cannot be decoded
func Merge(images []Image, mode MergeMode, opts ...Option) (Image, error) {
	if len(images) == 0 {
		return Image{}, newErr("merge", ErrInput, "no images to merge")
	}
	if mode != MergeHorizontal && mode != MergeVertical {
		return Image{}, newErr("merge", ErrInput, "unknown merge mode %d", int(mode))
	}
	o := buildOptions(opts)

	decoded, err := parallelMap(images, o.workers, func(_ int, img Image) (*image.NRGBA, error) {
		return decodeFor("merge", img)
	})
	if err != nil {
		return Image{}, err
	}

	sizes := mergeSizes(decoded, mode)
	scaled, err := parallelMap(decoded, o.workers, func(i int, src *image.NRGBA) (*image.NRGBA, error) {
		return scaleLinear(src, sizes[i]), nil
	})
	if err != nil {
		return Image{}, err
	}

	var canvasW, canvasH int
	for _, s := range sizes {
		if mode == MergeHorizontal {
			canvasW += s.X
			canvasH = s.Y
		} else {
			canvasW = s.X
			canvasH += s.Y
		}
	}

	canvas := imaging.New(canvasW, canvasH, color.NRGBA{})
	var offset int
	for i, img := range scaled {
		if img == nil {
			continue
		}
		pos := image.Pt(offset, 0)
		if mode == MergeVertical {
			pos = image.Pt(0, offset)
		}
		xdraw.Draw(canvas, image.Rectangle{Min: pos, Max: pos.Add(sizes[i])}, img, img.Bounds().Min, xdraw.Over)
		if mode == MergeHorizontal {
			offset += sizes[i].X
		} else {
			offset += sizes[i].Y
		}
	}

	return encodeResult("merge", canvas)
}

// mergeSizes returns the target size of every image on the merge canvas.
func mergeSizes(images []*image.NRGBA, mode MergeMode) []image.Point {
	sizes := make([]image.Point, len(images))

	if mode == MergeVertical {
		maxW := 0
		for _, img := range images {
			maxW = max(maxW, img.Bounds().Dx())
		}
		for i, img := range images {
			sizes[i] = image.Pt(maxW, img.Bounds().Dy())
		}
		return sizes
	}

	minH := images[0].Bounds().Dy()
	for _, img := range images[1:] {
		minH = min(minH, img.Bounds().Dy())
	}
	for i, img := range images {
		b := img.Bounds()
		w := 0
		if b.Dy() > 0 {
			w = int(int64(b.Dx()) * int64(minH) / int64(b.Dy()))
		}
		sizes[i] = image.Pt(w, minH)
	}
	return sizes
}

// scaleLinear resizes src to size with a triangle filter. It returns nil for
// an empty target so the caller can skip the image.
func scaleLinear(src *image.NRGBA, size image.Point) *image.NRGBA {
	if size.X <= 0 || size.Y <= 0 {
		return nil
	}
	if src.Bounds().Size() == size {
		return src
	}
	return imaging.Clone(transform.Resize(src, size.X, size.Y, transform.Linear))
}

// MergeGIF builds a looping GIF animation with one frame per image, in input
// order, each shown for delay (DefaultFrameDelay when delay <= 0).
//
// Every frame is resized with a Lanczos3 filter to the header dimensions of
// the first image. Frames are prepared in parallel, see WithWorkers.
//
// # Errors
//
//   - ErrInput if images is empty
//   - ErrDecode if any image cannot be decoded
func MergeGIF(images []Image, delay time.Duration, opts ...Option) (Image, error) {
	if len(images) == 0 {
		return Image{}, newErr("merge_gif", ErrInput, "no images to merge")
	}
	if delay <= 0 {
		delay = DefaultFrameDelay
	}
	o := buildOptions(opts)

	dims, err := Dimensions(images[0])
	if err != nil {
		return Image{}, wrapErr("merge_gif", ErrDecode, err)
	}
	frameDelay := DelayFromDuration(delay)

	frames, err := parallelMap(images, o.workers, func(_ int, img Image) (Frame, error) {
		src, err := decodeFor("merge_gif", img)
		if err != nil {
			return Frame{}, err
		}
		if src.Bounds().Dx() != dims.Width || src.Bounds().Dy() != dims.Height {
			src = imaging.Clone(resize.Resize(uint(dims.Width), uint(dims.Height), src, resize.Lanczos3))
		}
		return Frame{Image: src, Delay: frameDelay}, nil
	})
	if err != nil {
		return Image{}, err
	}

	return encodeAnimationResult("merge_gif", frames)
}
