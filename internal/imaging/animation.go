package imaging

import (
	"slices"
	"time"
)

// decodeAnimation decodes the frame sequence of an animated GIF or WebP on
// behalf of op. Other formats fail without being decoded.
func decodeAnimation(op string, img Image) ([]Frame, error) {
	codec, err := Sniff(img.data)
	if err != nil {
		return nil, wrapErr(op, ErrDecode, err)
	}
	if f := codec.Format(); f != FormatGIF && f != FormatWebP {
		return nil, newErr(op, ErrAnimation, "not an animation: %s images hold a single frame", codec)
	}

	frames, err := DecodeAnimated(img.data)
	if err != nil {
		return nil, wrapErr(op, ErrDecode, err)
	}
	if !NewAnimationInfo(frames).IsAnimation() {
		return nil, newErr(op, ErrAnimation, "not an animation: %d frame(s)", len(frames))
	}
	return frames, nil
}

// Split returns one PNG image per animation frame, in display order.
// Frame offsets and delays are discarded.
//
// # Errors
//
//   - ErrAnimation if img is not a GIF or WebP with more than one frame
//   - ErrDecode if the frames cannot be decoded
func Split(img Image, opts ...Option) ([]Image, error) {
	frames, err := decodeAnimation("split", img)
	if err != nil {
		return nil, err
	}
	o := buildOptions(opts)
	return parallelMap(frames, o.workers, func(_ int, f Frame) (Image, error) {
		return encodeResult("split", f.Image)
	})
}

// Reverse re-encodes the animation with its frames in reverse order.
// Each frame keeps its own delay.
func Reverse(img Image) (Image, error) {
	frames, err := decodeAnimation("reverse", img)
	if err != nil {
		return Image{}, err
	}
	slices.Reverse(frames)
	return encodeAnimationResult("reverse", frames)
}

// Retime re-encodes the animation with every frame shown for delay.
// Frame order, offsets and pixels are unchanged.
func Retime(img Image, delay time.Duration) (Image, error) {
	if delay < 0 {
		return Image{}, newErr("retime", ErrInput, "delay %v must not be negative", delay)
	}
	frames, err := decodeAnimation("retime", img)
	if err != nil {
		return Image{}, err
	}
	d := DelayFromDuration(delay)
	for i := range frames {
		frames[i].Delay = d
	}
	return encodeAnimationResult("retime", frames)
}

func encodeAnimationResult(op string, frames []Frame) (Image, error) {
	data, err := EncodeAnimation(frames)
	if err != nil {
		return Image{}, wrapErr(op, ErrEncode, err)
	}
	return Image{data: data}, nil
}
