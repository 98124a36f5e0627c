package imaging

import (
	"bytes"
	"image"
	"io"

	"github.com/deepteams/webp"
	"github.com/deepteams/webp/animation"
	"github.com/disintegration/imaging"
)

// decodeWebPStatic decodes a still WebP, or the first composited frame of an
// animated one.
func decodeWebPStatic(data []byte) (*image.NRGBA, error) {
	feat, err := webp.GetFeatures(bytes.NewReader(data))
	if err != nil {
		return nil, wrapErr("decode_webp", ErrDecode, err)
	}
	if !feat.HasAnimation {
		img, err := webp.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, wrapErr("decode_webp", ErrDecode, err)
		}
		return imaging.Clone(img), nil
	}

	anim, err := animation.DecodeBytes(data)
	if err != nil {
		return nil, wrapErr("decode_webp", ErrDecode, err)
	}
	if len(anim.Frames) == 0 {
		return nil, newErr("decode_webp", ErrDecode, "webp animation contains no frames")
	}
	// The first frame is always a key frame, so it composites on its own.
	anim.Frames = anim.Frames[:1]
	if err := anim.DecodeFrames(); err != nil {
		return nil, wrapErr("decode_webp", ErrDecode, err)
	}
	canvas, _, err := animation.NewAnimDecoder(anim).NextFrame()
	if err != nil {
		return nil, wrapErr("decode_webp", ErrDecode, err)
	}
	return canvas, nil
}

// decodeWebPFrames returns one canvas-sized snapshot per animation frame.
// A still WebP yields a single frame with a zero delay.
func decodeWebPFrames(data []byte) ([]Frame, error) {
	feat, err := webp.GetFeatures(bytes.NewReader(data))
	if err != nil {
		return nil, wrapErr("decode_webp", ErrDecode, err)
	}
	if !feat.HasAnimation {
		img, err := decodeWebPStatic(data)
		if err != nil {
			return nil, err
		}
		return []Frame{{Image: img}}, nil
	}

	anim, err := animation.DecodeBytes(data)
	if err != nil {
		return nil, wrapErr("decode_webp", ErrDecode, err)
	}
	if err := anim.DecodeFrames(); err != nil {
		return nil, wrapErr("decode_webp", ErrDecode, err)
	}

	dec := animation.NewAnimDecoder(anim)
	frames := make([]Frame, 0, len(anim.Frames))
	for dec.HasNext() {
		canvas, d, err := dec.NextFrame()
		if err != nil {
			return nil, wrapErr("decode_webp", ErrDecode, err)
		}
		frames = append(frames, Frame{Image: canvas, Delay: DelayFromDuration(d)})
	}
	return frames, nil
}

// encodeWebP writes img as lossless WebP, keeping color under transparent pixels.
func encodeWebP(w io.Writer, img *image.NRGBA) error {
	opts := webp.DefaultOptions()
	opts.Lossless = true
	opts.Exact = true
	return webp.Encode(w, img, opts)
}
