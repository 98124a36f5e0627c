package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // Register WebP header decoding for Dimensions
)

// DecodeStatic sniffs data and decodes its first (or only) image plane into a
// dense RGBA8 grid.
//
// For GIF the first frame is composited onto the logical screen, so the result
// always has the container's full dimensions. For animated WebP the first
// canvas-composited frame is returned.
//
// # Errors
//
//   - ErrDecode if the format is unrecognized or the payload is invalid
func DecodeStatic(data []byte) (*image.NRGBA, error) {
	codec, err := Sniff(data)
	if err != nil {
		return nil, err
	}

	switch codec.Format() {
	case FormatGIF:
		return decodeGIFStatic(data)
	case FormatWebP:
		return decodeWebPStatic(data)
	default:
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, wrapErr("decode", ErrDecode, err)
		}
		return imaging.Clone(img), nil
	}
}

// DecodeAnimated decodes the full ordered frame sequence of data.
//
// GIF and animated WebP yield one canvas-sized frame per container frame, each
// with its own delay and a zero offset. Every other input, including a still
// WebP, yields a single frame with a zero delay.
func DecodeAnimated(data []byte) ([]Frame, error) {
	codec, err := Sniff(data)
	if err != nil {
		return nil, err
	}

	switch codec.Format() {
	case FormatGIF:
		return decodeGIFFrames(data)
	case FormatWebP:
		return decodeWebPFrames(data)
	default:
		img, err := DecodeStatic(data)
		if err != nil {
			return nil, err
		}
		return []Frame{{Image: img, Delay: DelayFromMillis(0)}}, nil
	}
}

// EncodeStatic encodes a pixel grid in the requested format.
//
// PNG, GIF and WebP (lossless) keep the alpha channel. JPEG has none, so
// translucent pixels are flattened onto white first.
func EncodeStatic(img *image.NRGBA, format OutputFormat) ([]byte, error) {
	var buf bytes.Buffer
	var err error

	switch format {
	case PNG:
		err = imaging.Encode(&buf, img, imaging.PNG)
	case JPEG:
		var src image.Image = img
		if !img.Opaque() {
			b := img.Bounds()
			src = imaging.Overlay(imaging.New(b.Dx(), b.Dy(), color.White), img, image.Pt(0, 0), 1.0)
		}
		err = imaging.Encode(&buf, src, imaging.JPEG)
	case GIF:
		err = gif.Encode(&buf, toPaletted(img), nil)
	case WebP:
		err = encodeWebP(&buf, img)
	default:
		return nil, newErr("encode", ErrEncode, "unsupported output format %d", int(format))
	}

	if err != nil {
		return nil, wrapErr("encode", ErrEncode, err)
	}
	return buf.Bytes(), nil
}

// EncodeAnimation encodes frames as an infinitely looping GIF, in the order given.
//
// Each frame is placed at its (Left, Top) offset and shown for its delay
// rounded to whole centiseconds. The logical screen is the union of all
// frame rectangles.
func EncodeAnimation(frames []Frame) ([]byte, error) {
	if len(frames) == 0 {
		return nil, newErr("encode_animation", ErrInput, "no frames to encode")
	}
	data, err := encodeGIFAnimation(frames)
	if err != nil {
		return nil, wrapErr("encode_animation", ErrEncode, err)
	}
	return data, nil
}

// encodeResult encodes an intermediate result as PNG and wraps it as an Image.
func encodeResult(op string, img *image.NRGBA) (Image, error) {
	data, err := EncodeStatic(img, PNG)
	if err != nil {
		return Image{}, wrapErr(op, ErrEncode, err)
	}
	return Image{data: data}, nil
}

// decodeFor decodes the static plane of img on behalf of op.
func decodeFor(op string, img Image) (*image.NRGBA, error) {
	pix, err := DecodeStatic(img.data)
	if err != nil {
		return nil, wrapErr(op, ErrDecode, err)
	}
	return pix, nil
}
