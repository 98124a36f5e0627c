package imaging

import (
	"bytes"
	"encoding/base64"
	"os"
	"strings"
)

// Image is an immutable encoded image of sniffed format.
//
// An Image owns its byte buffer. Copying the struct shares the buffer read-only;
// nothing in this package ever writes to it, and every operation returns a new
// Image. The zero value is an empty image that fails every operation with ErrDecode.
type Image struct {
	data []byte
}

// New wraps data without validating it. The caller must not modify data afterwards.
func New(data []byte) Image {
	return Image{data: data}
}

// Load wraps data after checking that its content sniffs as a supported codec.
func Load(data []byte) (Image, error) {
	if _, err := Sniff(data); err != nil {
		return Image{}, wrapErr("load", ErrDecode, err)
	}
	return Image{data: data}, nil
}

// LoadFile reads and sniffs an image from disk.
//
// Returns an ErrIO error if the file cannot be read and an ErrDecode error if
// its content is not a supported image.
func LoadFile(path string) (Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Image{}, wrapErr("load_file", ErrIO, err)
	}
	return Load(data)
}

// LoadBase64 decodes standard base64 text (optionally a "data:" URL) and sniffs it.
func LoadBase64(text string) (Image, error) {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "data:") {
		if i := strings.IndexByte(text, ','); i >= 0 {
			text = text[i+1:]
		}
	}
	data, err := base64.StdEncoding.DecodeString(text)
	if err != nil {
		return Image{}, wrapErr("load_base64", ErrDecode, err)
	}
	return Load(data)
}

// Bytes returns a copy of the encoded bytes.
func (img Image) Bytes() []byte {
	return bytes.Clone(img.data)
}

// Len returns the encoded size in bytes.
func (img Image) Len() int {
	return len(img.data)
}

// IsZero reports whether the image holds no data.
func (img Image) IsZero() bool {
	return len(img.data) == 0
}

// Codec sniffs the image's encoding.
func (img Image) Codec() (Codec, error) {
	return Sniff(img.data)
}

// Encode re-encodes the image in the requested format.
//
// The source is decoded to its first/only plane, so encoding an animation
// yields its first frame. A GIF source requested as GIF is returned unchanged,
// keeping its frames.
func Encode(img Image, format OutputFormat) ([]byte, error) {
	if format == GIF {
		if codec, err := img.Codec(); err == nil && codec == CodecGIF {
			return img.Bytes(), nil
		}
	}
	pix, err := DecodeStatic(img.data)
	if err != nil {
		return nil, wrapErr("encode", ErrDecode, err)
	}
	return EncodeStatic(pix, format)
}

// EncodeBase64 is Encode followed by standard base64 encoding.
func EncodeBase64(img Image, format OutputFormat) (string, error) {
	data, err := Encode(img, format)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// Save encodes img in the requested format and writes it to path.
// Nothing is written if encoding fails.
func Save(img Image, path string, format OutputFormat) error {
	data, err := Encode(img, format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return wrapErr("save", ErrIO, err)
	}
	return nil
}

// EncodeBatch encodes every image in parallel, returning results in input order.
// The first failure aborts the batch and no partial results are returned.
func EncodeBatch(images []Image, format OutputFormat, opts ...Option) ([][]byte, error) {
	if len(images) == 0 {
		return nil, newErr("encode_batch", ErrInput, "no images supplied")
	}
	o := buildOptions(opts)
	return parallelMap(images, o.workers, func(_ int, img Image) ([]byte, error) {
		return Encode(img, format)
	})
}
