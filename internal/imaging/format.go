package imaging

import (
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Codec identifies the concrete encoding of an Image, as sniffed from its bytes.
type Codec string

const (
	CodecPNG  Codec = "png"
	CodecJPEG Codec = "jpeg"
	CodecGIF  Codec = "gif"
	CodecWebP Codec = "webp"
)

// Format is the routing decision derived from a Codec. Animation-capable
// containers take the frame-sequence path for inspection and the animation
// pipeline; everything else is treated as a single plane.
type Format int

const (
	FormatOther Format = iota
	FormatGIF
	FormatWebP
)

func (f Format) String() string {
	switch f {
	case FormatGIF:
		return "gif"
	case FormatWebP:
		return "webp"
	default:
		return "other"
	}
}

// Format returns the routing format for the codec.
func (c Codec) Format() Format {
	switch c {
	case CodecGIF:
		return FormatGIF
	case CodecWebP:
		return FormatWebP
	default:
		return FormatOther
	}
}

// MimeType returns the IANA media type for the codec.
func (c Codec) MimeType() string {
	return "image/" + string(c)
}

var sniffedCodecs = map[string]Codec{
	"image/png":  CodecPNG,
	"image/jpeg": CodecJPEG,
	"image/gif":  CodecGIF,
	"image/webp": CodecWebP,
}

// Sniff determines the codec of data from its content, never from a file name.
//
// Returns an ErrDecode error if the content is not one of PNG, JPEG, GIF or WebP.
// Derived types (e.g. APNG) resolve to their parent codec.
func Sniff(data []byte) (Codec, error) {
	if len(data) == 0 {
		return "", newErr("sniff", ErrDecode, "empty image data")
	}
	detected := mimetype.Detect(data)
	for m := detected; m != nil; m = m.Parent() {
		if c, ok := sniffedCodecs[m.String()]; ok {
			return c, nil
		}
	}
	return "", newErr("sniff", ErrDecode, "unrecognized image format %q", detected.String())
}

// OutputFormat selects the encoder used when producing bytes.
type OutputFormat int

const (
	PNG OutputFormat = iota
	JPEG
	WebP
	GIF
)

func (f OutputFormat) String() string {
	switch f {
	case JPEG:
		return "jpeg"
	case WebP:
		return "webp"
	case GIF:
		return "gif"
	default:
		return "png"
	}
}

// Extension returns the conventional file extension, including the dot.
func (f OutputFormat) Extension() string {
	if f == JPEG {
		return ".jpg"
	}
	return "." + f.String()
}

// MimeType returns the IANA media type for the output format.
func (f OutputFormat) MimeType() string {
	return "image/" + f.String()
}

// ParseOutputFormat converts a user-supplied name ("png", "jpg", "JPEG", ...)
// into an OutputFormat.
func ParseOutputFormat(name string) (OutputFormat, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), ".")) {
	case "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	case "webp":
		return WebP, nil
	case "gif":
		return GIF, nil
	default:
		return PNG, fmt.Errorf("unsupported output format: %q", name)
	}
}

// FlipMode selects the mirror axis for Flip.
type FlipMode int

const (
	// FlipHorizontal mirrors left-to-right.
	FlipHorizontal FlipMode = iota
	// FlipVertical mirrors top-to-bottom.
	FlipVertical
)

// ParseFlipMode accepts "horizontal"/"h" and "vertical"/"v"; empty means horizontal.
func ParseFlipMode(name string) (FlipMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "horizontal", "h":
		return FlipHorizontal, nil
	case "vertical", "v":
		return FlipVertical, nil
	default:
		return FlipHorizontal, fmt.Errorf("unknown flip mode: %q", name)
	}
}

// MergeMode selects the concatenation axis for Merge.
type MergeMode int

const (
	// MergeHorizontal lays images out left-to-right.
	MergeHorizontal MergeMode = iota
	// MergeVertical stacks images top-to-bottom.
	MergeVertical
)

// ParseMergeMode accepts "horizontal"/"h" and "vertical"/"v"; empty means horizontal.
func ParseMergeMode(name string) (MergeMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "horizontal", "h":
		return MergeHorizontal, nil
	case "vertical", "v":
		return MergeVertical, nil
	default:
		return MergeHorizontal, fmt.Errorf("unknown merge mode: %q", name)
	}
}
