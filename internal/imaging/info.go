package imaging

import (
	"bytes"
	"image"
)

// ImageInfo contains metadata about an image.
//
// FrameCount is always set for GIF and WebP sources and is 1 for every other
// format. AverageDuration is only reported for GIF and WebP; it is the mean
// frame delay in seconds, and 0 when the container holds a single frame.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// IsMultiFrame is true when the image holds more than one frame.
	IsMultiFrame bool `json:"is_multi_frame"`

	// FrameCount is the number of frames.
	FrameCount *int `json:"frame_count,omitempty"`

	// AverageDuration is the mean frame delay in seconds.
	AverageDuration *float64 `json:"average_duration,omitempty"`
}

// Info decodes img and reports its dimensions and animation metadata.
//
// For GIF and WebP the full frame sequence is decoded; width and height are
// those of the first composited frame. Other formats are decoded once.
//
// # Errors
//
//   - ErrDecode if the bytes are not a supported image
func Info(img Image) (*ImageInfo, error) {
	codec, err := Sniff(img.data)
	if err != nil {
		return nil, wrapErr("info", ErrDecode, err)
	}

	switch codec.Format() {
	case FormatGIF, FormatWebP:
		frames, err := DecodeAnimated(img.data)
		if err != nil {
			return nil, wrapErr("info", ErrDecode, err)
		}
		anim := NewAnimationInfo(frames)
		info := &ImageInfo{
			IsMultiFrame:    anim.IsAnimation(),
			FrameCount:      &anim.FrameCount,
			AverageDuration: &anim.AverageDelay,
		}
		if len(frames) > 0 {
			b := frames[0].Image.Bounds()
			info.Width, info.Height = b.Dx(), b.Dy()
		}
		return info, nil
	default:
		pix, err := decodeFor("info", img)
		if err != nil {
			return nil, err
		}
		one := 1
		b := pix.Bounds()
		return &ImageInfo{
			Width:      b.Dx(),
			Height:     b.Dy(),
			FrameCount: &one,
		}, nil
	}
}

// DimensionsResult contains the width and height of an image.
type DimensionsResult struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`
}

// Dimensions reads only the image header, without decoding pixels.
func Dimensions(img Image) (*DimensionsResult, error) {
	if _, err := Sniff(img.data); err != nil {
		return nil, wrapErr("dimensions", ErrDecode, err)
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(img.data))
	if err != nil {
		return nil, wrapErr("dimensions", ErrDecode, err)
	}
	return &DimensionsResult{Width: cfg.Width, Height: cfg.Height}, nil
}
