package imaging

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"testing"
	"time"

	"github.com/deepteams/webp"
	"github.com/deepteams/webp/animation"
	"github.com/stretchr/testify/require"
)

var (
	red   = color.NRGBA{255, 0, 0, 255}
	green = color.NRGBA{0, 255, 0, 255}
	blue  = color.NRGBA{0, 0, 255, 255}
	white = color.NRGBA{255, 255, 255, 255}
)

// createInMemoryImage creates an in-memory test image
func createInMemoryImage(width, height int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// createPatternImage creates an image with different colors in each quadrant
func createPatternImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var c color.NRGBA
			if x < width/2 && y < height/2 {
				c = red // top-left
			} else if x >= width/2 && y < height/2 {
				c = green // top-right
			} else if x < width/2 && y >= height/2 {
				c = blue // bottom-left
			} else {
				c = white // bottom-right
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) Image {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return New(buf.Bytes())
}

func encodeJPEG(t *testing.T, img image.Image) Image {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 95}))
	return New(buf.Bytes())
}

// createTestGIF builds an animated GIF with one solid-color frame per entry
// in colors, each shown for the matching delay in centiseconds.
func createTestGIF(t *testing.T, width, height int, colors []color.NRGBA, delays []int) Image {
	t.Helper()
	require.Len(t, delays, len(colors))

	g := &gif.GIF{Config: image.Config{Width: width, Height: height}}
	for i, c := range colors {
		pm := image.NewPaletted(image.Rect(0, 0, width, height), color.Palette{c})
		g.Image = append(g.Image, pm)
		g.Delay = append(g.Delay, delays[i])
		g.Disposal = append(g.Disposal, gif.DisposalNone)
	}

	var buf bytes.Buffer
	require.NoError(t, gif.EncodeAll(&buf, g))
	return New(buf.Bytes())
}

// webpBitstream encodes img as a still lossless WebP and returns the payload
// of its VP8L chunk.
func webpBitstream(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	opts := webp.DefaultOptions()
	opts.Lossless = true
	require.NoError(t, webp.Encode(&buf, img, opts))

	data := buf.Bytes()
	require.GreaterOrEqual(t, len(data), 20)
	for off := 12; off+8 <= len(data); {
		id := string(data[off : off+4])
		size := int(binary.LittleEndian.Uint32(data[off+4 : off+8]))
		if id == "VP8L" || id == "VP8 " {
			return data[off+8 : off+8+size]
		}
		off += 8 + size + size%2
	}
	t.Fatal("no image bitstream in encoded WebP")
	return nil
}

// createTestWebP builds an animated WebP with one solid-color frame per entry
// in colors, each shown for the matching delay in milliseconds. Frames are
// muxed as raw full-canvas bitstreams, so no encoder-side optimisation
// changes their pixels.
func createTestWebP(t *testing.T, width, height int, colors []color.NRGBA, delaysMs []int) Image {
	t.Helper()
	require.Len(t, delaysMs, len(colors))

	var buf bytes.Buffer
	enc := animation.NewEncoder(&buf, width, height, &animation.EncodeOptions{Lossless: true})
	for i, c := range colors {
		bs := webpBitstream(t, createInMemoryImage(width, height, c))
		require.NoError(t, enc.AddRawFrame(bs, time.Duration(delaysMs[i])*time.Millisecond, 0, 0,
			animation.BlendNone, animation.DisposeNone))
	}
	require.NoError(t, enc.Close())
	return New(buf.Bytes())
}

// decodePixels decodes the static plane of img, failing the test on error.
func decodePixels(t *testing.T, img Image) *image.NRGBA {
	t.Helper()
	pix, err := DecodeStatic(img.Bytes())
	require.NoError(t, err)
	return pix
}

// frameColors returns the color at (0,0) of every frame of an animation.
func frameColors(t *testing.T, img Image) []color.NRGBA {
	t.Helper()
	frames, err := DecodeAnimated(img.Bytes())
	require.NoError(t, err)
	out := make([]color.NRGBA, len(frames))
	for i, f := range frames {
		out[i] = f.Image.NRGBAAt(0, 0)
	}
	return out
}

// frameDelays returns every frame delay of an animation in milliseconds.
func frameDelays(t *testing.T, img Image) []float64 {
	t.Helper()
	frames, err := DecodeAnimated(img.Bytes())
	require.NoError(t, err)
	out := make([]float64, len(frames))
	for i, f := range frames {
		out[i] = f.Delay.Milliseconds()
	}
	return out
}
