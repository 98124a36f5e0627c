package imaging

import (
	"bytes"
	"image/color"
	"image/gif"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rgbWebP(t *testing.T) Image {
	t.Helper()
	return createTestWebP(t, 6, 4, []color.NRGBA{red, green, blue}, []int{40, 80, 120})
}

func TestWebP_StillRoundTrip(t *testing.T) {
	src := createPatternImage(10, 6)

	data, err := EncodeStatic(src, WebP)
	require.NoError(t, err)

	codec, err := Sniff(data)
	require.NoError(t, err)
	assert.Equal(t, CodecWebP, codec)

	got, err := DecodeStatic(data)
	require.NoError(t, err)
	assert.Equal(t, src.Bounds(), got.Bounds())
	assert.Equal(t, src.Pix, got.Pix, "lossless encode keeps every pixel")

	dims, err := Dimensions(New(data))
	require.NoError(t, err)
	assert.Equal(t, 10, dims.Width)
	assert.Equal(t, 6, dims.Height)

	info, err := Info(New(data))
	require.NoError(t, err)
	assert.False(t, info.IsMultiFrame)
	require.NotNil(t, info.FrameCount)
	assert.Equal(t, 1, *info.FrameCount)
	require.NotNil(t, info.AverageDuration)
	assert.Equal(t, 0.0, *info.AverageDuration)
}

func TestWebP_AnimatedInfo(t *testing.T) {
	info, err := Info(rgbWebP(t))
	require.NoError(t, err)

	assert.Equal(t, 6, info.Width)
	assert.Equal(t, 4, info.Height)
	assert.True(t, info.IsMultiFrame)
	require.NotNil(t, info.FrameCount)
	assert.Equal(t, 3, *info.FrameCount)
	require.NotNil(t, info.AverageDuration)
	assert.InDelta(t, 0.08, *info.AverageDuration, 1e-9)
}

func TestWebP_DecodeStaticFirstFrame(t *testing.T) {
	pix := decodePixels(t, rgbWebP(t))
	assert.Equal(t, 6, pix.Bounds().Dx())
	assert.Equal(t, 4, pix.Bounds().Dy())
	assert.Equal(t, red, pix.NRGBAAt(0, 0))
	assert.Equal(t, red, pix.NRGBAAt(5, 3))
}

func TestWebP_DecodeAnimated(t *testing.T) {
	anim := rgbWebP(t)
	assert.Equal(t, []color.NRGBA{red, green, blue}, frameColors(t, anim))
	assert.Equal(t, []float64{40, 80, 120}, frameDelays(t, anim))
}

func TestWebP_AnimationOps(t *testing.T) {
	anim := rgbWebP(t)

	tests := []struct {
		name       string
		run        func() (Image, error)
		wantColors []color.NRGBA
		wantDelays []float64
	}{
		{
			name:       "reverse",
			run:        func() (Image, error) { return Reverse(anim) },
			wantColors: []color.NRGBA{blue, green, red},
			wantDelays: []float64{120, 80, 40},
		},
		{
			name:       "retime",
			run:        func() (Image, error) { return Retime(anim, 50*time.Millisecond) },
			wantColors: []color.NRGBA{red, green, blue},
			wantDelays: []float64{50, 50, 50},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := tt.run()
			require.NoError(t, err)

			codec, err := out.Codec()
			require.NoError(t, err)
			assert.Equal(t, CodecGIF, codec, "animations are re-encoded as GIF")

			assert.Equal(t, tt.wantColors, frameColors(t, out))
			assert.Equal(t, tt.wantDelays, frameDelays(t, out))

			g, err := gif.DecodeAll(bytes.NewReader(out.Bytes()))
			require.NoError(t, err)
			assert.Equal(t, 0, g.LoopCount, "loops forever")
		})
	}
}

func TestWebP_Split(t *testing.T) {
	parts, err := Split(rgbWebP(t), WithWorkers(2))
	require.NoError(t, err)
	require.Len(t, parts, 3)

	for i, want := range []color.NRGBA{red, green, blue} {
		codec, err := parts[i].Codec()
		require.NoError(t, err)
		assert.Equal(t, CodecPNG, codec)

		pix := decodePixels(t, parts[i])
		assert.Equal(t, 6, pix.Bounds().Dx())
		assert.Equal(t, 4, pix.Bounds().Dy())
		assert.Equal(t, want, pix.NRGBAAt(3, 2), "frame %d", i)
	}
}

func TestWebP_SingleFrameIsNotAnimation(t *testing.T) {
	data, err := EncodeStatic(createInMemoryImage(4, 4, green), WebP)
	require.NoError(t, err)

	_, err = Reverse(New(data))
	assert.ErrorIs(t, err, ErrAnimation)
}
