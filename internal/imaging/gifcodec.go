package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/gif"
)

// ditherPalette is used for frames with too many colors for an exact palette.
// The final entry is the transparent color.
var ditherPalette = append(append(color.Palette{}, palette.WebSafe...), color.NRGBA{})

// decodeGIFStatic composites the first frame of a GIF onto its logical screen.
func decodeGIFStatic(data []byte) (*image.NRGBA, error) {
	g, err := gif.DecodeAll(bytes.NewReader(data))
	if err != nil {
		return nil, wrapErr("decode_gif", ErrDecode, err)
	}
	if len(g.Image) == 0 {
		return nil, newErr("decode_gif", ErrDecode, "gif contains no frames")
	}
	canvas := image.NewNRGBA(gifScreen(g))
	frame := g.Image[0]
	draw.Draw(canvas, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)
	return canvas, nil
}

// decodeGIFFrames composites every GIF frame onto the logical screen and
// returns one full-screen snapshot per frame, honouring each frame's disposal.
func decodeGIFFrames(data []byte) ([]Frame, error) {
	g, err := gif.DecodeAll(bytes.NewReader(data))
	if err != nil {
		return nil, wrapErr("decode_gif", ErrDecode, err)
	}
	if len(g.Image) == 0 {
		return nil, newErr("decode_gif", ErrDecode, "gif contains no frames")
	}

	screen := gifScreen(g)
	canvas := image.NewNRGBA(screen)
	prev := image.NewNRGBA(screen)
	frames := make([]Frame, 0, len(g.Image))

	for i, frame := range g.Image {
		disposal := byte(gif.DisposalNone)
		if i < len(g.Disposal) {
			disposal = g.Disposal[i]
		}
		if disposal == gif.DisposalPrevious {
			copy(prev.Pix, canvas.Pix)
		}

		fb := frame.Bounds()
		draw.Draw(canvas, fb, frame, fb.Min, draw.Over)

		snap := image.NewNRGBA(screen)
		copy(snap.Pix, canvas.Pix)

		cs := 0
		if i < len(g.Delay) {
			cs = g.Delay[i]
		}
		frames = append(frames, Frame{Image: snap, Delay: DelayFromMillis(uint32(cs) * 10)})

		switch disposal {
		case gif.DisposalBackground:
			draw.Draw(canvas, fb, image.Transparent, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			copy(canvas.Pix, prev.Pix)
		}
	}
	return frames, nil
}

// gifScreen returns the logical screen rectangle, falling back to the union
// of frame bounds when the header omits it.
func gifScreen(g *gif.GIF) image.Rectangle {
	if g.Config.Width > 0 && g.Config.Height > 0 {
		return image.Rect(0, 0, g.Config.Width, g.Config.Height)
	}
	var r image.Rectangle
	for _, f := range g.Image {
		r = r.Union(f.Bounds())
	}
	return image.Rect(0, 0, r.Max.X, r.Max.Y)
}

func encodeGIFAnimation(frames []Frame) ([]byte, error) {
	out := &gif.GIF{
		Image:     make([]*image.Paletted, 0, len(frames)),
		Delay:     make([]int, 0, len(frames)),
		Disposal:  make([]byte, 0, len(frames)),
		LoopCount: 0,
	}

	var width, height int
	for i, f := range frames {
		if f.Image == nil {
			return nil, fmt.Errorf("frame %d has no pixels", i)
		}
		if f.Left < 0 || f.Top < 0 {
			return nil, fmt.Errorf("frame %d has negative offset (%d,%d)", i, f.Left, f.Top)
		}
		pm := toPaletted(f.Image)
		pm.Rect = pm.Rect.Add(image.Pt(f.Left, f.Top))

		out.Image = append(out.Image, pm)
		out.Delay = append(out.Delay, f.Delay.Centiseconds())
		out.Disposal = append(out.Disposal, gif.DisposalBackground)

		width = max(width, pm.Rect.Max.X)
		height = max(height, pm.Rect.Max.Y)
	}
	out.Config = image.Config{Width: width, Height: height}

	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, out); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// toPaletted converts an RGBA8 grid to a paletted image whose bounds start at
// the origin. Pixels with alpha below 128 become transparent; the rest are
// treated as opaque. Frames with at most 256 such colors are mapped exactly,
// larger ones are dithered onto the web-safe palette.
func toPaletted(src *image.NRGBA) *image.Paletted {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	rect := image.Rect(0, 0, w, h)

	index := make(map[color.NRGBA]uint8)
	pal := make(color.Palette, 0, 256)
	exact := true

scan:
	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+w*4]
		for x := 0; x < w; x++ {
			c := binaryAlpha(row[x*4:])
			if _, ok := index[c]; ok {
				continue
			}
			if len(pal) == 256 {
				exact = false
				break scan
			}
			index[c] = uint8(len(pal))
			pal = append(pal, c)
		}
	}

	if exact {
		dst := image.NewPaletted(rect, pal)
		for y := 0; y < h; y++ {
			row := src.Pix[y*src.Stride : y*src.Stride+w*4]
			for x := 0; x < w; x++ {
				dst.Pix[y*dst.Stride+x] = index[binaryAlpha(row[x*4:])]
			}
		}
		return dst
	}

	flat := image.NewNRGBA(rect)
	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+w*4]
		for x := 0; x < w; x++ {
			c := binaryAlpha(row[x*4:])
			i := y*flat.Stride + x*4
			flat.Pix[i], flat.Pix[i+1], flat.Pix[i+2], flat.Pix[i+3] = c.R, c.G, c.B, c.A
		}
	}
	dst := image.NewPaletted(rect, ditherPalette)
	draw.FloydSteinberg.Draw(dst, rect, flat, image.Point{})
	return dst
}

// binaryAlpha reads one NRGBA pixel and snaps its alpha to 0 or 255.
func binaryAlpha(p []uint8) color.NRGBA {
	if p[3] < 128 {
		return color.NRGBA{}
	}
	return color.NRGBA{R: p[0], G: p[1], B: p[2], A: 255}
}
