package imaging

import (
	"image"
	"math"

	xdraw "golang.org/x/image/draw"
)

// Light factors applied to the luminance of the visible and hidden images.
const (
	visibleLight = 1.0
	hiddenLight  = 0.5
)

// Mirage hides one image inside the alpha channel of another.
//
// The result is a gray image whose alpha is derived from both inputs: shown
// over a light background it reads as visible, over a dark background hidden
// emerges. Both inputs are first resized with a Catmull-Rom filter to the
// element-wise minimum of their dimensions. The output is PNG and is fully
// determined by the two inputs.
func Mirage(visible, hidden Image) (Image, error) {
	top, err := decodeFor("mirage", visible)
	if err != nil {
		return Image{}, err
	}
	bottom, err := decodeFor("mirage", hidden)
	if err != nil {
		return Image{}, err
	}

	size := image.Pt(
		min(top.Bounds().Dx(), bottom.Bounds().Dx()),
		min(top.Bounds().Dy(), bottom.Bounds().Dy()),
	)
	top = scaleCatmullRom(top, size)
	bottom = scaleCatmullRom(bottom, size)

	out := image.NewNRGBA(image.Rect(0, 0, size.X, size.Y))
	for i := 0; i+3 < len(out.Pix); i += 4 {
		wc := luminance(top.Pix[i:i+3], visibleLight)
		bc := luminance(bottom.Pix[i:i+3], hiddenLight)

		a := clamp(255-wc+bc, 0, 255)
		var r float64
		if a > 0 {
			r = min(255, bc/a*255)
		}
		gray := uint8(math.Round(r))
		out.Pix[i], out.Pix[i+1], out.Pix[i+2] = gray, gray, gray
		out.Pix[i+3] = uint8(math.Round(a))
	}

	return encodeResult("mirage", out)
}

// luminance returns the BT.601 luma of an RGB triple scaled by light.
func luminance(rgb []uint8, light float64) float64 {
	return (0.299*float64(rgb[0]) + 0.587*float64(rgb[1]) + 0.114*float64(rgb[2])) * light
}

// scaleCatmullRom resizes src to size. The result always has a zero origin
// and a tight stride.
func scaleCatmullRom(src *image.NRGBA, size image.Point) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, size.X, size.Y))
	if src.Bounds().Size() == size {
		xdraw.Copy(dst, image.Point{}, src, src.Bounds(), xdraw.Src, nil)
		return dst
	}
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}
