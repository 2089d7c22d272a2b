package sprite

import (
	"image"
	"image/draw"
)

// Clone copies img into a new NRGBA image anchored at the origin.
func Clone(img image.Image) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

// FlipH mirrors img left to right.
func FlipH(img image.Image) *image.NRGBA {
	src := Clone(img)
	w, h := src.Rect.Dx(), src.Rect.Dy()
	out := image.NewNRGBA(src.Rect)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out.SetNRGBA(w-1-x, y, src.NRGBAAt(x, y))
		}
	}
	return out
}

// FlipV mirrors img top to bottom.
func FlipV(img image.Image) *image.NRGBA {
	src := Clone(img)
	w, h := src.Rect.Dx(), src.Rect.Dy()
	out := image.NewNRGBA(src.Rect)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out.SetNRGBA(x, h-1-y, src.NRGBAAt(x, y))
		}
	}
	return out
}

// Compose draws every layer over the first, in order.
func Compose(base image.Image, layers ...image.Image) *image.NRGBA {
	out := Clone(base)
	for _, l := range layers {
		draw.Draw(out, out.Bounds(), l, l.Bounds().Min, draw.Over)
	}
	return out
}
