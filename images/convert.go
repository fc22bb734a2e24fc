package images

import (
	"image"
	"image/color"
	"image/draw"
)

// FromImage converts any image.Image to an 8-bit single-band image using the
// standard luminance weights. *image.Gray sources are copied row by row.
func FromImage(img image.Image) *Gray[uint8] {
	b := img.Bounds()
	out := NewGray[uint8](b.Dx(), b.Dy())

	if g, ok := img.(*image.Gray); ok {
		for y := 0; y < out.Height; y++ {
			off := g.PixOffset(b.Min.X, b.Min.Y+y)
			copy(out.Row(y), g.Pix[off:off+out.Width])
		}
		return out
	}

	for y := 0; y < out.Height; y++ {
		row := out.Row(y)
		for x := range row {
			row[x] = color.GrayModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.Gray).Y
		}
	}
	return out
}

// ToImage copies an 8-bit single-band image into a new *image.Gray.
func ToImage(g *Gray[uint8]) *image.Gray {
	out := image.NewGray(image.Rect(0, 0, g.Width, g.Height))
	for y := 0; y < g.Height; y++ {
		copy(out.Pix[y*out.Stride:y*out.Stride+g.Width], g.Row(y))
	}
	return out
}

// PlanarFromImage splits an image into R, G, B and A planes of 8-bit
// non-premultiplied samples.
func PlanarFromImage(img image.Image) *Planar[uint8] {
	b := img.Bounds()
	nrgba, ok := img.(*image.NRGBA)
	if !ok {
		nrgba = image.NewNRGBA(b)
		draw.Draw(nrgba, b, img, b.Min, draw.Src)
	}

	p := NewPlanar[uint8](b.Dx(), b.Dy(), 4)
	for y := 0; y < b.Dy(); y++ {
		off := nrgba.PixOffset(b.Min.X, b.Min.Y+y)
		for x := 0; x < b.Dx(); x++ {
			px := nrgba.Pix[off+x*4 : off+x*4+4 : off+x*4+4]
			for c := 0; c < 4; c++ {
				p.Bands[c].Set(x, y, px[c])
			}
		}
	}
	return p
}

// PlanarToImage interleaves the first four planes of p into an *image.NRGBA.
// A missing alpha plane is treated as opaque; a single plane is replicated to
// R, G and B.
func PlanarToImage(p *Planar[uint8]) *image.NRGBA {
	w, h := p.Dims()
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	if p.NumBands() == 0 {
		return out
	}

	band := func(c int) *Gray[uint8] {
		if p.NumBands() < 3 {
			return p.Bands[0]
		}
		return p.Bands[c]
	}
	for y := 0; y < h; y++ {
		off := y * out.Stride
		for x := 0; x < w; x++ {
			px := out.Pix[off+x*4 : off+x*4+4 : off+x*4+4]
			px[0] = band(0).At(x, y)
			px[1] = band(1).At(x, y)
			px[2] = band(2).At(x, y)
			px[3] = 255
			if p.NumBands() >= 4 {
				px[3] = p.Bands[3].At(x, y)
			}
		}
	}
	return out
}
