package rle565

import (
	goimage "image"
	"image/color"
	"image/draw"

	"github.com/bodgit/rle565/image"
	"github.com/ericpauley/go-quantize/quantize"
)

// opaque presents an RGBA8888 image with every pixel fully opaque so that
// the palette is built from, and mapped on, the straight RGB values rather
// than premultiplied ones.
type opaque struct {
	*image.Image
}

func (o opaque) ColorModel() color.Model {
	return color.NRGBAModel
}

func (o opaque) At(x, y int) color.Color {
	c := color.NRGBAModel.Convert(o.Image.At(x, y)).(color.NRGBA)
	c.A = 0xff
	return c
}

// reduce maps m onto a median cut palette of at most n colors. Fewer
// distinct colors means longer runs and smaller output. Alpha is not
// preserved; it is discarded by the next stage anyway.
func reduce(m *image.Image, n int) (*image.Image, error) {
	if m.Format != image.RGBA8888 {
		return nil, image.ErrUnsupportedFormat
	}

	b := m.Bounds()
	if b.Empty() {
		return m, nil
	}

	src := opaque{m}

	q := quantize.MedianCutQuantizer{}
	pm := goimage.NewPaletted(b, q.Quantize(make(color.Palette, 0, n), src))
	draw.Draw(pm, b, src, b.Min, draw.Src)

	return image.FromImage(pm), nil
}
