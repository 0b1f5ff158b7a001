package image

import (
	"fmt"
	"image"
	"image/draw"
	"io"

	// Register the decoders the pipeline accepts
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// FromImage copies any image.Image into a new RGBA8888 image with its
// top-left corner at (0, 0). Color values are not premultiplied.
func FromImage(src image.Image) *Image {
	b := src.Bounds()

	nrgba, ok := src.(*image.NRGBA)
	if !ok || nrgba.Stride != b.Dx()*4 {
		nrgba = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(nrgba, nrgba.Bounds(), src, b.Min, draw.Src)
	}

	m := &Image{
		Pix:    make([]byte, b.Dx()*b.Dy()*4),
		Width:  b.Dx(),
		Height: b.Dy(),
		Format: RGBA8888,
	}
	m.Size = copy(m.Pix, nrgba.Pix)

	return m
}

// Decode reads an image in any registered format from r and returns it as
// RGBA8888. Any failure is reported as ErrDecodeFailed.
func Decode(r io.Reader) (*Image, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeFailed, err)
	}
	return FromImage(src), nil
}
