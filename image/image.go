/*
Package image implements the raster container passed between the stages of
the RLE565 conversion pipeline.

An Image holds a byte buffer tagged with its pixel format. Fixed-stride
formats store pixels row-major with no padding, so the buffer is exactly
Width * Height * Stride bytes long. RLE565 images have no stride and carry
their valid length in Size, which is always a multiple of the four byte
record size.
*/
package image

import (
	"errors"
	"image"
	"image/color"

	"github.com/bodgit/rle565/rgb565"
)

var (
	// ErrUnsupportedFormat is returned when a stage receives an image in a
	// format it does not handle.
	ErrUnsupportedFormat = errors.New("image: unsupported format")
	// ErrInvalidSize is returned for negative or overflowing dimensions.
	ErrInvalidSize = errors.New("image: invalid size")
	// ErrCorrupt is returned when a buffer length does not match its format.
	ErrCorrupt = errors.New("image: buffer length does not match format")
	// ErrDecodeFailed is returned when the input cannot be decoded.
	ErrDecodeFailed = errors.New("image: decode failed")
)

// RecordSize is the size in bytes of one RLE565 record; a 16-bit run length
// followed by a 16-bit packed color.
const RecordSize = 4

// Format identifies the pixel layout of an Image.
type Format int

// Supported formats. The values match the on-disk enumeration used by the
// original converter.
const (
	RGB888 Format = iota
	RGBA8888
	RGB565
	RLE565
	Unknown
)

var formatNames = map[Format]string{
	RGB888:   "RGB888",
	RGBA8888: "RGBA8888",
	RGB565:   "RGB565",
	RLE565:   "RLE565",
	Unknown:  "Unknown",
}

func (f Format) String() string {
	if s, ok := formatNames[f]; ok {
		return s
	}
	return formatNames[Unknown]
}

// Stride returns the number of bytes per pixel, or zero if the format has no
// fixed stride.
func (f Format) Stride() int {
	switch f {
	case RGBA8888:
		return 4
	case RGB888:
		return 3
	case RGB565:
		return 2
	default:
		return 0
	}
}

// Image is a raster in one of the supported formats.
type Image struct {
	Pix    []byte
	Width  int
	Height int
	Format Format
	// Size is the number of valid bytes in Pix
	Size int
}

func pixels(width, height int) (int, error) {
	if width < 0 || height < 0 {
		return 0, ErrInvalidSize
	}
	if width > 0 && height > int(^uint(0)>>1)/RecordSize/width {
		return 0, ErrInvalidSize
	}
	return width * height, nil
}

// New allocates a zeroed image of the given dimensions in a fixed-stride
// format.
func New(width, height int, format Format) (*Image, error) {
	stride := format.Stride()
	if stride == 0 {
		return nil, ErrUnsupportedFormat
	}
	n, err := pixels(width, height)
	if err != nil {
		return nil, err
	}
	return &Image{
		Pix:    make([]byte, n*stride),
		Width:  width,
		Height: height,
		Format: format,
		Size:   n * stride,
	}, nil
}

// NewRLE adopts b as the buffer of an RLE565 image. The dimensions are not
// recorded in the format so must be supplied out of band.
func NewRLE(b []byte, width, height int) (*Image, error) {
	if _, err := pixels(width, height); err != nil {
		return nil, err
	}
	if len(b)%RecordSize != 0 {
		return nil, ErrCorrupt
	}
	return &Image{
		Pix:    b,
		Width:  width,
		Height: height,
		Format: RLE565,
		Size:   len(b),
	}, nil
}

// Len returns the raw byte length of the image for its format.
func (m *Image) Len() int {
	if stride := m.Format.Stride(); stride > 0 {
		return m.Width * m.Height * stride
	}
	return m.Size
}

// Check reports ErrCorrupt if the buffer does not hold exactly the bytes the
// format and dimensions call for.
func (m *Image) Check() error {
	if _, err := pixels(m.Width, m.Height); err != nil {
		return err
	}
	switch {
	case m.Size < 0 || m.Size > len(m.Pix):
		return ErrCorrupt
	case m.Format.Stride() > 0 && m.Size != m.Len():
		return ErrCorrupt
	case m.Format == RLE565 && m.Size%RecordSize != 0:
		return ErrCorrupt
	}
	return nil
}

// Bytes returns the valid bytes of the image buffer.
func (m *Image) Bytes() []byte {
	return m.Pix[:m.Size]
}

// Bounds implements the image.Image interface.
func (m *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.Width, m.Height)
}

// ColorModel implements the image.Image interface.
func (m *Image) ColorModel() color.Model {
	switch m.Format {
	case RGBA8888:
		return color.NRGBAModel
	case RGB565:
		return rgb565.Model
	default:
		return color.RGBAModel
	}
}

// At implements the image.Image interface. Pixels outside the bounds, and
// any pixel of an image without a fixed stride, are transparent black.
func (m *Image) At(x, y int) color.Color {
	stride := m.Format.Stride()
	if stride == 0 || !(image.Point{x, y}.In(m.Bounds())) {
		return color.RGBA{}
	}
	i := (y*m.Width + x) * stride
	if i+stride > m.Size {
		return color.RGBA{}
	}
	p := m.Pix[i : i+stride : i+stride]
	switch m.Format {
	case RGBA8888:
		return color.NRGBA{p[0], p[1], p[2], p[3]}
	case RGB888:
		return color.RGBA{p[0], p[1], p[2], 0xff}
	default:
		return rgb565.Color(uint16(p[0]) | uint16(p[1])<<8)
	}
}
