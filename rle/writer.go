package rle

import (
	"encoding/binary"
	"io"

	"github.com/bodgit/rle565/image"
	"github.com/bodgit/rle565/memstream"
	"github.com/bodgit/rle565/rgb565"
	"github.com/pkg/errors"
)

type encoder struct {
	r io.Reader
	w io.Writer

	// The run in progress, if count is non-zero
	color uint16
	count uint16

	stats Stats

	tmp [recordSize]byte
}

func (e *encoder) flush() error {
	binary.LittleEndian.PutUint16(e.tmp[0:], e.count)
	binary.LittleEndian.PutUint16(e.tmp[2:], e.color)
	if _, err := e.w.Write(e.tmp[:]); err != nil {
		return errors.WithStack(err)
	}
	e.stats.Records++
	e.stats.Pixels += uint64(e.count)
	return nil
}

func (e *encoder) encode() error {
	var px [pixelSize]byte
	for {
		_, err := io.ReadFull(e.r, px[:])
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			// A trailing partial pixel is dropped
			break
		}
		if err != nil {
			return errors.WithStack(err)
		}

		c := rgb565.Quantize(px[0], px[1], px[2])
		if e.count != 0 {
			if c == e.color && e.count != maxRun {
				e.count++
				continue
			}
			if err := e.flush(); err != nil {
				return err
			}
		}
		e.color, e.count = c, 1
	}

	if e.count != 0 {
		return e.flush()
	}

	return nil
}

// Encode writes the RGB888 image m to w as RLE565 records.
func Encode(w io.Writer, m *image.Image) (Stats, error) {
	if m.Format != image.RGB888 {
		return Stats{}, image.ErrUnsupportedFormat
	}
	if err := m.Check(); err != nil {
		return Stats{}, err
	}

	r, err := memstream.Open(m.Pix, m.Size)
	if err != nil {
		return Stats{}, errors.WithStack(err)
	}
	defer r.Close()

	e := encoder{r: r, w: w}
	if err := e.encode(); err != nil {
		return e.stats, err
	}

	return e.stats, nil
}

// EncodeImage encodes the RGB888 image m and returns the result as a new
// RLE565 image. The stream's byte limit is applied to the output if limit is
// greater than zero.
func EncodeImage(m *image.Image, limit int) (*image.Image, Stats, error) {
	w := memstream.New()
	w.SetLimit(limit)
	defer w.Close()

	stats, err := Encode(w, m)
	if err != nil {
		return nil, stats, err
	}

	o, err := image.NewRLE(w.Bytes(), m.Width, m.Height)
	if err != nil {
		return nil, stats, errors.WithStack(err)
	}

	return o, stats, nil
}
