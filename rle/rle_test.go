package rle

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/bodgit/rle565/image"
	"github.com/bodgit/rle565/memstream"
	"github.com/bodgit/rle565/rgb565"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRGB(t *testing.T, width, height int, pixels ...[3]byte) *image.Image {
	m, err := image.New(width, height, image.RGB888)
	require.NoError(t, err)
	for i := 0; i < width*height; i++ {
		copy(m.Pix[i*3:], pixels[i%len(pixels)][:])
	}
	return m
}

func records(t *testing.T, m *image.Image) []Record {
	r, err := ReadRecords(bytes.NewReader(m.Bytes()))
	require.NoError(t, err)
	return r
}

var (
	red   = [3]byte{0xff, 0x00, 0x00}
	green = [3]byte{0x00, 0xff, 0x00}
	blue  = [3]byte{0x00, 0x00, 0xff}
)

func TestEncodeImage(t *testing.T) {
	tables := []struct {
		name          string
		width, height int
		pixels        [][3]byte
		want          []Record
	}{
		{
			"single pixel",
			1, 1,
			[][3]byte{red},
			[]Record{{1, 0xf800}},
		},
		{
			"solid",
			4, 4,
			[][3]byte{green},
			[]Record{{16, 0x07e0}},
		},
		{
			"alternating",
			4, 1,
			[][3]byte{red, blue},
			[]Record{{1, 0xf800}, {1, 0x001f}, {1, 0xf800}, {1, 0x001f}},
		},
		{
			"quantized together",
			3, 1,
			[][3]byte{{0xf8, 0xfc, 0xf8}, {0xff, 0xff, 0xff}, {0xfa, 0xfd, 0xf9}},
			[]Record{{3, 0xffff}},
		},
		{
			"maximum run",
			70000, 1,
			[][3]byte{blue},
			[]Record{{65535, 0x001f}, {4465, 0x001f}},
		},
		{
			"exact maximum run",
			65535, 1,
			[][3]byte{blue},
			[]Record{{65535, 0x001f}},
		},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			m := newRGB(t, table.width, table.height, table.pixels...)

			o, stats, err := EncodeImage(m, 0)
			require.NoError(t, err)
			assert.Equal(t, image.RLE565, o.Format)
			assert.Equal(t, len(table.want)*recordSize, o.Size)
			assert.Equal(t, table.want, records(t, o))
			assert.Equal(t, len(table.want), stats.Records)
			assert.Equal(t, uint64(table.width*table.height), stats.Pixels)
		})
	}
}

func TestEncodeByteOrder(t *testing.T) {
	m := newRGB(t, 258, 1, [3]byte{0x12, 0x34, 0x56})

	b := new(bytes.Buffer)
	_, err := Encode(b, m)
	require.NoError(t, err)

	c := rgb565.Quantize(0x12, 0x34, 0x56)
	assert.Equal(t, []byte{0x02, 0x01, byte(c), byte(c >> 8)}, b.Bytes())
}

func TestEncodeEmpty(t *testing.T) {
	m, err := image.New(0, 0, image.RGB888)
	require.NoError(t, err)

	o, stats, err := EncodeImage(m, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, o.Size)
	assert.Empty(t, o.Bytes())
	assert.Equal(t, Stats{}, stats)
}

func TestEncodeConservation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 20; i++ {
		width, height := rng.Intn(64)+1, rng.Intn(64)+1
		m, err := image.New(width, height, image.RGB888)
		require.NoError(t, err)

		// Few distinct values so that runs actually form
		for j := range m.Pix {
			m.Pix[j] = byte(rng.Intn(2)) << 7
		}

		o, _, err := EncodeImage(m, 0)
		require.NoError(t, err)
		assert.Equal(t, uint64(width*height), Summarize(records(t, o)).Pixels)
	}
}

func TestEncodeSizeMismatch(t *testing.T) {
	pix := []byte{0xff, 0, 0, 0xff, 0, 0, 0xff, 0}

	tables := []struct {
		name string
		pix  []byte
		size int
	}{
		{"size unset", pix[:6], 0},
		{"trailing partial pixel", pix, 8},
		{"short buffer", pix[:3], 3},
		{"size beyond buffer", pix[:3], 6},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			m := &image.Image{
				Pix:    table.pix,
				Width:  2,
				Height: 1,
				Format: image.RGB888,
				Size:   table.size,
			}

			o, _, err := EncodeImage(m, 0)
			assert.Equal(t, image.ErrCorrupt, err)
			assert.Nil(t, o)
		})
	}
}

func TestEncodeUnsupportedFormat(t *testing.T) {
	m, err := image.New(1, 1, image.RGBA8888)
	require.NoError(t, err)

	_, _, err = EncodeImage(m, 0)
	assert.Equal(t, image.ErrUnsupportedFormat, err)
}

func TestEncodeLimit(t *testing.T) {
	m := newRGB(t, 3, 1, red, green, blue)

	_, _, err := EncodeImage(m, 8)
	assert.ErrorIs(t, err, memstream.ErrAllocationFailed)

	_, _, err = EncodeImage(m, 12)
	assert.NoError(t, err)
}

func TestReadRecords(t *testing.T) {
	r, err := ReadRecords(bytes.NewReader([]byte{0x03, 0x00, 0x1f, 0x00, 0xff, 0xff, 0x00, 0xf8}))
	require.NoError(t, err)
	assert.Equal(t, []Record{{3, 0x001f}, {65535, 0xf800}}, r)
	assert.Equal(t, Stats{Records: 2, Pixels: 65538}, Summarize(r))

	_, err = ReadRecords(bytes.NewReader([]byte{0x03, 0x00, 0x1f}))
	assert.ErrorIs(t, err, ErrCorrupt)

	_, err = ReadRecords(bytes.NewReader([]byte{0x00, 0x00, 0x1f, 0x00}))
	assert.ErrorIs(t, err, ErrCorrupt)

	r, err = ReadRecords(bytes.NewReader(nil))
	require.NoError(t, err)
	assert.Empty(t, r)
}

func TestRecordMarshalBinary(t *testing.T) {
	b, err := Record{Count: 0x0102, Color: 0xf800}.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x02, 0x01, 0x00, 0xf8}, b)
}
