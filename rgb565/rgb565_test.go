package rgb565

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuantize(t *testing.T) {
	tables := []struct {
		r, g, b byte
		want    uint16
	}{
		{0x00, 0x00, 0x00, 0x0000},
		{0xff, 0xff, 0xff, 0xffff},
		{0xff, 0x00, 0x00, 0xf800},
		{0x00, 0xff, 0x00, 0x07e0},
		{0x00, 0x00, 0xff, 0x001f},
		{0x07, 0x03, 0x07, 0x0000},
		{0x08, 0x04, 0x08, 0x0821},
	}

	for _, table := range tables {
		assert.Equal(t, table.want, Quantize(table.r, table.g, table.b), "rgb(%d, %d, %d)", table.r, table.g, table.b)
	}
}

func TestQuantizeFields(t *testing.T) {
	for r := 0; r < 256; r += 3 {
		for g := 0; g < 256; g += 5 {
			for b := 0; b < 256; b += 7 {
				c := Quantize(byte(r), byte(g), byte(b))
				if c>>11 != uint16(r>>3) || c>>5&0x3f != uint16(g>>2) || c&0x1f != uint16(b>>3) {
					t.Fatalf("Quantize(%d, %d, %d) = %#04x", r, g, b, c)
				}
			}
		}
	}
}

func TestDequantize(t *testing.T) {
	tables := []struct {
		c       uint16
		r, g, b byte
	}{
		{0x0000, 0, 0, 0},
		{0xffff, 255, 255, 255},
		{0xf800, 255, 0, 0},
		{0x07e0, 0, 255, 0},
		{0x001f, 0, 0, 255},
		{0x0821, 8, 4, 8},
	}

	for _, table := range tables {
		r, g, b := Dequantize(table.c)
		assert.Equal(t, []byte{table.r, table.g, table.b}, []byte{r, g, b}, "%#04x", table.c)
	}
}

func TestRoundTripIsLossy(t *testing.T) {
	r, g, b := Dequantize(Quantize(0x12, 0x34, 0x56))
	assert.NotEqual(t, []byte{0x12, 0x34, 0x56}, []byte{r, g, b})

	// Quantizing the expanded value is stable
	assert.Equal(t, Quantize(0x12, 0x34, 0x56), Quantize(r, g, b))
}

func TestModel(t *testing.T) {
	c := Model.Convert(color.RGBA{0xff, 0x80, 0x00, 0xff})
	assert.Equal(t, Color(0xfc00), c)

	// Alpha is ignored rather than darkening the color
	assert.Equal(t, Color(0xf800), Model.Convert(color.NRGBA{0xff, 0x00, 0x00, 0x80}))
	assert.Equal(t, Color(0xf800), Model.Convert(color.NRGBA{0xff, 0x00, 0x00, 0x00}))
	assert.Equal(t, Color(0xf800), Model.Convert(color.RGBA{0x80, 0x00, 0x00, 0x80}))

	// Already converted colors are returned untouched
	assert.Equal(t, Color(0x1234), Model.Convert(Color(0x1234)))

	r, g, b, a := Color(0xffff).RGBA()
	assert.Equal(t, []uint32{0xffff, 0xffff, 0xffff, 0xffff}, []uint32{r, g, b, a})
}
