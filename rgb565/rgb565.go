/*
Package rgb565 implements the 16-bit 5-6-5 packed color used by low-memory
display controllers.

A color is packed as RRRRRGGGGGGBBBBB with red in the most significant bits.
Packing truncates each 8-bit channel so the conversion is lossy.
*/
package rgb565

import "image/color"

const (
	redMask   = 0x1f
	greenMask = 0x3f
	blueMask  = 0x1f
)

// Quantize packs an 8-bit per channel RGB triple into a 5-6-5 value by
// discarding the low bits of each channel.
func Quantize(r, g, b byte) uint16 {
	return uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3)
}

// Dequantize expands a 5-6-5 value back to 8 bits per channel by linear
// rescaling. Dequantize(Quantize(r, g, b)) is generally not (r, g, b).
func Dequantize(c uint16) (r, g, b byte) {
	r = byte(uint32(c>>11&redMask) * 255 / redMask)
	g = byte(uint32(c>>5&greenMask) * 255 / greenMask)
	b = byte(uint32(c&blueMask) * 255 / blueMask)
	return
}

// Color is a packed 5-6-5 color. It implements the color.Color interface.
type Color uint16

// RGBA returns the alpha-premultiplied color, which is always opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	r8, g8, b8 := Dequantize(uint16(c))
	r = uint32(r8)
	r |= r << 8
	g = uint32(g8)
	g |= g << 8
	b = uint32(b8)
	b |= b << 8
	return r, g, b, 0xffff
}

// Model converts any color.Color to a Color. Translucent colors are
// unpremultiplied first and their alpha is then ignored.
var Model = color.ModelFunc(model)

func model(c color.Color) color.Color {
	if _, ok := c.(Color); ok {
		return c
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color(Quantize(n.R, n.G, n.B))
}
