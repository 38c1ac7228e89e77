package frame

import "image/color"

// RGB565 is a packed 5-6-5 pixel. The zero value is transparent.
type RGB565 uint16

// RGBA implements color.Color. Each channel is expanded to 8 bits the same
// way the rescaler unpacks it, so the low bits are always zero.
func (c RGB565) RGBA() (r, g, b, a uint32) {
	if c == 0 {
		return 0, 0, 0, 0
	}
	r = uint32(c&0xf800) >> 8
	g = uint32(c&0x07e0) >> 3
	b = uint32(c&0x001f) << 3
	return r | r<<8, g | g<<8, b | b<<8, 0xffff
}

// RGB565Model converts colours to RGB565. Anything less than half opaque
// becomes transparent; opaque black, which would collide with the
// transparent value, becomes the darkest blue instead.
var RGB565Model = color.ModelFunc(rgb565Model)

func rgb565Model(c color.Color) color.Color {
	if _, ok := c.(RGB565); ok {
		return c
	}
	r, g, b, a := c.RGBA()
	if a < 0x8000 {
		return RGB565(0)
	}
	if a != 0xffff {
		r = r * 0xffff / a
		g = g * 0xffff / a
		b = b * 0xffff / a
	}
	p := RGB565(r>>11<<11 | g>>10<<5 | b>>11)
	if p == 0 {
		p = 1
	}
	return p
}
