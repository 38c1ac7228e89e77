/*
Package frame implements a single decoded sprite frame.

A frame is a width by height bitmap stored row-major as packed 16-bit
5-6-5 pixels, five bits of red, six bits of green and five bits of blue.
The pixel value zero is reserved and means fully transparent; every other
value is opaque.

Frames are treated as immutable once populated: every transform returns a
new frame, which lets a sprite sheet reference the same frame from more
than one position.
*/
package frame

import (
	"image"
	"image/color"
)

// Frame is one decoded bitmap.
type Frame struct {
	Width  uint16
	Height uint16

	// Pix holds Width*Height pixels in row-major order.
	Pix []uint16
}

// New returns a fully transparent frame of the given size.
func New(width, height uint16) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Pix:    make([]uint16, int(width)*int(height)),
	}
}

// Equal reports whether both frames have the same size and pixels.
func (f *Frame) Equal(o *Frame) bool {
	if f.Width != o.Width || f.Height != o.Height || len(f.Pix) != len(o.Pix) {
		return false
	}
	for i := range f.Pix {
		if f.Pix[i] != o.Pix[i] {
			return false
		}
	}
	return true
}

// Row returns the pixels of row y.
func (f *Frame) Row(y int) []uint16 {
	w := int(f.Width)
	return f.Pix[y*w : (y+1)*w]
}

// Bounds implements image.Image.
func (f *Frame) Bounds() image.Rectangle {
	return image.Rect(0, 0, int(f.Width), int(f.Height))
}

// ColorModel implements image.Image.
func (f *Frame) ColorModel() color.Model {
	return RGB565Model
}

// At implements image.Image. Transparent pixels, and anything outside the
// frame, have zero alpha.
func (f *Frame) At(x, y int) color.Color {
	if !(image.Point{x, y}.In(f.Bounds())) {
		return RGB565(0)
	}
	return RGB565(f.Pix[y*int(f.Width)+x])
}

// Promote555 widens 5-5-5 pixels to 5-6-5 in place. It must be applied at
// most once to a buffer.
func Promote555(pix []uint16) {
	for i, p := range pix {
		pix[i] = (p&0xffe0)<<1 | p&0x001f
	}
}
