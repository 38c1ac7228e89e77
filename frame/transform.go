package frame

import (
	"errors"
	"math"
)

var (
	// ErrScale is returned for a scale factor that is not a finite
	// positive number.
	ErrScale = errors.New("frame: invalid scale factor")
	// ErrTooLarge is returned when a scaled frame would not fit in 16-bit
	// dimensions.
	ErrTooLarge = errors.New("frame: scaled frame is too large")
)

// IsBlank reports whether every pixel is transparent.
func (f *Frame) IsBlank() bool {
	for _, p := range f.Pix {
		if p != 0 {
			return false
		}
	}
	return true
}

// Mirror returns a copy of the frame flipped left to right.
func (f *Frame) Mirror() *Frame {
	r := New(f.Width, f.Height)
	w := int(f.Width)
	for y := 0; y < int(f.Height); y++ {
		src, dst := f.Row(y), r.Row(y)
		for x, p := range src {
			dst[w-1-x] = p
		}
	}
	return r
}

// Scale returns a copy of the frame resized by scale, rounding each
// dimension half up. Every destination pixel is the area weighted average
// of the opaque source pixels it covers.
func (f *Frame) Scale(scale float64) (*Frame, error) {
	if !(scale > 0) || math.IsInf(scale, 1) {
		return nil, ErrScale
	}

	w := math.Floor(float64(f.Width)*scale + .5)
	h := math.Floor(float64(f.Height)*scale + .5)
	if w > math.MaxUint16 || h > math.MaxUint16 {
		return nil, ErrTooLarge
	}

	r := New(uint16(w), uint16(h))

	for y := 0; y < int(r.Height); y++ {
		minY := float64(y) * float64(f.Height) / h
		maxY := float64(y+1) * float64(f.Height) / h

		row := r.Row(y)
		for x := range row {
			minX := float64(x) * float64(f.Width) / w
			maxX := float64(x+1) * float64(f.Width) / w

			row[x] = f.sample(minX, minY, maxX, maxY)
		}
	}

	return r, nil
}

// sample averages the source rectangle [minX,maxX) x [minY,maxY). Only the
// horizontal edges are weighted by their partial coverage.
func (f *Frame) sample(minX, minY, maxX, maxY float64) uint16 {
	x0, y0 := int(minX), int(minY)
	w, h := int(f.Width), int(f.Height)

	// Single source pixel, copy it as is
	if x0 == int(maxX) && y0 == int(maxY) {
		return f.Pix[y0*w+x0]
	}

	var red, green, blue, total float64
	for y := y0; float64(y) < maxY && y < h; y++ {
		row := f.Row(y)
		for x := x0; float64(x) < maxX && x < w; x++ {
			p := row[x]
			if p == 0 {
				continue
			}

			weight := 1.0
			if fx := float64(x); fx < minX {
				weight = 1 - (minX - fx)
			} else if fx+1 > maxX {
				weight = maxX - fx
			}

			red += float64((p&0xf800)>>8) * weight
			green += float64((p&0x07e0)>>3) * weight
			blue += float64((p&0x001f)<<3) * weight
			total += weight
		}
	}

	if total == 0 {
		return 0
	}

	r := int(red / total)
	g := int(green / total)
	b := int(blue / total)

	return uint16((r&0xf8)<<8 | (g&0xfc)<<3 | (b&0xf8)>>3)
}
