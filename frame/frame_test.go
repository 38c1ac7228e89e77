package frame

import (
	"image/color"
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTestFrame(w, h uint16) *Frame {
	f := New(w, h)
	for y := 0; y < int(h); y++ {
		for x := 0; x < int(w); x++ {
			// Leave a transparent diagonal so every frame has mixed runs
			if x == y {
				continue
			}
			f.Pix[y*int(w)+x] = uint16((x*2113 + y*977) | 1)
		}
	}
	return f
}

func TestIsBlank(t *testing.T) {
	assert.True(t, New(4, 3).IsBlank())
	assert.True(t, New(0, 0).IsBlank())

	f := New(4, 3)
	f.Pix[11] = 0x0001
	assert.False(t, f.IsBlank())
}

func TestMirror(t *testing.T) {
	f := &Frame{
		Width:  3,
		Height: 2,
		Pix: []uint16{
			1, 2, 3,
			4, 0, 6,
		},
	}

	m := f.Mirror()
	assert.Equal(t, []uint16{3, 2, 1, 6, 0, 4}, m.Pix)
	assert.Equal(t, []uint16{1, 2, 3, 4, 0, 6}, f.Pix, "source must not change")
}

func TestMirrorInvolution(t *testing.T) {
	for _, tc := range []struct {
		name string
		w, h uint16
	}{
		{"square", 8, 8},
		{"wide", 13, 3},
		{"tall", 2, 9},
		{"single", 1, 1},
		{"empty", 0, 0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			f := makeTestFrame(tc.w, tc.h)
			assert.True(t, f.Mirror().Mirror().Equal(f))
		})
	}
}

func TestScaleIdentity(t *testing.T) {
	f := makeTestFrame(17, 11)
	s, err := f.Scale(1)
	require.NoError(t, err)
	assert.True(t, s.Equal(f))
}

func TestScaleTransparent(t *testing.T) {
	for _, scale := range []float64{0.25, 0.5, 0.75, 1, 1.3, 2} {
		f := New(10, 7)
		s, err := f.Scale(scale)
		require.NoError(t, err)
		assert.Equal(t, uint16(math.Floor(10*scale+.5)), s.Width)
		assert.Equal(t, uint16(math.Floor(7*scale+.5)), s.Height)
		assert.True(t, s.IsBlank(), "scale %v", scale)
	}
}

func TestScaleAverage(t *testing.T) {
	for _, tc := range []struct {
		name string
		pix  []uint16
		want uint16
	}{
		{"red and blue", []uint16{0xf800, 0x001f}, 0x780f},
		{"transparent ignored", []uint16{0xf800, 0x0000}, 0xf800},
		{"all transparent", []uint16{0x0000, 0x0000}, 0x0000},
		{"green", []uint16{0x07e0, 0x07e0}, 0x07e0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			f := &Frame{Width: 2, Height: 1, Pix: tc.pix}
			s, err := f.Scale(.5)
			require.NoError(t, err)
			require.Equal(t, uint16(1), s.Width)
			require.Equal(t, uint16(1), s.Height)
			assert.Equal(t, tc.want, s.Pix[0])
		})
	}
}

func TestScaleEdgeWeights(t *testing.T) {
	pix := []uint16{0xf800, 0x001f, 0x07e0}

	for _, tc := range []struct {
		name string
		w, h uint16
		want []uint16
	}{
		// The middle pixel is half covered by each destination pixel
		{"columns weighted", 3, 1, []uint16{0xa00a, 0x054a}},
		// Rows are included whole however little they are covered
		{"rows unweighted", 1, 3, []uint16{0x780f, 0x03ef}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			f := &Frame{Width: tc.w, Height: tc.h, Pix: slices.Clone(pix)}
			s, err := f.Scale(2.0 / 3)
			require.NoError(t, err)
			assert.Equal(t, (tc.w*2+1)/3, s.Width)
			assert.Equal(t, (tc.h*2+1)/3, s.Height)
			assert.Equal(t, tc.want, s.Pix)
		})
	}
}

func TestScaleUp(t *testing.T) {
	f := &Frame{Width: 1, Height: 1, Pix: []uint16{0x1234}}
	s, err := f.Scale(2)
	require.NoError(t, err)
	assert.Equal(t, []uint16{0x1234, 0x1234, 0x1234, 0x1234}, s.Pix)
}

func TestScaleRounding(t *testing.T) {
	f := New(5, 3)
	s, err := f.Scale(.5)
	require.NoError(t, err)
	// 2.5 rounds up, 1.5 rounds up
	assert.Equal(t, uint16(3), s.Width)
	assert.Equal(t, uint16(2), s.Height)
	assert.Len(t, s.Pix, 6)
}

func TestScaleInvalid(t *testing.T) {
	f := New(2, 2)
	for _, scale := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := f.Scale(scale)
		assert.ErrorIs(t, err, ErrScale)
	}

	_, err := New(40000, 1).Scale(2)
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestPromote555(t *testing.T) {
	pix := []uint16{0x7fff, 0x001f, 0x03e0, 0x7c00, 0x0000}
	Promote555(pix)
	assert.Equal(t, []uint16{0xffdf, 0x001f, 0x07c0, 0xf800, 0x0000}, pix)
}

func TestAt(t *testing.T) {
	f := &Frame{Width: 2, Height: 1, Pix: []uint16{0x0000, 0xf800}}

	_, _, _, a := f.At(0, 0).RGBA()
	assert.Zero(t, a)

	r, g, b, a := f.At(1, 0).RGBA()
	assert.Equal(t, uint32(0xf8f8), r)
	assert.Zero(t, g)
	assert.Zero(t, b)
	assert.Equal(t, uint32(0xffff), a)

	_, _, _, a = f.At(5, 5).RGBA()
	assert.Zero(t, a)
}

func TestRGB565Model(t *testing.T) {
	assert.Equal(t, RGB565(0), RGB565Model.Convert(color.Transparent))
	assert.Equal(t, RGB565(1), RGB565Model.Convert(color.Black))
	assert.Equal(t, RGB565(0xffff), RGB565Model.Convert(color.White))
	assert.Equal(t, RGB565(0xf800), RGB565Model.Convert(color.RGBA{0xff, 0, 0, 0xff}))

	// Expanding and converting back is lossless
	for _, p := range []RGB565{0x0001, 0x1234, 0x8410, 0xffff} {
		assert.Equal(t, p, RGB565Model.Convert(color.RGBA64Model.Convert(p)))
	}
}
