package preview

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/png"
	"io"

	"github.com/ericpauley/go-quantize/quantize"
	"github.com/spriteconv/spriteconv/frame"
	"golang.org/x/image/bmp"
)

const maxColors = 256

// EncodePNG writes f to w as a PNG with an alpha channel.
func EncodePNG(w io.Writer, f *frame.Frame) error {
	if len(f.Pix) == 0 {
		return errEmptyFrame
	}
	enc := png.Encoder{
		CompressionLevel: png.BestCompression,
	}
	return enc.Encode(w, f)
}

// EncodeBMP writes f to w as a BMP. Transparent pixels come out black.
func EncodeBMP(w io.Writer, f *frame.Frame) error {
	if len(f.Pix) == 0 {
		return errEmptyFrame
	}
	return bmp.Encode(w, f)
}

func paletted(f *frame.Frame) *image.Paletted {
	// Keep the GIF encoder happy, it needs at least one pixel
	if len(f.Pix) == 0 {
		return image.NewPaletted(image.Rect(0, 0, 1, 1), color.Palette{color.Transparent})
	}

	b := f.Bounds()

	p := make(color.Palette, 1, maxColors)
	p[0] = color.Transparent

	q := quantize.MedianCutQuantizer{}
	pm := image.NewPaletted(b, q.Quantize(p, f))
	draw.Draw(pm, b, f, b.Min, draw.Src)

	return pm
}

// EncodeGIF writes frames to w as an animated GIF, delay being the time
// each frame is shown in hundredths of a second. Frames are anchored to the
// top-left corner of a canvas big enough for the largest of them.
func EncodeGIF(w io.Writer, frames []*frame.Frame, delay int) error {
	if len(frames) == 0 {
		return errors.New("preview: no frames")
	}

	g := gif.GIF{
		Image:    make([]*image.Paletted, 0, len(frames)),
		Delay:    make([]int, 0, len(frames)),
		Disposal: make([]byte, 0, len(frames)),
	}

	for _, f := range frames {
		pm := paletted(f)
		g.Image = append(g.Image, pm)
		g.Delay = append(g.Delay, delay)
		g.Disposal = append(g.Disposal, gif.DisposalBackground)

		g.Config.Width = max(g.Config.Width, pm.Rect.Dx())
		g.Config.Height = max(g.Config.Height, pm.Rect.Dy())
	}

	return gif.EncodeAll(w, &g)
}
