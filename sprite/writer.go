package sprite

import (
	"fmt"
	"io"
	"math"

	"github.com/spriteconv/spriteconv/frame"
)

// layout returns the size of the header block, including the file header,
// needed to describe frames in format.
func layout(frames []*frame.Frame, format Format) int {
	n := fileHeaderSize
	for _, f := range frames {
		n += frameRecordSize
		if format == FormatC16 && f.Height > 1 {
			n += (int(f.Height) - 1) * rowOffsetSize
		}
	}
	return n
}

// writeBodies encodes the pixel data of every frame, assuming the first
// byte lands at file offset start. It returns the encoded data and the
// offset table; one offset per S16 frame, one per row for a C16 frame.
func writeBodies(frames []*frame.Frame, format Format, start int) ([]byte, [][]uint32, error) {
	var body []byte
	table := make([][]uint32, 0, len(frames))

	for i, f := range frames {
		var offsets []uint32
		switch format {
		case FormatC16:
			if f.Width > maxRunLength {
				return nil, nil, fmt.Errorf("frame %d: %w: %d pixels wide", i, ErrTooLarge, f.Width)
			}
			body, offsets = appendRunLength(body, start, f)
		default:
			offsets = []uint32{uint32(start + len(body))}
			body = appendFlat(body, f)
		}

		if uint64(start+len(body)) > math.MaxUint32 {
			return nil, nil, fmt.Errorf("%w: more than 4GiB of pixel data", ErrTooLarge)
		}
		table = append(table, offsets)
	}

	return body, table, nil
}

// writeHeader writes the file header and one record per frame using the
// offsets produced by writeBodies.
func writeHeader(w io.Writer, format Format, frames []*frame.Frame, table [][]uint32) error {
	b := make([]byte, 0, layout(frames, format))

	b = le.AppendUint32(b, format.flags())
	b = le.AppendUint16(b, uint16(len(frames)))

	for i, f := range frames {
		b = le.AppendUint32(b, table[i][0])
		b = le.AppendUint16(b, f.Width)
		b = le.AppendUint16(b, f.Height)
		for _, off := range table[i][1:] {
			b = le.AppendUint32(b, off)
		}
	}

	_, err := w.Write(b)
	return err
}

func encode(w io.Writer, frames []*frame.Frame, format Format) error {
	if len(frames) > math.MaxUint16 {
		return fmt.Errorf("%w: %d frames", ErrTooLarge, len(frames))
	}

	body, table, err := writeBodies(frames, format, layout(frames, format))
	if err != nil {
		return err
	}

	if err := writeHeader(w, format, frames, table); err != nil {
		return err
	}

	_, err = w.Write(body)
	return err
}
