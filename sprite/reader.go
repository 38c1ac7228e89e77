package sprite

import (
	"fmt"
	"io"

	"github.com/spriteconv/spriteconv/frame"
)

type decoder struct {
	b      []byte
	format Format

	flags  uint32
	frames []*frame.Frame
}

func checkFlags(flags uint32, format Format) error {
	if flags&^flagMask != 0 {
		return fmt.Errorf("%w: unrecognised flags %#08x", ErrFormatMismatch, flags)
	}
	if (flags&flagRunLength != 0) != (format == FormatC16) {
		return fmt.Errorf("%w: expected %s layout", ErrFormatMismatch, format)
	}
	return nil
}

// rowOffsets returns the row offsets of a C16 record whose first offset
// has already been read, and the position after the record.
func (d *decoder) rowOffsets(pos int, first uint32, height uint16) ([]uint32, int, error) {
	if height == 0 {
		return nil, pos, nil
	}

	rows := make([]uint32, height)
	rows[0] = first

	end := pos + (int(height)-1)*rowOffsetSize
	if end > len(d.b) {
		return nil, 0, ErrTruncated
	}
	for i := 1; i < len(rows); i++ {
		rows[i] = le.Uint32(d.b[pos:])
		pos += rowOffsetSize
	}
	return rows, pos, nil
}

func (d *decoder) decode() error {
	if len(d.b) < fileHeaderSize {
		return ErrTruncated
	}

	d.flags = le.Uint32(d.b)
	if err := checkFlags(d.flags, d.format); err != nil {
		return err
	}

	count := int(le.Uint16(d.b[4:]))
	if count == 0 {
		return fmt.Errorf("%w: no frames", ErrCorrupt)
	}

	d.frames = make([]*frame.Frame, 0, count)

	pos := fileHeaderSize
	for i := 0; i < count; i++ {
		if pos+frameRecordSize > len(d.b) {
			return ErrTruncated
		}
		off := le.Uint32(d.b[pos:])
		width := le.Uint16(d.b[pos+4:])
		height := le.Uint16(d.b[pos+6:])
		pos += frameRecordSize

		var (
			pix []uint16
			err error
		)
		switch d.format {
		case FormatC16:
			var rows []uint32
			if rows, pos, err = d.rowOffsets(pos, off, height); err != nil {
				return err
			}
			pix, err = decodeRunLength(d.b, rows, width, height)
		default:
			pix, err = decodeFlat(d.b, off, width, height)
		}
		if err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}

		if d.flags&flagRGB565 == 0 {
			frame.Promote555(pix)
		}

		d.frames = append(d.frames, &frame.Frame{
			Width:  width,
			Height: height,
			Pix:    pix,
		})
	}

	return nil
}

// Decode reads a whole sprite sheet in the given layout from r. The
// returned sheet has no name or body part; Open fills those in from the
// path.
func Decode(r io.Reader, format Format) (*Sheet, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	d := decoder{
		b:      b,
		format: format,
	}
	if err := d.decode(); err != nil {
		return nil, err
	}

	return &Sheet{
		Format:    format,
		HighColor: d.flags&flagRGB565 != 0,
		Frames:    d.frames,
	}, nil
}
