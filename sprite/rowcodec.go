package sprite

import (
	"encoding/binary"

	"github.com/spriteconv/spriteconv/frame"
)

var le = binary.LittleEndian

// decodeFlat reads width*height pixels starting at off.
func decodeFlat(b []byte, off uint32, width, height uint16) ([]uint16, error) {
	pix := make([]uint16, int(width)*int(height))
	end := uint64(off) + uint64(len(pix))*2
	if end > uint64(len(b)) {
		return nil, ErrTruncated
	}

	p := b[off:end]
	for i := range pix {
		pix[i] = le.Uint16(p[i<<1:])
	}
	return pix, nil
}

// decodeRunLength decodes one frame given the offset of each of its rows.
// Pixels a row does not reach stay transparent.
func decodeRunLength(b []byte, rows []uint32, width, height uint16) ([]uint16, error) {
	w := int(width)
	pix := make([]uint16, w*int(height))

	for y, off := range rows {
		row := pix[y*w : (y+1)*w]
		pos := uint64(off)

		for x := 0; x < w; {
			if pos+2 > uint64(len(b)) {
				return nil, ErrTruncated
			}
			tag := le.Uint16(b[pos:])
			pos += 2

			if tag == 0 {
				break
			}

			n := int(tag >> 1)
			if tag&1 == 0 {
				x += n
				continue
			}

			if x+n > w {
				return nil, ErrCorrupt
			}
			if pos+uint64(n)*2 > uint64(len(b)) {
				return nil, ErrTruncated
			}
			for i := range row[x : x+n] {
				row[x+i] = le.Uint16(b[pos+uint64(i)<<1:])
			}
			pos += uint64(n) * 2
			x += n
		}
	}

	return pix, nil
}

func appendFlat(dst []byte, f *frame.Frame) []byte {
	for _, p := range f.Pix {
		dst = le.AppendUint16(dst, p)
	}
	return dst
}

// appendRunLength appends the rows of f to dst, base being the file offset
// of dst[0], and returns the file offset of each row. A frame with no rows
// gets the offset of its trailing tag so it still has a header entry.
func appendRunLength(dst []byte, base int, f *frame.Frame) ([]byte, []uint32) {
	offsets := make([]uint32, 0, f.Height)
	w := int(f.Width)

	for y := 0; y < int(f.Height); y++ {
		offsets = append(offsets, uint32(base+len(dst)))

		row := f.Row(y)
		for x := 0; x < w; {
			transparent := row[x] == 0

			n := 1
			for x+n < w && (row[x+n] == 0) == transparent {
				n++
			}

			if transparent {
				dst = le.AppendUint16(dst, uint16(n<<1))
			} else {
				dst = le.AppendUint16(dst, uint16(n<<1|1))
				for _, p := range row[x : x+n] {
					dst = le.AppendUint16(dst, p)
				}
			}
			x += n
		}

		dst = le.AppendUint16(dst, 0)
	}

	if len(offsets) == 0 {
		offsets = append(offsets, uint32(base+len(dst)))
	}
	dst = le.AppendUint16(dst, 0)

	return dst, offsets
}
