package catalog

import (
	"encoding/binary"
	"errors"

	"github.com/spriteconv/spriteconv/frame"
)

// ThumbnailSize is the largest width or height of a stored thumbnail.
const ThumbnailSize = 64

var errBadThumbnail = errors.New("catalog: invalid thumbnail data")

// The uncompressed blob is the width and height as little-endian uint16s
// followed by the pixels.
const thumbnailHeaderSize = 4

func (db *DB) encodeThumbnail(frames []*frame.Frame) ([]byte, error) {
	var src *frame.Frame
	for _, f := range frames {
		if !f.IsBlank() {
			src = f
			break
		}
	}
	if src == nil {
		return nil, nil
	}

	if longest := max(src.Width, src.Height); longest > ThumbnailSize {
		var err error
		if src, err = src.Scale(float64(ThumbnailSize) / float64(longest)); err != nil {
			return nil, err
		}
	}

	b := make([]byte, 0, thumbnailHeaderSize+len(src.Pix)*2)
	b = binary.LittleEndian.AppendUint16(b, src.Width)
	b = binary.LittleEndian.AppendUint16(b, src.Height)
	for _, p := range src.Pix {
		b = binary.LittleEndian.AppendUint16(b, p)
	}

	return db.enc.EncodeAll(b, nil), nil
}

// Thumbnail returns the thumbnail stored with e, or nil if every frame of
// the sheet was blank.
func (db *DB) Thumbnail(e *Entry) (*frame.Frame, error) {
	if len(e.thumbnail) == 0 {
		return nil, nil
	}

	b, err := db.dec.DecodeAll(e.thumbnail, nil)
	if err != nil {
		return nil, err
	}
	if len(b) < thumbnailHeaderSize {
		return nil, errBadThumbnail
	}

	f := frame.New(binary.LittleEndian.Uint16(b), binary.LittleEndian.Uint16(b[2:]))
	b = b[thumbnailHeaderSize:]
	if len(b) != len(f.Pix)*2 {
		return nil, errBadThumbnail
	}
	for i := range f.Pix {
		f.Pix[i] = binary.LittleEndian.Uint16(b[i*2:])
	}

	return f, nil
}
