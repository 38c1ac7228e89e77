/*
Package sprite implements a decoder and encoder for C16 and S16 sprite
sheets.

Both formats start with a 4 byte flags field and a 2 byte frame count
followed by one header record per frame, all little-endian. Bit 0 of the
flags is set when pixels are stored as 5-6-5 rather than 5-5-5 and bit 1 is
set for the run-length (C16) layout; no other bits may be set.

An S16 frame record is a 4 byte offset to the pixel data and the 2 byte
width and height. The pixel data is width*height 16-bit pixels with no
compression, so each record is 8 bytes.

A C16 frame record is the offset of the first row, the width and height,
then another height-1 4 byte offsets, one for each remaining row. Each row
is a sequence of 16-bit tags: zero ends the row, an odd tag is followed by
tag>>1 opaque pixels and an even tag skips tag>>1 transparent pixels. An
extra zero tag follows the last row of every frame.

Body part sheets, recognised by their filename, group frames into poses;
16 frames per group in C16 files and 10 in S16 files. Converting between
the two inserts or drops frames so the groups line up.
*/
package sprite

const (
	fileHeaderSize  = 6
	frameRecordSize = 8
	rowOffsetSize   = 4

	c16GroupSize = 16
	s16GroupSize = 10

	// Longest run a single tag can describe
	maxRunLength = 0x7fff
)

const (
	flagRGB565    = 1 << 0
	flagRunLength = 1 << 1
	flagMask      = flagRGB565 | flagRunLength
)
