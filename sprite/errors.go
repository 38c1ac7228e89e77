package sprite

import "errors"

var (
	// ErrPathTooShort is returned for a path that cannot hold a sprite
	// filename and extension.
	ErrPathTooShort = errors.New("sprite: path too short to be a sprite file")
	// ErrFormatMismatch is returned when the header flags disagree with
	// the file extension or contain unrecognised bits.
	ErrFormatMismatch = errors.New("sprite: header does not match a c16 or s16 file")
	// ErrTruncated is returned when the file is shorter than its header
	// promises.
	ErrTruncated = errors.New("sprite: not enough image data")
	// ErrCorrupt is returned for structurally invalid pixel data.
	ErrCorrupt = errors.New("sprite: corrupt image data")
	// ErrTooLarge is returned when a sheet cannot be represented on disk.
	ErrTooLarge = errors.New("sprite: sheet too large to encode")
)
