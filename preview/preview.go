/*
Package preview renders sprite frames as ordinary images so they can be
looked at with any viewer.

Single frames can be written as PNG, which keeps transparency, or BMP,
which doesn't. A whole sheet can be written as an animated GIF where every
frame gets its own palette of up to 255 colours plus a transparent entry.
*/
package preview

import (
	"errors"
	"fmt"
	"strings"
)

// Format is an output image format.
type Format int

const (
	// PNG writes each frame to its own PNG file.
	PNG Format = iota
	// BMP writes each frame to its own 24-bit BMP file.
	BMP
	// GIF writes the whole sheet as one animated GIF.
	GIF
)

var errEmptyFrame = errors.New("preview: frame has no pixels")

func (f Format) String() string {
	switch f {
	case BMP:
		return "bmp"
	case GIF:
		return "gif"
	default:
		return "png"
	}
}

// ParseFormat parses "png", "bmp" or "gif", ignoring case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "png":
		return PNG, nil
	case "bmp":
		return BMP, nil
	case "gif":
		return GIF, nil
	}
	return PNG, fmt.Errorf("preview: unsupported format %q", s)
}
