package sprite

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format is one of the two on-disk layouts.
type Format int

const (
	// FormatS16 is the flat, uncompressed layout.
	FormatS16 Format = iota
	// FormatC16 is the run-length layout.
	FormatC16
)

func (f Format) String() string {
	if f == FormatC16 {
		return "c16"
	}
	return "s16"
}

// Ext returns the conventional filename extension, including the dot.
func (f Format) Ext() string {
	return "." + f.String()
}

// GroupSize returns the number of frames in one body part pose group.
func (f Format) GroupSize() int {
	if f == FormatC16 {
		return c16GroupSize
	}
	return s16GroupSize
}

func (f Format) flags() uint32 {
	if f == FormatC16 {
		return flagRGB565 | flagRunLength
	}
	return flagRGB565
}

// ParseFormat parses "c16" or "s16", ignoring case and a leading dot.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "c16":
		return FormatC16, nil
	case "s16":
		return FormatS16, nil
	}
	return FormatS16, fmt.Errorf("sprite: unsupported format %q", s)
}

// FormatFromPath infers the layout from the extension of path; any
// extension starting with a 'c' is taken to be run-length.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if len(path) < 5 || len(ext) < 2 {
		return FormatS16, ErrPathTooShort
	}
	if ext[1] == 'c' || ext[1] == 'C' {
		return FormatC16, nil
	}
	return FormatS16, nil
}

// Name returns the logical sheet name of path, without directory or
// extension.
func Name(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// BodyPart returns the lowercase body part letter encoded in the filename
// of path, or zero when the sheet is not a body part. The four characters
// before the extension must look like a letter, two digits and a letter,
// such as "a00a.c16".
func BodyPart(path string) byte {
	name := Name(path)
	if len(name) < 4 {
		return 0
	}
	p := name[len(name)-4:]
	if isLetter(p[0]) && isDigit(p[1]) && isDigit(p[2]) && isLetter(p[3]) {
		return p[0] | 0x20
	}
	return 0
}

func isLetter(c byte) bool {
	c |= 0x20
	return 'a' <= c && c <= 'z'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
