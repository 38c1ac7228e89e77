package sprite

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spriteconv/spriteconv/frame"
)

// Sheet is a decoded sprite sheet.
type Sheet struct {
	// Name is the filename without directory or extension.
	Name string
	// Format is the layout the frames are currently arranged for.
	Format Format
	// HighColor is set when the source stored 5-6-5 pixels. Pixels are
	// always 5-6-5 once decoded.
	HighColor bool
	// BodyPart is the body part letter, or zero.
	BodyPart byte

	Frames []*frame.Frame
}

// Open decodes the sprite sheet at path, using the extension to decide
// between the C16 and S16 layouts.
func Open(path string) (*Sheet, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	s.Name = Name(path)
	s.BodyPart = BodyPart(path)

	return s, nil
}

// ScaleAll rescales every frame. A scale of exactly 1 does nothing.
func (s *Sheet) ScaleAll(scale float64) error {
	if scale == 1 {
		return nil
	}

	frames := make([]*frame.Frame, len(s.Frames))
	for i, f := range s.Frames {
		scaled, err := f.Scale(scale)
		if err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		frames[i] = scaled
	}
	s.Frames = frames

	return nil
}

// MirrorAll fills in the blank poses 4 to 7 of every body part group with
// the mirror image of poses 0 to 3. Other sheets are left alone.
func (s *Sheet) MirrorAll() {
	if s.BodyPart == 0 {
		return
	}

	n := s.Format.GroupSize()
	for i := 0; i < len(s.Frames); i += n {
		for j := 4; j < 8 && i+j < len(s.Frames); j++ {
			if s.Frames[i+j].IsBlank() {
				s.Frames[i+j] = s.Frames[i+j-4].Mirror()
			}
		}
	}
}

// Encode writes the sheet to w in format, converting body part groups if
// needed. The sheet itself is unchanged.
func (s *Sheet) Encode(w io.Writer, format Format) error {
	return encode(w, convertFrames(s.Frames, s.Format, format, s.BodyPart), format)
}

// Save writes the sheet to path, the extension selecting the layout. The
// file is written under a temporary name and renamed into place. Once
// saved the sheet describes what was written.
func (s *Sheet) Save(path string) (err error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	frames := convertFrames(s.Frames, s.Format, format, s.BodyPart)

	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(f.Name())
		}
	}()

	w := bufio.NewWriter(f)
	if err = encode(w, frames, format); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if err = w.Flush(); err != nil {
		return err
	}
	// CreateTemp only allows the owner to read it
	if err = f.Chmod(0o644); err != nil {
		return err
	}
	if err = f.Sync(); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	if err = os.Rename(f.Name(), path); err != nil {
		return err
	}

	s.Frames = frames
	s.Format = format
	s.HighColor = true

	return nil
}
