package spriteconv

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spriteconv/spriteconv/preview"
	"github.com/spriteconv/spriteconv/sprite"
)

// Export writes previews of the sheet at path into dir and returns the
// files written. PNG and BMP previews are written one file per frame,
// named after the sheet and the frame index; frames with no pixels are
// skipped. A GIF preview is a single animated file with each frame shown
// for delay hundredths of a second.
func (c *Converter) Export(path, dir string, format preview.Format, delay int) ([]string, error) {
	s, err := sprite.Open(path)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	if format == preview.GIF {
		file := filepath.Join(dir, fmt.Sprintf("%s.%s", s.Name, format))
		if err := writeFile(file, func(w io.Writer) error {
			return preview.EncodeGIF(w, s.Frames, delay)
		}); err != nil {
			return nil, err
		}
		c.logger.Printf("Wrote %d frames to \"%s\"\n", len(s.Frames), file)
		return []string{file}, nil
	}

	encode := preview.EncodePNG
	if format == preview.BMP {
		encode = preview.EncodeBMP
	}

	var files []string
	for i, f := range s.Frames {
		if len(f.Pix) == 0 {
			c.logger.Printf("Skipping empty frame %d of \"%s\"\n", i, path)
			continue
		}

		file := filepath.Join(dir, fmt.Sprintf("%s_%03d.%s", s.Name, i, format))
		if err := writeFile(file, func(w io.Writer) error {
			return encode(w, f)
		}); err != nil {
			return files, err
		}
		files = append(files, file)
	}

	c.logger.Printf("Wrote %d frames from \"%s\"\n", len(files), path)

	return files, nil
}

func writeFile(file string, fn func(io.Writer) error) (err error) {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	w := bufio.NewWriter(f)
	if err = fn(w); err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}
	return w.Flush()
}
