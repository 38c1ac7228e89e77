package spriteconv

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spriteconv/spriteconv/sprite"
	"github.com/spriteconv/spriteconv/walk"
)

// Sprites matches C16 and S16 files.
var Sprites = walk.Extensions(sprite.FormatC16.String(), sprite.FormatS16.String())

// Convert converts every sprite sheet below input according to opts. The
// options are checked, and the output directory created, before any sheet
// is touched. Sheets that cannot be converted are reported to ErrorLog and
// skipped; the returned error then says how many failed.
func (c *Converter) Convert(ctx context.Context, input string, opts Options) (Stats, error) {
	input, err := opts.validate(input)
	if err != nil {
		return Stats{}, err
	}
	if opts.Catalog && c.db == nil {
		return Stats{}, ErrNoCatalog
	}

	// The output directory may well be inside the input directory
	match := walk.All(Sprites, walk.Not(walk.Within(opts.Output)))

	return c.run(ctx, input, match, opts.Workers, func(file string) error {
		return c.convertSheet(input, &opts, file)
	})
}

// outputPath maps file below input to the same relative directory below
// the output directory, named after the sheet with the output extension.
func outputPath(input string, opts *Options, file string, name string) (string, error) {
	rel, err := filepath.Rel(input, filepath.Dir(file))
	if err != nil {
		return "", err
	}
	return filepath.Join(opts.Output, rel, name+opts.format.Ext()), nil
}

func (c *Converter) convertSheet(input string, opts *Options, file string) error {
	s, err := sprite.Open(file)
	if err != nil {
		return err
	}

	if err := s.ScaleAll(opts.Scale); err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}
	s.MirrorAll()

	out, err := outputPath(input, opts, file, s.Name)
	if err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}

	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return err
	}

	if err := s.Save(out); err != nil {
		return err
	}

	if opts.Catalog {
		if _, err := c.db.Record(out, s); err != nil {
			return fmt.Errorf("%s: %w", out, err)
		}
	}

	c.logger.Printf("Converted \"%s\" to \"%s\"\n", file, out)

	return nil
}
