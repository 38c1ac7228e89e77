package spriteconv

import (
	"context"
	"fmt"

	"github.com/spriteconv/spriteconv/sprite"
)

// Index records every sprite sheet below dir in the catalog.
func (c *Converter) Index(ctx context.Context, dir string) (Stats, error) {
	if c.db == nil {
		return Stats{}, ErrNoCatalog
	}

	dir, err := inputDirectory(dir)
	if err != nil {
		return Stats{}, err
	}

	return c.run(ctx, dir, Sprites, DefaultWorkers, func(file string) error {
		s, err := sprite.Open(file)
		if err != nil {
			return err
		}

		id, err := c.db.Record(file, s)
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}

		c.logger.Printf("Recorded \"%s\" as %d with %d frames\n", file, id, len(s.Frames))

		return nil
	})
}
