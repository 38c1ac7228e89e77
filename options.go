package spriteconv

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spriteconv/spriteconv/sprite"
)

const (
	// DefaultWorkers is the number of sheets converted at once unless told
	// otherwise.
	DefaultWorkers = 10
	// MaxScale is the largest accepted scale factor.
	MaxScale = 2.0
)

var (
	// ErrInvalidScale is returned for a scale outside (0, MaxScale].
	ErrInvalidScale = errors.New("spriteconv: scale must be greater than 0 and at most 2")
	// ErrSameDirectory is returned when the output directory is the input
	// directory.
	ErrSameDirectory = errors.New("spriteconv: output directory must differ from input directory")
	// ErrNoCatalog is returned by operations that need a catalog when the
	// Converter doesn't have one.
	ErrNoCatalog = errors.New("spriteconv: no catalog")
)

// Options control a batch conversion.
type Options struct {
	// Scale is applied to every frame, 1 leaves them alone.
	Scale float64
	// Output is the directory converted sheets are written under, mirroring
	// the layout of the input directory.
	Output string
	// Extension selects the output layout, either "s16" or "c16".
	Extension string
	// Workers is the number of sheets converted concurrently, zero means
	// DefaultWorkers.
	Workers int
	// Catalog records every written sheet in the Converter's catalog.
	Catalog bool

	format sprite.Format
}

func inputDirectory(path string) (string, error) {
	dir, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(dir)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s: not a directory", dir)
	}

	// Make sure it can actually be read before starting
	if _, err := os.ReadDir(dir); err != nil {
		return "", err
	}

	return dir, nil
}

// validate checks o against the input directory, resolving both
// directories to absolute paths and creating the output directory.
// Nothing has been read or written when it fails, besides the output
// directory.
func (o *Options) validate(input string) (string, error) {
	if !(o.Scale > 0 && o.Scale <= MaxScale) {
		return "", fmt.Errorf("%w: %v", ErrInvalidScale, o.Scale)
	}

	var err error
	if o.format, err = sprite.ParseFormat(o.Extension); err != nil {
		return "", err
	}

	if o.Workers < 0 {
		return "", fmt.Errorf("spriteconv: invalid number of workers: %d", o.Workers)
	}
	if o.Workers == 0 {
		o.Workers = DefaultWorkers
	}

	if input, err = inputDirectory(input); err != nil {
		return "", fmt.Errorf("invalid input directory: %w", err)
	}

	if o.Output, err = filepath.Abs(o.Output); err != nil {
		return "", err
	}
	if o.Output == input {
		return "", ErrSameDirectory
	}

	if err := os.MkdirAll(o.Output, 0o755); err != nil {
		return "", fmt.Errorf("unable to create output directory %q: %w", o.Output, err)
	}

	return input, nil
}
