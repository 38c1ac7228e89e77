package spriteconv

import (
	"bytes"
	"context"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spriteconv/spriteconv/catalog"
	"github.com/spriteconv/spriteconv/frame"
	"github.com/spriteconv/spriteconv/preview"
	"github.com/spriteconv/spriteconv/sprite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConverter(t *testing.T, db *catalog.DB) (*Converter, *bytes.Buffer) {
	t.Helper()
	c := New(db, log.New(io.Discard, "", 0))
	errs := new(bytes.Buffer)
	c.ErrorLog = log.New(errs, "", 0)
	return c, errs
}

func openCatalog(t *testing.T) *catalog.DB {
	t.Helper()
	db, err := catalog.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
	})
	return db
}

// writeSheet saves n frames of 4x2 pixels, leaving poses 4 to 7 of every
// sixteen blank.
func writeSheet(t *testing.T, path string, n int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))

	frames := make([]*frame.Frame, n)
	for i := range frames {
		f := frame.New(4, 2)
		if j := i % 16; j < 4 || j > 7 {
			copy(f.Pix, []uint16{uint16(i + 1), uint16(i + 1), 0, 0, uint16(i + 1), 0, 0, 0})
		}
		frames[i] = f
	}

	format, err := sprite.FormatFromPath(path)
	require.NoError(t, err)

	s := &sprite.Sheet{
		Format:   format,
		BodyPart: sprite.BodyPart(path),
		Frames:   frames,
	}
	require.NoError(t, s.Save(path))
}

func inputTree(t *testing.T) string {
	t.Helper()
	input := t.TempDir()

	writeSheet(t, filepath.Join(input, "a12b.c16"), 16)
	writeSheet(t, filepath.Join(input, "sub", "plain.s16"), 3)
	require.NoError(t, os.WriteFile(filepath.Join(input, "bad.c16"), []byte{3, 0, 0, 0, 9}, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(input, "notes.txt"), []byte("hello"), 0o644))

	return input
}

func TestConvert(t *testing.T) {
	input := inputTree(t)
	output := filepath.Join(t.TempDir(), "out")
	c, errs := newConverter(t, nil)

	stats, err := c.Convert(context.Background(), input, Options{
		Scale:     1,
		Output:    output,
		Extension: "s16",
		Workers:   2,
	})
	assert.EqualError(t, err, "error processing 1 files")
	assert.Equal(t, Stats{Processed: 2, Failed: 1}, stats)
	assert.Equal(t, 1, strings.Count(errs.String(), filepath.Join(input, "bad.c16")), errs.String())

	body, err := sprite.Open(filepath.Join(output, "a12b.s16"))
	require.NoError(t, err)
	assert.Equal(t, sprite.FormatS16, body.Format)
	require.Len(t, body.Frames, 10)

	// Poses 4 to 7 were mirrored before the sheet was shrunk
	for i := 4; i < 8; i++ {
		assert.False(t, body.Frames[i].IsBlank(), "frame %d", i)
		assert.Equal(t, []uint16{0, 0, uint16(i - 3), uint16(i - 3), 0, 0, 0, uint16(i - 3)}, body.Frames[i].Pix)
	}

	plain, err := sprite.Open(filepath.Join(output, "sub", "plain.s16"))
	require.NoError(t, err)
	assert.Len(t, plain.Frames, 3)

	_, err = os.Stat(filepath.Join(output, "bad.s16"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(output, "notes.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestConvertScale(t *testing.T) {
	input := t.TempDir()
	writeSheet(t, filepath.Join(input, "plain.c16"), 2)
	output := t.TempDir()
	c, _ := newConverter(t, nil)

	stats, err := c.Convert(context.Background(), input, Options{
		Scale:     .5,
		Output:    output,
		Extension: "c16",
	})
	require.NoError(t, err)
	assert.Equal(t, Stats{Processed: 1}, stats)

	s, err := sprite.Open(filepath.Join(output, "plain.c16"))
	require.NoError(t, err)
	require.Len(t, s.Frames, 2)
	for _, f := range s.Frames {
		assert.Equal(t, uint16(2), f.Width)
		assert.Equal(t, uint16(1), f.Height)
	}
}

func TestConvertOutputInsideInput(t *testing.T) {
	input := inputTree(t)
	output := filepath.Join(input, "converted")
	c, _ := newConverter(t, nil)

	opts := Options{
		Scale:     1,
		Output:    output,
		Extension: "c16",
	}

	for i := 0; i < 2; i++ {
		stats, err := c.Convert(context.Background(), input, opts)
		assert.Error(t, err)
		assert.Equal(t, Stats{Processed: 2, Failed: 1}, stats)
	}

	_, err := os.Stat(filepath.Join(output, "converted"))
	assert.True(t, os.IsNotExist(err))
}

func TestConvertCancelled(t *testing.T) {
	input := inputTree(t)
	output := t.TempDir()
	c, _ := newConverter(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stats, err := c.Convert(ctx, input, Options{
		Scale:     1,
		Output:    output,
		Extension: "c16",
		Workers:   1,
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, stats.Processed)

	_, err = os.Stat(filepath.Join(output, "a12b.c16"))
	assert.True(t, os.IsNotExist(err))
}

func TestConvertInvalidOptions(t *testing.T) {
	input := inputTree(t)
	file := filepath.Join(input, "notes.txt")

	for _, tc := range []struct {
		name  string
		input string
		opts  Options
		want  error
	}{
		{"zero scale", input, Options{Scale: 0, Extension: "s16"}, ErrInvalidScale},
		{"negative scale", input, Options{Scale: -1, Extension: "s16"}, ErrInvalidScale},
		{"large scale", input, Options{Scale: 2.5, Extension: "s16"}, ErrInvalidScale},
		{"nan scale", input, Options{Scale: math.NaN(), Extension: "s16"}, ErrInvalidScale},
		{"extension", input, Options{Scale: 1, Extension: "bmp"}, nil},
		{"workers", input, Options{Scale: 1, Extension: "s16", Workers: -1}, nil},
		{"same directory", input, Options{Scale: 1, Extension: "s16", Output: input}, ErrSameDirectory},
		{"missing input", filepath.Join(input, "missing"), Options{Scale: 1, Extension: "s16"}, os.ErrNotExist},
		{"file input", file, Options{Scale: 1, Extension: "s16"}, nil},
	} {
		t.Run(tc.name, func(t *testing.T) {
			output := filepath.Join(t.TempDir(), "out")
			if tc.opts.Output == "" {
				tc.opts.Output = output
			}

			c, errs := newConverter(t, nil)
			stats, err := c.Convert(context.Background(), tc.input, tc.opts)
			require.Error(t, err)
			if tc.want != nil {
				assert.ErrorIs(t, err, tc.want)
			}
			assert.Equal(t, Stats{}, stats)
			assert.Empty(t, errs.String())

			_, err = os.Stat(filepath.Join(output, "a12b.s16"))
			assert.True(t, os.IsNotExist(err))
		})
	}
}

func TestConvertCatalog(t *testing.T) {
	input := inputTree(t)
	output := t.TempDir()

	c, _ := newConverter(t, nil)
	_, err := c.Convert(context.Background(), input, Options{Scale: 1, Output: output, Extension: "c16", Catalog: true})
	assert.ErrorIs(t, err, ErrNoCatalog)

	db := openCatalog(t)
	c, _ = newConverter(t, db)
	stats, err := c.Convert(context.Background(), input, Options{Scale: 1, Output: output, Extension: "c16", Catalog: true})
	assert.Error(t, err)
	assert.Equal(t, 2, stats.Processed)

	e, err := db.Lookup(filepath.Join(output, "a12b.c16"))
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.Equal(t, sprite.FormatC16, e.Format)
	assert.Equal(t, byte('a'), e.BodyPart)
	assert.Len(t, e.Frames, 16)
}

func TestIndex(t *testing.T) {
	input := inputTree(t)

	c, _ := newConverter(t, nil)
	_, err := c.Index(context.Background(), input)
	assert.ErrorIs(t, err, ErrNoCatalog)

	db := openCatalog(t)
	c, errs := newConverter(t, db)
	stats, err := c.Index(context.Background(), input)
	assert.Error(t, err)
	assert.Equal(t, Stats{Processed: 2, Failed: 1}, stats)
	assert.Contains(t, errs.String(), "bad.c16")

	e, err := db.Lookup(filepath.Join(input, "sub", "plain.s16"))
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.Equal(t, "plain", e.Name)
	assert.Len(t, e.Frames, 3)

	e, err = db.Lookup(filepath.Join(input, "bad.c16"))
	require.NoError(t, err)
	assert.Nil(t, e)
}

func TestExport(t *testing.T) {
	input := t.TempDir()
	path := filepath.Join(input, "plain.c16")
	writeSheet(t, path, 3)

	c, _ := newConverter(t, nil)

	dir := filepath.Join(t.TempDir(), "png")
	files, err := c.Export(path, dir, preview.PNG, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "plain_000.png"),
		filepath.Join(dir, "plain_001.png"),
		filepath.Join(dir, "plain_002.png"),
	}, files)
	for _, file := range files {
		assert.FileExists(t, file)
	}

	dir = t.TempDir()
	files, err = c.Export(path, dir, preview.GIF, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "plain.gif")}, files)
	assert.FileExists(t, files[0])

	_, err = c.Export(filepath.Join(input, "missing.c16"), dir, preview.BMP, 0)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
