package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spriteconv/spriteconv"
	"github.com/spriteconv/spriteconv/catalog"
	"github.com/spriteconv/spriteconv/preview"
	"github.com/spriteconv/spriteconv/sprite"
	"github.com/urfave/cli/v2"
)

const defaultDB = "spriteconv.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func openCatalog(c *cli.Context) (*catalog.DB, error) {
	return catalog.Open(c.String("db"))
}

func convert(c *cli.Context) error {
	if c.NArg() < 2 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	var db *catalog.DB
	if c.Bool("catalog") {
		var err error
		if db, err = openCatalog(c); err != nil {
			return cli.NewExitError(err, 1)
		}
		defer db.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	conv := spriteconv.New(db, newLogger(c))
	if _, err := conv.Convert(ctx, c.Args().Get(0), spriteconv.Options{
		Scale:     c.Float64("scale"),
		Output:    c.Args().Get(1),
		Extension: c.String("ext"),
		Workers:   c.Int("workers"),
		Catalog:   c.Bool("catalog"),
	}); err != nil {
		return cli.NewExitError(err, 1)
	}

	return nil
}

func scan(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	db, err := openCatalog(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	conv := spriteconv.New(db, newLogger(c))
	if _, err := conv.Index(ctx, c.Args().First()); err != nil {
		return cli.NewExitError(err, 1)
	}

	return nil
}

func describe(w io.Writer, file string, s *sprite.Sheet) {
	depth := "5-5-5"
	if s.HighColor {
		depth = "5-6-5"
	}
	part := "none"
	if s.BodyPart != 0 {
		part = string(s.BodyPart)
	}

	fmt.Fprintf(w, "%s: %s, %s, body part %s, %d frames\n", file, s.Format, depth, part, len(s.Frames))
	for i, f := range s.Frames {
		blank := ""
		if f.IsBlank() {
			blank = " (blank)"
		}
		fmt.Fprintf(w, "  %3d: %dx%d%s\n", i, f.Width, f.Height, blank)
	}
}

func info(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	for _, file := range c.Args().Slice() {
		s, err := sprite.Open(file)
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		describe(c.App.Writer, file, s)
	}

	return nil
}

func export(c *cli.Context) error {
	if c.NArg() < 2 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	format, err := preview.ParseFormat(c.String("format"))
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	conv := spriteconv.New(nil, newLogger(c))
	if _, err := conv.Export(c.Args().Get(0), c.Args().Get(1), format, c.Int("delay")); err != nil {
		return cli.NewExitError(err, 1)
	}

	return nil
}

func main() {
	app := cli.NewApp()

	app.Name = "spriteconv"
	app.Usage = "C16 and S16 sprite sheet conversion utility"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"SPRITECONV_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to catalog database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "convert",
			Usage:       "Rescale and convert every sprite sheet in a directory",
			Description: "Sheets found below INPUT are rescaled, have the mirrored poses of body parts filled in and are written below OUTPUT in the same directory layout.",
			ArgsUsage:   "INPUT OUTPUT",
			Flags: []cli.Flag{
				&cli.Float64Flag{
					Name:  "scale",
					Value: 1,
					Usage: "scale factor, greater than 0 and at most 2",
				},
				&cli.StringFlag{
					Name:  "ext",
					Value: sprite.FormatC16.String(),
					Usage: "output format, c16 or s16",
				},
				&cli.IntFlag{
					Name:  "workers",
					Value: spriteconv.DefaultWorkers,
					Usage: "number of sheets to convert at once",
				},
				&cli.BoolFlag{
					Name:  "catalog",
					Usage: "record converted sheets in the catalog",
				},
			},
			Action: convert,
		},
		{
			Name:        "scan",
			Usage:       "Record every sprite sheet in a directory in the catalog",
			Description: "",
			ArgsUsage:   "DIRECTORY",
			Action:      scan,
		},
		{
			Name:        "info",
			Usage:       "Describe sprite sheets",
			Description: "",
			ArgsUsage:   "FILE...",
			Action:      info,
		},
		{
			Name:        "export",
			Usage:       "Write previews of a sprite sheet",
			Description: "PNG and BMP previews are written one file per frame, a GIF preview animates the whole sheet.",
			ArgsUsage:   "FILE DIRECTORY",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "format",
					Value: preview.PNG.String(),
					Usage: "preview format, png, bmp or gif",
				},
				&cli.IntFlag{
					Name:  "delay",
					Value: 10,
					Usage: "GIF frame delay in hundredths of a second",
				},
			},
			Action: export,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
