/*
Package spriteconv is a library for batch converting C16 and S16 sprite
sheets.

A Converter walks a directory tree, rescaling every sheet it finds, filling
in the mirrored poses of body part sheets and writing the result in the
requested layout under a separate output directory. Sheets can optionally
be recorded in a catalog as they are converted or scanned.
*/
package spriteconv

import (
	"log"
	"os"

	"github.com/spriteconv/spriteconv/catalog"
)

// Converter holds the state shared by every batch operation.
type Converter struct {
	db     *catalog.DB
	logger *log.Logger

	// ErrorLog receives one line for every sheet that could not be
	// processed. It defaults to stderr.
	ErrorLog *log.Logger
}

// New returns a Converter. db may be nil if nothing is to be recorded in a
// catalog. logger receives progress messages.
func New(db *catalog.DB, logger *log.Logger) *Converter {
	return &Converter{
		db:       db,
		logger:   logger,
		ErrorLog: log.New(os.Stderr, "", 0),
	}
}
