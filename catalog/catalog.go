/*
Package catalog maintains a SQLite database of sprite sheets that have been
scanned or converted.

Each sheet is recorded under its absolute path along with its format, frame
sizes, a checksum of the file contents and a small zstd compressed thumbnail
of its first visible frame.
*/
package catalog

import (
	"database/sql"
	"fmt"

	"github.com/klauspost/compress/zstd"
	_ "github.com/mattn/go-sqlite3"
	"github.com/spriteconv/spriteconv/sprite"
)

// FrameInfo describes one recorded frame.
type FrameInfo struct {
	Width  uint16
	Height uint16
	Blank  bool
}

// Entry is one recorded sprite sheet.
type Entry struct {
	ID        int64
	Path      string
	Name      string
	Format    sprite.Format
	HighColor bool
	BodyPart  byte
	// Checksum is the hex encoded xxHash of the file contents.
	Checksum string
	Frames   []FrameInfo

	thumbnail []byte
}

// DB is an open catalogue.
type DB struct {
	db  *sql.DB
	enc *zstd.Encoder
	dec *zstd.Decoder
}

// Open opens the catalogue at file, creating it if needed.
func Open(file string) (*DB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	// Concurrent writers just get "database is locked"
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS sheet (id INTEGER PRIMARY KEY NOT NULL, path TEXT NOT NULL UNIQUE, name TEXT NOT NULL, format INTEGER NOT NULL, high_color INTEGER NOT NULL, body_part TEXT, checksum TEXT NOT NULL, thumbnail BLOB)"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err = db.Exec("CREATE INDEX IF NOT EXISTS sheet_checksum ON sheet (checksum)"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS frame (sheet_id INTEGER NOT NULL, idx INTEGER NOT NULL, width INTEGER NOT NULL, height INTEGER NOT NULL, blank INTEGER NOT NULL, PRIMARY KEY (sheet_id, idx), FOREIGN KEY(sheet_id) REFERENCES sheet(id) ON DELETE CASCADE)"); err != nil {
		db.Close()
		return nil, err
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		db.Close()
		return nil, err
	}

	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		db.Close()
		return nil, err
	}

	return &DB{
		db:  db,
		enc: enc,
		dec: dec,
	}, nil
}

// Close closes the database.
func (db *DB) Close() error {
	db.dec.Close()
	if err := db.enc.Close(); err != nil {
		db.db.Close()
		return err
	}
	return db.db.Close()
}

// Record stores s as the sheet found at path, replacing anything recorded
// for that path before, and returns its ID. The checksum is taken from the
// file currently at path.
func (db *DB) Record(path string, s *sprite.Sheet) (int64, error) {
	sum, err := checksumFile(path)
	if err != nil {
		return 0, err
	}

	thumbnail, err := db.encodeThumbnail(s.Frames)
	if err != nil {
		return 0, err
	}

	tx, err := db.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var bodyPart sql.NullString
	if s.BodyPart != 0 {
		bodyPart.String = string(s.BodyPart)
		bodyPart.Valid = true
	}

	var id int64
	switch err := tx.QueryRow("SELECT id FROM sheet WHERE path = ?", path).Scan(&id); err {
	case sql.ErrNoRows:
		result, err := tx.Exec("INSERT INTO sheet (path, name, format, high_color, body_part, checksum, thumbnail) VALUES (?, ?, ?, ?, ?, ?, ?)", path, s.Name, int(s.Format), s.HighColor, bodyPart, sum, thumbnail)
		if err != nil {
			return 0, err
		}
		if id, err = result.LastInsertId(); err != nil {
			return 0, err
		}
	case nil:
		if _, err := tx.Exec("UPDATE sheet SET name = ?, format = ?, high_color = ?, body_part = ?, checksum = ?, thumbnail = ? WHERE id = ?", s.Name, int(s.Format), s.HighColor, bodyPart, sum, thumbnail, id); err != nil {
			return 0, err
		}
		if _, err := tx.Exec("DELETE FROM frame WHERE sheet_id = ?", id); err != nil {
			return 0, err
		}
	default:
		return 0, err
	}

	stmt, err := tx.Prepare("INSERT INTO frame (sheet_id, idx, width, height, blank) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for i, f := range s.Frames {
		if _, err := stmt.Exec(id, i, f.Width, f.Height, f.IsBlank()); err != nil {
			return 0, err
		}
	}

	return id, tx.Commit()
}

// Lookup returns the entry recorded for path, or nil if there isn't one.
func (db *DB) Lookup(path string) (*Entry, error) {
	e, err := db.scanEntry(db.db.QueryRow("SELECT id, path, name, format, high_color, body_part, checksum, thumbnail FROM sheet WHERE path = ?", path))
	switch err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
	default:
		return nil, err
	}

	if e.Frames, err = db.frames(e.ID); err != nil {
		return nil, err
	}

	return e, nil
}

// FindByChecksum returns every entry whose file contents hash to sum,
// ordered by path.
func (db *DB) FindByChecksum(sum string) ([]*Entry, error) {
	rows, err := db.db.Query("SELECT id, path, name, format, high_color, body_part, checksum, thumbnail FROM sheet WHERE checksum = ? ORDER BY path", sum)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		e, err := db.scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	for _, e := range entries {
		if e.Frames, err = db.frames(e.ID); err != nil {
			return nil, err
		}
	}

	return entries, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func (db *DB) scanEntry(row scanner) (*Entry, error) {
	var (
		e        Entry
		format   int
		bodyPart sql.NullString
	)
	if err := row.Scan(&e.ID, &e.Path, &e.Name, &format, &e.HighColor, &bodyPart, &e.Checksum, &e.thumbnail); err != nil {
		return nil, err
	}
	e.Format = sprite.Format(format)
	if bodyPart.Valid && bodyPart.String != "" {
		e.BodyPart = bodyPart.String[0]
	}
	return &e, nil
}

func (db *DB) frames(id int64) ([]FrameInfo, error) {
	rows, err := db.db.Query("SELECT width, height, blank FROM frame WHERE sheet_id = ? ORDER BY idx", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var frames []FrameInfo
	for rows.Next() {
		var fi FrameInfo
		if err := rows.Scan(&fi.Width, &fi.Height, &fi.Blank); err != nil {
			return nil, err
		}
		frames = append(frames, fi)
	}
	return frames, rows.Err()
}
