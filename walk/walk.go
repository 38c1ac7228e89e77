/*
Package walk enumerates the files below a directory.

Hidden files and directories, anything whose name starts with a dot, are
never visited, otherwise we end up fighting with things like Spotlight.
*/
package walk

import (
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"
)

// Predicate decides whether a file is yielded. It is never called for
// directories.
type Predicate func(path string, d fs.DirEntry) bool

// Extensions matches regular files whose extension is one of exts,
// ignoring case and any leading dot.
func Extensions(exts ...string) Predicate {
	set := make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		set[strings.ToLower(strings.TrimPrefix(ext, "."))] = struct{}{}
	}
	return func(path string, d fs.DirEntry) bool {
		if !d.Type().IsRegular() {
			return false
		}
		_, ok := set[strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))]
		return ok
	}
}

// Not inverts p.
func Not(p Predicate) Predicate {
	return func(path string, d fs.DirEntry) bool {
		return !p(path, d)
	}
}

// Within matches files anywhere below dir.
func Within(dir string) Predicate {
	return func(path string, _ fs.DirEntry) bool {
		rel, err := filepath.Rel(dir, path)
		return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
	}
}

// All matches when every predicate does.
func All(ps ...Predicate) Predicate {
	return func(path string, d fs.DirEntry) bool {
		for _, p := range ps {
			if !p(path, d) {
				return false
			}
		}
		return true
	}
}

type cursor struct {
	dir     string
	entries []fs.DirEntry
	next    int
}

// Files returns the absolute paths of every file below root that match
// yields, depth first in lexical order. Directories are read as they are
// reached using an explicit stack rather than recursion. An unreadable
// directory is yielded as an error and skipped; if root itself cannot be
// read that is the only thing yielded. Each range over the sequence starts
// again from root.
func Files(root string, match Predicate) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		dir, err := filepath.Abs(root)
		if err != nil {
			yield("", err)
			return
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			yield("", err)
			return
		}

		stack := []cursor{{dir: dir, entries: entries}}
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.next == len(top.entries) {
				stack = stack[:len(stack)-1]
				continue
			}

			d := top.entries[top.next]
			top.next++

			if strings.HasPrefix(d.Name(), ".") {
				continue
			}

			path := filepath.Join(top.dir, d.Name())

			if d.IsDir() {
				entries, err := os.ReadDir(path)
				if err != nil {
					if !yield("", err) {
						return
					}
					continue
				}
				stack = append(stack, cursor{dir: path, entries: entries})
				continue
			}

			if match(path, d) && !yield(path, nil) {
				return
			}
		}
	}
}
