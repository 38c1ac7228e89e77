package catalog

import (
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
)

// Checksum returns the hex encoded xxHash of everything read from r.
func Checksum(r io.Reader) (string, error) {
	h := xxhash.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return fmt.Sprintf("%016X", h.Sum64()), nil
}

func checksumFile(file string) (string, error) {
	f, err := os.Open(file)
	if err != nil {
		return "", err
	}
	defer f.Close()

	return Checksum(f)
}
