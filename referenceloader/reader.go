package referenceloader

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// maxFileSize bounds a single reference file.
const maxFileSize = 64 << 20

// openDecoded reads name from dir and returns its content as UTF-8.
// Exports from spreadsheet tools are often ISO-8859-1, so anything that
// is not valid UTF-8 is decoded as Latin-1.
func openDecoded(dir, name string) (io.Reader, error) {
	path := filepath.Join(dir, name)
	cleanPath := filepath.Clean(path)
	if filepath.Dir(cleanPath) != filepath.Clean(dir) {
		return nil, fmt.Errorf("invalid filepath: %s", path)
	}

	f, err := os.Open(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", cleanPath, err)
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, maxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", cleanPath, err)
	}
	if len(content) > maxFileSize {
		return nil, fmt.Errorf("%s exceeds %d bytes", cleanPath, maxFileSize)
	}

	content = bytes.TrimPrefix(content, []byte("\xef\xbb\xbf"))
	if utf8.Valid(content) {
		return bytes.NewReader(content), nil
	}
	return charmap.ISO8859_1.NewDecoder().Reader(bytes.NewReader(content)), nil
}
