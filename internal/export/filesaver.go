package export

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// maxNameBytes is the usual file name limit; room is kept for a "-N" suffix.
const (
	maxNameBytes = 255
	suffixBytes  = 12
)

// FileSaver is the terminal download surface: it writes into Dir and never
// overwrites an existing file.
type FileSaver struct {
	Dir string
}

func (s FileSaver) Download(filename, _ string, content []byte) (string, error) {
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrap(err, "create export dir")
	}
	path, err := freePath(dir, sanitize(filename))
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", errors.Wrap(err, "write export")
	}
	return path, nil
}

func sanitize(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', 0:
			return '_'
		}
		return r
	}, name)
	if strings.Trim(name, ".") == "" || strings.HasPrefix(name, ".") {
		name = "_" + name
	}
	return name
}

// clip shortens the base of name so name plus a collision suffix fits
// maxNameBytes, cutting on a rune boundary.
func clip(name string) string {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	limit := maxNameBytes - suffixBytes - len(ext)
	if limit <= 0 {
		base, ext, limit = name, "", maxNameBytes-suffixBytes
	}
	if len(base) <= limit {
		return name
	}
	for limit > 0 && !utf8.RuneStart(base[limit]) {
		limit--
	}
	return base[:limit] + ext
}

// freePath returns dir/name, or dir/base-N.ext for the first N that is free.
func freePath(dir, name string) (string, error) {
	name = clip(name)
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	path := filepath.Join(dir, name)
	for i := 1; ; i++ {
		_, err := os.Stat(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return path, nil
		case err != nil:
			return "", errors.Wrap(err, "check export path")
		}
		path = filepath.Join(dir, fmt.Sprintf("%s-%d%s", base, i, ext))
	}
}
