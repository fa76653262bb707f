package res

import (
	"io"
	"os"
	"path/filepath"

	"github.com/matzehuels/resloader/pkg/errors"
)

// RawLoader opens files in one bundle's raw directory. A file matches an id
// when its name without extensions equals the id's entry name.
type RawLoader struct {
	index *Index
	dir   string
}

// NewRawLoader creates a raw loader for the bundle rooted at resourceDir.
func NewRawLoader(index *Index, resourceDir string) *RawLoader {
	return &RawLoader{index: index, dir: filepath.Join(resourceDir, TypeRaw)}
}

// Open returns a new reader for the raw resource id. It returns nil and no
// error when the bundle has no such file.
func (l *RawLoader) Open(id int) (io.ReadCloser, error) {
	n, err := l.index.Name(id)
	if err != nil || n.Type != TypeRaw {
		return nil, nil
	}
	path, ok := l.find(n.Entry)
	if !ok {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open raw resource %s", path)
	}
	return f, nil
}

func (l *RawLoader) find(entry string) (string, bool) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return "", false
	}
	for _, e := range entries {
		if !e.IsDir() && resourceFileName(e.Name()) == entry {
			return filepath.Join(l.dir, e.Name()), true
		}
	}
	return "", false
}

// Dir returns the raw directory this loader reads.
func (l *RawLoader) Dir() string { return l.dir }
