package res

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/resloader/pkg/errors"
	"github.com/matzehuels/resloader/pkg/observability"
)

// Document is one parsed markup file.
type Document struct {
	Path   string // file path
	Dir    string // name of the containing directory, e.g. "layout-land"
	Name   string // file name without extension; the resource name for file-keyed types
	System bool   // document belongs to the platform bundle
	Root   *Node
}

// ElementLoader consumes elements of parsed documents.
type ElementLoader interface {
	// Handles reports whether the loader consumes elements with tag.
	Handles(tag string) bool
	// LoadElement processes one element of doc.
	LoadElement(doc *Document, el *Node) error
}

// FileLoader is implemented by loaders that also consume files that are not
// markup documents, such as drawable images.
type FileLoader interface {
	LoadFile(path string, system bool) error
}

// DocumentLoader enumerates the files of a directory, parses every markup
// document and dispatches its elements to the loaders that handle them.
//
// When a loader handles the root tag, the root is dispatched (file-keyed
// documents: layouts, menus, preferences, drawables). Otherwise each child
// of the root is dispatched in document order (value documents, whose root
// is <resources>).
type DocumentLoader struct {
	loaders []ElementLoader
	Logger  *log.Logger
	Hooks   observability.LoadHooks
}

// NewDocumentLoader creates a loader dispatching to loaders in order.
func NewDocumentLoader(loaders ...ElementLoader) *DocumentLoader {
	return &DocumentLoader{loaders: loaders}
}

// LoadDirs loads each directory in turn.
func (d *DocumentLoader) LoadDirs(ctx context.Context, dirs []string, system bool) error {
	for _, dir := range dirs {
		if err := d.LoadDir(ctx, dir, system); err != nil {
			return err
		}
	}
	return nil
}

// LoadDir loads every file directly inside dir. A missing directory is not
// an error. Files are visited in name order.
func (d *DocumentLoader) LoadDir(ctx context.Context, dir string, system bool) error {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		d.logger().Debug("skipping missing directory", "dir", dir)
		return nil
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "read directory %s", dir)
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if strings.EqualFold(filepath.Ext(path), ".xml") {
			if err := d.LoadFile(ctx, path, system); err != nil {
				return err
			}
			continue
		}
		for _, l := range d.loaders {
			if fl, ok := l.(FileLoader); ok {
				if err := fl.LoadFile(path, system); err != nil {
					return errors.Wrap(errors.ErrCodeInvalidDocument, err, "load %s", path)
				}
			}
		}
	}
	return nil
}

// LoadFile parses one markup document and dispatches its elements.
func (d *DocumentLoader) LoadFile(ctx context.Context, path string, system bool) error {
	doc, err := ReadDocument(path, system)
	if err != nil {
		return err
	}
	if err := d.dispatch(doc); err != nil {
		if errors.Is(err, errors.ErrCodeI18nViolation) {
			return err
		}
		return errors.Wrap(errors.ErrCodeInvalidDocument, err, "load %s", path)
	}
	d.logger().Debug("loaded document", "path", path, "system", system)
	if d.Hooks != nil {
		d.Hooks.OnDocumentLoaded(ctx, path, system)
	}
	return nil
}

func (d *DocumentLoader) dispatch(doc *Document) error {
	handled := false
	for _, l := range d.loaders {
		if l.Handles(doc.Root.Tag) {
			handled = true
			if err := l.LoadElement(doc, doc.Root); err != nil {
				return err
			}
		}
	}
	if handled {
		return nil
	}
	for _, child := range doc.Root.Children {
		for _, l := range d.loaders {
			if !l.Handles(child.Tag) {
				continue
			}
			if err := l.LoadElement(doc, child); err != nil {
				return err
			}
		}
	}
	return nil
}

func (d *DocumentLoader) logger() *log.Logger {
	if d.Logger == nil {
		return discardLogger
	}
	return d.Logger
}

// ReadDocument parses the markup file at path.
func ReadDocument(path string, system bool) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	defer f.Close()

	root, err := ParseNode(f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "parse %s", path)
	}
	return &Document{
		Path:   path,
		Dir:    filepath.Base(filepath.Dir(path)),
		Name:   resourceFileName(filepath.Base(path)),
		System: system,
		Root:   root,
	}, nil
}

// resourceFileName strips every extension: "icon.9.png" -> "icon".
func resourceFileName(base string) string {
	if i := strings.IndexByte(base, '.'); i > 0 {
		return base[:i]
	}
	return base
}
