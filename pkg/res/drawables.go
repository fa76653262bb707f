package res

import (
	"path/filepath"
	"strconv"
	"strings"
)

// DrawableKind classifies a drawable definition.
type DrawableKind int

const (
	DrawableImage DrawableKind = iota
	DrawableAnimation
	DrawableShape
	DrawableSelector
	DrawableLayerList
	DrawableBitmap
	DrawableColor
	DrawableMarkup
)

var drawableKindNames = [...]string{"image", "animation", "shape", "selector", "layer-list", "bitmap", "color", "markup"}

func (k DrawableKind) String() string {
	if int(k) < len(drawableKindNames) {
		return drawableKindNames[k]
	}
	return "unknown"
}

var drawableRootKinds = map[string]DrawableKind{
	"animation-list": DrawableAnimation,
	"shape":          DrawableShape,
	"selector":       DrawableSelector,
	"layer-list":     DrawableLayerList,
	"bitmap":         DrawableBitmap,
	"nine-patch":     DrawableBitmap,
	"color":          DrawableColor,
}

var imageExtensions = map[string]bool{".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true}

// Frame is one frame of an animation drawable.
type Frame struct {
	Drawable string // reference, e.g. "@drawable/frame_1"
	Duration int    // milliseconds
}

// Drawable describes an image file or a markup drawable.
type Drawable struct {
	Name   string
	Kind   DrawableKind
	Path   string
	Root   *Node   // nil for images
	Frames []Frame // animation frames
	Color  string  // solid color literal or reference, when the drawable has one
	system bool
}

// IsXML reports whether the drawable is defined by markup rather than an image.
func (d *Drawable) IsXML() bool { return d.Kind != DrawableImage }

// DrawableLoader scans drawable directories: images become image drawables
// and markup documents are classified by their root element.
type DrawableLoader struct {
	valueStore[*Drawable]
}

// NewDrawableLoader creates a drawable loader.
func NewDrawableLoader(index *Index) *DrawableLoader {
	return &DrawableLoader{valueStore: newValueStore[*Drawable](index, TypeDrawable)}
}

// Handles implements ElementLoader. Drawable documents may have any root.
func (l *DrawableLoader) Handles(string) bool { return true }

// LoadElement implements ElementLoader.
func (l *DrawableLoader) LoadElement(doc *Document, el *Node) error {
	if el != doc.Root {
		return nil
	}
	kind, ok := drawableRootKinds[el.Tag]
	if !ok {
		kind = DrawableMarkup
	}
	d := &Drawable{Name: doc.Name, Kind: kind, Path: doc.Path, Root: el, system: doc.System}

	switch kind {
	case DrawableAnimation:
		for _, item := range el.Children {
			if item.Tag != "item" {
				continue
			}
			duration, _ := strconv.Atoi(item.AttrValue("android:duration"))
			d.Frames = append(d.Frames, Frame{Drawable: item.AttrValue("android:drawable"), Duration: duration})
		}
	case DrawableColor:
		d.Color = el.AttrValue("android:color")
	case DrawableShape:
		for _, child := range el.Children {
			if child.Tag == "solid" {
				d.Color = child.AttrValue("android:color")
			}
		}
	}
	l.put(doc, doc.Name, d)
	return nil
}

// LoadFile implements FileLoader for image files.
func (l *DrawableLoader) LoadFile(path string, system bool) error {
	if !imageExtensions[strings.ToLower(filepath.Ext(path))] {
		return nil
	}
	name := resourceFileName(filepath.Base(path))
	doc := &Document{Path: path, Name: name, System: system}
	l.put(doc, name, &Drawable{Name: name, Kind: DrawableImage, Path: path, system: system})
	return nil
}

// Drawable returns the drawable for id, or nil.
func (l *DrawableLoader) Drawable(id int) *Drawable {
	e, ok := l.values[id]
	if !ok {
		return nil
	}
	return e.value
}

// IsXML reports whether id names a markup-defined drawable.
func (l *DrawableLoader) IsXML(id int) bool {
	d := l.Drawable(id)
	return d != nil && d.IsXML()
}

// FrameIDs returns the drawable ids of an animation's frames, in order.
// Frames whose reference does not resolve are reported as 0.
func (l *DrawableLoader) FrameIDs(id int) []int {
	d := l.Drawable(id)
	if d == nil || d.Kind != DrawableAnimation {
		return nil
	}
	ids := make([]int, len(d.Frames))
	for i, f := range d.Frames {
		ids[i], _ = l.index.ResolveReference(f.Drawable, d.system)
	}
	return ids
}
