package res

import (
	"strconv"
	"strings"

	"github.com/matzehuels/resloader/pkg/errors"
)

// AttrConstant is one <enum> or <flag> value of an attribute.
type AttrConstant struct {
	Name  string
	Value int
}

// AttrFormat describes the values an attribute accepts.
type AttrFormat struct {
	Name    string
	Formats []string // "string", "integer", "enum", "flags", "reference", ...
	Enums   []AttrConstant
	Flags   []AttrConstant
}

// HasFormat reports whether f lists format.
func (f *AttrFormat) HasFormat(format string) bool {
	for _, v := range f.Formats {
		if v == format {
			return true
		}
	}
	return false
}

// AttrLoader loads <attr> definitions, either at the top level of a values
// document or nested in <declare-styleable>.
type AttrLoader struct {
	valueStore[*AttrFormat]

	// byName keys definitions by attribute name as it appears in markup:
	// "android:orientation" for platform attributes, the bare name otherwise.
	byName map[string]*AttrFormat
}

// NewAttrLoader creates an attribute loader.
func NewAttrLoader(index *Index) *AttrLoader {
	return &AttrLoader{
		valueStore: newValueStore[*AttrFormat](index, TypeAttr),
		byName:     make(map[string]*AttrFormat),
	}
}

// Handles implements ElementLoader.
func (l *AttrLoader) Handles(tag string) bool {
	return tag == "attr" || tag == "declare-styleable"
}

// LoadElement implements ElementLoader.
func (l *AttrLoader) LoadElement(doc *Document, el *Node) error {
	if el.Tag == "declare-styleable" {
		for _, child := range el.Children {
			if child.Tag != "attr" {
				continue
			}
			if err := l.loadAttr(doc, child); err != nil {
				return err
			}
		}
		return nil
	}
	return l.loadAttr(doc, el)
}

func (l *AttrLoader) loadAttr(doc *Document, el *Node) error {
	name, err := requireName(doc, el)
	if err != nil {
		return err
	}
	// <attr name="android:text"/> inside a styleable reuses a platform
	// attribute and defines nothing.
	if strings.Contains(name, ":") {
		return nil
	}

	f := &AttrFormat{Name: name}
	if formats := el.AttrValue("format"); formats != "" {
		f.Formats = strings.Split(formats, "|")
	}
	for _, child := range el.Children {
		if child.Tag != "enum" && child.Tag != "flag" {
			continue
		}
		c, err := parseConstant(child)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidDocument, err, "%s: attr %q", doc.Path, name)
		}
		if child.Tag == "enum" {
			f.Enums = append(f.Enums, c)
		} else {
			f.Flags = append(f.Flags, c)
		}
	}
	if len(f.Enums) > 0 && !f.HasFormat("enum") {
		f.Formats = append(f.Formats, "enum")
	}
	if len(f.Flags) > 0 && !f.HasFormat("flags") {
		f.Formats = append(f.Formats, "flags")
	}

	// A bare reference inside a styleable must not clobber the definition.
	if len(f.Formats) == 0 {
		if _, defined := l.byName[markupName(name, doc.System)]; defined {
			return nil
		}
	}
	l.put(doc, name, f)
	l.byName[markupName(name, doc.System)] = f
	return nil
}

func parseConstant(el *Node) (AttrConstant, error) {
	name := el.AttrValue("name")
	v, err := strconv.ParseInt(strings.TrimSpace(el.AttrValue("value")), 0, 64)
	if err != nil {
		return AttrConstant{}, errors.New(errors.ErrCodeInvalidDocument, "%s %q has invalid value %q", el.Tag, name, el.AttrValue("value"))
	}
	return AttrConstant{Name: name, Value: int(v)}, nil
}

func markupName(name string, system bool) string {
	if system {
		return SystemPackage + ":" + name
	}
	return name
}

// Value returns the attribute definition for id.
func (l *AttrLoader) Value(id int) (*AttrFormat, error) {
	e, err := l.get(id)
	if err != nil {
		return nil, err
	}
	return e.value, nil
}

// Lookup returns the definition for an attribute as named in markup.
// Names with a non-platform prefix ("app:layout_x") fall back to the bare name.
func (l *AttrLoader) Lookup(attr string) (*AttrFormat, bool) {
	if f, ok := l.byName[attr]; ok {
		return f, true
	}
	if i := strings.IndexByte(attr, ':'); i >= 0 && attr[:i] != SystemPackage {
		f, ok := l.byName[attr[i+1:]]
		return f, ok
	}
	return nil, false
}

// Coerce converts an enum or flags attribute value to its numeric form.
// It reports false, leaving the value alone, for attributes without
// constants, for references, and for names it does not know.
func (l *AttrLoader) Coerce(attr, value string) (string, bool) {
	if value == "" || IsReference(value) || IsThemeReference(value) {
		return value, false
	}
	f, ok := l.Lookup(attr)
	if !ok {
		return value, false
	}
	for _, c := range f.Enums {
		if c.Name == value {
			return strconv.Itoa(c.Value), true
		}
	}
	if len(f.Flags) == 0 {
		return value, false
	}
	bits := 0
	for _, part := range strings.Split(value, "|") {
		found := false
		for _, c := range f.Flags {
			if c.Name == strings.TrimSpace(part) {
				bits |= c.Value
				found = true
				break
			}
		}
		if !found {
			return value, false
		}
	}
	return strconv.Itoa(bits), true
}
