package res

import (
	"github.com/matzehuels/resloader/pkg/errors"
)

// maxReferenceDepth bounds chains of @string references.
const maxReferenceDepth = 16

// StringLoader loads <string> elements.
type StringLoader struct {
	valueStore[string]
}

// NewStringLoader creates a string loader resolving names through index.
func NewStringLoader(index *Index) *StringLoader {
	return &StringLoader{valueStore: newValueStore[string](index, TypeString)}
}

// Handles implements ElementLoader.
func (l *StringLoader) Handles(tag string) bool { return tag == "string" }

// LoadElement implements ElementLoader.
func (l *StringLoader) LoadElement(doc *Document, el *Node) error {
	name, err := requireName(doc, el)
	if err != nil {
		return err
	}
	l.put(doc, name, unescapeText(el.Text))
	return nil
}

// Value returns the string for id, following @string references.
func (l *StringLoader) Value(id int) (string, error) {
	e, err := l.get(id)
	if err != nil {
		return "", err
	}
	return l.follow(e.value, e.system, 0)
}

// ResolveText returns text unchanged unless it is a @string reference, in
// which case the referenced value is returned.
func (l *StringLoader) ResolveText(text string, system bool) (string, error) {
	return l.follow(text, system, 0)
}

func (l *StringLoader) follow(text string, system bool, depth int) (string, error) {
	n, ok := ParseReference(text)
	if !ok || n.Type != TypeString {
		return text, nil
	}
	if depth >= maxReferenceDepth {
		return "", errors.New(errors.ErrCodeInvalidInput, "string reference chain too deep at %s", text)
	}
	id, ok := l.index.ResolveReference(text, system)
	if !ok {
		return "", errors.New(errors.ErrCodeNotFound, "unresolved string reference %s", text)
	}
	e, err := l.get(id)
	if err != nil {
		return "", err
	}
	return l.follow(e.value, e.system, depth+1)
}
