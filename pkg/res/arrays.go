package res

// StringArrayLoader loads <string-array> elements and their <item> children.
type StringArrayLoader struct {
	valueStore[[]string]
	strings *StringLoader
}

// NewStringArrayLoader creates a string-array loader. Items that reference
// strings are resolved through strings at lookup time.
func NewStringArrayLoader(index *Index, strings *StringLoader) *StringArrayLoader {
	return &StringArrayLoader{valueStore: newValueStore[[]string](index, TypeArray), strings: strings}
}

// Handles implements ElementLoader.
func (l *StringArrayLoader) Handles(tag string) bool { return tag == "string-array" }

// LoadElement implements ElementLoader.
func (l *StringArrayLoader) LoadElement(doc *Document, el *Node) error {
	name, err := requireName(doc, el)
	if err != nil {
		return err
	}
	items := make([]string, 0, len(el.Children))
	for _, child := range el.Children {
		if child.Tag == "item" {
			items = append(items, unescapeText(child.Text))
		}
	}
	l.put(doc, name, items)
	return nil
}

// Value returns the items of the array, with @string references resolved.
func (l *StringArrayLoader) Value(id int) ([]string, error) {
	e, err := l.get(id)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(e.value))
	for i, item := range e.value {
		s, err := l.strings.ResolveText(item, e.system)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}
