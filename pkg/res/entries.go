package res

import (
	"fmt"
	"sort"
	"strings"
)

// Entry is one loaded value resource, rendered for listing.
type Entry struct {
	Type  Type
	ID    int
	Name  string
	Value string
}

var quantityOrder = []string{QuantityZero, QuantityOne, QuantityTwo, QuantityFew, QuantityMany, QuantityOther}

// Entries lists every loaded value resource and drawable, sorted by id.
// Values that fail to resolve are rendered as the error text.
func (e *Engine) Entries() ([]Entry, error) {
	if err := e.ensure(); err != nil {
		return nil, err
	}

	var out []Entry
	add := func(typ Type, id int, value string, err error) {
		if err != nil {
			value = "!" + err.Error()
		}
		out = append(out, Entry{Type: typ, ID: id, Name: e.index.NameString(id), Value: value})
	}

	for _, id := range e.strings.ids() {
		v, err := e.strings.Value(id)
		add(TypeString, id, v, err)
	}
	for _, id := range e.plurals.ids() {
		forms, err := e.plurals.Quantities(id)
		add(TypePlurals, id, formatPlurals(forms), err)
	}
	for _, id := range e.arrays.ids() {
		items, err := e.arrays.Value(id)
		add(TypeArray, id, "["+strings.Join(items, ", ")+"]", err)
	}
	for _, id := range e.colors.ids() {
		c, err := e.colors.Value(id)
		add(TypeColor, id, fmt.Sprintf("#%08X", uint32(c)), err)
	}
	for _, id := range e.attrs.ids() {
		f, err := e.attrs.Value(id)
		add(TypeAttr, id, formatAttr(f), err)
	}
	for _, id := range e.drawables.ids() {
		d := e.drawables.Drawable(id)
		add(TypeDrawable, id, d.Kind.String()+" "+d.Path, nil)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func formatPlurals(forms map[string]string) string {
	parts := make([]string, 0, len(forms))
	for _, q := range quantityOrder {
		if v, ok := forms[q]; ok {
			parts = append(parts, q+"="+v)
		}
	}
	return strings.Join(parts, ", ")
}

func formatAttr(f *AttrFormat) string {
	if f == nil {
		return ""
	}
	s := strings.Join(f.Formats, "|")
	var names []string
	for _, c := range f.Enums {
		names = append(names, c.Name)
	}
	for _, c := range f.Flags {
		names = append(names, c.Name)
	}
	if len(names) > 0 {
		s += " {" + strings.Join(names, ", ") + "}"
	}
	return s
}
