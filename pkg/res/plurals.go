package res

import (
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"

	"github.com/matzehuels/resloader/pkg/errors"
)

// Plural quantity categories.
const (
	QuantityZero  = "zero"
	QuantityOne   = "one"
	QuantityTwo   = "two"
	QuantityFew   = "few"
	QuantityMany  = "many"
	QuantityOther = "other"
)

// exactQuantities maps the categories that match one number exactly.
var exactQuantities = map[int]string{0: QuantityZero, 1: QuantityOne, 2: QuantityTwo}

var formNames = map[plural.Form]string{
	plural.Zero:  QuantityZero,
	plural.One:   QuantityOne,
	plural.Two:   QuantityTwo,
	plural.Few:   QuantityFew,
	plural.Many:  QuantityMany,
	plural.Other: QuantityOther,
}

// PluralLoader loads <plurals> elements: a mapping from quantity category
// to text.
type PluralLoader struct {
	valueStore[map[string]string]
	strings *StringLoader
	locale  language.Tag
}

// NewPluralLoader creates a plural loader. locale selects the CLDR cardinal
// rules used for categories other than zero, one and two.
func NewPluralLoader(index *Index, strings *StringLoader, locale language.Tag) *PluralLoader {
	return &PluralLoader{
		valueStore: newValueStore[map[string]string](index, TypePlurals),
		strings:    strings,
		locale:     locale,
	}
}

// Handles implements ElementLoader.
func (l *PluralLoader) Handles(tag string) bool { return tag == "plurals" }

// LoadElement implements ElementLoader.
func (l *PluralLoader) LoadElement(doc *Document, el *Node) error {
	name, err := requireName(doc, el)
	if err != nil {
		return err
	}
	items := make(map[string]string, len(el.Children))
	for _, child := range el.Children {
		if child.Tag != "item" {
			continue
		}
		q := child.AttrValue("quantity")
		if _, ok := formByName(q); !ok {
			return errors.New(errors.ErrCodeInvalidDocument, "%s: plurals %q has unknown quantity %q", doc.Path, name, q)
		}
		items[q] = unescapeText(child.Text)
	}
	l.put(doc, name, items)
	return nil
}

// Value returns the text for quantity. The category is chosen in order:
// the exact categories zero, one and two; the locale's CLDR category; other.
// A quantity that maps to no defined category fails.
func (l *PluralLoader) Value(id int, quantity int) (string, error) {
	e, err := l.get(id)
	if err != nil {
		return "", err
	}
	text, ok := l.pick(e.value, quantity)
	if !ok {
		return "", errors.New(errors.ErrCodeNotFound, "no plural form for quantity %d in id %#x (%d) [%s]",
			quantity, id, id, l.index.NameString(id))
	}
	return l.strings.ResolveText(text, e.system)
}

// Quantities returns the defined categories for id, with @string
// references resolved.
func (l *PluralLoader) Quantities(id int) (map[string]string, error) {
	e, err := l.get(id)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(e.value))
	for k, v := range e.value {
		s, err := l.strings.ResolveText(v, e.system)
		if err != nil {
			return nil, err
		}
		out[k] = s
	}
	return out, nil
}

func (l *PluralLoader) pick(items map[string]string, quantity int) (string, bool) {
	if q, ok := exactQuantities[quantity]; ok {
		if text, ok := items[q]; ok {
			return text, true
		}
	}
	n := quantity
	if n < 0 {
		n = -n
	}
	form := plural.Cardinal.MatchPlural(l.locale, n, 0, 0, 0, 0)
	if text, ok := items[formNames[form]]; ok {
		return text, true
	}
	text, ok := items[QuantityOther]
	return text, ok
}

func formByName(q string) (plural.Form, bool) {
	for f, name := range formNames {
		if name == q {
			return f, true
		}
	}
	return 0, false
}
