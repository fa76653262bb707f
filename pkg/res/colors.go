package res

import (
	"strconv"
	"strings"

	"github.com/matzehuels/resloader/pkg/errors"
)

// ColorMissing is returned by color lookups for ids that are not registered.
const ColorMissing = -1

// namedColors are the names accepted in place of a hex literal.
var namedColors = map[string]uint32{
	"black":     0xFF000000,
	"darkgray":  0xFF444444,
	"gray":      0xFF888888,
	"lightgray": 0xFFCCCCCC,
	"white":     0xFFFFFFFF,
	"red":       0xFFFF0000,
	"green":     0xFF00FF00,
	"blue":      0xFF0000FF,
	"yellow":    0xFFFFFF00,
	"cyan":      0xFF00FFFF,
	"magenta":   0xFFFF00FF,
	"aqua":      0xFF00FFFF,
	"fuchsia":   0xFFFF00FF,
	"darkgrey":  0xFF444444,
	"grey":      0xFF888888,
	"lightgrey": 0xFFCCCCCC,
	"lime":      0xFF00FF00,
	"maroon":    0xFF800000,
	"navy":      0xFF000080,
	"olive":     0xFF808000,
	"purple":    0xFF800080,
	"silver":    0xFFC0C0C0,
	"teal":      0xFF008080,
}

// ColorLoader loads <color> elements.
type ColorLoader struct {
	valueStore[string]
}

// NewColorLoader creates a color loader.
func NewColorLoader(index *Index) *ColorLoader {
	return &ColorLoader{valueStore: newValueStore[string](index, TypeColor)}
}

// Handles implements ElementLoader.
func (l *ColorLoader) Handles(tag string) bool { return tag == "color" }

// LoadElement implements ElementLoader. The literal is validated at load
// time so that a malformed color fails initialization.
func (l *ColorLoader) LoadElement(doc *Document, el *Node) error {
	name, err := requireName(doc, el)
	if err != nil {
		return err
	}
	value := strings.TrimSpace(el.Text)
	if !IsReference(value) {
		if _, err := ParseColor(value); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidDocument, err, "%s: color %q", doc.Path, name)
		}
	}
	l.put(doc, name, value)
	return nil
}

// Value returns the packed ARGB color for id as a signed 32-bit value.
// Ids that are not registered at all return ColorMissing without an error;
// a registered color that no bundle defined fails with NOT_FOUND.
func (l *ColorLoader) Value(id int) (int, error) {
	if !l.index.Contains(id) {
		return ColorMissing, nil
	}
	e, err := l.get(id)
	if err != nil {
		return ColorMissing, err
	}
	value, system := e.value, e.system
	for depth := 0; IsReference(value); depth++ {
		if depth >= maxReferenceDepth {
			return ColorMissing, errors.New(errors.ErrCodeInvalidInput, "color reference chain too deep at %s", value)
		}
		ref, ok := l.index.ResolveReference(value, system)
		if !ok {
			return ColorMissing, errors.New(errors.ErrCodeNotFound, "unresolved color reference %s", value)
		}
		next, err := l.get(ref)
		if err != nil {
			return ColorMissing, err
		}
		value, system = next.value, next.system
	}
	c, err := ParseColor(value)
	if err != nil {
		return ColorMissing, err
	}
	return int(int32(c)), nil
}

// ParseColor parses "#RGB", "#ARGB", "#RRGGBB", "#AARRGGBB" or a color name
// into packed ARGB. Missing alpha means opaque.
func ParseColor(s string) (uint32, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		if c, ok := namedColors[strings.ToLower(s)]; ok {
			return c, nil
		}
		return 0, errors.New(errors.ErrCodeInvalidInput, "unknown color %q", s)
	}

	hex := s[1:]
	switch len(hex) {
	case 3, 4:
		var b strings.Builder
		for _, r := range hex {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		hex = b.String()
	case 6, 8:
	default:
		return 0, errors.New(errors.ErrCodeInvalidInput, "invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "invalid color %q", s)
	}
	if len(hex) == 6 {
		v |= 0xFF000000
	}
	return uint32(v), nil
}
