package res

import (
	"sort"
	"strings"

	"github.com/matzehuels/resloader/pkg/errors"
)

// valueEntry remembers which bundle defined a value so that references
// inside it resolve against the right package.
type valueEntry[T any] struct {
	value  T
	system bool
}

// valueStore is the id-keyed store shared by the value loaders. Later puts
// for the same id replace earlier ones.
type valueStore[T any] struct {
	index  *Index
	typ    Type
	values map[int]valueEntry[T]
}

func newValueStore[T any](index *Index, typ Type) valueStore[T] {
	return valueStore[T]{index: index, typ: typ, values: make(map[int]valueEntry[T])}
}

// put stores v under the id of typ/name as seen from doc. Names without a
// registered id are dropped: nothing could ever look them up.
func (s *valueStore[T]) put(doc *Document, name string, v T) bool {
	id, ok := s.index.Lookup(s.typ, name, doc.System)
	if !ok {
		return false
	}
	s.values[id] = valueEntry[T]{value: v, system: doc.System}
	return true
}

func (s *valueStore[T]) get(id int) (valueEntry[T], error) {
	e, ok := s.values[id]
	if !ok {
		return e, errors.NotFound(s.typ, id, s.index.NameString(id))
	}
	return e, nil
}

// ids returns the stored ids in ascending order.
func (s *valueStore[T]) ids() []int {
	ids := make([]int, 0, len(s.values))
	for id := range s.values {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Len returns the number of stored values.
func (s *valueStore[T]) Len() int { return len(s.values) }

// requireName returns the name attribute of a value element.
func requireName(doc *Document, el *Node) (string, error) {
	name := strings.TrimSpace(el.AttrValue("name"))
	if name == "" {
		return "", errors.New(errors.ErrCodeInvalidDocument, "%s: <%s> without a name attribute", doc.Path, el.Tag)
	}
	return name, nil
}

// unescapeText applies the string resource rules: surrounding whitespace is
// dropped, surrounding double quotes are removed and backslash escapes are
// decoded.
func unescapeText(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	if !strings.ContainsRune(s, '\\') {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i == len(s)-1 {
			b.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case '\'', '"', '\\', '@', '?':
			b.WriteByte(s[i])
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
