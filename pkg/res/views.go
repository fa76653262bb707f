package res

import (
	"sort"
	"sync"

	"github.com/matzehuels/resloader/pkg/errors"
)

// viewTextAttrs are the view attributes that carry user-visible text.
var viewTextAttrs = map[string]bool{
	"android:text":               true,
	"android:hint":               true,
	"android:contentDescription": true,
}

// layoutDoc is one loaded layout document.
type layoutDoc struct {
	root   *Node
	path   string
	system bool
}

// ViewLoader keeps the layout documents of every layout directory, keyed by
// "<dir>/<name>" ("layout/main", "layout-land/main"). Platform layouts are
// keyed with an "android:" prefix. A later document with the same key
// replaces the earlier one.
type ViewLoader struct {
	index   *Index
	attrs   *AttrLoader
	policy  *i18nPolicy
	layouts map[string]layoutDoc

	mu         sync.RWMutex
	qualifiers []string
}

// NewViewLoader creates a view loader. attrs is used to coerce enum and flag
// attribute values during inflation.
func NewViewLoader(index *Index, attrs *AttrLoader, policy *i18nPolicy) *ViewLoader {
	return &ViewLoader{
		index:   index,
		attrs:   attrs,
		policy:  policy,
		layouts: make(map[string]layoutDoc),
	}
}

// Handles implements ElementLoader. Layout documents may have any root.
func (l *ViewLoader) Handles(string) bool { return true }

// LoadElement implements ElementLoader.
func (l *ViewLoader) LoadElement(doc *Document, el *Node) error {
	if el != doc.Root {
		return nil
	}
	if !doc.System {
		if err := l.policy.checkNode(doc.Path, el, viewTextAttrs); err != nil {
			return err
		}
	}
	l.layouts[layoutKey(doc.Dir, doc.Name, doc.System)] = layoutDoc{root: el, path: doc.Path, system: doc.System}
	return nil
}

func layoutKey(dir, name string, system bool) string {
	key := dir + "/" + name
	if system {
		return SystemPackage + ":" + key
	}
	return key
}

// SetQualifiers sets the qualifier search path: a lookup for "main" tries
// "layout-<q>/main" for each q in order before "layout/main".
func (l *ViewLoader) SetQualifiers(qualifiers ...string) {
	l.mu.Lock()
	l.qualifiers = append([]string(nil), qualifiers...)
	l.mu.Unlock()
}

// Node returns the uninflated tree stored under key, or nil.
func (l *ViewLoader) Node(key string) *Node {
	d, ok := l.layouts[key]
	if !ok {
		return nil
	}
	return d.root
}

// Keys returns the stored layout keys in sorted order.
func (l *ViewLoader) Keys() []string {
	keys := make([]string, 0, len(l.layouts))
	for k := range l.layouts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of stored layout documents.
func (l *ViewLoader) Len() int { return len(l.layouts) }

func (l *ViewLoader) find(n Name) (layoutDoc, bool) {
	system := n.IsSystem()
	l.mu.RLock()
	qualifiers := l.qualifiers
	l.mu.RUnlock()
	for _, q := range qualifiers {
		if d, ok := l.layouts[layoutKey(TypeLayout+"-"+q, n.Entry, system)]; ok {
			return d, true
		}
	}
	d, ok := l.layouts[layoutKey(TypeLayout, n.Entry, system)]
	return d, ok
}

func (l *ViewLoader) lookup(id int) (layoutDoc, error) {
	n, err := l.index.Name(id)
	if err != nil || n.Type != TypeLayout {
		return layoutDoc{}, errors.NotFound(TypeLayout, id, l.index.NameString(id))
	}
	d, ok := l.find(n)
	if !ok {
		return layoutDoc{}, errors.NotFound(TypeLayout, id, n.String())
	}
	return d, nil
}

// Inflate returns a fresh copy of the layout for id with <include> elements
// expanded and enum or flag attribute values replaced by their numbers.
//
// When parent is non-nil the result is appended to its children; a <merge>
// root contributes its children directly to parent and parent is returned.
// A <merge> root without a parent is an error.
func (l *ViewLoader) Inflate(id int, parent *Node) (*Node, error) {
	d, err := l.lookup(id)
	if err != nil {
		return nil, err
	}
	root, err := l.inflate(d, 0)
	if err != nil {
		return nil, err
	}
	if root.Tag == "merge" {
		if parent == nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "%s: <merge> can only be inflated into a parent", d.path)
		}
		parent.Children = append(parent.Children, root.Children...)
		return parent, nil
	}
	if parent != nil {
		parent.Children = append(parent.Children, root)
	}
	return root, nil
}

func (l *ViewLoader) inflate(d layoutDoc, depth int) (*Node, error) {
	if depth > maxReferenceDepth {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s: <include> nesting too deep", d.path)
	}
	root := d.root.Clone()
	if !d.system {
		if err := l.policy.checkNode(d.path, root, viewTextAttrs); err != nil {
			return nil, err
		}
	}
	if err := l.expand(root, d, depth); err != nil {
		return nil, err
	}
	return root, nil
}

func (l *ViewLoader) expand(n *Node, d layoutDoc, depth int) error {
	l.coerce(n)
	children := make([]*Node, 0, len(n.Children))
	for _, child := range n.Children {
		if child.Tag != "include" {
			if err := l.expand(child, d, depth); err != nil {
				return err
			}
			children = append(children, child)
			continue
		}

		ref := child.AttrValue("layout")
		id, ok := l.index.ResolveReference(ref, d.system)
		if !ok {
			return errors.New(errors.ErrCodeNotFound, "%s: unresolved include %q", d.path, ref)
		}
		included, err := l.lookup(id)
		if err != nil {
			return err
		}
		sub, err := l.inflate(included, depth+1)
		if err != nil {
			return err
		}
		if sub.Tag == "merge" {
			children = append(children, sub.Children...)
			continue
		}
		for _, a := range child.Attrs {
			if a.Name != "layout" {
				sub.SetAttr(a.Name, a.Value)
			}
		}
		l.coerce(sub)
		children = append(children, sub)
	}
	n.Children = children
	return nil
}

func (l *ViewLoader) coerce(n *Node) {
	if l.attrs == nil {
		return
	}
	for i, a := range n.Attrs {
		if v, ok := l.attrs.Coerce(a.Name, a.Value); ok {
			n.Attrs[i].Value = v
		}
	}
}
