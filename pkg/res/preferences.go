package res

import (
	"sort"

	"github.com/matzehuels/resloader/pkg/errors"
)

// preferenceTextAttrs are the preference attributes that carry
// user-visible text.
var preferenceTextAttrs = map[string]bool{
	"android:title":              true,
	"android:summary":            true,
	"android:summaryOn":          true,
	"android:summaryOff":         true,
	"android:dialogTitle":        true,
	"android:dialogMessage":      true,
	"android:positiveButtonText": true,
	"android:negativeButtonText": true,
}

// Preference is one node of an inflated preference hierarchy. Kind is the
// element tag ("PreferenceScreen", "CheckBoxPreference", ...). Title and
// Summary are resolved to text.
type Preference struct {
	Kind         string
	Key          string
	Title        string
	Summary      string
	DefaultValue string
	Attrs        []Attr
	Children     []*Preference
}

// PreferenceLoader keeps preference screens found in xml directories,
// keyed "xml/<name>".
type PreferenceLoader struct {
	index   *Index
	strings *StringLoader
	policy  *i18nPolicy
	screens map[string]layoutDoc
}

// NewPreferenceLoader creates a preference loader.
func NewPreferenceLoader(index *Index, strings *StringLoader, policy *i18nPolicy) *PreferenceLoader {
	return &PreferenceLoader{
		index:   index,
		strings: strings,
		policy:  policy,
		screens: make(map[string]layoutDoc),
	}
}

// Handles implements ElementLoader. Other documents in xml directories
// (searchable, app widget providers) are ignored.
func (l *PreferenceLoader) Handles(tag string) bool { return tag == "PreferenceScreen" }

// LoadElement implements ElementLoader.
func (l *PreferenceLoader) LoadElement(doc *Document, el *Node) error {
	if el != doc.Root {
		return nil
	}
	if !doc.System {
		if err := l.policy.checkNode(doc.Path, el, preferenceTextAttrs); err != nil {
			return err
		}
	}
	l.screens[layoutKey(TypeXML, doc.Name, doc.System)] = layoutDoc{root: el, path: doc.Path, system: doc.System}
	return nil
}

// Node returns the preference document stored under key, or nil.
func (l *PreferenceLoader) Node(key string) *Node {
	if d, ok := l.screens[key]; ok {
		return d.root
	}
	return nil
}

// Keys returns the stored preference keys in sorted order.
func (l *PreferenceLoader) Keys() []string {
	keys := make([]string, 0, len(l.screens))
	for k := range l.screens {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Inflate builds the preference hierarchy for id.
func (l *PreferenceLoader) Inflate(id int) (*Preference, error) {
	n, err := l.index.Name(id)
	if err != nil || n.Type != TypeXML {
		return nil, errors.NotFound(TypeXML, id, l.index.NameString(id))
	}
	d, ok := l.screens[layoutKey(TypeXML, n.Entry, n.IsSystem())]
	if !ok {
		return nil, errors.NotFound(TypeXML, id, n.String())
	}
	return l.inflate(d, d.root)
}

func (l *PreferenceLoader) inflate(d layoutDoc, el *Node) (*Preference, error) {
	if !d.system {
		for _, a := range el.Attrs {
			if !preferenceTextAttrs[a.Name] {
				continue
			}
			if err := l.policy.check(d.path, a.Name, a.Value); err != nil {
				return nil, err
			}
		}
	}
	title, err := l.strings.ResolveText(el.AttrValue("android:title"), d.system)
	if err != nil {
		return nil, err
	}
	summary, err := l.strings.ResolveText(el.AttrValue("android:summary"), d.system)
	if err != nil {
		return nil, err
	}

	p := &Preference{
		Kind:         el.Tag,
		Key:          el.AttrValue("android:key"),
		Title:        title,
		Summary:      summary,
		DefaultValue: el.AttrValue("android:defaultValue"),
		Attrs:        append([]Attr(nil), el.Attrs...),
	}
	for _, child := range el.Children {
		c, err := l.inflate(d, child)
		if err != nil {
			return nil, err
		}
		p.Children = append(p.Children, c)
	}
	return p, nil
}
