package res

import (
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/matzehuels/resloader/pkg/errors"
)

// menuTextAttrs are the menu item attributes that carry user-visible text.
var menuTextAttrs = map[string]bool{
	"android:title":          true,
	"android:titleCondensed": true,
}

// MenuItem is one inflated menu item. Title fields are resolved to text;
// ids are resolved through the index (0 when absent).
type MenuItem struct {
	ID             int
	GroupID        int
	Order          int
	Title          string
	TitleCondensed string
	Icon           int
	Checkable      bool
	Checked        bool
	Visible        bool
	Enabled        bool
	Attrs          []Attr // all attributes, enum and flag values coerced
}

// Menu is the container a menu document is inflated into.
type Menu interface {
	AddItem(item MenuItem)
	// AddSubMenu adds item as the header of a sub-menu and returns the
	// sub-menu container.
	AddSubMenu(item MenuItem) Menu
}

// MenuEntry is an item of a MenuTree, with its sub-menu if it has one.
type MenuEntry struct {
	MenuItem
	SubMenu *MenuTree
}

// MenuTree is the Menu implementation used when the caller has no container
// of its own.
type MenuTree struct {
	Items []MenuEntry
}

// AddItem implements Menu.
func (m *MenuTree) AddItem(item MenuItem) {
	m.Items = append(m.Items, MenuEntry{MenuItem: item})
}

// AddSubMenu implements Menu.
func (m *MenuTree) AddSubMenu(item MenuItem) Menu {
	sub := &MenuTree{}
	m.Items = append(m.Items, MenuEntry{MenuItem: item, SubMenu: sub})
	return sub
}

// MenuLoader keeps menu documents keyed like layouts ("menu/main",
// "menu-land/main").
type MenuLoader struct {
	index   *Index
	attrs   *AttrLoader
	strings *StringLoader
	policy  *i18nPolicy
	menus   map[string]layoutDoc

	mu         sync.RWMutex
	qualifiers []string
}

// NewMenuLoader creates a menu loader.
func NewMenuLoader(index *Index, attrs *AttrLoader, strings *StringLoader, policy *i18nPolicy) *MenuLoader {
	return &MenuLoader{
		index:   index,
		attrs:   attrs,
		strings: strings,
		policy:  policy,
		menus:   make(map[string]layoutDoc),
	}
}

// Handles implements ElementLoader.
func (l *MenuLoader) Handles(tag string) bool { return tag == "menu" }

// LoadElement implements ElementLoader.
func (l *MenuLoader) LoadElement(doc *Document, el *Node) error {
	if el != doc.Root {
		return nil
	}
	if !doc.System {
		if err := l.policy.checkNode(doc.Path, el, menuTextAttrs); err != nil {
			return err
		}
	}
	l.menus[layoutKey(doc.Dir, doc.Name, doc.System)] = layoutDoc{root: el, path: doc.Path, system: doc.System}
	return nil
}

// SetQualifiers sets the qualifier search path shared with layouts.
func (l *MenuLoader) SetQualifiers(qualifiers ...string) {
	l.mu.Lock()
	l.qualifiers = append([]string(nil), qualifiers...)
	l.mu.Unlock()
}

// find tries "menu-<q>/name" for each qualifier, then "menu/name". A menu
// that only exists under qualified directories resolves to the first of
// them in key order.
func (l *MenuLoader) find(n Name) (layoutDoc, bool) {
	system := n.IsSystem()
	l.mu.RLock()
	qualifiers := l.qualifiers
	l.mu.RUnlock()
	for _, q := range qualifiers {
		if d, ok := l.menus[layoutKey(TypeMenu+"-"+q, n.Entry, system)]; ok {
			return d, true
		}
	}
	if d, ok := l.menus[layoutKey(TypeMenu, n.Entry, system)]; ok {
		return d, true
	}

	prefix := ""
	if system {
		prefix = SystemPackage + ":"
	}
	for _, key := range l.Keys() {
		rest, ok := strings.CutPrefix(key, prefix+TypeMenu+"-")
		if !ok {
			continue
		}
		if _, name, ok := strings.Cut(rest, "/"); ok && name == n.Entry {
			return l.menus[key], true
		}
	}
	return layoutDoc{}, false
}

// Node returns the menu document stored under key, or nil.
func (l *MenuLoader) Node(key string) *Node {
	if d, ok := l.menus[key]; ok {
		return d.root
	}
	return nil
}

// Keys returns the stored menu keys in sorted order.
func (l *MenuLoader) Keys() []string {
	keys := make([]string, 0, len(l.menus))
	for k := range l.menus {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Inflate adds the items of the menu document for id to menu.
func (l *MenuLoader) Inflate(id int, menu Menu) error {
	n, err := l.index.Name(id)
	if err != nil || n.Type != TypeMenu {
		return errors.NotFound(TypeMenu, id, l.index.NameString(id))
	}
	d, ok := l.find(n)
	if !ok {
		return errors.NotFound(TypeMenu, id, n.String())
	}
	return l.inflateItems(d, d.root, menu, 0)
}

func (l *MenuLoader) inflateItems(d layoutDoc, parent *Node, menu Menu, groupID int) error {
	for _, child := range parent.Children {
		switch child.Tag {
		case "group":
			gid, _ := l.index.ResolveReference(child.AttrValue("android:id"), d.system)
			if err := l.inflateItems(d, child, menu, gid); err != nil {
				return err
			}
		case "item":
			item, err := l.item(d, child, groupID)
			if err != nil {
				return err
			}
			sub := submenu(child)
			if sub == nil {
				menu.AddItem(item)
				continue
			}
			if err := l.inflateItems(d, sub, menu.AddSubMenu(item), 0); err != nil {
				return err
			}
		}
	}
	return nil
}

func submenu(item *Node) *Node {
	for _, c := range item.Children {
		if c.Tag == "menu" {
			return c
		}
	}
	return nil
}

func (l *MenuLoader) item(d layoutDoc, el *Node, groupID int) (MenuItem, error) {
	item := MenuItem{GroupID: groupID, Visible: true, Enabled: true}
	item.ID, _ = l.index.ResolveReference(el.AttrValue("android:id"), d.system)
	item.Icon, _ = l.index.ResolveReference(el.AttrValue("android:icon"), d.system)
	item.Order, _ = strconv.Atoi(el.AttrValue("android:orderInCategory"))
	item.Checkable = parseBool(el.AttrValue("android:checkable"), false)
	item.Checked = parseBool(el.AttrValue("android:checked"), false)
	item.Visible = parseBool(el.AttrValue("android:visible"), true)
	item.Enabled = parseBool(el.AttrValue("android:enabled"), true)

	for _, attr := range []string{"android:title", "android:titleCondensed"} {
		v := el.AttrValue(attr)
		if !d.system {
			if err := l.policy.check(d.path, attr, v); err != nil {
				return item, err
			}
		}
		text, err := l.strings.ResolveText(v, d.system)
		if err != nil {
			return item, err
		}
		if attr == "android:title" {
			item.Title = text
		} else {
			item.TitleCondensed = text
		}
	}

	item.Attrs = append([]Attr(nil), el.Attrs...)
	for i, a := range item.Attrs {
		if v, ok := l.attrs.Coerce(a.Name, a.Value); ok {
			item.Attrs[i].Value = v
		}
	}
	return item, nil
}

func parseBool(s string, def bool) bool {
	if s == "" {
		return def
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return def
	}
	return b
}
