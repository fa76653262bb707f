package render

import (
	"fmt"
	"strings"

	"github.com/matzehuels/resloader/pkg/res"
)

// Options configures text rendering.
type Options struct {
	// Attrs appends each element's attributes to its line.
	Attrs bool
}

const (
	branch     = "├── "
	lastBranch = "└── "
	pipe       = "│   "
	space      = "    "
)

// tree is the shape shared by view, menu and preference trees.
type tree[T any] struct {
	label    func(T) string
	children func(T) []T
}

func (t tree[T]) write(b *strings.Builder, n T, prefix string, last, root bool) {
	switch {
	case root:
		b.WriteString(t.label(n))
	case last:
		b.WriteString(prefix + lastBranch + t.label(n))
	default:
		b.WriteString(prefix + branch + t.label(n))
	}
	b.WriteByte('\n')

	childPrefix := prefix
	if !root {
		if last {
			childPrefix += space
		} else {
			childPrefix += pipe
		}
	}
	kids := t.children(n)
	for i, c := range kids {
		t.write(b, c, childPrefix, i == len(kids)-1, false)
	}
}

// Tree renders a view tree, one element per line.
func Tree(root *res.Node, opts Options) string {
	if root == nil {
		return ""
	}
	var b strings.Builder
	tree[*res.Node]{
		label:    func(n *res.Node) string { return nodeLabel(n, opts) },
		children: func(n *res.Node) []*res.Node { return n.Children },
	}.write(&b, root, "", true, true)
	return b.String()
}

func nodeLabel(n *res.Node, opts Options) string {
	label := n.Tag
	if opts.Attrs {
		for _, a := range n.Attrs {
			label += fmt.Sprintf(" %s=%q", a.Name, a.Value)
		}
	}
	if len(n.Children) == 0 {
		if text := strings.TrimSpace(n.Text); text != "" {
			label += fmt.Sprintf(" %q", text)
		}
	}
	return label
}

// Menu renders an inflated menu. Items show their title, id and state.
func Menu(m *res.MenuTree) string {
	if m == nil {
		return ""
	}
	root := res.MenuEntry{MenuItem: res.MenuItem{Title: "menu"}, SubMenu: m}

	var b strings.Builder
	tree[res.MenuEntry]{
		label: func(e res.MenuEntry) string {
			if e.SubMenu == m {
				return e.Title
			}
			return menuLabel(e.MenuItem)
		},
		children: func(e res.MenuEntry) []res.MenuEntry {
			if e.SubMenu == nil {
				return nil
			}
			return e.SubMenu.Items
		},
	}.write(&b, root, "", true, true)
	return b.String()
}

func menuLabel(item res.MenuItem) string {
	label := item.Title
	if label == "" {
		label = "(untitled)"
	}
	if item.ID != 0 {
		label += fmt.Sprintf(" #0x%08x", item.ID)
	}
	var flags []string
	if item.Checkable {
		if item.Checked {
			flags = append(flags, "checked")
		} else {
			flags = append(flags, "checkable")
		}
	}
	if !item.Visible {
		flags = append(flags, "hidden")
	}
	if !item.Enabled {
		flags = append(flags, "disabled")
	}
	if len(flags) > 0 {
		label += " [" + strings.Join(flags, ", ") + "]"
	}
	return label
}

// Preferences renders an inflated preference hierarchy.
func Preferences(p *res.Preference) string {
	if p == nil {
		return ""
	}
	var b strings.Builder
	tree[*res.Preference]{
		label:    preferenceLabel,
		children: func(p *res.Preference) []*res.Preference { return p.Children },
	}.write(&b, p, "", true, true)
	return b.String()
}

func preferenceLabel(p *res.Preference) string {
	label := p.Kind
	if p.Key != "" {
		label += " (" + p.Key + ")"
	}
	if p.Title != "" {
		label += fmt.Sprintf(" %q", p.Title)
	}
	if p.Summary != "" {
		label += " - " + p.Summary
	}
	if p.DefaultValue != "" {
		label += " = " + p.DefaultValue
	}
	return label
}
