package res

import (
	"strings"
)

// Type is a resource type as it appears in references and symbol tables.
type Type = string

// Resource types known to the loaders.
const (
	TypeString   Type = "string"
	TypePlurals  Type = "plurals"
	TypeArray    Type = "array"
	TypeColor    Type = "color"
	TypeAttr     Type = "attr"
	TypeDrawable Type = "drawable"
	TypeLayout   Type = "layout"
	TypeMenu     Type = "menu"
	TypeXML      Type = "xml"
	TypeRaw      Type = "raw"
	TypeID       Type = "id"
	TypeAnim     Type = "anim"
	TypeDimen    Type = "dimen"
	TypeStyle    Type = "style"
)

// SystemPackage is the package of the platform resource bundle.
const SystemPackage = "android"

// Name identifies a resource by package, type and simple name.
type Name struct {
	Package string
	Type    Type
	Entry   string
}

// String formats the name as "package:type/entry", or "type/entry" when the
// package is empty.
func (n Name) String() string {
	if n.Package == "" {
		return n.Type + "/" + n.Entry
	}
	return n.Package + ":" + n.Type + "/" + n.Entry
}

// IsSystem reports whether the name belongs to the platform package.
func (n Name) IsSystem() bool { return n.Package == SystemPackage }

// ParseReference parses a markup reference of the form "@type/name",
// "@package:type/name", "@+id/name" or "@*android:type/name". The returned
// name has an empty Package when the reference did not specify one.
// "@null" and anything that is not a reference report false.
func ParseReference(ref string) (Name, bool) {
	if !strings.HasPrefix(ref, "@") || ref == "@null" {
		return Name{}, false
	}
	s := strings.TrimPrefix(ref[1:], "+")
	s = strings.TrimPrefix(s, "*")

	slash := strings.IndexByte(s, '/')
	if slash <= 0 || slash == len(s)-1 {
		return Name{}, false
	}
	head, entry := s[:slash], s[slash+1:]

	var n Name
	if colon := strings.IndexByte(head, ':'); colon >= 0 {
		n.Package, n.Type = head[:colon], head[colon+1:]
	} else {
		n.Type = head
	}
	if n.Type == "" {
		return Name{}, false
	}
	n.Entry = entry
	return n, true
}

// IsReference reports whether value is a resource reference rather than
// literal text.
func IsReference(value string) bool {
	_, ok := ParseReference(value)
	return ok
}

// IsThemeReference reports whether value is a theme attribute reference
// ("?attr/name", "?android:attr/name"). These are never resolved at load time.
func IsThemeReference(value string) bool {
	return strings.HasPrefix(value, "?") && len(value) > 1
}
