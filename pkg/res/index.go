package res

import (
	"github.com/matzehuels/resloader/pkg/errors"
)

// Index is the bidirectional mapping between resource ids and names.
//
// Registration happens before loading starts; afterwards the index is only
// read, so it needs no locking. On collision the first registrant wins, both
// for ids and for names.
type Index struct {
	byID   map[int]Name
	byName map[Name]int

	// localPackages lists local packages in registration order; unqualified
	// references in local documents are tried against each of them.
	localPackages []string
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{
		byID:   make(map[int]Name),
		byName: make(map[Name]int),
	}
}

// AddLocalSymbols registers an application or library symbol table.
func (x *Index) AddLocalSymbols(t *SymbolTable) {
	if t == nil {
		return
	}
	known := false
	for _, p := range x.localPackages {
		if p == t.Package {
			known = true
			break
		}
	}
	if !known {
		x.localPackages = append(x.localPackages, t.Package)
	}
	x.add(t.Package, t)
}

// AddSystemSymbols registers the platform symbol table. Its names are always
// placed in the "android" package regardless of the table's own package.
func (x *Index) AddSystemSymbols(t *SymbolTable) {
	if t == nil {
		return
	}
	x.add(SystemPackage, t)
}

func (x *Index) add(pkg string, t *SymbolTable) {
	t.Each(func(typ Type, entry string, id int) {
		n := Name{Package: pkg, Type: typ, Entry: entry}
		if _, dup := x.byID[id]; !dup {
			x.byID[id] = n
		}
		if _, dup := x.byName[n]; !dup {
			x.byName[n] = id
		}
	})
}

// Name returns the registered name for id, or a NOT_FOUND error.
func (x *Index) Name(id int) (Name, error) {
	n, ok := x.byID[id]
	if !ok {
		return Name{}, errors.NotFound("resource", id, "")
	}
	return n, nil
}

// NameString returns the formatted name for id, or "" when id is unknown.
func (x *Index) NameString(id int) string {
	if n, ok := x.byID[id]; ok {
		return n.String()
	}
	return ""
}

// Contains reports whether id is registered.
func (x *Index) Contains(id int) bool {
	_, ok := x.byID[id]
	return ok
}

// ID returns the id registered for a fully qualified name.
func (x *Index) ID(n Name) (int, bool) {
	id, ok := x.byName[n]
	return id, ok
}

// Lookup resolves typ/entry as seen from a document. System documents only
// see the platform package. Local documents see every local package in
// registration order and fall back to the platform package, so a local
// definition without its own symbol overwrites the platform value.
func (x *Index) Lookup(typ Type, entry string, system bool) (int, bool) {
	if !system {
		for _, pkg := range x.localPackages {
			if id, ok := x.byName[Name{Package: pkg, Type: typ, Entry: entry}]; ok {
				return id, true
			}
		}
	}
	id, ok := x.byName[Name{Package: SystemPackage, Type: typ, Entry: entry}]
	return id, ok
}

// ResolveReference resolves a markup reference such as "@string/title" or
// "@android:color/black". "@null" resolves to 0.
func (x *Index) ResolveReference(ref string, system bool) (int, bool) {
	if ref == "@null" {
		return 0, true
	}
	n, ok := ParseReference(ref)
	if !ok {
		return 0, false
	}
	if n.Package == "" {
		return x.Lookup(n.Type, n.Entry, system)
	}
	if n.Package == SystemPackage {
		return x.Lookup(n.Type, n.Entry, true)
	}
	return x.ID(n)
}

// Len returns the number of registered ids.
func (x *Index) Len() int { return len(x.byID) }
