package res

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/resloader/pkg/errors"
)

// SymbolTable is an explicit name → id registry for one package, the
// equivalent of a generated R class.
type SymbolTable struct {
	Package string
	entries map[Type]map[string]int
}

// NewSymbolTable creates an empty table for pkg.
func NewSymbolTable(pkg string) *SymbolTable {
	return &SymbolTable{Package: pkg, entries: make(map[Type]map[string]int)}
}

// Add registers typ/entry with id. Re-adding the same name replaces the id.
func (t *SymbolTable) Add(typ Type, entry string, id int) error {
	if err := errors.ValidateTypeName(typ); err != nil {
		return err
	}
	if err := errors.ValidateEntryName(entry); err != nil {
		return err
	}
	m, ok := t.entries[typ]
	if !ok {
		m = make(map[string]int)
		t.entries[typ] = m
	}
	m[entry] = id
	return nil
}

// MustAdd is like Add but panics on invalid names. Intended for tables
// written by hand in Go.
func (t *SymbolTable) MustAdd(typ Type, entry string, id int) *SymbolTable {
	if err := t.Add(typ, entry, id); err != nil {
		panic(err)
	}
	return t
}

// Lookup returns the id registered for typ/entry.
func (t *SymbolTable) Lookup(typ Type, entry string) (int, bool) {
	id, ok := t.entries[typ][entry]
	return id, ok
}

// Len returns the number of registered symbols.
func (t *SymbolTable) Len() int {
	n := 0
	for _, m := range t.entries {
		n += len(m)
	}
	return n
}

// Each calls fn for every symbol, ordered by type and then by name.
func (t *SymbolTable) Each(fn func(typ Type, entry string, id int)) {
	types := make([]string, 0, len(t.entries))
	for typ := range t.entries {
		types = append(types, typ)
	}
	sort.Strings(types)
	for _, typ := range types {
		m := t.entries[typ]
		names := make([]string, 0, len(m))
		for name := range m {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fn(typ, name, m[name])
		}
	}
}

// LoadSymbols reads a symbol table file. Files ending in ".toml" are parsed
// with [ParseSymbolsTOML]; anything else is treated as aapt's R.txt.
// pkg is used when the file does not declare a package itself.
func LoadSymbols(path, pkg string) (*SymbolTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read symbols %s", path)
	}

	var t *SymbolTable
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		t, err = ParseSymbolsTOML(data)
	} else {
		t, err = ParseRText(bytes.NewReader(data), pkg)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSymbols, err, "parse symbols %s", path)
	}
	if t.Package == "" {
		t.Package = pkg
	}
	if err := errors.ValidatePackageName(t.Package); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSymbols, err, "symbols %s", path)
	}
	return t, nil
}

// ParseSymbolsTOML parses a symbol table of the form:
//
//	package = "com.example.app"
//
//	[string]
//	app_name = 0x7f040000
//
//	[layout]
//	main = 0x7f030000
func ParseSymbolsTOML(data []byte) (*SymbolTable, error) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	t := NewSymbolTable("")
	for key, value := range raw {
		switch v := value.(type) {
		case string:
			if key != "package" {
				return nil, fmt.Errorf("unexpected key %q", key)
			}
			t.Package = v
		case map[string]any:
			for entry, idv := range v {
				id, ok := idv.(int64)
				if !ok {
					return nil, fmt.Errorf("%s.%s: id must be an integer, got %T", key, entry, idv)
				}
				if err := t.Add(key, entry, int(id)); err != nil {
					return nil, err
				}
			}
		default:
			return nil, fmt.Errorf("unexpected value for %q: %T", key, value)
		}
	}
	return t, nil
}

// ParseRText parses aapt's R.txt format:
//
//	int string app_name 0x7f040000
//	int[] styleable MyView { 0x7f010000, 0x7f010001 }
//
// Styleable declarations are index tables rather than resource ids and are
// skipped.
func ParseRText(r io.Reader, pkg string) (*SymbolTable, error) {
	t := NewSymbolTable(pkg)
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) < 4 {
			return nil, fmt.Errorf("line %d: expected \"int <type> <name> <id>\"", line)
		}
		if fields[0] != "int" || fields[1] == "styleable" {
			continue
		}
		id, err := strconv.ParseInt(fields[3], 0, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid id %q", line, fields[3])
		}
		if err := t.Add(fields[1], fields[2], int(id)); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return t, nil
}
