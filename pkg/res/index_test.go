package res

import (
	"testing"

	"github.com/matzehuels/resloader/pkg/errors"
)

func TestIndexRoundTrip(t *testing.T) {
	local := appSymbols()
	system := systemSymbols()

	x := NewIndex()
	x.AddLocalSymbols(local)
	x.AddSystemSymbols(system)

	for _, tc := range []struct {
		table *SymbolTable
		pkg   string
	}{{local, local.Package}, {system, SystemPackage}} {
		tc.table.Each(func(typ Type, entry string, id int) {
			n, err := x.Name(id)
			if err != nil {
				t.Fatalf("Name(%#x) error: %v", id, err)
			}
			want := Name{Package: tc.pkg, Type: typ, Entry: entry}
			if n != want {
				t.Errorf("Name(%#x) = %v, want %v", id, n, want)
			}
			if got, ok := x.ID(want); !ok || got != id {
				t.Errorf("ID(%v) = %#x, %v, want %#x", want, got, ok, id)
			}
		})
	}
	if want := local.Len() + system.Len(); x.Len() != want {
		t.Errorf("Len = %d, want %d", x.Len(), want)
	}
}

func TestIndexCollisions(t *testing.T) {
	local := NewSymbolTable("com.example.app").MustAdd(TypeString, "title", 0x100)
	lib := NewSymbolTable("com.example.lib").MustAdd(TypeString, "other", 0x100).MustAdd(TypeString, "title", 0x200)
	system := NewSymbolTable(SystemPackage).MustAdd(TypeString, "ok", 0x100)

	x := NewIndex()
	x.AddLocalSymbols(local)
	x.AddLocalSymbols(lib)
	x.AddSystemSymbols(system)

	if n, _ := x.Name(0x100); n.String() != "com.example.app:string/title" {
		t.Errorf("Name(0x100) = %v, first registrant should win", n)
	}
	if id, _ := x.Lookup(TypeString, "title", false); id != 0x100 {
		t.Errorf("Lookup(title) = %#x, want the application id", id)
	}
	if id, ok := x.Lookup(TypeString, "ok", false); !ok || id != 0x100 {
		t.Errorf("Lookup(ok) from local = %#x, %v, want platform fallback", id, ok)
	}
	if _, ok := x.Lookup(TypeString, "title", true); ok {
		t.Error("system documents should not see local names")
	}
}

func TestIndexName(t *testing.T) {
	x := NewIndex()
	_, err := x.Name(0x7f000001)
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Name(unknown) error = %v, want NOT_FOUND", err)
	}
	if x.NameString(0x7f000001) != "" {
		t.Error("NameString(unknown) should be empty")
	}
	if x.Contains(0x7f000001) {
		t.Error("Contains(unknown) should be false")
	}
	x.AddLocalSymbols(nil)
	x.AddSystemSymbols(nil)
	if x.Len() != 0 {
		t.Error("nil tables should be ignored")
	}
}

func TestIndexResolveReference(t *testing.T) {
	x := NewIndex()
	x.AddLocalSymbols(appSymbols())
	x.AddSystemSymbols(systemSymbols())

	tests := []struct {
		ref    string
		system bool
		want   int
		ok     bool
	}{
		{"@string/app_name", false, 0x7f040000, true},
		{"@com.example.app:string/app_name", false, 0x7f040000, true},
		{"@android:string/ok", false, 0x01040000, true},
		{"@*android:string/ok", false, 0x01040000, true},
		{"@string/ok", false, 0x01040000, true},
		{"@string/app_name", true, 0, false},
		{"@+id/title", false, 0x7f080000, true},
		{"@null", false, 0, true},
		{"@string/nope", false, 0, false},
		{"@other.pkg:string/app_name", false, 0, false},
		{"plain text", false, 0, false},
		{"?attr/colorAccent", false, 0, false},
	}
	for _, tt := range tests {
		got, ok := x.ResolveReference(tt.ref, tt.system)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ResolveReference(%q, %v) = %#x, %v, want %#x, %v", tt.ref, tt.system, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseReference(t *testing.T) {
	tests := []struct {
		ref  string
		want Name
		ok   bool
	}{
		{"@string/a", Name{Type: "string", Entry: "a"}, true},
		{"@+id/b", Name{Type: "id", Entry: "b"}, true},
		{"@android:color/black", Name{Package: "android", Type: "color", Entry: "black"}, true},
		{"@null", Name{}, false},
		{"@string/", Name{}, false},
		{"@/x", Name{}, false},
		{"string/a", Name{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseReference(tt.ref)
		if ok != tt.ok || (ok && tt.want.Entry != "" && got != tt.want) {
			t.Errorf("ParseReference(%q) = %v, %v, want %v, %v", tt.ref, got, ok, tt.want, tt.ok)
		}
	}
	if !IsThemeReference("?attr/x") || IsThemeReference("?") || IsThemeReference("@attr/x") {
		t.Error("IsThemeReference mismatch")
	}
}
