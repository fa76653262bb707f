package res

import (
	"testing"
)

func TestUnescapeText(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"  padded  ", "padded"},
		{`"quoted  "`, "quoted  "},
		{`it\'s`, "it's"},
		{`line\nbreak\ttab`, "line\nbreak\ttab"},
		{`\@string/x`, "@string/x"},
		{`back\\slash`, `back\slash`},
		{`unknown\q`, `unknown\q`},
		{`trailing\`, `trailing\`},
	}
	for _, tt := range tests {
		if got := unescapeText(tt.in); got != tt.want {
			t.Errorf("unescapeText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    uint32
		wantErr bool
	}{
		{"#f00", 0xFFFF0000, false},
		{"#8f00", 0x88FF0000, false},
		{"#00ff00", 0xFF00FF00, false},
		{"#80112233", 0x80112233, false},
		{"black", 0xFF000000, false},
		{"Teal", 0xFF008080, false},
		{"#12345", 0, true},
		{"#gggggg", 0, true},
		{"chartreuse", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %#x, want %#x", tt.in, got, tt.want)
		}
	}
}

func TestAttrCoerce(t *testing.T) {
	x := NewIndex()
	x.AddSystemSymbols(systemSymbols())
	l := NewAttrLoader(x)

	doc := &Document{Path: "attrs.xml", System: true}
	root := &Node{Tag: "resources", Children: []*Node{
		{Tag: "attr", Attrs: []Attr{{"name", "orientation"}}, Children: []*Node{
			{Tag: "enum", Attrs: []Attr{{"name", "horizontal"}, {"value", "0"}}},
			{Tag: "enum", Attrs: []Attr{{"name", "vertical"}, {"value", "1"}}},
		}},
		{Tag: "attr", Attrs: []Attr{{"name", "gravity"}}, Children: []*Node{
			{Tag: "flag", Attrs: []Attr{{"name", "top"}, {"value", "0x30"}}},
			{Tag: "flag", Attrs: []Attr{{"name", "left"}, {"value", "0x03"}}},
		}},
	}}
	for _, el := range root.Children {
		if err := l.LoadElement(doc, el); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		attr, value string
		want        string
		ok          bool
	}{
		{"android:orientation", "vertical", "1", true},
		{"android:gravity", "top|left", "51", true},
		{"android:gravity", "top | left", "51", true},
		{"android:gravity", "top|bottom", "top|bottom", false},
		{"android:orientation", "@integer/x", "@integer/x", false},
		{"android:orientation", "diagonal", "diagonal", false},
		{"orientation", "vertical", "vertical", false},
		{"android:text", "vertical", "vertical", false},
	}
	for _, tt := range tests {
		got, ok := l.Coerce(tt.attr, tt.value)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Coerce(%s, %q) = %q, %v, want %q, %v", tt.attr, tt.value, got, ok, tt.want, tt.ok)
		}
	}

	bad := &Node{Tag: "attr", Attrs: []Attr{{"name", "orientation"}}, Children: []*Node{
		{Tag: "enum", Attrs: []Attr{{"name", "x"}, {"value", "many"}}},
	}}
	if err := l.LoadElement(doc, bad); err == nil {
		t.Error("invalid enum value should fail")
	}
}

func TestDrawableKinds(t *testing.T) {
	tests := []struct {
		root string
		want DrawableKind
	}{
		{"animation-list", DrawableAnimation},
		{"shape", DrawableShape},
		{"selector", DrawableSelector},
		{"layer-list", DrawableLayerList},
		{"bitmap", DrawableBitmap},
		{"color", DrawableColor},
		{"vector", DrawableMarkup},
	}
	for _, tt := range tests {
		x := NewIndex()
		x.AddLocalSymbols(NewSymbolTable("p").MustAdd(TypeDrawable, "d", 1))
		l := NewDrawableLoader(x)
		root := &Node{Tag: tt.root}
		if err := l.LoadElement(&Document{Name: "d", Root: root}, root); err != nil {
			t.Fatal(err)
		}
		d := l.Drawable(1)
		if d == nil || d.Kind != tt.want || !d.IsXML() {
			t.Errorf("%s: drawable = %+v, want kind %v", tt.root, d, tt.want)
		}
		if tt.want.String() == "unknown" {
			t.Errorf("%v has no name", tt.want)
		}
	}
}
