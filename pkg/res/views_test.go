package res

import (
	"testing"

	"github.com/matzehuels/resloader/pkg/errors"
)

func TestInflateView(t *testing.T) {
	e := newTestEngine(t)

	root, err := e.InflateView(0x7f030000, nil)
	if err != nil {
		t.Fatalf("InflateView error: %v", err)
	}
	if root.Tag != "LinearLayout" {
		t.Fatalf("root = %s, want LinearLayout", root.Tag)
	}

	attrs := []struct {
		name, want string
	}{
		{"android:orientation", "1"},
		{"android:gravity", "51"},
		{"app:mode", "2"},
	}
	for _, a := range attrs {
		if got := root.AttrValue(a.name); got != a.want {
			t.Errorf("%s = %q, want %q", a.name, got, a.want)
		}
	}

	var tags []string
	for _, c := range root.Children {
		tags = append(tags, c.Tag)
	}
	if want := []string{"TextView", "TextView", "View", "View"}; len(tags) != len(want) {
		t.Fatalf("children = %v, want %v", tags, want)
	}
	if got := root.Children[0].AttrValue("android:text"); got != "@string/app_name" {
		t.Errorf("text = %q, references stay unresolved", got)
	}
	included := root.Children[1]
	if included.AttrValue("android:id") != "@+id/header" || included.AttrValue("android:text") != "@string/greeting" {
		t.Errorf("included row = %+v", included.Attrs)
	}

	// The stored tree is not modified by inflation.
	if n := e.LayoutNode("layout/main"); len(n.Children) != 3 || n.AttrValue("android:orientation") != "vertical" {
		t.Errorf("stored layout was modified: %+v", n)
	}
}

func TestInflateViewQualifiers(t *testing.T) {
	e := newTestEngine(t)

	e.SetLayoutQualifierSearchPath("land")
	root, err := e.InflateView(0x7f030000, nil)
	if err != nil || root.Tag != "FrameLayout" {
		t.Fatalf("InflateView(land) = %+v, %v, want FrameLayout", root, err)
	}

	// Qualifiers without a matching directory fall back to layout/.
	e.SetLayoutQualifierSearchPath("port", "land")
	if root, _ := e.InflateView(0x7f030001, nil); root == nil || root.Tag != "TextView" {
		t.Errorf("InflateView(row) = %+v, want TextView", root)
	}

	e.SetLayoutQualifierSearchPath()
	if root, _ := e.InflateView(0x7f030000, nil); root == nil || root.Tag != "LinearLayout" {
		t.Errorf("InflateView without qualifiers = %+v", root)
	}

	if e.LayoutNode("android:layout/simple_list_item_1") == nil {
		t.Error("system layout should be stored with the android: prefix")
	}
	if e.LayoutNode("layout-land/main") == nil {
		t.Error("qualified layout should be stored by directory")
	}
}

func TestInflateViewMerge(t *testing.T) {
	e := newTestEngine(t)

	if _, err := e.InflateView(0x7f030003, nil); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("merge without parent error = %v, want INVALID_INPUT", err)
	}

	parent := &Node{Tag: "FrameLayout", Children: []*Node{{Tag: "Existing"}}}
	got, err := e.InflateView(0x7f030003, parent)
	if err != nil {
		t.Fatal(err)
	}
	if got != parent || len(parent.Children) != 3 {
		t.Errorf("merge into parent = %+v", parent)
	}

	parent = &Node{Tag: "FrameLayout"}
	row, err := e.InflateView(0x7f030001, parent)
	if err != nil {
		t.Fatal(err)
	}
	if len(parent.Children) != 1 || parent.Children[0] != row {
		t.Errorf("inflated view should be appended to parent")
	}
}

func TestInflateViewStrictI18n(t *testing.T) {
	e := newTestEngine(t)

	tests := []struct {
		strict   bool
		wantText string
		wantCode errors.Code
	}{
		{false, "Hard coded", ""},
		{true, "", errors.ErrCodeI18nViolation},
		{false, "Hard coded", ""},
	}
	for _, tt := range tests {
		e.SetStrictI18n(tt.strict)
		if e.StrictI18n() != tt.strict {
			t.Fatalf("StrictI18n = %v, want %v", e.StrictI18n(), tt.strict)
		}
		root, err := e.InflateView(0x7f030002, nil)
		if errors.GetCode(err) != tt.wantCode {
			t.Fatalf("strict=%v: error = %v, want code %q", tt.strict, err, tt.wantCode)
		}
		if err == nil && root.AttrValue("android:text") != tt.wantText {
			t.Errorf("strict=%v: text = %q, want %q", tt.strict, root.AttrValue("android:text"), tt.wantText)
		}
	}

	// References and platform layouts are always accepted.
	e.SetStrictI18n(true)
	if _, err := e.InflateView(0x7f030001, nil); err != nil {
		t.Errorf("layout with references failed in strict mode: %v", err)
	}
	if _, err := e.InflateView(0x01090003, nil); err != nil {
		t.Errorf("platform layout failed in strict mode: %v", err)
	}
}

func TestInflateViewIncludeCycle(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"layout/main.xml": `<LinearLayout><include layout="@layout/row"/></LinearLayout>`,
		"layout/row.xml":  `<LinearLayout><include layout="@layout/main"/></LinearLayout>`,
	})
	e := New(appSymbols(), nil, Config{ResourceDir: dir})
	if _, err := e.InflateView(0x7f030000, nil); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("include cycle error = %v, want INVALID_INPUT", err)
	}
}

func TestInflateViewNotFound(t *testing.T) {
	e := newTestEngine(t)
	for _, id := range []int{0x7f040000, 0x7f7f0000} {
		if _, err := e.InflateView(id, nil); !errors.Is(err, errors.ErrCodeNotFound) {
			t.Errorf("InflateView(%#x) error = %v, want NOT_FOUND", id, err)
		}
	}
}
