package render

import (
	"strings"
	"testing"

	"github.com/matzehuels/resloader/pkg/res"
)

func sampleTree() *res.Node {
	return &res.Node{
		Tag:   "LinearLayout",
		Attrs: []res.Attr{{Name: "android:orientation", Value: "1"}},
		Children: []*res.Node{
			{Tag: "TextView", Attrs: []res.Attr{{Name: "android:id", Value: "@+id/title"}}},
			{Tag: "FrameLayout", Children: []*res.Node{
				{Tag: "Button", Text: " OK "},
			}},
		},
	}
}

func TestTree(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want string
	}{
		{
			name: "tags only",
			want: "LinearLayout\n" +
				"├── TextView\n" +
				"└── FrameLayout\n" +
				"    └── Button \"OK\"\n",
		},
		{
			name: "with attrs",
			opts: Options{Attrs: true},
			want: "LinearLayout android:orientation=\"1\"\n" +
				"├── TextView android:id=\"@+id/title\"\n" +
				"└── FrameLayout\n" +
				"    └── Button \"OK\"\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Tree(sampleTree(), tt.opts); got != tt.want {
				t.Errorf("Tree() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestTree_Nil(t *testing.T) {
	if got := Tree(nil, Options{}); got != "" {
		t.Errorf("Tree(nil) = %q, want empty", got)
	}
}

func TestTree_NestedPipes(t *testing.T) {
	root := &res.Node{Tag: "a", Children: []*res.Node{
		{Tag: "b", Children: []*res.Node{{Tag: "c"}}},
		{Tag: "d"},
	}}
	want := "a\n├── b\n│   └── c\n└── d\n"
	if got := Tree(root, Options{}); got != want {
		t.Errorf("Tree() =\n%s\nwant\n%s", got, want)
	}
}

func TestMenu(t *testing.T) {
	m := &res.MenuTree{}
	m.AddItem(res.MenuItem{ID: 0x7f080001, Title: "Save", Visible: true, Enabled: true})
	sub := m.AddSubMenu(res.MenuItem{Title: "More", Visible: true, Enabled: true})
	sub.AddItem(res.MenuItem{Title: "Sync", Checkable: true, Checked: true, Visible: true, Enabled: false})
	m.AddItem(res.MenuItem{Visible: false, Enabled: true})

	got := Menu(m)
	want := "menu\n" +
		"├── Save #0x7f080001\n" +
		"├── More\n" +
		"│   └── Sync [checked, disabled]\n" +
		"└── (untitled) [hidden]\n"
	if got != want {
		t.Errorf("Menu() =\n%s\nwant\n%s", got, want)
	}
}

func TestPreferences(t *testing.T) {
	p := &res.Preference{
		Kind:  "PreferenceScreen",
		Title: "Settings",
		Children: []*res.Preference{
			{Kind: "CheckBoxPreference", Key: "sync", Title: "Sync", Summary: "Keep data in sync", DefaultValue: "true"},
		},
	}

	got := Preferences(p)
	want := "PreferenceScreen \"Settings\"\n" +
		"└── CheckBoxPreference (sync) \"Sync\" - Keep data in sync = true\n"
	if got != want {
		t.Errorf("Preferences() =\n%s\nwant\n%s", got, want)
	}
	if !strings.HasPrefix(Preferences(&res.Preference{Kind: "PreferenceScreen"}), "PreferenceScreen") {
		t.Error("Preferences() should start with the root kind")
	}
}
