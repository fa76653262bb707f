package res

import "testing"

func TestDirectoryClassifier(t *testing.T) {
	tests := []struct {
		path                   string
		layout, drawable, menu bool
	}{
		{"res/layout", true, false, false},
		{"res/layout-land", true, false, false},
		{"res/layout-sw600dp-v13/", true, false, false},
		{"res/drawable-hdpi", false, true, false},
		{"res/drawable", false, true, false},
		{"res/menu", false, false, true},
		{"res/menu-v11", false, false, true},
		{"res/values", false, false, false},
		{"res/layouts", false, false, false},
		{"res/mylayout", false, false, false},
		{"layout/values", false, false, false},
		{"res/xml", false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := IsLayoutDirectory(tt.path); got != tt.layout {
				t.Errorf("IsLayoutDirectory = %v, want %v", got, tt.layout)
			}
			if got := IsDrawableDirectory(tt.path); got != tt.drawable {
				t.Errorf("IsDrawableDirectory = %v, want %v", got, tt.drawable)
			}
			if got := IsMenuDirectory(tt.path); got != tt.menu {
				t.Errorf("IsMenuDirectory = %v, want %v", got, tt.menu)
			}
		})
	}
}

func TestQualifierOf(t *testing.T) {
	tests := map[string]string{
		"layout":        "",
		"layout-land":   "land",
		"values-fr-rCA": "fr-rCA",
		"res/menu-v11":  "v11",
	}
	for dir, want := range tests {
		if got := qualifierOf(dir); got != want {
			t.Errorf("qualifierOf(%q) = %q, want %q", dir, got, want)
		}
	}
}

func TestLocaleQualifier(t *testing.T) {
	tests := []struct {
		qualifier string
		want      string
		ok        bool
	}{
		{"fr", "fr", true},
		{"fr-rCA", "fr-CA", true},
		{"pt-rBR-land", "pt-BR", true},
		{"land", "", false},
		{"v21", "", false},
		{"night", "", false},
		{"FR", "", false},
	}
	for _, tt := range tests {
		tag, ok := localeQualifier(tt.qualifier)
		if ok != tt.ok || (ok && tag.String() != tt.want) {
			t.Errorf("localeQualifier(%q) = %v, %v, want %s, %v", tt.qualifier, tag, ok, tt.want, tt.ok)
		}
	}
}
