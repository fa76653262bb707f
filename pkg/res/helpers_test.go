package res

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

// writeFiles creates files under root from a path → content map.
func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

const androidNS = `xmlns:android="http://schemas.android.com/apk/res/android"`

func values(body string) string {
	return `<?xml version="1.0" encoding="utf-8"?>` + "\n<resources>\n" + body + "\n</resources>\n"
}

// countingHooks counts load events.
type countingHooks struct {
	starts    atomic.Int32
	documents atomic.Int32
	completes atomic.Int32
}

func (h *countingHooks) OnInitStart(context.Context, int)                     { h.starts.Add(1) }
func (h *countingHooks) OnDocumentLoaded(context.Context, string, bool)       { h.documents.Add(1) }
func (h *countingHooks) OnInitComplete(context.Context, time.Duration, error) { h.completes.Add(1) }

// appSymbols is the application table used by most engine tests.
func appSymbols() *SymbolTable {
	return NewSymbolTable("com.example.app").
		MustAdd(TypeString, "app_name", 0x7f040000).
		MustAdd(TypeString, "greeting", 0x7f040001).
		MustAdd(TypeString, "alias", 0x7f040002).
		MustAdd(TypeString, "lib_only", 0x7f040003).
		MustAdd(TypeString, "missing", 0x7f040004).
		MustAdd(TypePlurals, "songs", 0x7f050000).
		MustAdd(TypeArray, "planets", 0x7f060000).
		MustAdd(TypeColor, "accent", 0x7f070000).
		MustAdd(TypeColor, "accent_alias", 0x7f070001).
		MustAdd(TypeColor, "undefined", 0x7f070002).
		MustAdd(TypeAttr, "mode", 0x7f010000).
		MustAdd(TypeLayout, "main", 0x7f030000).
		MustAdd(TypeLayout, "row", 0x7f030001).
		MustAdd(TypeLayout, "literal", 0x7f030002).
		MustAdd(TypeLayout, "rows", 0x7f030003).
		MustAdd(TypeMenu, "options", 0x7f0a0000).
		MustAdd(TypeXML, "settings", 0x7f0b0000).
		MustAdd(TypeDrawable, "icon", 0x7f020000).
		MustAdd(TypeDrawable, "spinner", 0x7f020001).
		MustAdd(TypeDrawable, "frame_1", 0x7f020002).
		MustAdd(TypeDrawable, "frame_2", 0x7f020003).
		MustAdd(TypeRaw, "data", 0x7f0c0000).
		MustAdd(TypeRaw, "lib_data", 0x7f0c0001).
		MustAdd(TypeAnim, "fade", 0x7f0d0000).
		MustAdd(TypeID, "title", 0x7f080000).
		MustAdd(TypeID, "save", 0x7f080001).
		MustAdd(TypeID, "header", 0x7f080002)
}

func systemSymbols() *SymbolTable {
	return NewSymbolTable(SystemPackage).
		MustAdd(TypeString, "ok", 0x01040000).
		MustAdd(TypeString, "cancel", 0x01040001).
		MustAdd(TypeColor, "black", 0x01060000).
		MustAdd(TypeAttr, "orientation", 0x010100c4).
		MustAdd(TypeAttr, "gravity", 0x010100af).
		MustAdd(TypeLayout, "simple_list_item_1", 0x01090003)
}

// systemBundle writes a small platform bundle and returns its directory.
func systemBundle(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "android-res")
	writeFiles(t, dir, map[string]string{
		"values/strings.xml": values(`
  <string name="ok">OK</string>
  <string name="cancel">Cancel</string>`),
		"values/colors.xml": values(`<color name="black">#ff000000</color>`),
		"values/attrs.xml": values(`
  <attr name="orientation">
    <enum name="horizontal" value="0"/>
    <enum name="vertical" value="1"/>
  </attr>
  <attr name="gravity">
    <flag name="top" value="0x30"/>
    <flag name="left" value="0x03"/>
    <flag name="center" value="0x11"/>
  </attr>`),
		"layout/simple_list_item_1.xml": `<TextView ` + androidNS + ` android:text="Literal platform text"/>`,
	})
	return dir
}

// appBundle writes the application bundle used by the engine tests.
func appBundle(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "res")
	writeFiles(t, dir, map[string]string{
		"values/strings.xml": values(`
  <string name="app_name">Example</string>
  <string name="greeting">"Hello, \"world\"\n"</string>
  <string name="alias">@string/app_name</string>`),
		"values/plurals.xml": values(`
  <plurals name="songs">
    <item quantity="zero">No songs</item>
    <item quantity="one">One song</item>
    <item quantity="two">Two songs</item>
    <item quantity="other">Many songs</item>
  </plurals>`),
		"values/arrays.xml": values(`
  <string-array name="planets">
    <item>Mercury</item>
    <item>@string/app_name</item>
  </string-array>`),
		"values/colors.xml": values(`
  <color name="accent">#80ff0000</color>
  <color name="accent_alias">@color/accent</color>`),
		"values/attrs.xml": values(`
  <declare-styleable name="Widget">
    <attr name="mode" format="enum">
      <enum name="fast" value="1"/>
      <enum name="slow" value="2"/>
    </attr>
    <attr name="android:text"/>
  </declare-styleable>`),
		"layout/main.xml": `<LinearLayout ` + androidNS + ` xmlns:app="http://schemas.android.com/apk/res-auto"
    android:orientation="vertical" android:gravity="top|left" app:mode="slow">
  <TextView android:id="@+id/title" android:text="@string/app_name"/>
  <include layout="@layout/row" android:id="@+id/header"/>
  <include layout="@layout/rows"/>
</LinearLayout>`,
		"layout/row.xml":       `<TextView ` + androidNS + ` android:text="@string/greeting"/>`,
		"layout/rows.xml":      `<merge ` + androidNS + `><View/><View/></merge>`,
		"layout-land/main.xml": `<FrameLayout ` + androidNS + `/>`,
		"layout/literal.xml":   `<TextView ` + androidNS + ` android:text="Hard coded"/>`,
		"menu/options.xml": `<menu ` + androidNS + `>
  <item android:id="@+id/save" android:title="@string/app_name" android:orderInCategory="2"/>
  <group android:id="@+id/title">
    <item android:title="Literal item" android:checkable="true"/>
  </group>
  <item android:title="@string/greeting">
    <menu>
      <item android:title="@android:string/ok"/>
    </menu>
  </item>
</menu>`,
		"xml/settings.xml": `<PreferenceScreen ` + androidNS + `>
  <CheckBoxPreference android:key="sync" android:title="@string/app_name" android:defaultValue="true"/>
  <PreferenceCategory android:title="Literal category">
    <EditTextPreference android:key="name" android:summary="@string/greeting"/>
  </PreferenceCategory>
</PreferenceScreen>`,
		"drawable/icon.png": "\x89PNG",
		"drawable/spinner.xml": `<animation-list ` + androidNS + `>
  <item android:drawable="@drawable/frame_1" android:duration="100"/>
  <item android:drawable="@drawable/frame_2" android:duration="200"/>
</animation-list>`,
		"drawable-hdpi/frame_1.png": "\x89PNG",
		"drawable-hdpi/frame_2.png": "\x89PNG",
		"raw/data.json":             `{"bundle":"app"}`,
	})
	return dir
}
