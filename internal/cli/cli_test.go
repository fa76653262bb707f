package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/resloader/pkg/errors"
)

const androidNS = `xmlns:android="http://schemas.android.com/apk/res/android"`

// writeProject creates a small project and returns its config path.
func writeProject(t *testing.T) string {
	t.Helper()
	t.Setenv("ANDROID_HOME", "")
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	root := t.TempDir()
	files := map[string]string{
		"resloader.toml": `resource_dir = "res"
package = "com.example.demo"
symbols = "R.txt"
`,
		"R.txt": `int string app_name 0x7f040000
int string save 0x7f040001
int plurals songs 0x7f050000
int array planets 0x7f060000
int color accent 0x7f070000
int layout main 0x7f030000
int layout literal 0x7f030001
int menu options 0x7f0a0000
int xml settings 0x7f0b0000
int raw data 0x7f0c0000
int id title 0x7f080000
int id save_item 0x7f080001
int[] styleable Demo { 0x7f010000 }
`,
		"res/values/values.xml": `<resources>
  <string name="app_name">Demo</string>
  <string name="save">Save</string>
  <plurals name="songs">
    <item quantity="one">One song</item>
    <item quantity="other">Many songs</item>
  </plurals>
  <string-array name="planets">
    <item>Mercury</item>
    <item>Venus</item>
  </string-array>
  <color name="accent">#ff0000</color>
</resources>`,
		"res/layout/main.xml": `<LinearLayout ` + androidNS + ` android:orientation="vertical">
  <TextView android:id="@+id/title" android:text="@string/app_name"/>
</LinearLayout>`,
		"res/layout/literal.xml": `<TextView ` + androidNS + ` android:text="Hello"/>`,
		"res/menu/options.xml": `<menu ` + androidNS + `>
  <item android:id="@+id/save_item" android:title="@string/save"/>
</menu>`,
		"res/xml/settings.xml": `<PreferenceScreen ` + androidNS + ` android:title="@string/app_name">
  <CheckBoxPreference android:key="sync" android:title="@string/save"/>
</PreferenceScreen>`,
		"res/raw/data.txt": "hello raw\n",
	}
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return filepath.Join(root, "resloader.toml")
}

// runCLI executes the root command and returns what it wrote to its output.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCommandRegistersCommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()

	want := []string{
		"resolve", "string", "plural", "array", "color", "layout", "menu", "prefs",
		"raw", "list", "browse", "export", "sdk", "cache", "completion",
	}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd == root {
			t.Errorf("command %q not registered", name)
		}
	}
	for _, flag := range []string{"config", "strict-i18n", "no-cache"} {
		if root.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("persistent flag --%s not registered", flag)
		}
	}
}

func TestCommands(t *testing.T) {
	cfg := writeProject(t)

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"string by name", []string{"string", "app_name"}, []string{"Demo\n"}},
		{"string by reference", []string{"string", "@string/save"}, []string{"Save\n"}},
		{"string by id", []string{"string", "0x7f040000"}, []string{"Demo\n"}},
		{"plural one", []string{"plural", "songs", "--quantity", "1"}, []string{"One song\n"}},
		{"plural other", []string{"plural", "songs", "-q", "7"}, []string{"Many songs\n"}},
		{"plural all", []string{"plural", "songs", "--all"}, []string{"One song", "Many songs"}},
		{"array", []string{"array", "planets"}, []string{"Mercury\nVenus\n"}},
		{"color", []string{"color", "accent"}, []string{"#FFFF0000\n"}},
		{"resolve", []string{"resolve", "@color/accent"}, []string{"com.example.demo:color/accent", "#FFFF0000"}},
		{"layout text", []string{"layout", "main"}, []string{"LinearLayout", "└── TextView", `android:text="@string/app_name"`}},
		{"layout dot", []string{"layout", "main", "--format", "dot"}, []string{"digraph G", `"n0" -> "n1"`}},
		{"layout by key", []string{"layout", "layout/literal", "--attrs=false"}, []string{"TextView\n"}},
		{"menu", []string{"menu", "options"}, []string{"menu\n", "└── Save #0x7f080001"}},
		{"prefs", []string{"prefs", "settings"}, []string{`PreferenceScreen "Demo"`, `CheckBoxPreference (sync) "Save"`}},
		{"raw", []string{"raw", "data"}, []string{"hello raw\n"}},
		{"list strings", []string{"list", "--plain", "--type", "string"}, []string{"string\t0x7f040000\tcom.example.demo:string/app_name\tDemo\n"}},
		{"list documents", []string{"list", "--plain", "--type", "layout,menu"}, []string{"layout\t\tlayout/main", "menu\t\tmenu/options"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--config", cfg, "--no-cache"}, tt.args...)
			out, err := runCLI(t, args...)
			if err != nil {
				t.Fatalf("%v: %v", tt.args, err)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("%v output = %q, want it to contain %q", tt.args, out, want)
				}
			}
		})
	}
}

func TestCommandErrors(t *testing.T) {
	cfg := writeProject(t)

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"unknown name", []string{"string", "nope"}, errors.ErrCodeNotFound},
		{"unloaded value", []string{"string", "0x7f0c0000"}, errors.ErrCodeNotFound},
		{"bare name needs type", []string{"resolve", "app_name"}, errors.ErrCodeInvalidInput},
		{"not a value", []string{"resolve", "@layout/main"}, errors.ErrCodeInvalidInput},
		{"bad format", []string{"layout", "main", "--format", "gif"}, errors.ErrCodeInvalidInput},
		{"strict literal text", []string{"--strict-i18n", "string", "app_name"}, errors.ErrCodeI18nViolation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--config", cfg, "--no-cache"}, tt.args...)
			_, err := runCLI(t, args...)
			if err == nil {
				t.Fatalf("%v: expected error", tt.args)
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("%v: error = %v, want code %s", tt.args, err, tt.code)
			}
		})
	}
}

func TestMissingConfig(t *testing.T) {
	_, err := runCLI(t, "--config", filepath.Join(t.TempDir(), "nope.toml"), "string", "x")
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("error = %v, want INVALID_CONFIG", err)
	}
}

func TestRawToFile(t *testing.T) {
	cfg := writeProject(t)
	out := filepath.Join(t.TempDir(), "data.txt")

	if _, err := runCLI(t, "--config", cfg, "--no-cache", "raw", "data", "-o", out); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "hello raw\n" {
		t.Errorf("raw output = %q, want %q", data, "hello raw\n")
	}
}

func TestExportCommand(t *testing.T) {
	cfg := writeProject(t)
	db := filepath.Join(t.TempDir(), "snapshot.db")

	if _, err := runCLI(t, "--config", cfg, "--no-cache", "export", "--out", db); err != nil {
		t.Fatal(err)
	}
	if info, err := os.Stat(db); err != nil || info.Size() == 0 {
		t.Errorf("snapshot %s not written: %v", db, err)
	}
}

func TestCachePathCommand(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/resloader-test-cache")
	out, err := runCLI(t, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/tmp/resloader-test-cache", appName) + "\n"; out != want {
		t.Errorf("cache path = %q, want %q", out, want)
	}
}

func TestCompleteNames(t *testing.T) {
	cfg := writeProject(t)

	tests := []struct {
		args []string
		want []string
		not  []string
	}{
		{[]string{"string", ""}, []string{"app_name", "save"}, []string{"main"}},
		{[]string{"string", "ap"}, []string{"app_name"}, []string{"save"}},
		{[]string{"layout", ""}, []string{"main", "literal"}, []string{"app_name"}},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			args := append([]string{"__complete", "--config", cfg}, tt.args...)
			out, err := runCLI(t, args...)
			if err != nil {
				t.Fatal(err)
			}
			lines := strings.Split(out, "\n")
			has := func(name string) bool {
				for _, l := range lines {
					if l == name {
						return true
					}
				}
				return false
			}
			for _, name := range tt.want {
				if !has(name) {
					t.Errorf("completions %q missing %q", out, name)
				}
			}
			for _, name := range tt.not {
				if has(name) {
					t.Errorf("completions %q should not offer %q", out, name)
				}
			}
		})
	}
}

func TestCompletionScript(t *testing.T) {
	out, err := runCLI(t, "completion", "bash")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, appName) {
		t.Error("bash completion script should mention the command name")
	}
}
