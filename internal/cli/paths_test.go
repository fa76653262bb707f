package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/resloader/pkg/cache"
	"github.com/matzehuels/resloader/pkg/config"
)

func TestCacheDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		name string
		xdg  string
		want string
	}{
		{"default", "", filepath.Join(home, ".cache", appName)},
		{"xdg", "/tmp/custom-cache", filepath.Join("/tmp/custom-cache", appName)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("XDG_CACHE_HOME", tt.xdg)
			dir, err := cacheDir()
			if err != nil {
				t.Fatalf("cacheDir() error: %v", err)
			}
			if dir != tt.want {
				t.Errorf("cacheDir() = %q, want %q", dir, tt.want)
			}
		})
	}
}

func TestNewCache(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	tests := []struct {
		name     string
		noCache  bool
		wantFile bool
	}{
		{"file cache", false, true},
		{"disabled", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(io.Discard, LogInfo)
			c.noCache = tt.noCache
			store := c.newCache()
			defer store.Close()

			_, isFile := store.(*cache.FileCache)
			if isFile != tt.wantFile {
				t.Errorf("newCache() = %T, want FileCache = %v", store, tt.wantFile)
			}
		})
	}
}

func TestNewLocatorScopesKeys(t *testing.T) {
	c := New(io.Discard, LogInfo)
	loc := c.newLocator(config.Default(), cache.NewNullCache())

	key := loc.Keyer.SDKKey("/work/app", 10)
	if !strings.HasPrefix(key, appName+"/sdk") {
		t.Errorf("SDKKey() = %q, want prefix %q", key, appName+"/sdk")
	}
}
