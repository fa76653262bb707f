package res

import (
	"path/filepath"
	"strings"
)

// IsLayoutDirectory reports whether path names a layout directory
// ("layout", "layout-land", "layout-sw600dp", ...).
func IsLayoutDirectory(path string) bool { return hasTypeSegment(path, TypeLayout) }

// IsDrawableDirectory reports whether path names a drawable directory.
func IsDrawableDirectory(path string) bool { return hasTypeSegment(path, TypeDrawable) }

// IsMenuDirectory reports whether path names a menu directory.
func IsMenuDirectory(path string) bool { return hasTypeSegment(path, TypeMenu) }

// hasTypeSegment matches the last path segment exactly against token, or
// against token followed by a qualifier suffix. "layout-backup" matches;
// "layouts" and "mylayout" do not.
func hasTypeSegment(path, token string) bool {
	base := filepath.Base(filepath.Clean(path))
	return base == token || strings.HasPrefix(base, token+"-")
}

// qualifierOf returns the qualifier suffix of a resource directory name
// ("land" for "layout-land", "" for "layout").
func qualifierOf(dir string) string {
	base := filepath.Base(dir)
	if i := strings.IndexByte(base, '-'); i >= 0 {
		return base[i+1:]
	}
	return ""
}
