package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// entryNameRegex matches resource entry names as produced by aapt
// (e.g. "app_name", "Theme.Light", "ic_launcher").
var entryNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)

// ValidateEntryName validates the simple name part of a resource name.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters or path separators
//   - Maximum length of 256 characters
//   - Letters, digits, underscore and dot only, not starting with a digit
func ValidateEntryName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "resource name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidName, "resource name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "resource name contains invalid control characters")
		}
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidName, "resource name cannot contain path separators: %q", name)
	}

	if !entryNameRegex.MatchString(name) {
		return New(ErrCodeInvalidName, "invalid resource name: %q", name)
	}

	return nil
}

// typeNameRegex matches resource type names ("string", "plurals", "xml").
var typeNameRegex = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// ValidateTypeName validates a resource type name.
func ValidateTypeName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "resource type cannot be empty")
	}
	if !typeNameRegex.MatchString(name) {
		return New(ErrCodeInvalidName, "invalid resource type: %q", name)
	}
	return nil
}

// packageNameRegex matches dotted application package names.
var packageNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`)

// ValidatePackageName validates an application package name such as
// "com.example.app". The platform package "android" is valid.
func ValidatePackageName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "package name cannot be empty")
	}
	if len(name) > 256 {
		return New(ErrCodeInvalidName, "package name too long (max 256 characters)")
	}
	if !packageNameRegex.MatchString(name) {
		return New(ErrCodeInvalidName, "invalid package name: %q", name)
	}
	return nil
}
