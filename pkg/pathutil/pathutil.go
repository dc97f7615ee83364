// Package pathutil holds path helpers shared by the scanning pipeline:
// tilde expansion, existence checks, and derivation of the extension and
// MIME hint the extractor registry dispatches on.
package pathutil

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath expands tilde (~) to the home directory and converts to an
// absolute path.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("path cannot be empty")
	}

	if strings.HasPrefix(path, "~/") || path == "~" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}

		if path == "~" {
			path = homeDir
		} else {
			path = filepath.Join(homeDir, path[2:])
		}
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	return absPath, nil
}

// ValidatePath checks if a path exists on the filesystem.
func ValidatePath(path string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}

	_, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("path does not exist: %s", path)
		}
		return fmt.Errorf("cannot access path: %w", err)
	}

	return nil
}

// ExpandAndValidatePath expands tilde and validates that the path exists.
func ExpandAndValidatePath(path string) (string, error) {
	expanded, err := ExpandPath(path)
	if err != nil {
		return "", err
	}

	if err := ValidatePath(expanded); err != nil {
		return "", err
	}

	return expanded, nil
}

// Ext returns the lowercase file extension without the leading dot,
// the form the extractor registry dispatches on. Files with no
// extension yield "".
func Ext(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// MIMEType returns the MIME type registered for the path's extension, or
// "" when unknown. It is a hint only; extraction never depends on it.
func MIMEType(path string) string {
	ext := filepath.Ext(path)
	if ext == "" {
		return ""
	}
	t := mime.TypeByExtension(strings.ToLower(ext))
	if i := strings.IndexByte(t, ';'); i >= 0 {
		t = t[:i]
	}
	return strings.TrimSpace(t)
}
