// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Sentinel errors for file utility operations.
var (
	ErrInvalidDir    = errors.New("invalid directory")
	ErrPathTraversal = errors.New("path traversal detected")
)

// ResolveDir returns dir as an absolute, symlink-resolved path.
// Returns ErrInvalidDir if dir is empty, missing, or not a readable directory.
func ResolveDir(dir string) (string, error) {
	if dir == "" {
		return "", fmt.Errorf("%w: empty path", ErrInvalidDir)
	}

	absPath, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidDir, err)
	}

	// Resolve symlinks so containment checks compare real paths.
	if realPath, err := filepath.EvalSymlinks(absPath); err == nil {
		absPath = realPath
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: directory does not exist: %s", ErrInvalidDir, absPath)
		}
		return "", fmt.Errorf("%w: %v", ErrInvalidDir, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: not a directory: %s", ErrInvalidDir, absPath)
	}
	if _, err := os.ReadDir(absPath); err != nil {
		return "", fmt.Errorf("%w: cannot read directory: %v", ErrInvalidDir, err)
	}

	return absPath, nil
}

// ContainedPath joins the slash-separated name onto base and verifies the
// result, after symlink resolution, stays inside base.
// base must already be resolved (see ResolveDir).
func ContainedPath(base, name string) (string, error) {
	joined := filepath.Join(base, filepath.FromSlash(name))

	resolved := joined
	if realPath, err := filepath.EvalSymlinks(joined); err == nil {
		resolved = realPath
	}
	// If EvalSymlinks fails the file does not exist yet; the prefix check
	// still applies to the lexical path.

	if !IsWithin(resolved, base) {
		return "", fmt.Errorf("%w: %s escapes %s", ErrPathTraversal, name, base)
	}
	return joined, nil
}

// IsWithin reports whether path is strictly inside dir.
func IsWithin(path, dir string) bool {
	cleanPath := filepath.Clean(path)
	cleanDir := filepath.Clean(dir)
	if !strings.HasSuffix(cleanDir, string(filepath.Separator)) {
		cleanDir += string(filepath.Separator)
	}
	return strings.HasPrefix(cleanPath, cleanDir)
}

// WriteFileAtomic writes data to a temporary file next to path and renames it
// into place, so readers never observe a partially written file.
func WriteFileAtomic(path string, data []byte, perm fs.FileMode) (err error) {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".inlinehtml-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	tmpPath := tmpFile.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, writeErr := tmpFile.Write(data); writeErr != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("writing temp file: %w", writeErr)
	}
	if closeErr := tmpFile.Close(); closeErr != nil {
		return fmt.Errorf("closing temp file: %w", closeErr)
	}
	if chmodErr := os.Chmod(tmpPath, perm); chmodErr != nil {
		return fmt.Errorf("setting permissions: %w", chmodErr)
	}
	if renameErr := os.Rename(tmpPath, path); renameErr != nil {
		return fmt.Errorf("replacing %s: %w", path, renameErr)
	}
	return nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "inlinehtml" -> false (name)
//   - "./inlinehtml.yaml" -> true (relative path)
//   - "/etc/inlinehtml.yaml" -> true (absolute)
//   - "C:\config\inlinehtml.yaml" -> true (Windows)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}
