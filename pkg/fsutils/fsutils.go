package fsutils

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// utf8BOM is the byte order mark editors on the farm like to prepend to HTML files.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CreateDir creates a directory (and parents) if it doesn't exist.
func CreateDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// WriteToFile writes content to a file, overwriting if it exists.
// The parent directory must already exist.
func WriteToFile(path string, content []byte) error {
	return os.WriteFile(path, content, 0644)
}

// WriteFileAtomic writes content to a temporary file next to path and renames
// it into place, so readers never see a half-written file.
func WriteFileAtomic(path string, content []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpPath)
		}
	}()

	_ = tmp.Chmod(0644)
	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	// Renaming over an existing file fails on Windows.
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(path)
		if err2 := os.Rename(tmpPath, path); err2 != nil {
			return fmt.Errorf("rename temp file: %w", err)
		}
	}
	committed = true
	return nil
}

// ReadTextFile reads a text file and drops a leading UTF-8 byte order mark.
func ReadTextFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(bytes.TrimPrefix(data, utf8BOM)), nil
}

// FileExists checks if a path exists and is a regular file (not a directory).
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		// Not found, permissions, etc. all count as "no file here".
		return false
	}
	return !info.IsDir()
}
