package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureDir ensures the provided directory exists.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}

// SafeWriteFile writes data to a temp file and atomically renames it into place.
func SafeWriteFile(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("atomic rename: %w", err)
	}
	return nil
}

// UniqueDir returns parent/base, or parent/base__N with the smallest N >= 2
// that does not exist yet. It does not create the directory.
func UniqueDir(parent, base string) string {
	cand := filepath.Join(parent, base)
	if _, err := os.Stat(cand); os.IsNotExist(err) {
		return cand
	}
	for idx := 2; ; idx++ {
		cand = filepath.Join(parent, fmt.Sprintf("%s__%d", base, idx))
		if _, err := os.Stat(cand); os.IsNotExist(err) {
			return cand
		}
	}
}
