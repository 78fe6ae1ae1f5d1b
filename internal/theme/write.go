package theme

import (
	"fmt"
	"os"
	"path/filepath"
)

// ErrTargetExists is returned by WriteSheetAtomic when the target
// already exists and forceReset is false (spec.md §4.4 step 9).
var ErrTargetExists = fmt.Errorf("target sheet exists and force reset is disabled")

// WriteSheetAtomic writes content to path by writing a sibling temp
// file, syncing it, then renaming it over the target. Either the full
// new file is present afterward, or the pre-existing file is
// untouched (spec.md P6). The temp file lives in the same directory as
// the target so the rename is atomic under POSIX semantics.
func WriteSheetAtomic(path string, content []byte, forceReset bool) error {
	if !forceReset {
		if _, err := os.Stat(path); err == nil {
			return ErrTargetExists
		}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".sbm-tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op once the rename below succeeds

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file %s: %w", tmpPath, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync temp file %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file %s: %w", tmpPath, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename %s to %s: %w", tmpPath, path, err)
	}

	return nil
}

// CopyFileIfAbsent copies src to dst verbatim, creating parent
// directories as needed. If dst already exists it is left untouched
// and copied=false is returned (spec.md's "skip if exists" Open
// Question resolution — idempotent map-partial copies).
func CopyFileIfAbsent(src, dst string) (copied bool, err error) {
	if _, err := os.Stat(dst); err == nil {
		return false, nil
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", src, err)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return false, fmt.Errorf("failed to create directory for %s: %w", dst, err)
	}

	if err := os.WriteFile(dst, data, 0644); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", dst, err)
	}

	return true, nil
}

// Exists checks if a file exists at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ReadFile is a thin wrapper kept for symmetry with WriteSheetAtomic so
// callers go through one package for theme-tree file I/O.
func ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}
