package theme

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteSheetAtomic_RefusesWithoutForceReset(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sb-inside.scss")

	if err := os.WriteFile(path, []byte("original"), 0644); err != nil {
		t.Fatalf("setup write failed: %v", err)
	}

	err := WriteSheetAtomic(path, []byte("new content"), false)
	if err != ErrTargetExists {
		t.Fatalf("expected ErrTargetExists, got %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read back file: %v", err)
	}
	if string(got) != "original" {
		t.Fatalf("expected pre-existing content untouched, got %q", got)
	}
}

func TestWriteSheetAtomic_ForceResetOverwrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sb-inside.scss")

	if err := os.WriteFile(path, []byte("original"), 0644); err != nil {
		t.Fatalf("setup write failed: %v", err)
	}

	if err := WriteSheetAtomic(path, []byte("new content"), true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read back file: %v", err)
	}
	if string(got) != "new content" {
		t.Fatalf("expected new content, got %q", got)
	}
}

func TestWriteSheetAtomic_CreatesNewFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "sb-vdp.scss")

	if err := WriteSheetAtomic(path, []byte("detail"), false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read back file: %v", err)
	}
	if string(got) != "detail" {
		t.Fatalf("expected detail content, got %q", got)
	}
}

func TestCopyFileIfAbsent_SkipsExisting(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.php")
	dst := filepath.Join(dir, "dst.php")

	if err := os.WriteFile(src, []byte("source"), 0644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	if err := os.WriteFile(dst, []byte("preexisting"), 0644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	copied, err := CopyFileIfAbsent(src, dst)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if copied {
		t.Fatalf("expected copied=false when destination exists")
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("failed to read back file: %v", err)
	}
	if string(got) != "preexisting" {
		t.Fatalf("expected destination untouched, got %q", got)
	}
}

func TestCopyFileIfAbsent_CopiesVerbatim(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.php")
	dst := filepath.Join(dir, "nested", "dst.php")

	content := []byte("<?php echo 'map-row-2'; ?>")
	if err := os.WriteFile(src, content, 0644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	copied, err := CopyFileIfAbsent(src, dst)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !copied {
		t.Fatalf("expected copied=true")
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("failed to read back file: %v", err)
	}
	if string(got) != string(content) {
		t.Fatalf("expected byte-identical copy, got %q", got)
	}
}
