package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault_ReadsPlatformRootFromEnvironment(t *testing.T) {
	t.Setenv("PLATFORM_ROOT", "/srv/platform")
	cfg := Default()
	if cfg.PlatformRoot != "/srv/platform" {
		t.Fatalf("expected PlatformRoot from env, got %q", cfg.PlatformRoot)
	}
	if cfg.ForceReset {
		t.Fatalf("expected ForceReset to default false")
	}
}

func TestSaveThenLoad_RoundTrips(t *testing.T) {
	dir := t.TempDir()
	cfg := &Config{
		PlatformRoot:       "/srv/platform",
		ForceReset:         true,
		BranchNameTemplate: "migrate/{slug}",
	}
	if err := Save(dir, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *loaded != *cfg {
		t.Fatalf("round trip mismatch: got %+v, want %+v", loaded, cfg)
	}
}

func TestLoadOrDefault_FallsBackWhenMissing(t *testing.T) {
	dir := t.TempDir()
	cfg := LoadOrDefault(dir)
	if cfg.BranchNameTemplate != "theme-migration/{slug}" {
		t.Fatalf("expected default branch template, got %q", cfg.BranchNameTemplate)
	}
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	if Exists(dir) {
		t.Fatalf("expected Exists to be false before Save")
	}
	if err := Save(dir, Default()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !Exists(dir) {
		t.Fatalf("expected Exists to be true after Save")
	}
	if _, err := os.Stat(filepath.Join(dir, ConfigFileName)); err != nil {
		t.Fatalf("expected config file on disk: %v", err)
	}
}

func TestBranchName_SubstitutesSlug(t *testing.T) {
	cfg := &Config{BranchNameTemplate: "theme-migration/{slug}"}
	if got := cfg.BranchName("lexus-of-denver"); got != "theme-migration/lexus-of-denver" {
		t.Fatalf("got %q", got)
	}
}

func TestBranchName_EmptyTemplateFallsBackToDefault(t *testing.T) {
	cfg := &Config{}
	if got := cfg.BranchName("lexus-of-denver"); got != "theme-migration/lexus-of-denver" {
		t.Fatalf("got %q", got)
	}
}
