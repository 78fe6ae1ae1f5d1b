// Package config handles .sbm.yaml loading and project root discovery.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const ConfigFileName = ".sbm.yaml"

// Config represents the .sbm.yaml configuration file: the platform
// checkout root a migration runs against, whether a run is allowed to
// overwrite already-written target sheets, and the template used to
// name the git branch a migration's changes land on.
type Config struct {
	PlatformRoot       string `yaml:"platform_root"`
	ForceReset         bool   `yaml:"force_reset"`
	BranchNameTemplate string `yaml:"branch_name_template"`
}

// Default returns a Config with default values per spec.md's external
// interfaces: platform_root falls back to the PLATFORM_ROOT environment
// variable, force_reset defaults off (a second run must be explicit
// about overwriting a target sheet), and the branch template matches
// the one-slug-per-branch convention the rest of the corpus uses.
func Default() *Config {
	return &Config{
		PlatformRoot:       os.Getenv("PLATFORM_ROOT"),
		ForceReset:         false,
		BranchNameTemplate: "theme-migration/{slug}",
	}
}

// FindProjectRoot traverses upward from the current directory to find
// .sbm.yaml. Returns the directory containing it, or an error if none
// is found before the filesystem root.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}

	for {
		configPath := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%s not found", ConfigFileName)
		}
		dir = parent
	}
}

// Load reads and parses .sbm.yaml from the given project root.
func Load(projectRoot string) (*Config, error) {
	configPath := filepath.Join(projectRoot, ConfigFileName)

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", ConfigFileName, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ConfigFileName, err)
	}

	return cfg, nil
}

// LoadOrDefault attempts to load config from project root, returning
// the default (environment-derived) Config if none is found.
func LoadOrDefault(projectRoot string) *Config {
	cfg, err := Load(projectRoot)
	if err != nil {
		return Default()
	}
	return cfg
}

// Save writes the config to .sbm.yaml in the given project root.
func Save(projectRoot string, cfg *Config) error {
	configPath := filepath.Join(projectRoot, ConfigFileName)

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", ConfigFileName, err)
	}

	return nil
}

// Exists checks if .sbm.yaml exists in the given directory.
func Exists(dir string) bool {
	configPath := filepath.Join(dir, ConfigFileName)
	_, err := os.Stat(configPath)
	return err == nil
}

// BranchName renders the configured branch template for one dealer
// slug. The template's only placeholder is "{slug}".
func (c *Config) BranchName(slug string) string {
	template := c.BranchNameTemplate
	if template == "" {
		template = Default().BranchNameTemplate
	}
	return strings.ReplaceAll(template, "{slug}", slug)
}
