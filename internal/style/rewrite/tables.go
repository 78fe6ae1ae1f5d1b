package rewrite

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed data/breakpoints.yaml data/zindex.yaml data/colors.yaml data/variables.yaml
var dataFS embed.FS

// VariableDef describes one legacy $variable's target CSS custom
// property, and its hover variant when one exists (used to resolve
// darken($color, N%) into var(--xhover), per spec.md §4.2).
type VariableDef struct {
	Name     string `yaml:"name"`
	CSSVar   string `yaml:"cssVar"`
	HoverVar string `yaml:"hoverVar"`
}

// Tables holds every lookup table the rewrite catalog consults. It is
// loaded once at process start from embedded YAML — "rewrite catalog as
// data, not code" per spec.md §9 — and may be extended per-OEM.
type Tables struct {
	Breakpoints map[string]string
	ZIndex      map[string]int
	Colors      map[string]string
	Variables   []VariableDef
}

// LoadTables parses the embedded rule tables. It cannot fail in
// practice (the data is compiled in), but returns an error rather than
// panicking so callers can surface a Policy-class internal error per
// spec.md §7 if the embedded assets are ever malformed.
func LoadTables() (*Tables, error) {
	t := &Tables{}

	if err := loadYAML("data/breakpoints.yaml", &t.Breakpoints); err != nil {
		return nil, fmt.Errorf("failed to load breakpoint table: %w", err)
	}
	if err := loadYAML("data/zindex.yaml", &t.ZIndex); err != nil {
		return nil, fmt.Errorf("failed to load z-index table: %w", err)
	}
	if err := loadYAML("data/colors.yaml", &t.Colors); err != nil {
		return nil, fmt.Errorf("failed to load color table: %w", err)
	}
	if err := loadYAML("data/variables.yaml", &t.Variables); err != nil {
		return nil, fmt.Errorf("failed to load variable table: %w", err)
	}

	return t, nil
}

func loadYAML(path string, out any) error {
	data, err := dataFS.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, out)
}

// HoverVarFor returns the CSS custom property name of colorName's hover
// variant, if one is known.
func (t *Tables) HoverVarFor(colorName string) (string, bool) {
	for _, v := range t.Variables {
		if v.Name == colorName && v.HoverVar != "" {
			return v.HoverVar, true
		}
	}
	return "", false
}

// CSSVarFor returns the CSS custom property name for a legacy $variable.
func (t *Tables) CSSVarFor(varName string) (string, bool) {
	for _, v := range t.Variables {
		if v.Name == varName {
			return v.CSSVar, true
		}
	}
	return "", false
}

// WithExtraColors returns a copy of Tables with additional hex->name
// entries merged in — used by OEM policies that know their own brand
// primaries (spec.md Glossary: "plus known brand primaries").
func (t *Tables) WithExtraColors(extra map[string]string) *Tables {
	merged := &Tables{
		Breakpoints: t.Breakpoints,
		ZIndex:      t.ZIndex,
		Colors:      make(map[string]string, len(t.Colors)+len(extra)),
		Variables:   t.Variables,
	}
	for k, v := range t.Colors {
		merged.Colors[k] = v
	}
	for k, v := range extra {
		merged.Colors[k] = v
	}
	return merged
}
