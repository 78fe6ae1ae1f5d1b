// Package oem implements the OEM Dispatch Layer (component F): it
// detects a dealer's manufacturer and selects the Policy that
// parameterizes the Rule Classifier, the Text Rewriter, and the Map
// Resolver with brand-specific patterns and injected content.
package oem

import (
	"embed"
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Policy is a brand's parameterization record (spec.md Glossary): its
// detection patterns, the extra classifier patterns it contributes, and
// the content it injects into the interior sheet and the Map Resolver.
type Policy struct {
	BrandKey string

	BrandMatchPatterns     []*regexp.Regexp
	ShortcodeNamePatterns  []*regexp.Regexp
	PartialPathPatterns    []*regexp.Regexp
	AdditionalDetailExprs  []*regexp.Regexp
	AdditionalResultsExprs []*regexp.Regexp

	MapStyles        string
	DirectionsStyles string

	// BrandColors extends the Rewriter's Colors table with the brand's
	// own known hex primaries (spec.md Glossary: "plus known brand
	// primaries").
	BrandColors map[string]string
}

// policyDef is the YAML wire shape a Policy is loaded from.
type policyDef struct {
	BrandKey              string            `yaml:"brandKey"`
	BrandMatchPatterns    []string          `yaml:"brandMatchPatterns"`
	ShortcodeNamePatterns []string          `yaml:"shortcodeNamePatterns"`
	PartialPathPatterns   []string          `yaml:"partialPathPatterns"`
	DetailPatterns        []string          `yaml:"detailPatterns"`
	ResultsPatterns       []string          `yaml:"resultsPatterns"`
	MapStyles             string            `yaml:"mapStyles"`
	DirectionsStyles      string            `yaml:"directionsStyles"`
	BrandColors           map[string]string `yaml:"brandColors"`
}

//go:embed data/policies.yaml
var policyFS embed.FS

// LoadPolicyDefs parses the embedded policy catalog into Policy values,
// preserving file order — registration order is the Registry's
// tie-break (spec.md §4.6, Open Question resolved in DESIGN.md).
func LoadPolicyDefs() ([]Policy, error) {
	data, err := policyFS.ReadFile("data/policies.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded OEM policy catalog: %w", err)
	}

	var defs []policyDef
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("failed to parse embedded OEM policy catalog: %w", err)
	}

	policies := make([]Policy, 0, len(defs))
	for _, d := range defs {
		p, err := compilePolicy(d)
		if err != nil {
			return nil, fmt.Errorf("policy %q: %w", d.BrandKey, err)
		}
		policies = append(policies, p)
	}
	return policies, nil
}

func compilePolicy(d policyDef) (Policy, error) {
	brandMatch, err := compileAll(d.BrandMatchPatterns)
	if err != nil {
		return Policy{}, fmt.Errorf("brandMatchPatterns: %w", err)
	}
	shortcode, err := compileAll(d.ShortcodeNamePatterns)
	if err != nil {
		return Policy{}, fmt.Errorf("shortcodeNamePatterns: %w", err)
	}
	partialPath, err := compileAll(d.PartialPathPatterns)
	if err != nil {
		return Policy{}, fmt.Errorf("partialPathPatterns: %w", err)
	}
	detail, err := compileAll(d.DetailPatterns)
	if err != nil {
		return Policy{}, fmt.Errorf("detailPatterns: %w", err)
	}
	results, err := compileAll(d.ResultsPatterns)
	if err != nil {
		return Policy{}, fmt.Errorf("resultsPatterns: %w", err)
	}

	return Policy{
		BrandKey:               d.BrandKey,
		BrandMatchPatterns:     brandMatch,
		ShortcodeNamePatterns:  shortcode,
		PartialPathPatterns:    partialPath,
		AdditionalDetailExprs:  detail,
		AdditionalResultsExprs: results,
		MapStyles:              d.MapStyles,
		DirectionsStyles:       d.DirectionsStyles,
		BrandColors:            d.BrandColors,
	}, nil
}

func compileAll(exprs []string) ([]*regexp.Regexp, error) {
	if len(exprs) == 0 {
		return nil, nil
	}
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, e := range exprs {
		re, err := regexp.Compile(e)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", e, err)
		}
		out = append(out, re)
	}
	return out, nil
}

// Score counts how many of the Policy's brand-match patterns hit any of
// the given text samples (spec.md §4.6 step 1: "the Policy with the
// most matches wins").
func (p Policy) Score(samples ...string) int {
	score := 0
	for _, pattern := range p.BrandMatchPatterns {
		for _, s := range samples {
			if pattern.MatchString(s) {
				score++
			}
		}
	}
	return score
}
