// Package mapresolve implements the Map-Component Resolver (component
// E): it discovers which map-related template fragments a dealer
// actually uses, copies them into the dealer tree, and migrates their
// associated styles onto the interior sheet (spec.md §4.5).
package mapresolve

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/dealerinspire/sbm/internal/oem"
)

// PartialRef is a Map Partial Reference: a path relative to partials/,
// discovered by one of the three detectors (spec.md Glossary).
type PartialRef struct {
	RelPath string
	// Source names which detector produced this reference, kept for
	// diagnostics only — detectors run independently and their outputs
	// are set-unioned (spec.md §5).
	Source string
}

var (
	addShortcodePattern  = regexp.MustCompile(`add_shortcode\(\s*['"]([^'"]+)['"]\s*,\s*['"]?([a-zA-Z_][a-zA-Z0-9_]*)['"]?\s*\)`)
	templatePartPattern  = regexp.MustCompile(`get_template_part\(\s*['"]([^'"]+)['"]\s*\)`)
	importPartialPattern = regexp.MustCompile(`@import\s+['"]([^'"]+)['"]\s*;`)
)

// commonFunctionsGlob matches every functions file the common theme
// exposes (spec.md §4.5 step 1 calls for plural "functions files").
const commonFunctionsGlob = "**/functions*.php"

// DetectShortcodeFunctions implements the shortcode-functions detector
// (spec.md §4.5 step 1): functions files registering a shortcode whose
// name matches the Policy are scanned for the callback body's
// get_template_part calls.
func DetectShortcodeFunctions(commonRoot, dealerFunctionsPath string, policy oem.Policy) ([]PartialRef, error) {
	var refs []PartialRef

	funcFiles, err := doublestar.Glob(os.DirFS(commonRoot), commonFunctionsGlob)
	if err != nil {
		return nil, fmt.Errorf("failed to glob common theme functions files: %w", err)
	}

	sources := make([]string, 0, len(funcFiles)+1)
	for _, f := range funcFiles {
		sources = append(sources, filepath.Join(commonRoot, f))
	}
	if dealerFunctionsPath != "" {
		sources = append(sources, dealerFunctionsPath)
	}

	for _, path := range sources {
		data, err := os.ReadFile(path)
		if err != nil {
			continue // a missing functions file is a Missing-input condition, not fatal
		}
		text := string(data)

		for _, m := range addShortcodePattern.FindAllStringSubmatch(text, -1) {
			name, callback := m[1], m[2]
			if !matchesAny(policy.ShortcodeNamePatterns, name) {
				continue
			}
			body := extractCallbackBody(text, callback)
			for _, tm := range templatePartPattern.FindAllStringSubmatch(body, -1) {
				refs = append(refs, PartialRef{RelPath: normalizePartialPath(tm[1]), Source: "shortcode-functions"})
			}
		}
	}

	return refs, nil
}

// DetectTemplateParts implements the template-parts detector (spec.md
// §4.5 step 2): every get_template_part call in the dealer's top-level
// templates whose path matches a Policy partial-path pattern.
func DetectTemplateParts(templateFiles []string, policy oem.Policy) ([]PartialRef, error) {
	var refs []PartialRef
	for _, path := range templateFiles {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		for _, m := range templatePartPattern.FindAllStringSubmatch(string(data), -1) {
			relPath := normalizePartialPath(m[1])
			if matchesAny(policy.PartialPathPatterns, relPath) {
				refs = append(refs, PartialRef{RelPath: relPath, Source: "template-parts"})
			}
		}
	}
	return refs, nil
}

// DetectStyleImports implements the style-import detector (spec.md
// §4.5 step 3): @import references in the dealer's root stylesheet
// that name a CommonTheme map module, converted to a Map Partial
// Reference by stripping an optional leading underscore.
func DetectStyleImports(rootStylesheetPath string, policy oem.Policy) ([]PartialRef, error) {
	data, err := os.ReadFile(rootStylesheetPath)
	if err != nil {
		return nil, nil // missing root stylesheet: Missing-input, non-fatal
	}

	var refs []PartialRef
	for _, m := range importPartialPattern.FindAllStringSubmatch(string(data), -1) {
		module := m[1]
		base := filepath.Base(module)
		trimmed := trimLeadingUnderscore(base)
		relPath := filepath.Join(filepath.Dir(module), trimmed)
		if filepath.Dir(module) == "." {
			relPath = trimmed
		}
		if !matchesAny(policy.PartialPathPatterns, relPath) {
			continue
		}
		refs = append(refs, PartialRef{RelPath: relPath, Source: "style-import"})
	}
	return refs, nil
}

// normalizePartialPath strips an optional leading "partials/" segment
// from a get_template_part() argument, since the Map Partial Reference
// itself is defined relative to partials/ already (spec.md Glossary).
func normalizePartialPath(p string) string {
	const prefix = "partials/"
	if len(p) > len(prefix) && p[:len(prefix)] == prefix {
		return p[len(prefix):]
	}
	return p
}

func trimLeadingUnderscore(name string) string {
	if len(name) > 0 && name[0] == '_' {
		return name[1:]
	}
	return name
}

func matchesAny(patterns []*regexp.Regexp, s string) bool {
	for _, p := range patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

// extractCallbackBody finds a PHP function definition named fn and
// returns its brace-balanced body text, or "" if not found. PHP
// function bodies follow the same brace-nesting discipline as a style
// block, so the same balanced-scan approach the Tokenizer uses applies.
func extractCallbackBody(text, fn string) string {
	pattern := regexp.MustCompile(`function\s+` + regexp.QuoteMeta(fn) + `\s*\([^)]*\)\s*\{`)
	loc := pattern.FindStringIndex(text)
	if loc == nil {
		return ""
	}
	depth := 1
	i := loc[1]
	start := i
	for i < len(text) && depth > 0 {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
		}
		i++
	}
	if depth != 0 {
		return text[start:]
	}
	return text[start : i-1]
}
