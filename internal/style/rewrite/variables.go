package rewrite

import (
	"fmt"
	"regexp"
	"strings"
)

var darkenPattern = regexp.MustCompile(`darken\(\s*\$([a-zA-Z][a-zA-Z0-9]*)\s*,\s*[^)]*\)`)

// ApplyVariables runs the Variables catalog group: darken($color, N%)
// resolution first (it must see the original $color name before the
// bare-variable rule below rewrites it out from under it), then the
// bare $variable -> var(--x) substitution for every known name.
func ApplyVariables(text string, t *Tables, warn func(string)) string {
	text = darkenPattern.ReplaceAllStringFunc(text, func(match string) string {
		groups := darkenPattern.FindStringSubmatch(match)
		colorName := groups[1]
		if hoverVar, ok := t.HoverVarFor(colorName); ok {
			return fmt.Sprintf("var(--%s)", hoverVar)
		}
		if warn != nil {
			warn(fmt.Sprintf("darken($%s, ...) has no known hover variant; left as-is for manual review", colorName))
		}
		return match
	})

	for _, v := range t.Variables {
		pattern := regexp.MustCompile(`\$` + regexp.QuoteMeta(v.Name) + `\b`)
		text = pattern.ReplaceAllString(text, fmt.Sprintf("var(--%s)", v.CSSVar))
	}

	return text
}

var (
	hexPattern         = regexp.MustCompile(`#[0-9a-fA-F]{3,8}\b`)
	alreadyWrappedTail = regexp.MustCompile(`var\(--[a-zA-Z0-9-]+,\s*$`)
)

// ApplyColors runs the Colors catalog group: known hex literals become
// var(--name, #hex) so the fallback color is preserved for renderers
// that don't yet define the custom property. A hex value already
// sitting inside a var(--name, #hex) fallback (from a prior rewrite
// pass) is left untouched — required for rewrite idempotence (P4).
func ApplyColors(text string, t *Tables) string {
	matches := hexPattern.FindAllStringIndex(text, -1)
	if matches == nil {
		return text
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		b.WriteString(text[last:start])

		match := text[start:end]
		if alreadyWrappedTail.MatchString(text[:start]) {
			b.WriteString(match)
		} else if name, ok := t.Colors[strings.ToLower(match)]; ok {
			fmt.Fprintf(&b, "var(--%s, %s)", name, match)
		} else {
			b.WriteString(match)
		}
		last = end
	}
	b.WriteString(text[last:])
	return b.String()
}
