// Package rewrite implements the rewrite catalog (spec.md §4.2): the
// ordered set of textual rules that turn legacy mixin calls, variable
// references, hex colors, image paths, and named breakpoints into their
// target-dialect equivalents. Each table backing a rule is data, loaded
// from embedded YAML, not a switch statement — new brand exceptions
// extend a table instead of the code.
package rewrite

// Warning is a non-fatal note surfaced during rewriting — spec.md §7
// requires warnings never block a write, only get reported alongside it.
type Warning struct {
	Message string
}

// Catalog bundles the loaded tables so repeated calls to Apply don't
// re-parse the embedded YAML.
type Catalog struct {
	tables *Tables
}

// NewCatalog loads the rewrite tables once. extraColors lets an OEM
// Policy extend the hex->name table with brand primaries (spec.md
// Glossary: "plus known brand primaries").
func NewCatalog(extraColors map[string]string) (*Catalog, error) {
	t, err := LoadTables()
	if err != nil {
		return nil, err
	}
	if len(extraColors) > 0 {
		t = t.WithExtraColors(extraColors)
	}
	return &Catalog{tables: t}, nil
}

// Apply runs the catalog groups over text in a fixed order (Mixins,
// Variables, Colors, Paths), each rule seeing the prior rules' output,
// never touching comments. Named breakpoints are rewritten inside the
// Mixins group (see ApplyMixins), not as a separate last step.
//
// Variables and Colors go through applyOutsideLiterals (comments AND
// quoted strings skipped): those two rules match bare tokens ($name,
// #hex) that could coincidentally appear inside unrelated quoted
// content (e.g. content: "#fff"). Mixins and Paths go through
// applyOutsideComments instead (comments skipped, quotes left as
// ordinary text): both match a whole construct anchored on a keyword
// that itself spans the quoted argument (@include name('arg'),
// url('...')) — cutting those quotes out as a "literal" segment first
// would slice the pattern in half and never match it, which is exactly
// the failure mode that used to break @include breakpoint('md') {...}
// and url('../images/x.png') calls.
func (c *Catalog) Apply(text string) (string, []Warning) {
	var warnings []Warning
	warn := func(msg string) {
		warnings = append(warnings, Warning{Message: msg})
	}

	text = applyOutsideComments(text, func(s string) string {
		return ApplyMixins(s, c.tables)
	})
	text = applyOutsideLiterals(text, func(s string) string {
		return ApplyVariables(s, c.tables, warn)
	})
	text = applyOutsideLiterals(text, func(s string) string {
		return ApplyColors(s, c.tables)
	})
	text = applyOutsideComments(text, ApplyPaths)

	return text, warnings
}
