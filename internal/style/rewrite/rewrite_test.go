package rewrite

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := NewCatalog(nil)
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	return c
}

func TestApply_BreakpointRewrite(t *testing.T) {
	c := mustCatalog(t)
	in := `@include breakpoint('md') { .x { font-size: 1.2rem; } }`
	out, _ := c.Apply(in)
	want := `@media (min-width: 768px) { .x { font-size: 1.2rem; } }`
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestApply_FlexboxMixin(t *testing.T) {
	c := mustCatalog(t)
	out, _ := c.Apply(".row { @include flexbox; }")
	if !strings.Contains(out, "display: flex;") {
		t.Fatalf("expected display: flex; in %q", out)
	}
}

func TestApply_VariableSubstitution(t *testing.T) {
	c := mustCatalog(t)
	out, _ := c.Apply(".btn { color: $primary; }")
	if !strings.Contains(out, "var(--primary)") {
		t.Fatalf("expected var(--primary) in %q", out)
	}
}

func TestApply_DarkenResolvesToHoverVariant(t *testing.T) {
	c := mustCatalog(t)
	out, _ := c.Apply(".btn:hover { color: darken($primary, 10%); }")
	if !strings.Contains(out, "var(--primary-hover)") {
		t.Fatalf("expected var(--primary-hover) in %q", out)
	}
}

func TestApply_DarkenUnknownColorWarnsAndLeavesUnchanged(t *testing.T) {
	c := mustCatalog(t)
	in := ".btn { color: darken($mystery, 10%); }"
	out, warnings := c.Apply(in)
	if !strings.Contains(out, "darken($mystery, 10%)") {
		t.Fatalf("expected darken() call left untouched, got %q", out)
	}
	if len(warnings) == 0 {
		t.Fatalf("expected a warning for unknown darken() color")
	}
}

func TestApply_ColorTableSubstitution(t *testing.T) {
	c := mustCatalog(t)
	out, _ := c.Apply(".x { color: #fff; }")
	if !strings.Contains(out, "var(--white, #fff)") {
		t.Fatalf("expected var(--white, #fff) in %q", out)
	}
}

func TestApply_PathRewriteStripsRelativeClimb(t *testing.T) {
	c := mustCatalog(t)
	out, _ := c.Apply(`.x { background: url('../../images/logo.png'); }`)
	want := "url('/wp-content/themes/DealerInspireDealerTheme/images/logo.png')"
	if !strings.Contains(out, want) {
		t.Fatalf("got %q, want it to contain %q", out, want)
	}
}

func TestApply_SkipsStringLiterals(t *testing.T) {
	c := mustCatalog(t)
	in := `.x::before { content: "$primary darken($primary, 10%)"; }`
	out, _ := c.Apply(in)
	if out != in {
		t.Fatalf("text inside a string literal must not be rewritten; got %q", out)
	}
}

func TestApply_SkipsLineComments(t *testing.T) {
	c := mustCatalog(t)
	in := ".x { color: red; } // uses $primary via darken($primary, 10%)"
	out, _ := c.Apply(in)
	if out != in {
		t.Fatalf("text inside a line comment must not be rewritten; got %q", out)
	}
}

func TestApply_SkipsBlockComments(t *testing.T) {
	c := mustCatalog(t)
	in := "/* legacy: $primary, url('../images/x.png') */\n.x { color: red; }"
	out, _ := c.Apply(in)
	if out != in {
		t.Fatalf("text inside a block comment must not be rewritten; got %q", out)
	}
}

// P4: applying the rewriter twice yields the same output as once, across
// every rule in the catalog — including the color and path rules, whose
// naive implementations would double-wrap their own output.
func TestApply_Idempotence(t *testing.T) {
	c := mustCatalog(t)
	inputs := []string{
		".btn { color: $primary; background: darken($primary, 10%); }",
		".x { color: #fff; border-color: #000; }",
		".x { background: url('../../images/logo.png'); }",
		"@include breakpoint('lg') { .y { display: block; } }",
		".row { @include flexbox; @include z-index('modal'); }",
	}
	for _, in := range inputs {
		once, _ := c.Apply(in)
		twice, _ := c.Apply(once)
		require.Equalf(t, once, twice, "not idempotent for input %q", in)
	}
}

func TestApply_ZIndexMixin(t *testing.T) {
	c := mustCatalog(t)
	out, _ := c.Apply(".m { @include z-index('modal'); }")
	if !strings.Contains(out, "z-index: 1000;") {
		t.Fatalf("expected z-index: 1000; in %q", out)
	}
}

func TestApply_UnrecognizedIncludeLeftForValidator(t *testing.T) {
	c := mustCatalog(t)
	in := ".x { @include some-unknown-mixin(1, 2); }"
	out, _ := c.Apply(in)
	if !strings.Contains(out, "@include some-unknown-mixin(1, 2)") {
		t.Fatalf("expected unrecognized @include to be left untouched, got %q", out)
	}
}
