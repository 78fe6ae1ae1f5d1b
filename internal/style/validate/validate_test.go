package validate

import "testing"

func TestValidate_BalancedBufferPasses(t *testing.T) {
	r := Validate(".x { color: red; }")
	if !r.OK {
		t.Fatalf("expected OK, got diagnostics: %v", r.Diagnostics)
	}
	if r.Repaired {
		t.Fatalf("expected no repair for a balanced buffer")
	}
}

// P1: any input that parses cleanly produces equal brace counts.
func TestValidate_UnclosedBraceFails(t *testing.T) {
	r := Validate(".x { color: red;")
	if r.OK {
		t.Fatalf("expected failure for unclosed brace")
	}
}

// A stray closing brace in the middle of the buffer isn't the trailing
// excess-brace case §4.3 repairs; the trailing strip can't fix nesting
// that breaks before end-of-file, so it still fails after repair.
func TestValidate_MidBufferUnmatchedClosingBraceStillFails(t *testing.T) {
	r := Validate(".x { color: red; } } .y { color: blue; }")
	if r.OK {
		t.Fatalf("expected failure: the extra brace sits before .y, not at end-of-file")
	}
}

// Concrete scenario 3: "} } } }" with one extra closing brace is
// repaired to three "}" and the buffer then validates.
func TestValidate_ExcessBraceRepair(t *testing.T) {
	in := ".a { .b { .c { color: red; } } } }"
	r := Validate(in)
	if !r.Repaired {
		t.Fatalf("expected the excess brace to be repaired")
	}
	if !r.OK {
		t.Fatalf("expected repaired buffer to validate, got: %v", r.Diagnostics)
	}
	if r.Buffer == in {
		t.Fatalf("expected the repaired buffer to differ from the input")
	}
}

func TestValidate_RepairAppliedAtMostOnce(t *testing.T) {
	// Two extra closing braces: repair only strips down to balance once,
	// it does not loop — one call, matched counts either way.
	in := ".a { color: red; } } }"
	r := Validate(in)
	if !r.OK {
		t.Fatalf("expected the single repair pass to fully balance this buffer: %v", r.Diagnostics)
	}
}

func TestValidate_UnterminatedStringFails(t *testing.T) {
	r := Validate(`.x { content: "unterminated; }`)
	if r.OK {
		t.Fatalf("expected failure for unterminated string literal")
	}
}

func TestValidate_UnterminatedBlockCommentFails(t *testing.T) {
	r := Validate(".x { color: red; } /* never closed")
	if r.OK {
		t.Fatalf("expected failure for unterminated block comment")
	}
}

func TestValidate_LeftoverIncludeFails(t *testing.T) {
	r := Validate(".x { @include some-unresolved-mixin(1, 2); }")
	if r.OK {
		t.Fatalf("expected failure for a leftover @include the Rewriter never resolved")
	}
	if len(r.Diagnostics) != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d", len(r.Diagnostics))
	}
}

func TestValidate_BraceInsideStringDoesNotUnbalance(t *testing.T) {
	r := Validate(`.x::before { content: "}"; }`)
	if !r.OK {
		t.Fatalf("a brace inside a string literal must not be counted structurally: %v", r.Diagnostics)
	}
}

func TestValidate_LineCommentWithBraceDoesNotUnbalance(t *testing.T) {
	r := Validate(".x { color: red; } // trailing brace in a comment }")
	if !r.OK {
		t.Fatalf("a brace inside a line comment must not be counted structurally: %v", r.Diagnostics)
	}
}
