package migrate

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dealerinspire/sbm/internal/mapresolve"
	"github.com/dealerinspire/sbm/internal/style"
	"github.com/dealerinspire/sbm/internal/style/validate"
	"github.com/dealerinspire/sbm/internal/theme"
)

// Report is the structured result spec.md §6 requires: counts of
// blocks per category, rewrites applied, warnings, the list of map
// partials copied, and the list of validation errors per sheet.
type Report struct {
	RunID    string
	Slug     string
	OEMBrand string

	CountsByCategory map[style.Category]int
	RewritesApplied  int
	Warnings         []string

	CopiedPartials []mapresolve.CopyOutcome

	SheetOutcomes map[theme.SheetKind]style.SheetOutcome
}

// NewReport starts a Report stamped with a fresh run identifier
// (spec.md §6's orchestrator needs a stable per-run handle for
// diagnostics and audit trails).
func NewReport(slug, oemBrand string) *Report {
	return &Report{
		RunID:            uuid.NewString(),
		Slug:             slug,
		OEMBrand:         oemBrand,
		CountsByCategory: map[style.Category]int{},
		SheetOutcomes:    map[theme.SheetKind]style.SheetOutcome{},
	}
}

// absorbEngine merges a style.Report produced by the Transformation
// Engine into this migration Report.
func (r *Report) absorbEngine(er style.Report) {
	for cat, n := range er.CountsByCategory {
		r.CountsByCategory[cat] += n
	}
	r.RewritesApplied += er.RewritesApplied
	r.Warnings = append(r.Warnings, er.Warnings...)
	for kind, outcome := range er.Outcomes {
		r.SheetOutcomes[kind] = outcome
	}
}

// Succeeded reports whether every target sheet was written.
func (r *Report) Succeeded() bool {
	for _, outcome := range r.SheetOutcomes {
		if !outcome.Written {
			return false
		}
	}
	return len(r.SheetOutcomes) > 0
}

// Render produces the human-readable summary the orchestrator prints
// (spec.md §7: "the orchestrator prints the report and sets the exit
// code; the core itself performs no console output").
func (r *Report) Render() string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Migration Report — %s\n\n", r.Slug)
	fmt.Fprintf(&b, "- Run: %s\n", r.RunID)
	fmt.Fprintf(&b, "- OEM policy: %s\n\n", r.OEMBrand)

	b.WriteString("## Blocks by category\n\n")
	fmt.Fprintf(&b, "- interior: %d\n", r.CountsByCategory[style.Interior])
	fmt.Fprintf(&b, "- detail: %d\n", r.CountsByCategory[style.Detail])
	fmt.Fprintf(&b, "- results: %d\n", r.CountsByCategory[style.Results])
	fmt.Fprintf(&b, "- rewrites applied: %d\n\n", r.RewritesApplied)

	b.WriteString("## Target sheets\n\n")
	for _, kind := range []theme.SheetKind{theme.SheetKindInterior, theme.SheetKindDetail, theme.SheetKindResults} {
		outcome, ok := r.SheetOutcomes[kind]
		if !ok {
			fmt.Fprintf(&b, "- %s: not produced\n", kind)
			continue
		}
		status := "written"
		if outcome.Err != nil {
			status = "not written"
		} else if !outcome.Written {
			status = "failed validation"
		}
		fmt.Fprintf(&b, "- %s: %s\n", kind, status)
		for _, d := range outcome.Diagnostics {
			fmt.Fprintf(&b, "  - %s\n", d.String())
		}
		if outcome.Err != nil {
			fmt.Fprintf(&b, "  - error: %v\n", outcome.Err)
		}
	}
	b.WriteString("\n")

	b.WriteString("## Map partials copied\n\n")
	if len(r.CopiedPartials) == 0 {
		b.WriteString("(none)\n\n")
	} else {
		for _, c := range r.CopiedPartials {
			state := "copied"
			if !c.Copied {
				state = "already present"
			}
			fmt.Fprintf(&b, "- %s (%s, via %s)\n", c.Ref.RelPath, state, c.Ref.Source)
		}
		b.WriteString("\n")
	}

	if len(r.Warnings) > 0 {
		b.WriteString("## Warnings\n\n")
		for _, w := range r.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// ExitCode derives this run's exit status from its outcomes, without
// consulting a separate error value — used when the orchestrator
// completed without a fatal error but some sheets still failed
// validation.
func (r *Report) ExitCode() ExitCode {
	for _, outcome := range r.SheetOutcomes {
		if !outcome.Written {
			return ExitValidation
		}
	}
	return ExitOK
}
