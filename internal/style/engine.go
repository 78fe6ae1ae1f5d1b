package style

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dealerinspire/sbm/internal/obslog"
	"github.com/dealerinspire/sbm/internal/oem"
	"github.com/dealerinspire/sbm/internal/style/rewrite"
	"github.com/dealerinspire/sbm/internal/style/validate"
	"github.com/dealerinspire/sbm/internal/theme"
)

// importPattern strips @import directives (spec.md §4.4 step 2: "they
// are not resolved"): every line that begins with one, not only those at
// the top of the file.
var importPattern = regexp.MustCompile(`(?m)^[ \t]*@import\s+[^\n;]*;[ \t]*\n?`)

// ErrNoLegacySources is a Missing-input class error (spec.md §7): every
// conventional legacy sheet name was absent, so there is nothing to
// migrate.
var ErrNoLegacySources = fmt.Errorf("no legacy source sheets found")

// SheetOutcome is the per-target-sheet result of one Engine run.
type SheetOutcome struct {
	Written     bool
	Diagnostics []validate.Diagnostic
	Err         error
}

// Report is the structured result spec.md §6 requires the engine
// return to its orchestrator.
type Report struct {
	CountsByCategory map[Category]int
	RewritesApplied  int
	Warnings         []string
	Outcomes         map[theme.SheetKind]SheetOutcome
}

// Engine is the Transformation Engine (component D): end-to-end
// orchestration of legacy-sheet reads through rewritten, validated,
// atomically-written target sheets (spec.md §4.4).
type Engine struct {
	classifier *Classifier
	catalog    *rewrite.Catalog
	policy     oem.Policy
	forceReset bool
	logger     *obslog.Logger
}

// NewEngine builds an Engine parameterized by an OEM Policy, which
// extends the Classifier's pattern sets and the Rewriter's color table,
// and supplies the interior-sheet injected content (spec.md §4.6).
func NewEngine(policy oem.Policy, forceReset bool) (*Engine, error) {
	classifier := NewClassifier(policy.AdditionalDetailExprs, policy.AdditionalResultsExprs)
	catalog, err := rewrite.NewCatalog(policy.BrandColors)
	if err != nil {
		return nil, fmt.Errorf("failed to build rewrite catalog: %w", err)
	}
	return &Engine{
		classifier: classifier,
		catalog:    catalog,
		policy:     policy,
		forceReset: forceReset,
		logger:     obslog.Nop(),
	}, nil
}

// SetLogger points the Engine at a run-scoped Logger; callers that skip
// this keep the no-op default from NewEngine.
func (e *Engine) SetLogger(l *obslog.Logger) {
	if l != nil {
		e.logger = l
	}
}

// legacySource is one read legacy sheet, in read order.
type legacySource struct {
	name theme.LegacySheetName
	path string
	text string
}

// Run executes spec.md §4.4 steps 1–9 for one dealer theme directory
// and returns the Report the orchestrator surfaces to its caller.
// MapAppend carries the Map Resolver's style-migration content
// (already rewritten) to be appended to the interior buffer ahead of
// write, per spec.md §4.5/§5 ordering guarantee: rewritten legacy
// content, then OEM-injected content, then map-migrated styles.
func (e *Engine) Run(dir theme.Dir, mapAppend string) (Report, error) {
	report := Report{
		CountsByCategory: map[Category]int{},
		Outcomes:         map[theme.SheetKind]SheetOutcome{},
	}

	sources, anyFound := e.readLegacySources(dir, &report)
	if !anyFound {
		return report, fmt.Errorf("%s: %w", dir.Root, ErrNoLegacySources)
	}

	buffers := map[Category]*strings.Builder{
		Interior: {},
		Detail:   {},
		Results:  {},
	}

	for _, src := range sources {
		body := stripImports(src.text)
		blocks := Tokenize(body)
		for _, b := range blocks {
			if b.Raw == "" {
				continue
			}
			cat := e.classifier.Classify(b)
			rewritten, warnings := e.catalog.Apply(b.Raw)
			for _, w := range warnings {
				report.Warnings = append(report.Warnings, w.Message)
				e.logger.Warn(w.Message, cat.String())
			}
			report.CountsByCategory[cat]++
			if rewritten != b.Raw {
				report.RewritesApplied++
			}
			buf := buffers[cat]
			if buf.Len() > 0 {
				buf.WriteString("\n\n")
			}
			buf.WriteString(rewritten)
		}
	}

	appendOEMContent(buffers[Interior], e.policy.MapStyles)
	appendOEMContent(buffers[Interior], e.policy.DirectionsStyles)
	e.appendMapStyles(buffers[Interior], mapAppend, &report)

	e.writeSheet(dir, theme.SheetKindInterior, buffers[Interior].String(), &report)
	e.writeSheet(dir, theme.SheetKindDetail, buffers[Detail].String(), &report)
	e.writeSheet(dir, theme.SheetKindResults, buffers[Results].String(), &report)

	return report, nil
}

func (e *Engine) readLegacySources(dir theme.Dir, report *Report) ([]legacySource, bool) {
	// Fixed read order with global last (spec.md §4.4 step 1).
	order := []theme.LegacySheetName{
		theme.SheetDetail, theme.SheetResults, theme.SheetInterior, theme.SheetGlobal,
	}

	var sources []legacySource
	found := false
	for _, name := range order {
		path, ok := dir.ResolveLegacySheet(name)
		if !ok {
			msg := fmt.Sprintf("missing-input: legacy sheet %v not found, skipped", name)
			report.Warnings = append(report.Warnings, msg)
			e.logger.Warn(msg, "")
			continue
		}
		data, err := theme.ReadFile(path)
		if err != nil {
			msg := fmt.Sprintf("i/o: failed to read %s: %v", path, err)
			report.Warnings = append(report.Warnings, msg)
			e.logger.Warn(msg, "")
			continue
		}
		sources = append(sources, legacySource{name: name, path: path, text: string(data)})
		found = true
	}
	return sources, found
}

func stripImports(text string) string {
	return importPattern.ReplaceAllString(text, "")
}

// appendMapStyles validates the Map Resolver's style content on its own,
// in isolation from the legacy/OEM content already in buf, before
// splicing it in. Per spec.md §4.5 a bad map-style append aborts only
// that append — the rest of the interior sheet still gets written — so
// a failure here is recorded as a Warning instead of being allowed to
// fail the combined buffer's later validation.
func (e *Engine) appendMapStyles(buf *strings.Builder, mapAppend string, report *Report) {
	if strings.TrimSpace(mapAppend) == "" {
		return
	}
	result := validate.Validate(mapAppend)
	if !result.OK {
		for _, d := range result.Diagnostics {
			msg := fmt.Sprintf("map-style append dropped: %s", d)
			report.Warnings = append(report.Warnings, msg)
			e.logger.Warn(msg, Interior.String())
		}
		return
	}
	appendOEMContent(buf, result.Buffer)
}

func appendOEMContent(buf *strings.Builder, content string) {
	content = strings.TrimSpace(content)
	if content == "" {
		return
	}
	if buf.Len() > 0 {
		buf.WriteString("\n\n")
	}
	buf.WriteString(content)
}

// writeSheet validates a category's buffer and, if it passes, writes it
// atomically. A validation failure leaves any pre-existing file
// untouched and is recorded in the Report rather than raised — the
// engine reports partial success (spec.md §4.4 "Failure semantics").
func (e *Engine) writeSheet(dir theme.Dir, kind theme.SheetKind, buf string, report *Report) {
	result := validate.Validate(buf)
	outcome := SheetOutcome{Diagnostics: result.Diagnostics}

	if !result.OK {
		report.Outcomes[kind] = outcome
		return
	}

	path := dir.TargetSheetPath(kind)
	if err := theme.WriteSheetAtomic(path, []byte(result.Buffer), e.forceReset); err != nil {
		outcome.Err = err
	} else {
		outcome.Written = true
	}
	report.Outcomes[kind] = outcome
}
