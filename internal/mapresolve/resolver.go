package mapresolve

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dealerinspire/sbm/internal/obslog"
	"github.com/dealerinspire/sbm/internal/oem"
	"github.com/dealerinspire/sbm/internal/style/rewrite"
	"github.com/dealerinspire/sbm/internal/theme"
)

// CopyOutcome records what happened to one resolved reference.
type CopyOutcome struct {
	Ref         PartialRef
	SourcePath  string
	DestPath    string
	Copied      bool
	StyleAppend string // rewritten style text appended to the interior sheet, "" if none
	Err         error
}

// Result is everything the Map Resolver produced for one migration run.
type Result struct {
	Outcomes       []CopyOutcome
	InteriorAppend string // the full text to append to the interior sheet, in dedup order
}

// Resolve runs all three detectors, unions and deduplicates their
// output by resolved source path (spec.md §4.5), then copies each
// referenced partial and migrates its associated style exactly once.
// logger is variadic so existing callers that don't care about a
// run-scoped trace keep working unchanged; only logger[0] is used.
func Resolve(dealer theme.Dir, common theme.CommonDir, policy oem.Policy, catalog *rewrite.Catalog, logger ...*obslog.Logger) (Result, error) {
	log := obslog.Nop()
	if len(logger) > 0 && logger[0] != nil {
		log = logger[0]
	}
	shortcodeRefs, err := DetectShortcodeFunctions(common.Root, dealer.FunctionsPath(), policy)
	if err != nil {
		return Result{}, fmt.Errorf("shortcode-functions detector: %w", err)
	}
	templateRefs, err := DetectTemplateParts(dealer.TemplateFiles(), policy)
	if err != nil {
		return Result{}, fmt.Errorf("template-parts detector: %w", err)
	}
	styleRefs, err := DetectStyleImports(dealer.RootStylesheetPath(), policy)
	if err != nil {
		return Result{}, fmt.Errorf("style-import detector: %w", err)
	}

	all := append(append(shortcodeRefs, templateRefs...), styleRefs...)

	seen := make(map[string]bool, len(all))
	var deduped []PartialRef
	for _, ref := range all {
		src := common.PartialPath(ref.RelPath)
		if seen[src] {
			continue
		}
		seen[src] = true
		deduped = append(deduped, ref)
	}

	if len(deduped) == 0 {
		return Result{}, nil // "no map references found": informational, no file changes
	}

	var outcomes []CopyOutcome
	var appendText string

	for _, ref := range deduped {
		src := common.PartialPath(ref.RelPath)
		dst := filepath.Join(dealer.PartialsRoot(), ref.RelPath+".php")

		copied, err := theme.CopyFileIfAbsent(src, dst)
		outcome := CopyOutcome{Ref: ref, SourcePath: src, DestPath: dst, Copied: copied, Err: err}
		if err != nil {
			log.Warn(fmt.Sprintf("failed to copy partial %s: %v", src, err), ref.Source)
		}

		if err == nil {
			if styleText, ok := migrateStyle(common, ref, catalog, log); ok {
				outcome.StyleAppend = styleText
				appendText = appendBlock(appendText, styleText)
			}
		}

		outcomes = append(outcomes, outcome)
	}

	return Result{Outcomes: outcomes, InteriorAppend: appendText}, nil
}

// migrateStyle locates the style module associated with ref's
// basename (the "_<basename>.scss" naming convention), rewrites it
// through the Rewriter, and wraps it in the header comment spec.md
// §4.5 "Style migration" requires.
func migrateStyle(common theme.CommonDir, ref PartialRef, catalog *rewrite.Catalog, log *obslog.Logger) (string, bool) {
	stylePath := common.StylePath(ref.RelPath)
	data, err := os.ReadFile(stylePath)
	if err != nil {
		log.Warn(fmt.Sprintf("no style module found for partial %s: %v", ref.RelPath, err), ref.Source)
		return "", false // Resolve-class: warn and skip, handled by the caller's Report
	}

	rewritten, _ := catalog.Apply(string(data))
	header := fmt.Sprintf("/* Migrated from CommonTheme: %s */", stylePath)
	return header + "\n" + rewritten, true
}

func appendBlock(existing, block string) string {
	if existing == "" {
		return block
	}
	return existing + "\n\n" + block
}
