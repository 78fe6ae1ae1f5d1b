// Package migrate orchestrates the Style Transformation Engine, the
// Map-Component Resolver, and the OEM Dispatch Layer into one migration
// run, and renders the structured Report spec.md §6 specifies.
package migrate

import (
	"fmt"
	"path/filepath"

	"github.com/dealerinspire/sbm/internal/mapresolve"
	"github.com/dealerinspire/sbm/internal/obslog"
	"github.com/dealerinspire/sbm/internal/oem"
	"github.com/dealerinspire/sbm/internal/style"
	"github.com/dealerinspire/sbm/internal/style/rewrite"
	"github.com/dealerinspire/sbm/internal/theme"
)

// Options configures one migration run.
type Options struct {
	PlatformRoot string
	Slug         theme.Slug
	ForceReset   bool
	Logger       *obslog.Logger // nil runs silently (obslog.Nop())
}

// Run executes one full migration: detect the OEM policy (F), resolve
// and copy map partials (E), then transform the legacy sheets into the
// three target sheets (D) — appending rewritten legacy content, then
// OEM-injected content, then map-migrated styles onto the interior
// sheet, per spec.md §5's ordering guarantee.
func Run(opts Options, registry *oem.Registry) (*Report, error) {
	baseLogger := opts.Logger
	if baseLogger == nil {
		baseLogger = obslog.Nop()
	}

	dealer, err := theme.NewDir(opts.PlatformRoot, opts.Slug)
	if err != nil {
		return nil, classify(ClassMissingInput, err)
	}
	if !dealer.Exists() {
		return nil, classify(ClassMissingInput, fmt.Errorf("theme directory not found: %s", dealer.Root))
	}
	common := theme.CommonDir{Root: filepath.Join(opts.PlatformRoot, "DealerInspireCommonTheme")}

	functionsData, _ := theme.ReadFile(dealer.FunctionsPath())
	policy, err := registry.Detect(string(opts.Slug), string(functionsData))
	if err != nil {
		return nil, classify(ClassPolicy, err)
	}

	report := NewReport(string(opts.Slug), policy.BrandKey)
	logger := baseLogger.ForRun(report.RunID, report.Slug)

	catalog, err := rewrite.NewCatalog(policy.BrandColors)
	if err != nil {
		return report, classify(ClassIO, err)
	}

	resolveResult, err := mapresolve.Resolve(dealer, common, policy, catalog, logger)
	if err != nil {
		msg := fmt.Sprintf("resolve: %v", err)
		report.Warnings = append(report.Warnings, msg)
		logger.Warn(msg, "")
	} else {
		report.CopiedPartials = resolveResult.Outcomes
	}

	engine, err := style.NewEngine(policy, opts.ForceReset)
	if err != nil {
		return report, classify(ClassIO, err)
	}
	engine.SetLogger(logger)

	engineReport, err := engine.Run(dealer, resolveResult.InteriorAppend)
	if err != nil {
		report.absorbEngine(engineReport)
		return report, classify(ClassMissingInput, err)
	}
	report.absorbEngine(engineReport)

	return report, nil
}
