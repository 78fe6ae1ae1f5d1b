package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dealerinspire/sbm/internal/config"
	"github.com/dealerinspire/sbm/internal/gitops"
	"github.com/dealerinspire/sbm/internal/migrate"
	"github.com/dealerinspire/sbm/internal/obslog"
	"github.com/dealerinspire/sbm/internal/oem"
	"github.com/dealerinspire/sbm/internal/theme"
)

var (
	flagPlatformRoot string
	flagForceReset   bool
	flagBranch       bool

	// lastExitCode carries the process exit status out of RunE, since
	// cobra only distinguishes "an error occurred" from "it didn't" —
	// spec.md §6 needs the finer ExitCode enum even on a non-fatal
	// validation failure.
	lastExitCode migrate.ExitCode
)

var migrateCmd = &cobra.Command{
	Use:   "migrate <slug>",
	Short: "migrate a dealer theme's legacy stylesheets and map partials",
	Args:  cobra.ExactArgs(1),
	RunE:  runMigrate,
}

func init() {
	migrateCmd.Flags().StringVar(&flagPlatformRoot, "platform-root", "", "platform checkout root (defaults to .sbm.yaml or $PLATFORM_ROOT)")
	migrateCmd.Flags().BoolVar(&flagForceReset, "force-reset", false, "allow overwriting already-written target sheets")
	migrateCmd.Flags().BoolVar(&flagBranch, "branch", false, "create and check out a migration branch before writing")
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	slug := theme.Slug(args[0])

	projectRoot, err := config.FindProjectRoot()
	var cfg *config.Config
	if err != nil {
		cfg = config.Default()
	} else {
		cfg = config.LoadOrDefault(projectRoot)
	}

	platformRoot := flagPlatformRoot
	if platformRoot == "" {
		platformRoot = cfg.PlatformRoot
	}
	if platformRoot == "" {
		lastExitCode = migrate.ExitMissingInput
		return fmt.Errorf("no platform root: pass --platform-root, set platform_root in .sbm.yaml, or set PLATFORM_ROOT")
	}

	forceReset := flagForceReset || cfg.ForceReset

	if flagBranch {
		g := gitops.New()
		if _, err := g.EnsureBranch(platformRoot, cfg.BranchName(string(slug)), ""); err != nil {
			lastExitCode = migrate.ExitIO
			return fmt.Errorf("failed to prepare migration branch: %w", err)
		}
	}

	policies, err := oem.LoadPolicyDefs()
	if err != nil {
		lastExitCode = migrate.ExitInternal
		return fmt.Errorf("failed to load OEM policy catalog: %w", err)
	}
	registry := oem.NewRegistry(policies)

	logger, err := obslog.New(flagDebug)
	if err != nil {
		lastExitCode = migrate.ExitInternal
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	report, runErr := migrate.Run(migrate.Options{
		PlatformRoot: platformRoot,
		Slug:         slug,
		ForceReset:   forceReset,
		Logger:       logger,
	}, registry)

	if report != nil {
		fmt.Println(report.Render())
	}

	if runErr != nil {
		lastExitCode = migrate.ExitCodeFor(runErr)
		return runErr
	}

	lastExitCode = report.ExitCode()
	if lastExitCode != migrate.ExitOK {
		return fmt.Errorf("migration completed with validation failures")
	}
	return nil
}
