package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/indaco/skelly/internal/answers"
	"github.com/indaco/skelly/internal/collector"
	"github.com/indaco/skelly/internal/config"
	"github.com/indaco/skelly/internal/core"
	"github.com/indaco/skelly/internal/finalize"
	"github.com/indaco/skelly/internal/guess"
	"github.com/indaco/skelly/internal/printer"
	"github.com/indaco/skelly/internal/rewrite"
	"github.com/indaco/skelly/internal/transform"
	"github.com/indaco/skelly/internal/tui"
	"github.com/indaco/skelly/internal/version"
	urfavecli "github.com/urfave/cli/v3"
)

// Deps holds the collaborators the root command talks to.
type Deps struct {
	FS          core.FileSystem
	NewRunner   func(dir string) core.CommandRunner
	GitHub      *guess.GitHubClient
	Prompter    collector.Prompter
	Interactive func() bool
}

// DefaultDeps returns the production collaborators.
func DefaultDeps() Deps {
	return Deps{
		FS:          core.NewOSFileSystem(),
		NewRunner:   func(dir string) core.CommandRunner { return core.NewExecRunner(dir) },
		GitHub:      guess.NewGitHubClient(os.Getenv("GITHUB_TOKEN")),
		Prompter:    collector.NewPrompter(),
		Interactive: tui.IsInteractive,
	}
}

// New builds the root command with the production collaborators.
func New() *urfavecli.Command {
	return NewWithDeps(DefaultDeps())
}

// NewWithDeps builds the root command for configuring a package skeleton.
func NewWithDeps(deps Deps) *urfavecli.Command {
	return &urfavecli.Command{
		Name:                  "skelly",
		Version:               fmt.Sprintf("v%s", version.GetVersion()),
		Usage:                 "Turn a PHP package skeleton into your own package",
		EnableShellCompletion: true,
		Flags: []urfavecli.Flag{
			&urfavecli.StringFlag{
				Name:        "dir",
				Aliases:     []string{"d"},
				Usage:       "Project directory to configure",
				Value:       ".",
				DefaultText: "current directory",
			},
			&urfavecli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to a skelly config file",
				DefaultText: config.DefaultFileName + " in the project directory",
			},
			&urfavecli.StringFlag{
				Name:    "answers",
				Aliases: []string{"a"},
				Usage:   "Read answers from a YAML, TOML or JSON file instead of prompting",
			},
			&urfavecli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "Accept every default and confirmation",
			},
			&urfavecli.BoolFlag{
				Name:  "dry-run",
				Usage: "Show what would change without writing anything",
			},
			&urfavecli.StringFlag{
				Name:  "theme",
				Usage: fmt.Sprintf("Prompt theme (%s)", strings.Join(tui.ValidThemes, ", ")),
			},
			&urfavecli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable colored output (also set by NO_COLOR)",
			},
			&urfavecli.BoolFlag{
				Name:  "verbose",
				Usage: "Log debug information",
			},
		},
		Before: func(ctx context.Context, cmd *urfavecli.Command) (context.Context, error) {
			printer.SetNoColor(cmd.Bool("no-color") || os.Getenv("NO_COLOR") != "")
			setupLogging(cmd.Bool("verbose"))
			return ctx, nil
		},
		Action: func(ctx context.Context, cmd *urfavecli.Command) error {
			return run(ctx, cmd, deps)
		},
		// Exit codes are decided by main.
		ExitErrHandler: func(context.Context, *urfavecli.Command, error) {},
	}
}

func setupLogging(verbose bool) {
	log.SetOutput(os.Stderr)
	log.SetPrefix("skelly")
	log.SetReportTimestamp(false)
	if verbose {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
}

func run(ctx context.Context, cmd *urfavecli.Command, deps Deps) error {
	cfg, err := config.LoadConfigFn(cmd.String("dir"), cmd.String("config"))
	if err != nil {
		return err
	}

	theme := cfg.Theme
	if cmd.IsSet("theme") {
		theme = cmd.String("theme")
	}
	if theme != "" && !tui.IsValidTheme(theme) {
		return fmt.Errorf("unknown theme %q (valid: %s)", theme, strings.Join(tui.ValidThemes, ", "))
	}
	tui.SetTheme(theme)

	assumeYes := cmd.Bool("yes")
	interactive := deps.Interactive()
	if !interactive && !assumeYes {
		return errors.New("not running in a terminal: pass --yes, optionally with --answers FILE, to run unattended")
	}

	prompter := deps.Prompter
	if assumeYes {
		prompter = collector.AutoPrompter{}
	}

	runner := deps.NewRunner(cfg.Dir)
	col := collector.New(prompter, guess.New(runner, deps.GitHub), collector.Options{
		ProjectDir:         cfg.Dir,
		PHPVersions:        cfg.SortedPHPVersions(),
		DefaultPHPVersion:  cfg.DefaultPHPVersion,
		DefaultDescription: cfg.DefaultDescription,
	})

	a, presets, err := collect(ctx, cmd, deps, col)
	if err != nil {
		return abortOr(err)
	}
	if err := col.Confirm(ctx, a); err != nil {
		return abortOr(err)
	}

	dryRun := cmd.Bool("dry-run")
	report, err := transform.New(deps.FS, transform.Options{
		Root:      cfg.Dir,
		Manifest:  cfg.Manifest,
		ClassFile: cfg.ClassFile,
		Readme:    cfg.Readme,
		ToolDir:   cfg.ToolDir,
		Exclude:   cfg.Exclude,
		DryRun:    dryRun,
	}).Run(ctx, a)
	if err != nil {
		return err
	}
	printReport(report)

	if dryRun {
		printer.PrintInfo("Dry run: no files were modified.")
		return nil
	}

	_, err = finalize.New(deps.FS, runner, prompter, finalize.Options{
		Root:                  cfg.Dir,
		Manifest:              cfg.Manifest,
		ToolDir:               cfg.ToolDir,
		InstallerDependencies: cfg.InstallerDependencies,
		InstallCommand:        cfg.InstallCommand,
		HooksCommand:          cfg.HooksCommand,
		Presets:               presets,
		Unattended:            !interactive,
	}).Run(ctx, a)
	if err != nil {
		return abortOr(err)
	}

	printer.PrintSuccess(fmt.Sprintf("Configured %s", a.ManifestName()))
	return nil
}

// collect builds the answers from --answers or the prompts.
func collect(ctx context.Context, cmd *urfavecli.Command, deps Deps, col *collector.Collector) (answers.AnswerSet, answers.FinalizePresets, error) {
	path := cmd.String("answers")
	if path == "" {
		a, err := col.Collect(ctx)
		return a, answers.FinalizePresets{}, err
	}

	file, err := answers.LoadFile(ctx, deps.FS, path)
	if err != nil {
		return answers.AnswerSet{}, answers.FinalizePresets{}, err
	}
	a, err := col.FromFile(ctx, file)
	if err != nil {
		return a, file.Finalize, fmt.Errorf("invalid answers in %s: %w", path, err)
	}
	return a, file.Finalize, nil
}

// abortOr maps a user abort to exit status 1.
func abortOr(err error) error {
	if errors.Is(err, collector.ErrAborted) || errors.Is(err, tui.ErrAborted) {
		return urfavecli.Exit(err.Error(), 1)
	}
	return err
}

func printReport(r *transform.Report) {
	if r.DryRun {
		printer.PrintHeading("Planned changes")
		printer.PrintList(r.Changes)
		return
	}

	if files := r.Rewritten(); len(files) > 0 {
		printer.PrintHeading("Rewritten files")
		printer.PrintList(files)
	}

	if renamed := r.Renamed(); len(renamed) > 0 {
		printer.PrintHeading("Renamed files")
		items := make([]string, 0, len(renamed))
		for from, to := range renamed {
			items = append(items, from+" → "+to)
		}
		slices.Sort(items)
		printer.PrintList(items)
	}

	if stripped := r.Applied(rewrite.RuleStripDeleteMarkers); len(stripped) > 0 {
		printer.PrintFaint(fmt.Sprintf("Removed marked sections from %s", strings.Join(stripped, ", ")))
	}

	if len(r.Removed) > 0 {
		printer.PrintHeading("Removed")
		printer.PrintList(r.Removed)
	}

	if len(r.ManifestEdits) > 0 {
		printer.PrintHeading("Manifest")
		printer.PrintList(r.ManifestEdits)
	}
}
