// Package finalize runs the optional steps that follow a transformation:
// preparing git hooks, reinstalling dependencies and running the tests, and
// removing the configuration tool itself.
package finalize

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/indaco/skelly/internal/answers"
	"github.com/indaco/skelly/internal/core"
	"github.com/indaco/skelly/internal/manifest"
	"github.com/indaco/skelly/internal/printer"
	"github.com/indaco/skelly/internal/tui"
)

// Step identifies a finalization step.
type Step string

const (
	StepHooks      Step = "prepare-hooks"
	StepInstall    Step = "install-and-test"
	StepSelfDelete Step = "self-delete"
)

// Prompter asks yes/no questions.
type Prompter interface {
	Confirm(ctx context.Context, title, description string, def bool) (bool, error)
}

// Options configures the finalization steps.
type Options struct {
	Root     string
	Manifest string
	ToolDir  string

	InstallerDependencies []string
	InstallCommand        string
	HooksCommand          string

	// Presets answer confirmations ahead of time.
	Presets answers.FinalizePresets
	// Unattended treats every unanswered confirmation as declined.
	Unattended bool
}

// Result lists what happened to each step.
type Result struct {
	Ran      []Step
	Skipped  []Step
	Warnings []string
}

// Finalizer runs the finalization steps in order.
type Finalizer struct {
	fs       core.FileSystem
	runner   core.CommandRunner
	prompter Prompter
	opts     Options

	spin func(ctx context.Context, title string, action func(context.Context) error) error
}

// New creates a Finalizer.
func New(fs core.FileSystem, runner core.CommandRunner, prompter Prompter, opts Options) *Finalizer {
	return &Finalizer{
		fs:       fs,
		runner:   runner,
		prompter: prompter,
		opts:     opts,
		spin:     tui.Spin,
	}
}

// Run asks for and executes each step. Failing commands become warnings;
// only prompt, manifest and cancellation errors are returned.
func (f *Finalizer) Run(ctx context.Context, a answers.AnswerSet) (*Result, error) {
	result := &Result{}

	steps := []struct {
		step    Step
		enabled bool
		title   string
		def     bool
		preset  *bool
		run     func(context.Context, *Result) error
	}{
		{
			step:    StepHooks,
			enabled: a.Enabled(answers.FeatureCommitHooks) && f.opts.HooksCommand != "",
			title:   "Prepare git hooks?",
			def:     true,
			preset:  f.opts.Presets.PrepareHooks,
			run:     f.prepareHooks,
		},
		{
			step:    StepInstall,
			enabled: f.opts.InstallCommand != "",
			title:   "Execute `composer install` and run tests?",
			def:     false,
			preset:  f.opts.Presets.InstallAndTest,
			run:     f.installAndTest,
		},
		{
			step:    StepSelfDelete,
			enabled: f.opts.ToolDir != "",
			title:   "Let this script delete itself?",
			def:     true,
			preset:  f.opts.Presets.SelfDelete,
			run:     f.selfDelete,
		},
	}

	for _, s := range steps {
		if !s.enabled {
			continue
		}
		ok, err := f.confirm(ctx, s.preset, s.title, s.def)
		if err != nil {
			return result, err
		}
		if !ok {
			log.Debug("finalize step skipped", "step", s.step)
			result.Skipped = append(result.Skipped, s.step)
			continue
		}
		if err := s.run(ctx, result); err != nil {
			return result, fmt.Errorf("%s: %w", s.step, err)
		}
		result.Ran = append(result.Ran, s.step)
	}

	return result, nil
}

func (f *Finalizer) confirm(ctx context.Context, preset *bool, title string, def bool) (bool, error) {
	if preset != nil {
		return *preset, nil
	}
	if f.opts.Unattended {
		return false, nil
	}
	return f.prompter.Confirm(ctx, title, "", def)
}

func (f *Finalizer) prepareHooks(ctx context.Context, result *Result) error {
	return f.command(ctx, result, "Preparing git hooks", f.opts.HooksCommand)
}

func (f *Finalizer) installAndTest(ctx context.Context, result *Result) error {
	session, err := manifest.Open(ctx, f.fs, f.path(f.opts.Manifest))
	if err != nil {
		return err
	}
	if err := session.RemoveDependencies(f.opts.InstallerDependencies...); err != nil {
		return err
	}
	if err := session.Save(ctx); err != nil {
		return err
	}

	if err := f.fs.RemoveAll(ctx, f.path("vendor")); err != nil {
		f.warn(result, fmt.Sprintf("could not remove vendor directory: %v", err))
	}

	return f.command(ctx, result, "Installing dependencies and running tests", f.opts.InstallCommand)
}

func (f *Finalizer) selfDelete(ctx context.Context, result *Result) error {
	if err := f.fs.RemoveAll(ctx, f.path(f.opts.ToolDir)); err != nil {
		f.warn(result, fmt.Sprintf("could not remove %s: %v", f.opts.ToolDir, err))
	}
	return nil
}

// command runs line through the shell behind a spinner.
func (f *Finalizer) command(ctx context.Context, result *Result, title, line string) error {
	name, args := core.ShellCommand(line)

	var output string
	err := f.spin(ctx, title, func(ctx context.Context) error {
		var runErr error
		output, runErr = f.runner.Run(ctx, name, args...)
		return runErr
	})
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if err != nil {
		f.warn(result, fmt.Sprintf("%q failed: %v", line, err))
		return nil
	}

	log.Debug("command finished", "command", line, "output", output)
	return nil
}

func (f *Finalizer) warn(result *Result, msg string) {
	printer.PrintWarning(msg)
	result.Warnings = append(result.Warnings, msg)
}

func (f *Finalizer) path(rel string) string {
	return filepath.Join(f.opts.Root, filepath.FromSlash(rel))
}
