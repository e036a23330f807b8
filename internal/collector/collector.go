// Package collector gathers the answers that drive a project transformation,
// either interactively or from an answers file, and asks for the final
// go-ahead before anything is modified.
package collector

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/indaco/skelly/internal/answers"
	"github.com/indaco/skelly/internal/printer"
)

// ErrAborted is returned when the user declines to modify files.
var ErrAborted = errors.New("aborted: no files were modified")

// Guesser provides default answers.
type Guesser interface {
	AuthorName(ctx context.Context) string
	AuthorEmail(ctx context.Context) string
	GitHubUsername(ctx context.Context, authorName string) string
	VendorInfo(ctx context.Context, authorName, username string) (string, string)
}

// Options holds the defaults offered by the prompts.
type Options struct {
	// ProjectDir names the package by default.
	ProjectDir         string
	PHPVersions        []string
	DefaultPHPVersion  string
	DefaultDescription string
}

// Collector runs the prompt sequence.
type Collector struct {
	prompter Prompter
	guesser  Guesser
	opts     Options
}

// New creates a Collector.
func New(prompter Prompter, guesser Guesser, opts Options) *Collector {
	return &Collector{prompter: prompter, guesser: guesser, opts: opts}
}

// Collect prompts for every answer in order, offering guessed defaults.
func (c *Collector) Collect(ctx context.Context) (answers.AnswerSet, error) {
	var a answers.AnswerSet
	var err error

	ask := func(dst *string, title, def string) {
		if err != nil {
			return
		}
		*dst, err = c.prompter.Input(ctx, title, "", def, required(title))
	}

	ask(&a.AuthorName, "Author name?", c.guesser.AuthorName(ctx))
	ask(&a.AuthorEmail, "Author email?", c.guesser.AuthorEmail(ctx))
	if err != nil {
		return a, err
	}
	ask(&a.AuthorUsername, "Author username?", c.guesser.GitHubUsername(ctx, a.AuthorName))
	if err != nil {
		return a, err
	}

	vendorName, vendorLogin := c.guesser.VendorInfo(ctx, a.AuthorName, a.AuthorUsername)
	ask(&a.VendorName, "Vendor name?", vendorName)
	if err != nil {
		return a, err
	}
	if vendorLogin == "" || a.VendorName != vendorName {
		vendorLogin = answers.Slugify(a.VendorName)
	}
	ask(&a.VendorUsername, "Vendor username?", vendorLogin)
	if err != nil {
		return a, err
	}
	ask(&a.VendorNamespace, "Vendor namespace?", answers.Namespace(a.VendorName))
	ask(&a.PackageName, "Package name?", c.packageDefault())
	if err != nil {
		return a, err
	}
	ask(&a.ClassName, "Class name?", answers.TitleCase(a.PackageName))
	ask(&a.Description, "Package description?", c.opts.DefaultDescription)
	if err != nil {
		return a, err
	}

	if a.Features, err = c.selectFeatures(ctx); err != nil {
		return a, err
	}
	if a.MinimumPHPVersion, err = c.selectPHPVersion(ctx); err != nil {
		return a, err
	}

	a = answers.Complete(a)
	return a, a.Validate()
}

// FromFile builds the answers from an answers file, filling anything missing
// from the guesser and the configured defaults.
func (c *Collector) FromFile(ctx context.Context, f *answers.File) (answers.AnswerSet, error) {
	a, err := f.AnswerSet()
	if err != nil {
		return a, err
	}

	if a.AuthorName == "" {
		a.AuthorName = c.guesser.AuthorName(ctx)
	}
	if a.AuthorEmail == "" {
		a.AuthorEmail = c.guesser.AuthorEmail(ctx)
	}
	if a.AuthorUsername == "" {
		a.AuthorUsername = c.guesser.GitHubUsername(ctx, a.AuthorName)
	}
	if a.VendorName == "" {
		a.VendorName, a.VendorUsername = c.guesser.VendorInfo(ctx, a.AuthorName, a.AuthorUsername)
	}
	if a.PackageName == "" {
		a.PackageName = c.packageDefault()
	}
	if a.Description == "" {
		a.Description = c.opts.DefaultDescription
	}
	if a.MinimumPHPVersion == "" {
		a.MinimumPHPVersion = c.phpDefault()
	} else if len(c.opts.PHPVersions) > 0 && !slices.Contains(c.opts.PHPVersions, a.MinimumPHPVersion) {
		return a, fmt.Errorf("php_version %q is not one of %s", a.MinimumPHPVersion, strings.Join(c.opts.PHPVersions, ", "))
	}

	a = answers.Complete(a)
	return a, a.Validate()
}

// Confirm prints the summary and asks whether to modify files.
func (c *Collector) Confirm(ctx context.Context, a answers.AnswerSet) error {
	printer.PrintSummary("Configuration", Summary(a))
	printer.PrintSummary("Packages & utilities", FeatureSummary(a))
	printer.PrintFaint("\nThe values above will replace the placeholders in all relevant files of the project.")

	ok, err := c.prompter.Confirm(ctx, "Modify files?", "", true)
	if err != nil {
		return err
	}
	if !ok {
		return ErrAborted
	}
	return nil
}

// Summary lists the identifying answers.
func Summary(a answers.AnswerSet) []printer.Row {
	return []printer.Row{
		{Label: "Author", Value: fmt.Sprintf("%s (%s, %s)", a.AuthorName, a.AuthorUsername, a.AuthorEmail)},
		{Label: "Vendor", Value: fmt.Sprintf("%s (%s)", a.VendorName, a.VendorSlug)},
		{Label: "Package", Value: fmt.Sprintf("%s <%s>", a.PackageSlug, a.Description)},
		{Label: "Namespace", Value: a.Namespace()},
		{Label: "Class name", Value: a.ClassName},
		{Label: "PHP version", Value: a.MinimumPHPVersion},
	}
}

// FeatureSummary lists every feature with whether it is kept.
func FeatureSummary(a answers.AnswerSet) []printer.Row {
	rows := make([]printer.Row, 0, len(answers.AllFeatures()))
	for _, f := range answers.AllFeatures() {
		value := "no"
		if a.Enabled(f) {
			value = "yes"
		}
		rows = append(rows, printer.Row{Label: "Use " + f.Label(), Value: value})
	}
	return rows
}

func (c *Collector) selectFeatures(ctx context.Context) ([]answers.Feature, error) {
	all := answers.AllFeatures()
	options := make([]huh.Option[string], len(all))
	defaults := make([]string, len(all))
	for i, f := range all {
		options[i] = huh.NewOption(fmt.Sprintf("%s (%s)", f.Label(), f.Description()), f.String())
		defaults[i] = f.String()
	}

	selected, err := c.prompter.MultiSelect(ctx, "Which tooling should the package keep?", "Unselected tooling is removed.", options, defaults)
	if err != nil {
		return nil, err
	}
	return answers.ParseFeatures(selected)
}

func (c *Collector) selectPHPVersion(ctx context.Context) (string, error) {
	options := make([]huh.Option[string], len(c.opts.PHPVersions))
	for i, v := range c.opts.PHPVersions {
		options[i] = huh.NewOption(v, v)
	}
	return c.prompter.Select(ctx, "Minimum PHP version?", "", options, c.phpDefault())
}

func (c *Collector) packageDefault() string {
	dir, err := filepath.Abs(c.opts.ProjectDir)
	if err != nil {
		dir = c.opts.ProjectDir
	}
	return filepath.Base(dir)
}

func (c *Collector) phpDefault() string {
	if c.opts.DefaultPHPVersion != "" {
		return c.opts.DefaultPHPVersion
	}
	if n := len(c.opts.PHPVersions); n > 0 {
		return c.opts.PHPVersions[n-1]
	}
	return ""
}

func required(title string) func(string) error {
	name := strings.ToLower(strings.TrimSuffix(title, "?"))
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}
