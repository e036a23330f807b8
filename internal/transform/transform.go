// Package transform turns the skeleton into a named project: it rewrites
// placeholder tokens, applies the structural fix-ups, prunes declined features
// and finalizes the manifest.
package transform

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/indaco/skelly/internal/answers"
	"github.com/indaco/skelly/internal/core"
	"github.com/indaco/skelly/internal/discovery"
	"github.com/indaco/skelly/internal/features"
	"github.com/indaco/skelly/internal/manifest"
	"github.com/indaco/skelly/internal/rewrite"
	"github.com/indaco/skelly/internal/substitution"
)

// Options locate the parts of the project the transformer touches.
// Manifest, ClassFile, Readme and ToolDir are slash-separated paths relative to Root.
type Options struct {
	Root      string
	Manifest  string
	ClassFile string
	Readme    string
	ToolDir   string
	Exclude   []string
	DryRun    bool
}

// Transformer runs the one-shot project transformation.
type Transformer struct {
	fs   core.FileSystem
	opts Options
}

// New returns a Transformer operating on fs.
func New(fs core.FileSystem, opts Options) *Transformer {
	return &Transformer{fs: fs, opts: opts}
}

// Run transforms the project. A malformed manifest aborts the run before any
// file is modified; any later failure aborts on the first error.
func (t *Transformer) Run(ctx context.Context, a answers.AnswerSet) (*Report, error) {
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("incomplete answers: %w", err)
	}

	fsys := t.fs
	var dry *core.DryRunFileSystem
	if t.opts.DryRun {
		dry = core.NewDryRunFileSystem(t.fs)
		fsys = dry
	}

	session, err := manifest.Open(ctx, fsys, t.abs(t.opts.Manifest))
	if err != nil {
		return nil, err
	}
	table := substitution.Build(a)
	files, err := t.discover(ctx, fsys, table)
	if err != nil {
		return nil, fmt.Errorf("discovering files: %w", err)
	}
	log.Debug("discovered files", "count", len(files))

	report := &Report{DryRun: t.opts.DryRun}

	// Resolved values go in after substitution so they are never replaced again.
	if err := session.Substitute(table.JSONSafe()); err != nil {
		return nil, err
	}
	if err := session.SetKey("name", a.ManifestName()); err != nil {
		return nil, err
	}
	if err := session.SetRequire("php", "^"+a.MinimumPHPVersion); err != nil {
		return nil, err
	}

	rw := rewrite.NewRewriter(fsys, t.opts.Root, table,
		rewrite.DefaultRules(t.opts.ClassFile, a.ClassName, t.opts.Readme)...)
	for _, rel := range files {
		if rel == path.Clean(t.opts.Manifest) {
			continue
		}
		out, err := rw.Rewrite(ctx, rel)
		if err != nil {
			return report, err
		}
		report.Files = append(report.Files, out)
	}

	pruned, err := features.NewPruner(fsys, t.opts.Root).Prune(ctx, a.Features, session)
	if err != nil {
		return report, err
	}
	report.Declined = pruned.Declined
	report.Removed = append(pruned.FilesRemoved, pruned.DirsRemoved...)

	if err := session.Save(ctx); err != nil {
		return report, err
	}
	report.ManifestEdits = session.Edits()

	if dry != nil {
		report.Changes = dry.Changes()
	}
	return report, nil
}

// discover returns the files holding tokens plus the fix-up targets, which
// need rewriting even without tokens.
func (t *Transformer) discover(ctx context.Context, fsys core.FileSystem, table *substitution.Table) ([]string, error) {
	excludes := slices.Clone(t.opts.Exclude)
	if t.opts.ToolDir != "" {
		excludes = append(excludes, path.Clean(t.opts.ToolDir))
	}

	files, err := discovery.NewService(fsys, table, excludes).Discover(ctx, t.opts.Root)
	if err != nil {
		return nil, err
	}

	for _, target := range []string{t.opts.ClassFile, t.opts.Readme} {
		if target == "" {
			continue
		}
		rel := path.Clean(target)
		if slices.Contains(files, rel) {
			continue
		}
		if _, err := fsys.Stat(ctx, t.abs(rel)); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, &discovery.ReadError{Path: t.abs(rel), Err: err}
		}
		files = append(files, rel)
	}

	slices.Sort(files)
	return files, nil
}

func (t *Transformer) abs(rel string) string {
	return filepath.Join(t.opts.Root, filepath.FromSlash(rel))
}
