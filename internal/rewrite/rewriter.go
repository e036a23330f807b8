// Package rewrite applies the substitution table and the structural fix-up
// rules to single files, writing each changed file back atomically.
package rewrite

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/indaco/skelly/internal/core"
)

// Substituter rewrites placeholder tokens in file contents.
type Substituter interface {
	ReplaceBytes(data []byte) []byte
}

// Error reports the file and step that failed.
type Error struct {
	Path string
	Op   string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Outcome describes what happened to one file.
type Outcome struct {
	// Path is the relative path the file was read from.
	Path string
	// NewPath is the relative path after renames; equal to Path when not renamed.
	NewPath string
	// Changed is true when the contents were written back.
	Changed bool
	// Applied lists the names of the rules that modified the file.
	Applied []string
}

// Renamed reports whether the file was moved.
func (o Outcome) Renamed() bool {
	return o.NewPath != o.Path
}

// Rewriter rewrites files below a project root.
type Rewriter struct {
	fs    core.FileSystem
	root  string
	table Substituter
	rules []Rule
}

// NewRewriter returns a Rewriter evaluating rules in the given order.
func NewRewriter(fs core.FileSystem, root string, table Substituter, rules ...Rule) *Rewriter {
	return &Rewriter{
		fs:    fs,
		root:  root,
		table: table,
		rules: rules,
	}
}

// Rewrite substitutes tokens in the file at rel, applies the matching content
// rules and then the matching rename rules. The file is written at most once.
func (r *Rewriter) Rewrite(ctx context.Context, rel string) (Outcome, error) {
	out := Outcome{Path: rel, NewPath: rel}
	path := r.abs(rel)

	info, err := r.fs.Stat(ctx, path)
	if err != nil {
		return out, &Error{Path: path, Op: "stat", Err: err}
	}

	original, err := r.fs.ReadFile(ctx, path)
	if err != nil {
		return out, &Error{Path: path, Op: "read", Err: err}
	}

	data := r.table.ReplaceBytes(original)
	for _, rule := range r.rules {
		if rule.Content == nil || !rule.Match(rel) {
			continue
		}
		next := rule.Content(data)
		if !slices.Equal(next, data) {
			out.Applied = append(out.Applied, rule.Name)
		}
		data = next
	}

	if !slices.Equal(data, original) {
		if err := r.fs.WriteFile(ctx, path, data, info.Mode().Perm()); err != nil {
			return out, &Error{Path: path, Op: "write", Err: err}
		}
		out.Changed = true
		log.Debug("rewrote", "path", rel)
	}

	for _, rule := range r.rules {
		if rule.Rename == nil || !rule.Match(out.NewPath) {
			continue
		}
		target := rule.Rename(out.NewPath)
		if target == out.NewPath {
			continue
		}
		if err := r.fs.Rename(ctx, r.abs(out.NewPath), r.abs(target)); err != nil {
			return out, &Error{Path: r.abs(out.NewPath), Op: "rename", Err: err}
		}
		log.Debug("renamed", "from", out.NewPath, "to", target)
		out.Applied = append(out.Applied, rule.Name)
		out.NewPath = target
	}

	return out, nil
}

func (r *Rewriter) abs(rel string) string {
	return filepath.Join(r.root, filepath.FromSlash(rel))
}
