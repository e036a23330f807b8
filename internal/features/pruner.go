package features

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/indaco/skelly/internal/answers"
	"github.com/indaco/skelly/internal/core"
)

// ManifestEditor is the subset of the manifest session the pruner needs.
type ManifestEditor interface {
	RemoveDependencies(names ...string) error
	RemoveScript(name string) error
	RemoveScriptCommand(script, command string) error
}

// Result summarizes what pruning removed. Paths are relative to the project root.
type Result struct {
	Declined     []answers.Feature
	FilesRemoved []string
	DirsRemoved  []string
}

// Pruner removes declined features from a project.
type Pruner struct {
	fs      core.FileSystem
	root    string
	catalog []Definition
}

// NewPruner returns a Pruner over the standard catalog.
func NewPruner(fs core.FileSystem, root string) *Pruner {
	return &Pruner{fs: fs, root: root, catalog: Catalog()}
}

// Prune removes the files, directories, dependencies and scripts of every
// catalog feature not in enabled. Targets that are already gone are skipped,
// so features sharing dependencies can be pruned in any order.
func (p *Pruner) Prune(ctx context.Context, enabled []answers.Feature, editor ManifestEditor) (*Result, error) {
	kept := make(map[answers.Feature]bool, len(enabled))
	for _, f := range enabled {
		kept[f] = true
	}

	result := &Result{}
	for _, def := range p.catalog {
		if kept[def.Feature] {
			continue
		}
		if err := ctx.Err(); err != nil {
			return result, err
		}

		log.Debug("pruning feature", "feature", def.Feature)
		result.Declined = append(result.Declined, def.Feature)

		if err := p.pruneFiles(ctx, def, result); err != nil {
			return result, fmt.Errorf("pruning %s: %w", def.Feature, err)
		}
		if err := pruneManifest(def, editor); err != nil {
			return result, fmt.Errorf("pruning %s: %w", def.Feature, err)
		}
	}

	return result, nil
}

func (p *Pruner) pruneFiles(ctx context.Context, def Definition, result *Result) error {
	for _, rel := range def.Files {
		path := p.abs(rel)
		if !p.exists(ctx, path) {
			continue
		}
		if err := p.fs.Remove(ctx, path); err != nil {
			return err
		}
		result.FilesRemoved = append(result.FilesRemoved, rel)
	}

	for _, rel := range def.Dirs {
		path := p.abs(rel)
		if !p.exists(ctx, path) {
			continue
		}
		if err := p.fs.RemoveAll(ctx, path); err != nil {
			return err
		}
		result.DirsRemoved = append(result.DirsRemoved, rel)
	}

	return nil
}

func pruneManifest(def Definition, editor ManifestEditor) error {
	if len(def.Dependencies) > 0 {
		if err := editor.RemoveDependencies(def.Dependencies...); err != nil {
			return err
		}
	}
	for _, script := range def.Scripts {
		if err := editor.RemoveScript(script); err != nil {
			return err
		}
	}
	for _, sc := range def.ScriptCommands {
		if err := editor.RemoveScriptCommand(sc.Script, sc.Command); err != nil {
			return err
		}
	}
	return nil
}

// exists reports false only for targets known to be absent; other stat
// errors are left for the removal to surface.
func (p *Pruner) exists(ctx context.Context, path string) bool {
	_, err := p.fs.Stat(ctx, path)
	return !errors.Is(err, fs.ErrNotExist)
}

func (p *Pruner) abs(rel string) string {
	return filepath.Join(p.root, filepath.FromSlash(rel))
}
