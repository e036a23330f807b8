package transform

import (
	"github.com/indaco/skelly/internal/answers"
	"github.com/indaco/skelly/internal/rewrite"
)

// Report summarizes a transformation run. Paths are relative to the project root.
type Report struct {
	// Files holds one outcome per rewritten file, in discovery order.
	Files []rewrite.Outcome
	// Declined lists the pruned features.
	Declined []answers.Feature
	// Removed lists the files and directories deleted while pruning.
	Removed []string
	// ManifestEdits describes every manifest edit.
	ManifestEdits []string
	// DryRun is set when nothing was written; Changes lists the skipped writes.
	DryRun  bool
	Changes []string
}

// Rewritten returns the paths whose contents changed.
func (r *Report) Rewritten() []string {
	var out []string
	for _, o := range r.Files {
		if o.Changed {
			out = append(out, o.Path)
		}
	}
	return out
}

// Renamed maps old paths to new paths.
func (r *Report) Renamed() map[string]string {
	out := make(map[string]string)
	for _, o := range r.Files {
		if o.Renamed() {
			out[o.Path] = o.NewPath
		}
	}
	return out
}

// Applied returns the paths a named rule modified.
func (r *Report) Applied(rule string) []string {
	var out []string
	for _, o := range r.Files {
		for _, name := range o.Applied {
			if name == rule {
				out = append(out, o.Path)
				break
			}
		}
	}
	return out
}
