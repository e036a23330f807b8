// Package features describes what each optional feature adds to the skeleton
// and removes it from a project when the feature is declined.
package features

import (
	"slices"

	"github.com/indaco/skelly/internal/answers"
)

// ScriptCommand is one entry of a script's command list.
type ScriptCommand struct {
	Script  string
	Command string
}

// Definition lists everything a feature owns in the skeleton.
type Definition struct {
	Feature        answers.Feature
	Files          []string
	Dirs           []string
	Dependencies   []string
	Scripts        []string
	ScriptCommands []ScriptCommand
}

// phpstanPackages are shared by the static analyzer and the refactoring tool.
var phpstanPackages = []string{
	"phpstan/phpstan",
	"phpstan/extension-installer",
	"phpstan/phpstan-deprecation-rules",
	"phpstan/phpstan-phpunit",
	"phpstan/phpstan-strict-rules",
}

// Catalog returns the definitions of every feature, in processing order.
func Catalog() []Definition {
	return []Definition{
		{
			Feature: answers.FeatureStyleLinter,
			Files: []string{
				".github/workflows/fix-php-code-style-issues.yml",
				"pint.json",
			},
			Dependencies: []string{"laravel/pint"},
			Scripts:      []string{"format"},
		},
		{
			Feature: answers.FeatureStaticAnalyzer,
			Files: []string{
				"phpstan.neon.dist",
				"phpstan-baseline.neon",
				".github/workflows/phpstan.yml",
			},
			Dependencies: slices.Clone(phpstanPackages),
			Scripts:      []string{"lint"},
		},
		{
			Feature: answers.FeatureDependencyBot,
			Files: []string{
				".github/dependabot.yml",
				".github/workflows/dependabot-auto-merge.yml",
			},
		},
		{
			Feature: answers.FeatureChangelogAutomation,
			Files:   []string{".github/workflows/update-changelog.yml"},
		},
		{
			Feature:      answers.FeatureRefactoringTool,
			Files:        []string{"rector.php"},
			Dependencies: append([]string{"rector/rector"}, phpstanPackages...),
			Scripts:      []string{"rector", "rector:dry", "refactor"},
			ScriptCommands: []ScriptCommand{
				{Script: "ci", Command: "@rector:dry"},
			},
		},
		{
			Feature: answers.FeatureCommitHooks,
			Dirs:    []string{".githooks"},
			Scripts: []string{"prepare"},
		},
	}
}

// Lookup returns the definition of f.
func Lookup(f answers.Feature) (Definition, bool) {
	for _, d := range Catalog() {
		if d.Feature == f {
			return d, true
		}
	}
	return Definition{}, false
}
