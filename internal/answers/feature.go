package answers

import (
	"fmt"
	"slices"
	"strings"
)

// Feature is one of the optional tooling integrations a user may keep or remove.
type Feature string

const (
	// FeatureStyleLinter keeps Laravel Pint and its workflow.
	FeatureStyleLinter Feature = "style-linter"

	// FeatureStaticAnalyzer keeps PHPStan, its configuration and the lint script.
	FeatureStaticAnalyzer Feature = "static-analyzer"

	// FeatureDependencyBot keeps the Dependabot configuration and auto-merge workflow.
	FeatureDependencyBot Feature = "dependency-bot"

	// FeatureRefactoringTool keeps Rector and its scripts.
	FeatureRefactoringTool Feature = "refactoring-tool"

	// FeatureCommitHooks keeps the .githooks directory and the prepare script.
	FeatureCommitHooks Feature = "commit-hooks"

	// FeatureChangelogAutomation keeps the update-changelog workflow.
	FeatureChangelogAutomation Feature = "changelog-automation"
)

// AllFeatures returns every feature in prompt order.
func AllFeatures() []Feature {
	return []Feature{
		FeatureStyleLinter,
		FeatureStaticAnalyzer,
		FeatureDependencyBot,
		FeatureChangelogAutomation,
		FeatureRefactoringTool,
		FeatureCommitHooks,
	}
}

// String returns the slug of the feature.
func (f Feature) String() string {
	return string(f)
}

// IsValid reports whether f is a known feature.
func (f Feature) IsValid() bool {
	return slices.Contains(AllFeatures(), f)
}

// Label returns the tool name shown in prompts and summaries.
func (f Feature) Label() string {
	switch f {
	case FeatureStyleLinter:
		return "Pint"
	case FeatureStaticAnalyzer:
		return "PHPStan"
	case FeatureDependencyBot:
		return "Dependabot"
	case FeatureRefactoringTool:
		return "Rector"
	case FeatureCommitHooks:
		return "Git hooks"
	case FeatureChangelogAutomation:
		return "Changelog"
	default:
		return string(f)
	}
}

// Description returns a one-line explanation used as the option hint.
func (f Feature) Description() string {
	switch f {
	case FeatureStyleLinter:
		return "Laravel Pint code style fixer"
	case FeatureStaticAnalyzer:
		return "PHPStan static analysis"
	case FeatureDependencyBot:
		return "Dependabot updates with auto-merge"
	case FeatureRefactoringTool:
		return "Rector automated refactoring"
	case FeatureCommitHooks:
		return "Versioned git hooks in .githooks"
	case FeatureChangelogAutomation:
		return "Changelog update workflow on release"
	default:
		return ""
	}
}

// ParseFeature accepts either a feature slug or its label, case-insensitively.
func ParseFeature(s string) (Feature, error) {
	needle := strings.TrimSpace(s)
	for _, f := range AllFeatures() {
		if strings.EqualFold(needle, string(f)) || strings.EqualFold(needle, f.Label()) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown feature %q (available: %s)", s, strings.Join(featureSlugs(), ", "))
}

// ParseFeatures parses a list of feature names, dropping duplicates.
func ParseFeatures(names []string) ([]Feature, error) {
	features := make([]Feature, 0, len(names))
	for _, name := range names {
		f, err := ParseFeature(name)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(features, f) {
			features = append(features, f)
		}
	}
	return features, nil
}

func featureSlugs() []string {
	all := AllFeatures()
	slugs := make([]string, len(all))
	for i, f := range all {
		slugs[i] = string(f)
	}
	return slugs
}
