package features

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/indaco/skelly/internal/answers"
	"github.com/indaco/skelly/internal/core"
	"github.com/indaco/skelly/internal/manifest"
)

const composerJSON = `{
    "name": ":vendor_slug/:package_slug",
    "require": {
        "php": "^8.0"
    },
    "require-dev": {
        "laravel/pint": "^1.0",
        "pestphp/pest": "^2.0",
        "phpstan/extension-installer": "^1.1",
        "phpstan/phpstan": "^1.10",
        "phpstan/phpstan-deprecation-rules": "^1.0",
        "phpstan/phpstan-phpunit": "^1.0",
        "phpstan/phpstan-strict-rules": "^1.5",
        "rector/rector": "^0.18"
    },
    "scripts": {
        "prepare": "git config core.hookspath .githooks",
        "test": "vendor/bin/pest",
        "format": "vendor/bin/pint",
        "lint": "vendor/bin/phpstan analyse",
        "rector": "vendor/bin/rector",
        "rector:dry": "vendor/bin/rector --dry-run",
        "refactor": "@rector",
        "ci": [
            "@rector:dry",
            "@test"
        ]
    }
}`

func newProject(t *testing.T) (*core.MockFileSystem, *manifest.Session) {
	t.Helper()
	fs := core.NewMockFileSystem()
	fs.SetFile("/p/composer.json", []byte(composerJSON))
	for _, def := range Catalog() {
		for _, f := range def.Files {
			fs.SetFile("/p/"+f, []byte("x"))
		}
		for _, d := range def.Dirs {
			fs.SetFile("/p/"+d+"/pre-commit", []byte("#!/bin/sh"))
		}
	}
	fs.SetFile("/p/.github/workflows/run-tests.yml", []byte("x"))

	session, err := manifest.Open(context.Background(), fs, "/p/composer.json")
	if err != nil {
		t.Fatalf("manifest.Open() error = %v", err)
	}
	return fs, session
}

/* ------------------------------------------------------------------------- */
/* PRUNE                                                                     */
/* ------------------------------------------------------------------------- */

func TestPrune_AllDeclined(t *testing.T) {
	fs, session := newProject(t)
	ctx := context.Background()

	result, err := NewPruner(fs, "/p").Prune(ctx, nil, session)
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}

	if !slices.Equal(result.Declined, answers.AllFeatures()) {
		t.Errorf("Declined = %v", result.Declined)
	}
	for _, def := range Catalog() {
		for _, f := range def.Files {
			if _, ok := fs.GetFile("/p/" + f); ok {
				t.Errorf("%s was not removed", f)
			}
		}
		for _, dep := range def.Dependencies {
			if session.HasDependency(dep) {
				t.Errorf("%s still required", dep)
			}
		}
		for _, script := range def.Scripts {
			if session.HasScript(script) {
				t.Errorf("script %s still present", script)
			}
		}
	}
	if fs.HasDir("/p/.githooks") {
		t.Error(".githooks was not removed")
	}
	if _, ok := fs.GetFile("/p/.github/workflows/run-tests.yml"); !ok {
		t.Error("unrelated workflow was removed")
	}
	if !session.HasDependency("pestphp/pest") || !session.HasScript("test") {
		t.Error("unrelated manifest entries were removed")
	}
	if got := session.ScriptCommands("ci"); !slices.Equal(got, []string{"@test"}) {
		t.Errorf("ci = %v, want [@test]", got)
	}
	if len(result.FilesRemoved) != 9 || !slices.Equal(result.DirsRemoved, []string{".githooks"}) {
		t.Errorf("unexpected removals: files=%v dirs=%v", result.FilesRemoved, result.DirsRemoved)
	}
}

func TestPrune_Idempotent(t *testing.T) {
	fs, session := newProject(t)
	ctx := context.Background()
	pruner := NewPruner(fs, "/p")

	if _, err := pruner.Prune(ctx, nil, session); err != nil {
		t.Fatal(err)
	}
	once := string(session.Bytes())

	result, err := pruner.Prune(ctx, nil, session)
	if err != nil {
		t.Fatalf("second Prune() error = %v", err)
	}
	if string(session.Bytes()) != once {
		t.Error("second prune changed the manifest")
	}
	if len(result.FilesRemoved) != 0 || len(result.DirsRemoved) != 0 {
		t.Errorf("second prune removed files: %+v", result)
	}
}

func TestPrune_SharedDependencies(t *testing.T) {
	tests := []struct {
		name    string
		enabled []answers.Feature
		phpstan bool
	}{
		{"both declined", nil, false},
		{"rector kept", []answers.Feature{answers.FeatureRefactoringTool}, false},
		{"phpstan kept", []answers.Feature{answers.FeatureStaticAnalyzer}, false},
		{"both kept", []answers.Feature{answers.FeatureStaticAnalyzer, answers.FeatureRefactoringTool}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs, session := newProject(t)
			if _, err := NewPruner(fs, "/p").Prune(context.Background(), tt.enabled, session); err != nil {
				t.Fatalf("Prune() error = %v", err)
			}
			if got := session.HasDependency("phpstan/phpstan"); got != tt.phpstan {
				t.Errorf("phpstan/phpstan present = %v, want %v", got, tt.phpstan)
			}
		})
	}
}

func TestPrune_KeepsEnabled(t *testing.T) {
	fs, session := newProject(t)

	enabled := []answers.Feature{answers.FeatureStyleLinter, answers.FeatureCommitHooks}
	result, err := NewPruner(fs, "/p").Prune(context.Background(), enabled, session)
	if err != nil {
		t.Fatal(err)
	}

	if slices.Contains(result.Declined, answers.FeatureStyleLinter) {
		t.Error("style linter was pruned")
	}
	if _, ok := fs.GetFile("/p/pint.json"); !ok {
		t.Error("pint.json was removed")
	}
	if !fs.HasDir("/p/.githooks") || !session.HasScript("prepare") {
		t.Error("commit hooks were removed")
	}
	if !session.HasDependency("laravel/pint") || !session.HasScript("format") {
		t.Error("style linter manifest entries were removed")
	}
}

type failingEditor struct{ calls []string }

func (e *failingEditor) RemoveDependencies(names ...string) error {
	e.calls = append(e.calls, "deps:"+strings.Join(names, ","))
	return errors.New("boom")
}

func (e *failingEditor) RemoveScript(name string) error { return nil }

func (e *failingEditor) RemoveScriptCommand(script, command string) error { return nil }

func TestPrune_EditorError(t *testing.T) {
	fs, _ := newProject(t)
	editor := &failingEditor{}

	_, err := NewPruner(fs, "/p").Prune(context.Background(), nil, editor)
	if err == nil || !strings.Contains(err.Error(), "pruning style-linter") {
		t.Fatalf("expected wrapped editor error, got %v", err)
	}
	if len(editor.calls) != 1 {
		t.Errorf("pruning continued after an error: %v", editor.calls)
	}
}

func TestPrune_RemoveError(t *testing.T) {
	fs, session := newProject(t)
	fs.RemoveErrors["/p/pint.json"] = errors.New("permission denied")

	_, err := NewPruner(fs, "/p").Prune(context.Background(), nil, session)
	if err == nil || !strings.Contains(err.Error(), "permission denied") {
		t.Errorf("expected removal error, got %v", err)
	}
}

func TestLookup(t *testing.T) {
	def, ok := Lookup(answers.FeatureRefactoringTool)
	if !ok {
		t.Fatal("refactoring tool not in catalog")
	}
	if def.Dependencies[0] != "rector/rector" || len(def.ScriptCommands) != 1 {
		t.Errorf("unexpected definition: %+v", def)
	}
	if _, ok := Lookup(answers.Feature("bogus")); ok {
		t.Error("unexpected lookup hit")
	}
}
