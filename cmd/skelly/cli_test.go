package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	urfavecli "github.com/urfave/cli/v3"
)

func TestRunCLI_Unattended(t *testing.T) {
	tmp := t.TempDir()

	files := map[string]string{
		"composer.json": `{
    "name": ":vendor_slug/:package_slug",
    "require": {
        "php": "^8.0"
    },
    "scripts": {
        "test": "vendor/bin/pest"
    }
}
`,
		"src/Skeleton.php": "<?php\n\nnamespace VendorName\\Skeleton;\n\nclass Skeleton {}\n",
		"README.md":        "# :package_name\n",
		"answers.toml": `author_name = "Jane Doe"
author_email = "jane@example.com"
author_username = "janedoe"
vendor_name = "Acme"
package_name = "My Lib"
features = []

[finalize]
self_delete = false
`,
	}
	for name, content := range files {
		path := filepath.Join(tmp, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	err := runCLI([]string{"skelly", "--dir", tmp, "--answers", filepath.Join(tmp, "answers.toml"), "--yes", "--no-color"})
	if err != nil {
		t.Fatalf("runCLI() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(tmp, "composer.json"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"name": "acme/my-lib"`) {
		t.Errorf("manifest not configured:\n%s", data)
	}
	if _, err := os.Stat(filepath.Join(tmp, "src", "MyLib.php")); err != nil {
		t.Errorf("class file not renamed: %v", err)
	}
}

func TestRunCLI_MissingConfig(t *testing.T) {
	err := runCLI([]string{"skelly", "--dir", t.TempDir(), "--config", "missing.yaml", "--yes"})
	if err == nil || !strings.Contains(err.Error(), "failed to read config") {
		t.Errorf("runCLI() error = %v", err)
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"plain error", errors.New("boom"), 1},
		{"exit coder", urfavecli.Exit("declined", 1), 1},
		{"custom code", urfavecli.Exit("usage", 2), 2},
		{"zero code", urfavecli.Exit("odd", 0), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
