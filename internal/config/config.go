// Package config loads the optional .skelly.yaml file that describes the
// layout of a skeleton and the defaults offered while configuring it.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/goccy/go-yaml"
)

// DefaultFileName is looked up in the project directory when no --config is given.
const DefaultFileName = ".skelly.yaml"

// Environment variables consulted while loading.
const (
	EnvDir   = "SKELLY_DIR"
	EnvTheme = "SKELLY_THEME"
)

// DefaultDescription is offered as the package description.
const DefaultDescription = "All your base are belong to us!"

// Config describes the skeleton layout and prompt defaults. Paths are
// slash-separated and relative to the project directory.
type Config struct {
	Manifest  string   `yaml:"manifest"`
	ToolDir   string   `yaml:"tool_dir"`
	ClassFile string   `yaml:"class_file"`
	Readme    string   `yaml:"readme"`
	Exclude   []string `yaml:"exclude,omitempty"`

	PHPVersions        []string `yaml:"php_versions"`
	DefaultPHPVersion  string   `yaml:"default_php_version"`
	DefaultDescription string   `yaml:"default_description"`

	Theme string `yaml:"theme,omitempty"`

	InstallerDependencies []string `yaml:"installer_dependencies"`
	InstallCommand        string   `yaml:"install_command"`
	HooksCommand          string   `yaml:"hooks_command"`

	// Dir is the project directory. It is not read from the file.
	Dir string `yaml:"-"`
}

// Default returns the configuration of the stock PHP package skeleton.
func Default() *Config {
	return &Config{
		Manifest:              "composer.json",
		ToolDir:               "bin",
		ClassFile:             "src/Skeleton.php",
		Readme:                "README.md",
		PHPVersions:           []string{"8.0", "8.1", "8.2", "8.3"},
		DefaultPHPVersion:     "8.3",
		DefaultDescription:    DefaultDescription,
		InstallerDependencies: []string{"laravel/prompts", "ext-curl"},
		InstallCommand:        "composer install && composer test",
		HooksCommand:          "composer run prepare",
		Dir:                   ".",
	}
}

// LoadConfigFn is the loader used by the CLI; tests may replace it.
var LoadConfigFn = loadConfig

// loadConfig reads the file at path over the defaults. When path is empty the
// default file in dir is used and may be absent. Environment overrides are
// applied last.
func loadConfig(dir, path string) (*Config, error) {
	cfg := Default()

	if envDir := os.Getenv(EnvDir); envDir != "" {
		cleanDir := filepath.Clean(envDir)
		if strings.Contains(cleanDir, "..") {
			return nil, fmt.Errorf("invalid %s: path traversal not allowed, use absolute path instead", EnvDir)
		}
		dir = cleanDir
	}
	if dir == "" {
		dir = "."
	}
	cfg.Dir = dir

	optional := path == ""
	if optional {
		path = filepath.Join(dir, DefaultFileName)
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := decode(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case optional && errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config %q: %w", path, err)
	}

	if theme := os.Getenv(EnvTheme); theme != "" {
		cfg.Theme = theme
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func decode(data []byte, cfg *Config) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data), yaml.Strict())
	return decoder.Decode(cfg)
}

// Validate checks required paths and the PHP version list.
func (c *Config) Validate() error {
	var errs []error

	for name, value := range map[string]string{
		"manifest":   c.Manifest,
		"class_file": c.ClassFile,
		"readme":     c.Readme,
	} {
		if strings.TrimSpace(value) == "" {
			errs = append(errs, fmt.Errorf("%s must not be empty", name))
		}
	}

	for _, p := range append([]string{c.Manifest, c.ToolDir, c.ClassFile, c.Readme}, c.Exclude...) {
		if filepath.IsAbs(p) || strings.HasPrefix(filepath.Clean(p), "..") {
			errs = append(errs, fmt.Errorf("path %q must be relative to the project directory", p))
		}
	}

	if len(c.PHPVersions) == 0 {
		errs = append(errs, errors.New("php_versions must list at least one version"))
	}
	for _, v := range c.PHPVersions {
		if _, err := semver.NewVersion(v); err != nil {
			errs = append(errs, fmt.Errorf("php_versions: %q is not a version", v))
		}
	}
	if c.DefaultPHPVersion != "" && !slices.Contains(c.PHPVersions, c.DefaultPHPVersion) {
		errs = append(errs, fmt.Errorf("default_php_version %q is not in php_versions", c.DefaultPHPVersion))
	}

	return errors.Join(errs...)
}

// SortedPHPVersions returns the PHP versions in ascending order.
func (c *Config) SortedPHPVersions() []string {
	versions := slices.Clone(c.PHPVersions)
	slices.SortStableFunc(versions, func(a, b string) int {
		va, errA := semver.NewVersion(a)
		vb, errB := semver.NewVersion(b)
		if errA != nil || errB != nil {
			return strings.Compare(a, b)
		}
		return va.Compare(vb)
	})
	return versions
}

// Path resolves a project-relative path against Dir.
func (c *Config) Path(rel string) string {
	return filepath.Join(c.Dir, filepath.FromSlash(rel))
}
