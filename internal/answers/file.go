package answers

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/indaco/skelly/internal/core"
	"github.com/pelletier/go-toml/v2"
)

// File is the on-disk form of an answers file used for unattended runs.
// Every field is optional; derivable fields are computed when absent.
type File struct {
	AuthorName      string `yaml:"author_name" toml:"author_name"`
	AuthorEmail     string `yaml:"author_email" toml:"author_email"`
	AuthorUsername  string `yaml:"author_username" toml:"author_username"`
	VendorName      string `yaml:"vendor_name" toml:"vendor_name"`
	VendorUsername  string `yaml:"vendor_username" toml:"vendor_username"`
	VendorSlug      string `yaml:"vendor_slug" toml:"vendor_slug"`
	VendorNamespace string `yaml:"vendor_namespace" toml:"vendor_namespace"`
	PackageName     string `yaml:"package_name" toml:"package_name"`
	PackageSlug     string `yaml:"package_slug" toml:"package_slug"`
	ClassName       string `yaml:"class_name" toml:"class_name"`
	VariableName    string `yaml:"variable_name" toml:"variable_name"`
	Description     string `yaml:"description" toml:"description"`
	PHPVersion      string `yaml:"php_version" toml:"php_version"`

	// Features lists the features to keep. Absent means keep all of them,
	// an empty list means decline all of them.
	Features *[]string `yaml:"features" toml:"features"`

	Finalize FinalizePresets `yaml:"finalize" toml:"finalize"`
}

// FinalizePresets answers the post-transform confirmations ahead of time.
// A nil field means "ask", or "no" when running unattended.
type FinalizePresets struct {
	PrepareHooks   *bool `yaml:"prepare_hooks" toml:"prepare_hooks"`
	InstallAndTest *bool `yaml:"install_and_test" toml:"install_and_test"`
	SelfDelete     *bool `yaml:"self_delete" toml:"self_delete"`
}

// LoadFile reads an answers file, picking the decoder from the extension.
// JSON is decoded by the YAML decoder since every JSON document is valid YAML.
func LoadFile(ctx context.Context, fs core.FileSystem, path string) (*File, error) {
	data, err := fs.ReadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read answers file %q: %w", path, err)
	}

	var f File
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml", ".json":
		decoder := yaml.NewDecoder(bytes.NewReader(data), yaml.Strict())
		if err := decoder.Decode(&f); err != nil {
			return nil, fmt.Errorf("failed to parse answers file %q: %w", path, err)
		}
	case ".toml":
		decoder := toml.NewDecoder(bytes.NewReader(data))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&f); err != nil {
			return nil, fmt.Errorf("failed to parse answers file %q: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported answers file format %q (use .yaml, .yml, .toml or .json)", ext)
	}

	return &f, nil
}

// AnswerSet converts the file into an AnswerSet. Derivation and defaults are
// left to the caller.
func (f *File) AnswerSet() (AnswerSet, error) {
	a := AnswerSet{
		AuthorName:        f.AuthorName,
		AuthorEmail:       f.AuthorEmail,
		AuthorUsername:    f.AuthorUsername,
		VendorName:        f.VendorName,
		VendorUsername:    f.VendorUsername,
		VendorSlug:        f.VendorSlug,
		VendorNamespace:   f.VendorNamespace,
		PackageName:       f.PackageName,
		PackageSlug:       f.PackageSlug,
		ClassName:         f.ClassName,
		VariableName:      f.VariableName,
		Description:       f.Description,
		MinimumPHPVersion: f.PHPVersion,
		Features:          AllFeatures(),
	}

	if f.Features != nil {
		features, err := ParseFeatures(*f.Features)
		if err != nil {
			return AnswerSet{}, err
		}
		a.Features = features
	}

	return a, nil
}
