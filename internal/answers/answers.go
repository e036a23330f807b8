package answers

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// AnswerSet is the resolved set of user answers that drives every substitution
// and feature toggle. It is built once by the collector and only read afterwards.
type AnswerSet struct {
	AuthorName     string
	AuthorEmail    string
	AuthorUsername string

	VendorName      string
	VendorUsername  string
	VendorSlug      string
	VendorNamespace string

	PackageName  string
	PackageSlug  string
	ClassName    string
	VariableName string
	Description  string

	MinimumPHPVersion string

	Features []Feature
}

// Complete fills every derivable field that is still empty and returns the result.
func Complete(a AnswerSet) AnswerSet {
	if a.VendorUsername == "" && a.VendorName != "" {
		a.VendorUsername = Slugify(a.VendorName)
	}
	if a.VendorSlug == "" {
		a.VendorSlug = Slugify(a.VendorUsername)
	}
	if a.VendorNamespace == "" {
		a.VendorNamespace = Namespace(a.VendorName)
	}
	if a.PackageSlug == "" {
		a.PackageSlug = Slugify(a.PackageName)
	}
	if a.ClassName == "" {
		a.ClassName = TitleCase(a.PackageName)
	}
	if a.VariableName == "" {
		a.VariableName = LowerFirst(a.ClassName)
	}
	return a
}

// Validate reports every required field that is empty or malformed.
func (a AnswerSet) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"author name", a.AuthorName},
		{"author email", a.AuthorEmail},
		{"author username", a.AuthorUsername},
		{"vendor name", a.VendorName},
		{"vendor username", a.VendorUsername},
		{"vendor slug", a.VendorSlug},
		{"vendor namespace", a.VendorNamespace},
		{"package name", a.PackageName},
		{"package slug", a.PackageSlug},
		{"class name", a.ClassName},
		{"variable name", a.VariableName},
		{"package description", a.Description},
		{"minimum PHP version", a.MinimumPHPVersion},
	}

	var errs []error
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			errs = append(errs, fmt.Errorf("%s is required", field.name))
		}
	}

	if a.AuthorEmail != "" && !strings.Contains(a.AuthorEmail, "@") {
		errs = append(errs, fmt.Errorf("author email %q is not an email address", a.AuthorEmail))
	}

	for _, f := range a.Features {
		if !f.IsValid() {
			errs = append(errs, fmt.Errorf("unknown feature %q", f))
		}
	}

	return errors.Join(errs...)
}

// Enabled reports whether the user kept feature f.
func (a AnswerSet) Enabled(f Feature) bool {
	return slices.Contains(a.Features, f)
}

// Declined returns the features the user did not keep, in catalog order.
func (a AnswerSet) Declined() []Feature {
	var declined []Feature
	for _, f := range AllFeatures() {
		if !a.Enabled(f) {
			declined = append(declined, f)
		}
	}
	return declined
}

// ManifestName returns the composer package name, "<vendor-slug>/<package-slug>".
func (a AnswerSet) ManifestName() string {
	return a.VendorSlug + "/" + a.PackageSlug
}

// Namespace returns the fully qualified root namespace of the package.
func (a AnswerSet) Namespace() string {
	return a.VendorNamespace + `\` + a.ClassName
}
