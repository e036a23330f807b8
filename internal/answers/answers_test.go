package answers

import (
	"slices"
	"strings"
	"testing"
)

/* ------------------------------------------------------------------------- */
/* NAMING HELPERS                                                            */
/* ------------------------------------------------------------------------- */

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"My Lib", "my-lib"},
		{"  Acme, Inc.  ", "acme-inc"},
		{"already-a-slug", "already-a-slug"},
		{"Under_Score", "under-score"},
		{"v2 Tools!", "v2-tools"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Slugify(tt.in); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTitleCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"My Lib", "MyLib"},
		{"my-lib", "MyLib"},
		{"laravel_package-skeleton", "LaravelPackageSkeleton"},
		{"keepsCamel", "KeepsCamel"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := TitleCase(tt.in); got != tt.want {
				t.Errorf("TitleCase(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNamespace(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Spatie", "Spatie"},
		{"acme corp", "AcmeCorp"},
		{"Acme  Corp", "AcmeCorp"},
		{"my-vendor co", "MyVendorCo"},
	}

	for _, tt := range tests {
		if got := Namespace(tt.in); got != tt.want {
			t.Errorf("Namespace(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLowerFirst(t *testing.T) {
	tests := map[string]string{
		"MyLib": "myLib",
		"myLib": "myLib",
		"X":     "x",
		"":      "",
	}

	for in, want := range tests {
		if got := LowerFirst(in); got != want {
			t.Errorf("LowerFirst(%q) = %q, want %q", in, got, want)
		}
	}
}

/* ------------------------------------------------------------------------- */
/* ANSWER SET                                                                */
/* ------------------------------------------------------------------------- */

func validAnswerSet() AnswerSet {
	return Complete(AnswerSet{
		AuthorName:        "Jane Doe",
		AuthorEmail:       "jane@example.com",
		AuthorUsername:    "janedoe",
		VendorName:        "Acme Corp",
		VendorUsername:    "acme-corp",
		PackageName:       "My Lib",
		Description:       "A library",
		MinimumPHPVersion: "8.3",
		Features:          AllFeatures(),
	})
}

func TestComplete_DerivesMissingFields(t *testing.T) {
	a := validAnswerSet()

	checks := map[string][2]string{
		"vendor slug":      {a.VendorSlug, "acme-corp"},
		"vendor namespace": {a.VendorNamespace, "AcmeCorp"},
		"package slug":     {a.PackageSlug, "my-lib"},
		"class name":       {a.ClassName, "MyLib"},
		"variable name":    {a.VariableName, "myLib"},
	}
	for name, c := range checks {
		if c[0] != c[1] {
			t.Errorf("%s = %q, want %q", name, c[0], c[1])
		}
	}

	if a.ManifestName() != "acme-corp/my-lib" {
		t.Errorf("ManifestName() = %q", a.ManifestName())
	}
	if a.Namespace() != `AcmeCorp\MyLib` {
		t.Errorf("Namespace() = %q", a.Namespace())
	}
}

func TestComplete_KeepsExplicitValues(t *testing.T) {
	a := Complete(AnswerSet{
		VendorName:   "Acme",
		PackageName:  "My Lib",
		ClassName:    "Library",
		PackageSlug:  "lib",
		VariableName: "lib",
	})

	if a.ClassName != "Library" || a.PackageSlug != "lib" || a.VariableName != "lib" {
		t.Errorf("explicit values were overwritten: %+v", a)
	}
	if a.VendorUsername != "acme" {
		t.Errorf("VendorUsername = %q, want %q", a.VendorUsername, "acme")
	}
}

func TestValidate(t *testing.T) {
	if err := validAnswerSet().Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a := validAnswerSet()
	a.AuthorName = ""
	a.AuthorEmail = "not-an-email"
	a.Features = append(a.Features, Feature("bogus"))

	err := a.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"author name is required", "not an email address", `unknown feature "bogus"`} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
}

func TestEnabledAndDeclined(t *testing.T) {
	a := validAnswerSet()
	a.Features = []Feature{FeatureStyleLinter, FeatureCommitHooks}

	if !a.Enabled(FeatureStyleLinter) || a.Enabled(FeatureStaticAnalyzer) {
		t.Error("Enabled() reported the wrong features")
	}

	want := []Feature{FeatureStaticAnalyzer, FeatureDependencyBot, FeatureChangelogAutomation, FeatureRefactoringTool}
	if got := a.Declined(); !slices.Equal(got, want) {
		t.Errorf("Declined() = %v, want %v", got, want)
	}
}

/* ------------------------------------------------------------------------- */
/* FEATURES                                                                  */
/* ------------------------------------------------------------------------- */

func TestParseFeature(t *testing.T) {
	tests := []struct {
		in      string
		want    Feature
		wantErr bool
	}{
		{"style-linter", FeatureStyleLinter, false},
		{"PHPStan", FeatureStaticAnalyzer, false},
		{"rector", FeatureRefactoringTool, false},
		{" Dependabot ", FeatureDependencyBot, false},
		{"unknown", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFeature(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFeature(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFeature(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseFeatures_Dedup(t *testing.T) {
	got, err := ParseFeatures([]string{"pint", "style-linter", "commit-hooks"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Feature{FeatureStyleLinter, FeatureCommitHooks}
	if !slices.Equal(got, want) {
		t.Errorf("ParseFeatures() = %v, want %v", got, want)
	}
}

func TestAllFeatures_AreValidAndLabelled(t *testing.T) {
	for _, f := range AllFeatures() {
		if !f.IsValid() {
			t.Errorf("%q is not valid", f)
		}
		if f.Label() == "" || f.Description() == "" {
			t.Errorf("%q is missing a label or description", f)
		}
	}
	if Feature("nope").IsValid() {
		t.Error("unexpected valid feature")
	}
}
