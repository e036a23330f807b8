package printer

import (
	"bytes"
	"strings"
	"testing"
)

func captureOutput(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	prevOut, prevErr := stdout, stderr
	SetOutput(&out, &errOut)
	SetNoColor(true)
	t.Cleanup(func() {
		SetOutput(prevOut, prevErr)
		SetNoColor(false)
	})
	return &out, &errOut
}

func TestRenderFunctions(t *testing.T) {
	tests := []struct {
		name     string
		function func(string) string
	}{
		{"Faint", Faint},
		{"Bold", Bold},
		{"Success", Success},
		{"Error", Error},
		{"Warning", Warning},
		{"Info", Info},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := tt.function("test text"); !strings.Contains(result, "test text") {
				t.Errorf("%s() = %q, want to contain the input", tt.name, result)
			}
		})
	}
}

func TestPrintFunctions_Streams(t *testing.T) {
	out, errOut := captureOutput(t)

	PrintSuccess("done")
	PrintInfo("info")
	PrintWarning("careful")
	PrintError("failed")

	if got := out.String(); got != "✓ done\ninfo\n" {
		t.Errorf("stdout = %q", got)
	}
	if got := errOut.String(); got != "! careful\n✗ failed\n" {
		t.Errorf("stderr = %q", got)
	}
}

func TestNoColorStripsANSI(t *testing.T) {
	captureOutput(t)

	if got := Bold("plain"); got != "plain" {
		t.Errorf("Bold() with colors disabled = %q", got)
	}
}

func TestRenderSummary(t *testing.T) {
	captureOutput(t)

	got := RenderSummary([]Row{
		{Label: "Author", Value: "Jane Doe"},
		{Label: "Namespace", Value: `Acme\MyLib`},
	})

	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", got)
	}
	if strings.Index(lines[0], "Jane Doe") != strings.Index(lines[1], `Acme\MyLib`) {
		t.Errorf("values are not aligned:\n%s", got)
	}
	if !strings.HasPrefix(lines[1], "Namespace  ") {
		t.Errorf("unexpected label column: %q", lines[1])
	}
}

func TestPrintList(t *testing.T) {
	out, _ := captureOutput(t)

	PrintList([]string{"a", "b"})
	if got := out.String(); got != "  • a\n  • b\n" {
		t.Errorf("PrintList() = %q", got)
	}
}
