package rewrite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/indaco/skelly/internal/core"
)

type replacer struct{ r *strings.Replacer }

func (s replacer) ReplaceBytes(data []byte) []byte {
	return []byte(s.r.Replace(string(data)))
}

var table = replacer{strings.NewReplacer("Skeleton", "MyLib", ":package_slug", "my-lib")}

func newRewriter(fs core.FileSystem) *Rewriter {
	return NewRewriter(fs, "/p", table, DefaultRules("src/Skeleton.php", "MyLib", "README.md")...)
}

/* ------------------------------------------------------------------------- */
/* REWRITE                                                                   */
/* ------------------------------------------------------------------------- */

func TestRewrite_SubstitutesAndRenamesClassFile(t *testing.T) {
	fs := core.NewMockFileSystem()
	fs.SetFile("/p/src/Skeleton.php", []byte("class Skeleton {}"))

	out, err := newRewriter(fs).Rewrite(context.Background(), "src/Skeleton.php")
	if err != nil {
		t.Fatalf("Rewrite() error = %v", err)
	}

	if !out.Changed || !out.Renamed() || out.NewPath != "src/MyLib.php" {
		t.Errorf("unexpected outcome: %+v", out)
	}
	if !slices.Equal(out.Applied, []string{"rename-class-file"}) {
		t.Errorf("Applied = %v", out.Applied)
	}
	if _, ok := fs.GetFile("/p/src/Skeleton.php"); ok {
		t.Error("old class file still exists")
	}
	data, ok := fs.GetFile("/p/src/MyLib.php")
	if !ok || string(data) != "class MyLib {}" {
		t.Errorf("renamed file = %q, %v", data, ok)
	}
}

func TestRewrite_StripsReadmeMarkers(t *testing.T) {
	fs := core.NewMockFileSystem()
	fs.SetFile("/p/README.md", []byte("# :package_slug\n<!--delete-->\nSetup notes\n<!--/delete-->\nUsage\n<!--delete-->x<!--/delete-->end\n"))

	out, err := newRewriter(fs).Rewrite(context.Background(), "README.md")
	if err != nil {
		t.Fatalf("Rewrite() error = %v", err)
	}

	data, _ := fs.GetFile("/p/README.md")
	if string(data) != "# my-lib\n\nUsage\nend\n" {
		t.Errorf("README = %q", data)
	}
	if out.Renamed() || !slices.Equal(out.Applied, []string{"strip-delete-markers"}) {
		t.Errorf("unexpected outcome: %+v", out)
	}
}

func TestRewrite_StripsNestedReadmeMarkers(t *testing.T) {
	fs := core.NewMockFileSystem()
	fs.SetFile("/p/docs/README.md", []byte("# :package_slug\n<!--delete-->notes<!--/delete-->\n"))
	fs.SetFile("/p/docs/GUIDE.md", []byte("# :package_slug\n<!--delete-->notes<!--/delete-->\n"))

	rw := newRewriter(fs)
	if _, err := rw.Rewrite(context.Background(), "docs/README.md"); err != nil {
		t.Fatalf("Rewrite() error = %v", err)
	}
	if _, err := rw.Rewrite(context.Background(), "docs/GUIDE.md"); err != nil {
		t.Fatalf("Rewrite() error = %v", err)
	}

	if data, _ := fs.GetFile("/p/docs/README.md"); string(data) != "# my-lib\n\n" {
		t.Errorf("docs/README.md = %q", data)
	}
	if data, _ := fs.GetFile("/p/docs/GUIDE.md"); !strings.Contains(string(data), "<!--delete-->") {
		t.Errorf("docs/GUIDE.md lost its markers: %q", data)
	}
}

func TestRewrite_UnchangedFileIsNotWritten(t *testing.T) {
	fs := core.NewMockFileSystem()
	fs.SetFile("/p/notes.txt", []byte("nothing to see"))
	fs.WriteErrors["/p/notes.txt"] = errors.New("should not be written")

	out, err := newRewriter(fs).Rewrite(context.Background(), "notes.txt")
	if err != nil {
		t.Fatalf("Rewrite() error = %v", err)
	}
	if out.Changed {
		t.Error("expected no change")
	}
}

func TestRewrite_Errors(t *testing.T) {
	tests := []struct {
		name   string
		rel    string
		inject func(fs *core.MockFileSystem)
		op     string
	}{
		{"missing", "missing.txt", func(*core.MockFileSystem) {}, "stat"},
		{"read", "a.txt", func(fs *core.MockFileSystem) { fs.ReadErrors["/p/a.txt"] = errors.New("denied") }, "read"},
		{"write", "a.txt", func(fs *core.MockFileSystem) { fs.WriteErrors["/p/a.txt"] = errors.New("read-only") }, "write"},
		{"rename", "src/Skeleton.php", func(fs *core.MockFileSystem) {
			fs.RenameErrors["/p/src/Skeleton.php"] = errors.New("busy")
		}, "rename"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := core.NewMockFileSystem()
			fs.SetFile("/p/a.txt", []byte("Skeleton"))
			fs.SetFile("/p/src/Skeleton.php", []byte("Skeleton"))
			tt.inject(fs)

			_, err := newRewriter(fs).Rewrite(context.Background(), tt.rel)

			var rwErr *Error
			if !errors.As(err, &rwErr) {
				t.Fatalf("expected *Error, got %v", err)
			}
			if rwErr.Op != tt.op {
				t.Errorf("Op = %q, want %q", rwErr.Op, tt.op)
			}
			if !strings.Contains(rwErr.Error(), filepath.Join("/p", filepath.FromSlash(tt.rel))) {
				t.Errorf("error %q does not name the path", rwErr)
			}
		})
	}
}

func TestRewrite_PreservesMode(t *testing.T) {
	root := t.TempDir()
	script := filepath.Join(root, "run.sh")
	if err := os.WriteFile(script, []byte("echo :package_slug"), 0o755); err != nil {
		t.Fatal(err)
	}

	rw := NewRewriter(core.NewOSFileSystem(), root, table)
	if _, err := rw.Rewrite(context.Background(), "run.sh"); err != nil {
		t.Fatalf("Rewrite() error = %v", err)
	}

	info, err := os.Stat(script)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o755 {
		t.Errorf("mode = %v, want 0755", info.Mode().Perm())
	}
	data, _ := os.ReadFile(script)
	if string(data) != "echo my-lib" {
		t.Errorf("contents = %q", data)
	}
}

/* ------------------------------------------------------------------------- */
/* RULES                                                                     */
/* ------------------------------------------------------------------------- */

func TestStripDeleteSpans(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no markers", "plain readme\n", "plain readme\n"},
		{"single span", "a<!--delete-->b<!--/delete-->c", "ac"},
		{"multiline non-greedy", "1<!--delete-->\nx\n<!--/delete-->2<!--delete-->y<!--/delete-->3", "123"},
		{"unpaired opener kept", "a<!--delete-->b", "a<!--delete-->b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(StripDeleteSpans([]byte(tt.in))); got != tt.want {
				t.Errorf("StripDeleteSpans() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenameClassFile(t *testing.T) {
	rule := RenameClassFile("src/Skeleton.php", "MyLib")

	if !rule.Match("src/Skeleton.php") || !rule.Match("./src/Skeleton.php") {
		t.Error("expected class file to match")
	}
	if rule.Match("src/SkeletonTest.php") || rule.Match("tests/Skeleton.php") {
		t.Error("unexpected match")
	}
	if got := rule.Rename("src/Skeleton.php"); got != "src/MyLib.php" {
		t.Errorf("Rename() = %q", got)
	}
}
