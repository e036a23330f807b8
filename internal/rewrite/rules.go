package rewrite

import (
	"bytes"
	"path"
	"regexp"
)

// Rule is a structural fix-up applied to a file after substitution.
// Match selects files by slash-separated path relative to the project root.
// Content, when set, transforms the substituted contents. Rename, when set,
// returns the new relative path.
type Rule struct {
	Name    string
	Match   func(rel string) bool
	Content func(data []byte) []byte
	Rename  func(rel string) string
}

// Names of the built-in rules, as reported in Outcome.Applied.
const (
	RuleRenameClassFile    = "rename-class-file"
	RuleStripDeleteMarkers = "strip-delete-markers"
)

// PathIs matches exactly one relative path.
func PathIs(rel string) func(string) bool {
	want := path.Clean(rel)
	return func(got string) bool {
		return path.Clean(got) == want
	}
}

// NameIs matches every path whose last element is name.
func NameIs(name string) func(string) bool {
	return func(got string) bool {
		return path.Base(got) == name
	}
}

// RenameClassFile renames the placeholder class file to <className><ext>,
// keeping its directory.
func RenameClassFile(classFile, className string) Rule {
	return Rule{
		Name:  RuleRenameClassFile,
		Match: PathIs(classFile),
		Rename: func(rel string) string {
			dir, base := path.Split(rel)
			return dir + className + path.Ext(base)
		},
	}
}

var deleteSpan = regexp.MustCompile(`(?s)<!--delete-->.*?<!--/delete-->`)

// StripDeleteMarkers removes every <!--delete-->...<!--/delete--> span from
// each file named like readme, at any depth.
func StripDeleteMarkers(readme string) Rule {
	return Rule{
		Name:    RuleStripDeleteMarkers,
		Match:   NameIs(path.Base(readme)),
		Content: StripDeleteSpans,
	}
}

// StripDeleteSpans removes every delete-marker span from data, markers included.
// Data without markers is returned unchanged.
func StripDeleteSpans(data []byte) []byte {
	if !bytes.Contains(data, []byte("<!--delete-->")) {
		return data
	}
	return deleteSpan.ReplaceAll(data, nil)
}

// DefaultRules returns the built-in fix-ups in evaluation order.
func DefaultRules(classFile, className, readme string) []Rule {
	return []Rule{
		RenameClassFile(classFile, className),
		StripDeleteMarkers(readme),
	}
}
