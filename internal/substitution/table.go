// Package substitution builds the placeholder table derived from an AnswerSet
// and applies it to file contents in a single pass.
package substitution

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/indaco/skelly/internal/answers"
)

// Placeholder tokens found in the unmodified skeleton.
const (
	TokenAuthorName         = ":author_name"
	TokenAuthorUsername     = ":author_username"
	TokenAuthorEmail        = "author@domain.com"
	TokenVendorName         = ":vendor_name"
	TokenVendorSlug         = ":vendor_slug"
	TokenVendorNamespace    = "VendorName"
	TokenPackageName        = ":package_name"
	TokenPackageSlug        = ":package_slug"
	TokenClassName          = "Skeleton"
	TokenClassSlug          = "skeleton"
	TokenVariable           = "variable"
	TokenPackageDescription = ":package_description"
)

// Entry maps one placeholder token to its replacement.
// Discover marks tokens used to select files for rewriting.
type Entry struct {
	Token    string
	Value    string
	Discover bool
}

// Table is an ordered list of substitutions.
type Table struct {
	entries  []Entry
	replacer *strings.Replacer
}

// Build derives the substitution table from a. It is deterministic.
func Build(a answers.AnswerSet) *Table {
	return newTable([]Entry{
		{TokenAuthorName, a.AuthorName, true},
		{TokenAuthorUsername, a.AuthorUsername, true},
		{TokenAuthorEmail, a.AuthorEmail, true},
		{TokenVendorName, a.VendorName, true},
		{TokenVendorSlug, a.VendorSlug, true},
		{TokenVendorNamespace, a.VendorNamespace, true},
		{TokenPackageName, a.PackageName, true},
		{TokenPackageSlug, a.PackageSlug, true},
		{TokenClassName, a.ClassName, true},
		{TokenClassSlug, a.PackageSlug, true},
		// "variable" is too common a word to select files by.
		{TokenVariable, a.VariableName, false},
		{TokenPackageDescription, a.Description, true},
	})
}

func newTable(entries []Entry) *Table {
	oldnew := make([]string, 0, len(entries)*2)
	for _, e := range entries {
		oldnew = append(oldnew, e.Token, e.Value)
	}
	return &Table{entries: entries, replacer: strings.NewReplacer(oldnew...)}
}

// Entries returns a copy of the table entries in order.
func (t *Table) Entries() []Entry {
	return append([]Entry(nil), t.entries...)
}

// Replace applies every entry to s in one pass, so a replacement value is
// never itself rewritten by a later entry.
func (t *Table) Replace(s string) string {
	return t.replacer.Replace(s)
}

// ReplaceBytes is Replace for byte slices.
func (t *Table) ReplaceBytes(b []byte) []byte {
	return []byte(t.replacer.Replace(string(b)))
}

// Tokens returns every token in table order.
func (t *Table) Tokens() []string {
	tokens := make([]string, len(t.entries))
	for i, e := range t.entries {
		tokens[i] = e.Token
	}
	return tokens
}

// DiscoveryTokens returns the tokens used to select files.
func (t *Table) DiscoveryTokens() []string {
	var tokens []string
	for _, e := range t.entries {
		if e.Discover {
			tokens = append(tokens, e.Token)
		}
	}
	return tokens
}

// Contains reports whether b holds any discovery token.
func (t *Table) Contains(b []byte) bool {
	for _, e := range t.entries {
		if e.Discover && bytes.Contains(b, []byte(e.Token)) {
			return true
		}
	}
	return false
}

// JSONSafe returns a copy of the table whose values are escaped for use
// inside JSON string literals. Slashes and non-ASCII text stay unescaped.
func (t *Table) JSONSafe() *Table {
	entries := make([]Entry, len(t.entries))
	for i, e := range t.entries {
		e.Value = escapeJSONString(e.Value)
		entries[i] = e
	}
	return newTable(entries)
}

func escapeJSONString(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return s
	}
	out := strings.TrimSuffix(buf.String(), "\n")
	return out[1 : len(out)-1]
}
