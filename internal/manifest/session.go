package manifest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/indaco/skelly/internal/core"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// Sections that hold package links.
const (
	SectionRequire    = "require"
	SectionRequireDev = "require-dev"
	SectionScripts    = "scripts"
)

var formatOptions = &pretty.Options{Indent: "    ", Width: 0}

// Substituter rewrites placeholder tokens in raw manifest bytes.
type Substituter interface {
	ReplaceBytes(data []byte) []byte
}

// Session is an in-memory edit session over one manifest file.
type Session struct {
	fs    core.FileSystem
	path  string
	perm  fs.FileMode
	data  []byte
	dirty bool
	edits []string
}

// Open reads and validates the manifest at path. A malformed manifest is
// reported before any edit can happen.
func Open(ctx context.Context, fsys core.FileSystem, path string) (*Session, error) {
	perm := core.PermFile
	if info, err := fsys.Stat(ctx, path); err == nil {
		perm = info.Mode().Perm()
	}

	data, err := fsys.ReadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %q: %w", path, err)
	}
	if err := Validate(data); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &Session{fs: fsys, path: path, perm: perm, data: data}, nil
}

// Path returns the manifest file path.
func (s *Session) Path() string { return s.path }

// Dirty reports whether the session holds unsaved edits.
func (s *Session) Dirty() bool { return s.dirty }

// Edits returns a description of every edit applied so far.
func (s *Session) Edits() []string {
	return append([]string(nil), s.edits...)
}

// Get returns the value at a gjson path. Path components containing special
// characters must be escaped with EscapeKey.
func (s *Session) Get(path string) gjson.Result {
	return gjson.GetBytes(s.data, path)
}

// SetKey updates an existing top-level key. A missing key is left absent.
func (s *Session) SetKey(key string, value any) error {
	path := EscapeKey(key)
	if !s.Get(path).Exists() {
		log.Debug("manifest key not present, skipping", "key", key)
		return nil
	}
	return s.set(path, value)
}

// SetRequire updates the constraint of an existing require entry.
// A dependency that is not required is left alone.
func (s *Session) SetRequire(name, constraint string) error {
	path := linkPath(SectionRequire, name)
	if !s.Get(path).Exists() {
		log.Debug("require entry not present, skipping", "package", name)
		return nil
	}
	return s.set(path, constraint)
}

// RemoveDependencies deletes each name from require and require-dev.
func (s *Session) RemoveDependencies(names ...string) error {
	for _, name := range names {
		for _, section := range []string{SectionRequire, SectionRequireDev} {
			if err := s.delete(linkPath(section, name)); err != nil {
				return err
			}
		}
	}
	return nil
}

// RemoveScript deletes a script entry.
func (s *Session) RemoveScript(name string) error {
	return s.delete(linkPath(SectionScripts, name))
}

// RemoveScriptCommand deletes command from a script's command list, every
// occurrence included, so a repeated call never changes the document.
// Scripts defined as a single string are left untouched.
func (s *Session) RemoveScriptCommand(script, command string) error {
	path := linkPath(SectionScripts, script)
	list := s.Get(path)
	if !list.IsArray() {
		return nil
	}

	items := list.Array()
	for i := len(items) - 1; i >= 0; i-- {
		if items[i].Type != gjson.String || items[i].Str != command {
			continue
		}
		if err := s.delete(path + "." + strconv.Itoa(i)); err != nil {
			return err
		}
	}
	return nil
}

// HasDependency reports whether name appears in require or require-dev.
func (s *Session) HasDependency(name string) bool {
	return s.Get(linkPath(SectionRequire, name)).Exists() ||
		s.Get(linkPath(SectionRequireDev, name)).Exists()
}

// HasScript reports whether a script entry exists.
func (s *Session) HasScript(name string) bool {
	return s.Get(linkPath(SectionScripts, name)).Exists()
}

// ScriptCommands returns the commands of a script, whether it is a list or a string.
func (s *Session) ScriptCommands(name string) []string {
	r := s.Get(linkPath(SectionScripts, name))
	if !r.Exists() {
		return nil
	}
	if !r.IsArray() {
		return []string{r.String()}
	}
	var out []string
	for _, item := range r.Array() {
		out = append(out, item.String())
	}
	return out
}

// Substitute replaces placeholder tokens in the raw document. The table must
// produce JSON-safe values; the result is validated before it is kept.
func (s *Session) Substitute(table Substituter) error {
	next := table.ReplaceBytes(s.data)
	if bytes.Equal(next, s.data) {
		return nil
	}
	if err := Validate(next); err != nil {
		return fmt.Errorf("substitution produced an invalid manifest: %w", err)
	}
	s.data = next
	s.record("substitute placeholders")
	return nil
}

// Bytes returns the formatted document.
func (s *Session) Bytes() []byte {
	out := pretty.PrettyOptions(s.data, formatOptions)
	return append(bytes.TrimRight(out, "\n"), '\n')
}

// Save writes the document when it holds unsaved edits.
func (s *Session) Save(ctx context.Context) error {
	if !s.dirty {
		return nil
	}
	if err := s.fs.WriteFile(ctx, s.path, s.Bytes(), s.perm); err != nil {
		return fmt.Errorf("failed to write manifest %q: %w", s.path, err)
	}
	s.dirty = false
	return nil
}

func (s *Session) set(path string, value any) error {
	raw, err := encodeValue(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if current := s.Get(path); current.Exists() && current.Raw == string(raw) {
		return nil
	}

	next, err := sjson.SetRawBytes(s.data, path, raw)
	if err != nil {
		return fmt.Errorf("failed to set %s: %w", path, err)
	}
	s.data = next
	s.record("set " + path)
	return nil
}

func (s *Session) delete(path string) error {
	if !s.Get(path).Exists() {
		return nil
	}
	next, err := sjson.DeleteBytes(s.data, path)
	if err != nil {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}
	s.data = next
	s.record("remove " + path)
	return nil
}

func (s *Session) record(edit string) {
	s.dirty = true
	s.edits = append(s.edits, unescapePath(edit))
	log.Debug("manifest edit", "edit", edit)
}

// encodeValue marshals v without escaping HTML characters.
func encodeValue(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

const pathSpecials = `\.*?|#@!=<>%:`

// EscapeKey escapes the gjson/sjson path syntax in a single object key.
func EscapeKey(key string) string {
	var b strings.Builder
	for _, r := range key {
		if strings.ContainsRune(pathSpecials, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func unescapePath(path string) string {
	var b strings.Builder
	escaped := false
	for _, r := range path {
		if r == '\\' && !escaped {
			escaped = true
			continue
		}
		escaped = false
		b.WriteRune(r)
	}
	return b.String()
}

func linkPath(section, name string) string {
	return section + "." + EscapeKey(name)
}
