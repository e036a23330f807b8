package discovery

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/indaco/skelly/internal/core"
)

// binarySniffLen is how many leading bytes are checked for a NUL byte.
const binarySniffLen = 8 << 10

// DefaultSkipDirs are never descended into.
var DefaultSkipDirs = []string{".git", "vendor", "node_modules"}

// Matcher reports whether file contents should be rewritten.
type Matcher interface {
	Contains(data []byte) bool
}

// ReadError reports a file or directory that could not be read during the walk.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// Service walks a project tree and selects files holding placeholder tokens.
type Service struct {
	fs       core.FileSystem
	matcher  Matcher
	excludes []string
}

// NewService returns a Service. Excludes are filepath.Match patterns tested
// against both the entry name and its slash-separated path relative to root.
func NewService(fs core.FileSystem, matcher Matcher, excludes []string) *Service {
	return &Service{
		fs:       fs,
		matcher:  matcher,
		excludes: excludes,
	}
}

// Discover returns the sorted, slash-separated paths relative to root of every
// text file whose contents match.
func (s *Service) Discover(ctx context.Context, root string) ([]string, error) {
	var files []string

	err := s.walkDirectory(ctx, root, root, func(path, rel string) error {
		data, err := s.fs.ReadFile(ctx, path)
		if err != nil {
			return &ReadError{Path: path, Err: err}
		}
		if isBinary(data) {
			log.Debug("skipping binary file", "path", rel)
			return nil
		}
		if s.matcher.Contains(data) {
			files = append(files, rel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// walkDirectory calls fn for every regular file below dir.
func (s *Service) walkDirectory(ctx context.Context, root, dir string, fn func(path, rel string) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entries, err := s.fs.ReadDir(ctx, dir)
	if err != nil {
		return &ReadError{Path: dir, Err: err}
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		name := entry.Name()
		path := filepath.Join(dir, name)
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if s.shouldExclude(name, rel, entry.IsDir()) {
			log.Debug("excluded", "path", rel)
			continue
		}

		switch {
		case entry.IsDir():
			if err := s.walkDirectory(ctx, root, path, fn); err != nil {
				return err
			}
		case entry.Type()&fs.ModeSymlink != 0:
			continue
		case entry.Type().IsRegular():
			if err := fn(path, rel); err != nil {
				return err
			}
		}
	}

	return nil
}

// shouldExclude checks if an entry should be left out of the walk.
func (s *Service) shouldExclude(name, rel string, isDir bool) bool {
	if isDir && slices.Contains(DefaultSkipDirs, name) {
		return true
	}

	for _, pattern := range s.excludes {
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
		if matched, _ := filepath.Match(pattern, rel); matched {
			return true
		}
	}

	return false
}

func isBinary(data []byte) bool {
	if len(data) > binarySniffLen {
		data = data[:binarySniffLen]
	}
	return bytes.IndexByte(data, 0) >= 0
}
