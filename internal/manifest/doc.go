// Package manifest edits a composer.json document in memory.
//
// A Session holds the raw manifest bytes for the lifetime of one
// configuration run. Every primitive is idempotent and treats an absent
// target as already satisfied. Key order is preserved; the document is
// pretty-printed with four-space indentation when saved, and slashes and
// non-ASCII text are never escaped.
package manifest
