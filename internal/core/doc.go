// Package core holds the low-level abstractions shared by every skelly
// component: the FileSystem used for reading and rewriting the project tree,
// atomic file replacement, and the CommandRunner used to invoke git, gh and
// composer.
package core
