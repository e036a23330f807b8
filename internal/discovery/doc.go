// Package discovery selects the files of a project that hold placeholder tokens.
//
// The walk runs in-process over a core.FileSystem. Version control metadata,
// dependency directories and configured excludes are skipped, binary files are
// ignored, and the remaining files are kept when their bytes contain at least
// one discovery token.
package discovery
