// Package answers defines the AnswerSet that drives a project transformation,
// the optional feature enum, the naming helpers used to derive slugs and PHP
// identifiers, and the answers-file format used for unattended runs.
package answers
