// Package guess derives default answers from the environment: git
// configuration and history, the GitHub CLI, the origin remote and the
// GitHub organizations API. Every guess degrades to an empty string.
package guess
