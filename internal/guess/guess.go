package guess

import (
	"context"
	"net/url"
	"regexp"
	"strings"

	"github.com/indaco/skelly/internal/core"
)

const noreplyDomain = "@users.noreply.github.com"

var (
	// Older gh prints "Logged in to github.com as NAME", newer "... account NAME".
	ghStatusPattern = regexp.MustCompile(`ogged in to github\.com (?:as|account) ([A-Za-z0-9_-]+)`)
	noreplyIDPrefix = regexp.MustCompile(`^\d+\+`)
)

// Guesser computes default answers.
type Guesser struct {
	runner core.CommandRunner
	github *GitHubClient
}

// New returns a Guesser running commands with runner and querying GitHub with client.
func New(runner core.CommandRunner, client *GitHubClient) *Guesser {
	return &Guesser{runner: runner, github: client}
}

// AuthorName returns git's user.name.
func (g *Guesser) AuthorName(ctx context.Context) string {
	return g.gitConfig(ctx, "user.name")
}

// AuthorEmail returns git's user.email.
func (g *Guesser) AuthorEmail(ctx context.Context) string {
	return g.gitConfig(ctx, "user.email")
}

// GitHubUsername tries, in order, the noreply address of the author's own
// commits, the account gh is logged into and the owner of the origin remote.
func (g *Guesser) GitHubUsername(ctx context.Context, authorName string) string {
	if name := g.usernameFromCommits(ctx, authorName); name != "" {
		return name
	}
	if name := g.usernameFromCLI(ctx); name != "" {
		return name
	}
	return g.RemoteOwner(ctx)
}

// VendorInfo returns the vendor name and username. When the origin remote
// belongs to a GitHub organization its display name and login are used;
// otherwise the author values are returned.
func (g *Guesser) VendorInfo(ctx context.Context, authorName, username string) (string, string) {
	owner := g.RemoteOwner(ctx)
	if owner == "" || g.github == nil {
		return authorName, username
	}

	org, ok := g.github.Organization(ctx, owner)
	if !ok {
		return authorName, username
	}

	name, login := authorName, username
	if org.Name != "" {
		name = org.Name
	}
	if org.Login != "" {
		login = org.Login
	}
	return name, login
}

// RemoteOwner returns the owner segment of the origin remote URL.
func (g *Guesser) RemoteOwner(ctx context.Context) string {
	return ParseRemoteOwner(g.gitConfig(ctx, "remote.origin.url"))
}

func (g *Guesser) usernameFromCommits(ctx context.Context, authorName string) string {
	want := strings.ToLower(strings.TrimSpace(authorName))
	if want == "" {
		return ""
	}

	out, err := g.runner.Run(ctx, "git", "log", "--author="+noreplyDomain, "--pretty=%an:%ae", "--reverse")
	if err != nil {
		return ""
	}

	for _, line := range strings.Split(out, "\n") {
		name, email, ok := strings.Cut(strings.TrimSpace(line), ":")
		if !ok || strings.ToLower(name) != want || strings.Contains(name, "[bot]") {
			continue
		}
		local, _, _ := strings.Cut(email, "@")
		return noreplyIDPrefix.ReplaceAllString(local, "")
	}
	return ""
}

func (g *Guesser) usernameFromCLI(ctx context.Context) string {
	// gh reports status on stderr and exits non-zero when logged out, so the
	// error text is searched as well.
	out, err := g.runner.Run(ctx, "gh", "auth", "status", "-h", "github.com")
	text := out
	if err != nil {
		text += "\n" + err.Error()
	}
	if m := ghStatusPattern.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

func (g *Guesser) gitConfig(ctx context.Context, key string) string {
	out, err := g.runner.Run(ctx, "git", "config", key)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// ParseRemoteOwner extracts the owner from an SSH, scp-like or HTTPS remote URL.
func ParseRemoteOwner(remote string) string {
	remote = strings.TrimSpace(remote)
	if remote == "" {
		return ""
	}

	var path string
	if u, err := url.Parse(remote); err == nil && u.Scheme != "" && u.Host != "" {
		path = u.Path
	} else if _, after, ok := strings.Cut(remote, ":"); ok {
		path = after
	} else {
		return ""
	}

	segments := strings.Split(strings.Trim(path, "/"), "/")
	if len(segments) < 2 {
		return ""
	}
	return segments[0]
}
