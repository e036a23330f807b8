package guess

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tidwall/gjson"
)

const (
	githubAPIBase = "https://api.github.com"
	userAgent     = "skelly-configure/1.0"
)

// Organization is the subset of the GitHub organization payload used for vendor defaults.
type Organization struct {
	Name  string
	Login string
}

// GitHubClient queries the GitHub REST API.
type GitHubClient struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// NewGitHubClient returns a client for the public API. The token is optional.
func NewGitHubClient(token string) *GitHubClient {
	return &GitHubClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    githubAPIBase,
		token:      token,
	}
}

// WithBaseURL points the client at another API root.
func (c *GitHubClient) WithBaseURL(base string) *GitHubClient {
	c.baseURL = base
	return c
}

// Organization looks up an organization by login. Any failure is logged as a
// warning and reported as not found.
func (c *GitHubClient) Organization(ctx context.Context, login string) (Organization, bool) {
	body, err := c.get(ctx, "orgs/"+url.PathEscape(login))
	if err != nil {
		log.Warn("could not look up GitHub organization", "org", login, "err", err)
		return Organization{}, false
	}
	if body == nil {
		return Organization{}, false
	}

	return Organization{
		Name:  gjson.GetBytes(body, "name").String(),
		Login: gjson.GetBytes(body, "login").String(),
	}, true
}

// get returns the body of a 200 response and nil for a 404.
func (c *GitHubClient) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		log.Debug("GitHub API resource not found", "endpoint", endpoint)
		return nil, nil
	case http.StatusForbidden, http.StatusTooManyRequests:
		return nil, fmt.Errorf("GitHub API rate limit exceeded, set GITHUB_TOKEN for higher limits")
	default:
		return nil, fmt.Errorf("GitHub API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("invalid JSON from %s", endpoint)
	}
	return body, nil
}
