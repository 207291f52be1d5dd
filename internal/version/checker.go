// Package version checks GitHub for a newer launcher release.
package version

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/mod/semver"
)

const (
	githubAPIURL = "https://api.github.com"
	releasePath  = "/repos/studiowebux/launcher/releases/latest"
	checkTimeout = 5 * time.Second
)

// Version is the launcher version, overridden at build time with -ldflags
var Version = "0.1.0"

type GitHubRelease struct {
	TagName string `json:"tag_name"`
	Name    string `json:"name"`
	HTMLURL string `json:"html_url"`
}

// Update describes the result of a check
type Update struct {
	Available bool
	Latest    string
	URL       string
}

// Checker queries the releases API
type Checker struct {
	client *resty.Client
}

// NewChecker creates a checker against baseURL, or the GitHub API when empty
func NewChecker(baseURL string) *Checker {
	if baseURL == "" {
		baseURL = githubAPIURL
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(checkTimeout).
		SetHeader("Accept", "application/vnd.github+json")
	return &Checker{client: client}
}

// CheckForUpdate checks if a release newer than currentVersion is available
func (c *Checker) CheckForUpdate(ctx context.Context, currentVersion string) (Update, error) {
	var release GitHubRelease
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("User-Agent", "launcher/"+currentVersion).
		SetResult(&release).
		Get(releasePath)
	if err != nil {
		return Update{}, fmt.Errorf("failed to fetch latest release: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return Update{}, fmt.Errorf("unexpected status code: %d", resp.StatusCode())
	}

	update := Update{
		Latest: strings.TrimPrefix(release.TagName, "v"),
		URL:    release.HTMLURL,
	}
	update.Available = update.Latest != "" && isNewerVersion(update.Latest, currentVersion)
	return update, nil
}

// isNewerVersion compares two semantic versions and returns true if latest > current.
// Unparseable versions are never newer.
func isNewerVersion(latest, current string) bool {
	l, c := canonical(latest), canonical(current)
	if l == "" || c == "" {
		return false
	}
	return semver.Compare(l, c) > 0
}

func canonical(v string) string {
	v = strings.TrimSpace(v)
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return ""
	}
	return v
}
