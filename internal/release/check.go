// Package release resolves the latest published docbundle version for
// the freshness check that runs before bundling.
package release

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// LatestURL is the release endpoint whose redirect names the newest
// published version.
const LatestURL = "https://github.com/leapstack-labs/docbundle/releases/latest"

const requestTimeout = 10 * time.Second

// Client performs redirect-suppressed lookups against a releases/latest
// endpoint.
type Client struct {
	http *http.Client
}

// NewClient returns a client that never follows redirects: the version
// lives in the Location header of the first response.
func NewClient() *Client {
	return &Client{
		http: &http.Client{
			Timeout: requestTimeout,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// Latest resolves the newest published version from url. The redirect
// target ends in the release tag, e.g. .../releases/tag/0.4.2.
func (c *Client) Latest(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build release request: %w", err)
	}
	res, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("resolve latest release: %w", err)
	}
	defer res.Body.Close()

	location := res.Header.Get("Location")
	if location == "" {
		return "", fmt.Errorf("release endpoint returned no redirect (status %d)", res.StatusCode)
	}
	_, tag := splitLast(location, "/")
	tag = strings.TrimPrefix(tag, "v")
	if tag == "" {
		return "", fmt.Errorf("release redirect %q carries no version tag", location)
	}
	return tag, nil
}

// IsCurrent reports whether the installed version matches the latest
// published one. Prefix comparison tolerates local build metadata
// appended to the installed version.
func IsCurrent(installed, latest string) bool {
	return strings.HasPrefix(installed, latest)
}

func splitLast(s, sep string) (string, string) {
	i := strings.LastIndex(s, sep)
	if i < 0 {
		return "", s
	}
	return s[:i], s[i+len(sep):]
}
