// Package registry answers the single question the dispatcher asks before
// publishing: is this exact name+version already present in the remote
// registry. "Not found" is a normal false; only transport-level trouble is
// an error.
package registry

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"resty.dev/v3"
)

// ErrUnavailable marks a status check that failed for reasons other than
// the version simply not existing. It aborts the whole run.
var ErrUnavailable = errors.New("registry unavailable")

// Checker reports whether a package version already exists in the registry.
type Checker interface {
	Published(ctx context.Context, name, version string) (bool, error)
}

// Client is the HTTP Checker for npm-style registries, which expose
// GET /{name}/{version} returning 200 for known versions and 404 otherwise.
type Client struct {
	baseURL string
	http    *resty.Client
}

// NewClient creates a Client for the given registry base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    resty.New(),
	}
}

// Close releases the underlying HTTP client resources.
func (c *Client) Close() error {
	return c.http.Close()
}

// Published implements Checker.
func (c *Client) Published(ctx context.Context, name, version string) (bool, error) {
	endpoint := fmt.Sprintf("%s/%s/%s", c.baseURL, url.PathEscape(name), url.PathEscape(version))

	res, err := c.http.R().SetContext(ctx).Get(endpoint)
	if err != nil {
		return false, fmt.Errorf("%w: checking %s@%s: %v", ErrUnavailable, name, version, err)
	}

	switch res.StatusCode() {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("%w: checking %s@%s: unexpected status %d", ErrUnavailable, name, version, res.StatusCode())
	}
}
