// Package registry queries an npm-compatible registry for the latest
// published version of a package.
package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ajxudir/pinlock/pkg/verbose"
)

const (
	// DefaultBaseURL is the public npm registry.
	DefaultBaseURL = "https://registry.npmjs.org"

	httpTimeout = 10 * time.Second

	// abbreviatedMetadata asks for the install manifest, which carries
	// dist-tags without the full per-version documents.
	abbreviatedMetadata = "application/vnd.npm.install-v1+json; q=1.0, application/json; q=0.8"
)

var (
	// ErrNotFound is returned when the registry has no such package.
	ErrNotFound = errors.New("package not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, non-200 responses).
	ErrNetwork = errors.New("network error")
)

// Client looks up package metadata over HTTP.
type Client struct {
	http       *http.Client
	baseURL    string
	attempts   int
	retryDelay time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithRetry sets the number of attempts and the initial backoff delay.
// Attempts below 1 mean a single attempt.
func WithRetry(attempts int, delay time.Duration) Option {
	return func(c *Client) {
		c.attempts = max(attempts, 1)
		c.retryDelay = delay
	}
}

// NewClient creates a Client for the registry at baseURL. An empty baseURL
// uses DefaultBaseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		http:       &http.Client{Timeout: httpTimeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		attempts:   defaultAttempts,
		retryDelay: defaultRetryDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the registry root used for requests.
func (c *Client) BaseURL() string { return c.baseURL }

// Latest returns the version tagged "latest" for pkg.
//
// Network errors and 5xx responses are retried with backoff. A 404 returns
// an error wrapping ErrNotFound.
func (c *Client) Latest(ctx context.Context, pkg string) (string, error) {
	var data packument
	err := c.withBackoff(ctx, func() error {
		return c.get(ctx, PackageURL(c.baseURL, pkg), &data)
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", fmt.Errorf("%w: npm package %s", err, pkg)
		}
		return "", err
	}

	if data.DistTags.Latest == "" {
		return "", fmt.Errorf("no latest dist-tag for %s", pkg)
	}
	verbose.Infof("Registry: %s latest is %s", pkg, data.DistTags.Latest)
	return data.DistTags.Latest, nil
}

// PackageURL builds the metadata URL for pkg. Scoped names keep their "@" and
// have the slash escaped ("@types/node" becomes "@types%2Fnode").
func PackageURL(baseURL, pkg string) string {
	return strings.TrimRight(baseURL, "/") + "/" + url.PathEscape(strings.TrimSpace(pkg))
}

func (c *Client) get(ctx context.Context, rawURL string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", abbreviatedMetadata)

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return transient(fmt.Errorf("%w: %v", ErrNetwork, err))
	}
	defer resp.Body.Close()

	if err := checkStatus(resp.StatusCode); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid registry response: %w", err)
	}
	return nil
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code >= 500:
		return transient(fmt.Errorf("%w: status %d", ErrNetwork, code))
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}

type packument struct {
	Name     string   `json:"name"`
	DistTags distTags `json:"dist-tags"`
}

type distTags struct {
	Latest string `json:"latest"`
}
