package gnomext

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// DefaultBaseURL is the extension catalog endpoint.
const DefaultBaseURL = "https://extensions.gnome.org"

// VersionEntry is one entry of an extension's shell-version map.
type VersionEntry struct {
	// PK is the version tag used in the download URL.
	PK int `json:"pk"`

	// Version is the extension's own version number.
	Version int `json:"version"`
}

// CatalogEntry is one extension as returned by the catalog query endpoint.
type CatalogEntry struct {
	UUID string `json:"uuid"`
	PK   int    `json:"pk"`
	Name string `json:"name"`

	// ShellVersionMap maps shell versions ("45", "48") to the package
	// version available for that shell. Key order carries no meaning.
	ShellVersionMap map[string]VersionEntry `json:"shell_version_map"`
}

type queryResponse struct {
	Extensions []CatalogEntry `json:"extensions"`
}

// Client talks to the extension catalog.
type Client struct {
	BaseURL string
	HTTP    *http.Client

	// NewBackOff produces the retry policy for archive fetches: three
	// attempts with escalating delay, then give up.
	NewBackOff func() backoff.BackOff

	// OnRetry is invoked before each retry sleep with the failure and the
	// upcoming delay. Optional.
	OnRetry func(err error, next time.Duration)
}

// NewClient creates a catalog client for the default endpoint.
func NewClient() *Client {
	return &Client{
		BaseURL:    DefaultBaseURL,
		HTTP:       &http.Client{Timeout: 60 * time.Second},
		NewBackOff: defaultBackOff,
	}
}

// defaultBackOff allows two retries after the initial attempt, waiting
// longer each time.
func defaultBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 2 * time.Second
	b.Multiplier = 2
	b.MaxInterval = 10 * time.Second
	b.RandomizationFactor = 0
	return backoff.WithMaxRetries(b, 2)
}

// Lookup queries the catalog by search name and returns the entry whose
// uuid matches. Returns (nil, nil) when the catalog has no match; the
// caller decides what a miss means.
func (c *Client) Lookup(ctx context.Context, search, uuid string) (*CatalogEntry, error) {
	q := url.Values{}
	q.Set("search", search)
	queryURL := fmt.Sprintf("%s/extension-query/?%s", c.BaseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, queryURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog query failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog query failed: HTTP %d", resp.StatusCode)
	}

	var result queryResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode catalog response: %w", err)
	}

	for i := range result.Extensions {
		if result.Extensions[i].UUID == uuid {
			return &result.Extensions[i], nil
		}
	}
	return nil, nil
}

// Fetch downloads the archive for (uuid, versionTag) into destDir and
// returns the archive path. Transient failures are retried per the
// client's backoff policy; the context cancels retries immediately.
func (c *Client) Fetch(ctx context.Context, uuid string, versionTag int, destDir string) (string, error) {
	fetchURL := fmt.Sprintf("%s/download-extension/%s.shell-extension.zip?version_tag=%d",
		c.BaseURL, url.PathEscape(uuid), versionTag)
	destPath := filepath.Join(destDir, uuid+".shell-extension.zip")

	operation := func() error {
		return c.fetchOnce(ctx, fetchURL, destPath)
	}

	notify := func(err error, next time.Duration) {
		if c.OnRetry != nil {
			c.OnRetry(err, next)
		}
	}

	newBackOff := c.NewBackOff
	if newBackOff == nil {
		newBackOff = defaultBackOff
	}

	if err := backoff.RetryNotify(operation, backoff.WithContext(newBackOff(), ctx), notify); err != nil {
		return "", fmt.Errorf("failed to download %s: %w", uuid, err)
	}
	return destPath, nil
}

// fetchOnce performs a single download attempt to a temp file, renaming
// into place only on success.
func (c *Client) fetchOnce(ctx context.Context, fetchURL, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fetchURL, nil)
	if err != nil {
		return backoff.Permanent(err)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to the copy
	case resp.StatusCode == http.StatusNotFound:
		// Retrying a 404 will not help.
		return backoff.Permanent(fmt.Errorf("download failed: HTTP %d", resp.StatusCode))
	default:
		return fmt.Errorf("download failed: HTTP %d", resp.StatusCode)
	}

	tmpPath := destPath + ".downloading"
	out, err := os.Create(tmpPath)
	if err != nil {
		return backoff.Permanent(fmt.Errorf("failed to create temp file: %w", err))
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("download interrupted: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return backoff.Permanent(fmt.Errorf("failed to move archive: %w", err))
	}
	return nil
}
