package modportal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/matzehuels/factoriogen/pkg/buildinfo"
	ferrors "github.com/matzehuels/factoriogen/pkg/errors"
	"github.com/matzehuels/factoriogen/pkg/integrations"
)

// DefaultBaseURL is the public mod portal API root.
const DefaultBaseURL = "https://mods.factorio.com/api"

// Release is one published version of a mod.
//
// Only Version is used for validation. The remaining fields are kept as the
// portal sends them, so an odd value in one of them never fails a lookup.
type Release struct {
	Version         string `json:"version"`
	FactorioVersion string `json:"factorio_version"`
	ReleasedAt      string `json:"released_at"`
	DownloadURL     string `json:"download_url"`
	FileName        string `json:"file_name"`
	SHA1            string `json:"sha1"`
	InfoJSON        struct {
		FactorioVersion string `json:"factorio_version"`
	} `json:"info_json"`
}

// ModInfo holds the portal metadata for a mod.
//
// Only Releases is required for dependency validation; the other fields
// may be empty depending on what the portal returns.
type ModInfo struct {
	Name              string    `json:"name"`
	Title             string    `json:"title"`
	Summary           string    `json:"summary"`
	Owner             string    `json:"owner"`
	Category          string    `json:"category"`
	DownloadsCount    int       `json:"downloads_count"`
	Score             float64   `json:"score"`
	Thumbnail         string    `json:"thumbnail,omitempty"`
	LastHighlightedAt string    `json:"last_highlighted_at,omitempty"`
	Releases          []Release `json:"releases"`
}

// Versions returns the version strings of all releases in portal order.
func (m *ModInfo) Versions() []string {
	out := make([]string, len(m.Releases))
	for i, r := range m.Releases {
		out[i] = r.Version
	}
	return out
}

// Options configures a [Client].
type Options struct {
	BaseURL   string        // API root; DefaultBaseURL when empty
	Timeout   time.Duration // Per-request timeout; integrations.DefaultTimeout when zero
	UserAgent string        // Sent with every request; derived from buildinfo when empty
}

// Client fetches mod metadata from the mod portal.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a mod portal client.
func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.UserAgent == "" {
		opts.UserAgent = fmt.Sprintf("factoriogen/%s (https://github.com/matzehuels/factoriogen)", buildinfo.Version)
	}
	headers := map[string]string{
		"User-Agent": opts.UserAgent,
		"Accept":     "application/json",
	}
	return &Client{
		Client:  integrations.NewClient(opts.Timeout, headers),
		baseURL: strings.TrimSuffix(opts.BaseURL, "/"),
	}
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// FetchMod retrieves metadata and the release list for a mod.
//
// It issues exactly one request. Errors carry a pkg/errors code and wrap
// the matching integrations sentinel:
//   - NOT_FOUND, [integrations.ErrNotFound]: the portal has no such mod
//   - TIMEOUT, [integrations.ErrTimeout]: the request exceeded its timeout
//   - NETWORK_ERROR, [integrations.ErrNetwork]: any other failure, including bad JSON
//
// The returned ModInfo is never nil if err is nil.
func (c *Client) FetchMod(ctx context.Context, name string) (*ModInfo, error) {
	url := fmt.Sprintf("%s/mods/%s", c.baseURL, integrations.PathEscape(name))

	var info ModInfo
	if err := c.Get(ctx, url, &info); err != nil {
		return nil, ferrors.Wrap(errorCode(err), err, "mod %s", name)
	}
	return &info, nil
}

func errorCode(err error) ferrors.Code {
	switch {
	case errors.Is(err, integrations.ErrNotFound):
		return ferrors.ErrCodeNotFound
	case errors.Is(err, integrations.ErrTimeout):
		return ferrors.ErrCodeTimeout
	}
	return ferrors.ErrCodeNetwork
}
