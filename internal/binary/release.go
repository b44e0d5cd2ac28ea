package binary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// CatalogTimeout bounds the release listing request.
	CatalogTimeout = 30 * time.Second
	// acceptHeader pins the GitHub REST API media type.
	acceptHeader = "application/vnd.github.v3+json"
	// maxCatalogResponseSize caps the listing body to prevent memory
	// exhaustion from a misbehaving endpoint (10MB).
	maxCatalogResponseSize = 10 * 1024 * 1024
)

// ErrNoCompatibleRelease means the listing contained no release that
// publishes an asset for this binary.
var ErrNoCompatibleRelease = errors.New("no release ships " + Name)

// CatalogClient queries a GitHub-style release listing endpoint.
type CatalogClient struct {
	client    *http.Client
	baseURL   string
	repo      string
	userAgent string
}

// NewCatalogClient creates a catalog client for the given API base URL
// (no trailing slash) and "owner/name" repository.
func NewCatalogClient(baseURL, repo string) *CatalogClient {
	return &CatalogClient{
		client: &http.Client{
			Timeout: CatalogTimeout,
		},
		baseURL:   strings.TrimRight(baseURL, "/"),
		repo:      repo,
		userAgent: DefaultUserAgent,
	}
}

// releaseJSON mirrors the release-listing response shape.
type releaseJSON struct {
	TagName string      `json:"tag_name"`
	Assets  []assetJSON `json:"assets"`
}

type assetJSON struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

// LatestCompatible returns the newest release that publishes at least one
// asset whose name starts with the binary name. The listing is assumed
// newest-first, so this is "latest release that ships this binary", not
// necessarily the repository's globally latest release.
//
// Transport and parse failures are returned as errors; callers treat them
// as "lookup unavailable right now", never as "no release exists".
func (c *CatalogClient) LatestCompatible(ctx context.Context) (*Release, error) {
	url := fmt.Sprintf("%s/repos/%s/releases", c.baseURL, c.repo)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch release listing: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("release listing: unexpected status code: %d", resp.StatusCode)
	}

	var releases []releaseJSON
	limited := io.LimitReader(resp.Body, maxCatalogResponseSize)
	if err := json.NewDecoder(limited).Decode(&releases); err != nil {
		return nil, fmt.Errorf("parse release listing: %w", err)
	}

	// First release (received order) with a matching asset wins.
	for _, rel := range releases {
		if !shipsBinary(rel) {
			continue
		}
		release := &Release{
			Version: strings.TrimPrefix(rel.TagName, "v"),
			Assets:  make([]Asset, 0, len(rel.Assets)),
		}
		for _, a := range rel.Assets {
			release.Assets = append(release.Assets, Asset{
				Name:        a.Name,
				DownloadURL: a.BrowserDownloadURL,
			})
		}
		return release, nil
	}

	return nil, ErrNoCompatibleRelease
}

func shipsBinary(rel releaseJSON) bool {
	for _, a := range rel.Assets {
		if strings.HasPrefix(a.Name, Name) {
			return true
		}
	}
	return false
}
