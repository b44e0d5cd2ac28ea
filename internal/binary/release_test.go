package binary

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCatalogClientLatestCompatible(t *testing.T) {
	listing := `[
		{
			"tag_name": "v9.9.9",
			"assets": [
				{"name": "orbit-9.9.9-linux-x64.tar.gz", "browser_download_url": "https://example.com/orbit"}
			]
		},
		{
			"tag_name": "v2.3.1",
			"assets": [
				{"name": "fleet-schema-gen-2.3.1-linux-x64.tar.gz", "browser_download_url": "https://example.com/linux"},
				{"name": "fleet-schema-gen-2.3.1-darwin-arm64.tar.gz", "browser_download_url": "https://example.com/darwin"}
			]
		},
		{
			"tag_name": "v2.3.0",
			"assets": [
				{"name": "fleet-schema-gen-2.3.0-linux-x64.tar.gz", "browser_download_url": "https://example.com/old"}
			]
		}
	]`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/fleetdm/fleet/releases" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Accept"); got != "application/vnd.github.v3+json" {
			t.Errorf("unexpected Accept header: %s", got)
		}
		if r.Header.Get("User-Agent") == "" {
			t.Error("expected a descriptive User-Agent header")
		}
		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write([]byte(listing)); err != nil {
			t.Errorf("write response: %v", err)
		}
	}))
	defer server.Close()

	client := NewCatalogClient(server.URL, "fleetdm/fleet")
	release, err := client.LatestCompatible(context.Background())
	if err != nil {
		t.Fatalf("LatestCompatible failed: %v", err)
	}

	// The newest release ships no fleet-schema-gen asset, so the first
	// release that does wins, even though it is not globally newest.
	if release.Version != "2.3.1" {
		t.Errorf("version = %q, want %q", release.Version, "2.3.1")
	}
	if len(release.Assets) != 2 {
		t.Fatalf("assets = %d, want 2", len(release.Assets))
	}
	if release.Assets[0].Name != "fleet-schema-gen-2.3.1-linux-x64.tar.gz" {
		t.Errorf("asset name = %q", release.Assets[0].Name)
	}
	if release.Assets[0].DownloadURL != "https://example.com/linux" {
		t.Errorf("asset URL = %q", release.Assets[0].DownloadURL)
	}
}

func TestCatalogClientVersionPrefixStripped(t *testing.T) {
	tests := []struct {
		name    string
		tagName string
		want    string
	}{
		{"with_v_prefix", "v1.2.3", "1.2.3"},
		{"without_prefix", "1.2.3", "1.2.3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				body := `[{"tag_name": "` + tt.tagName + `", "assets": [{"name": "fleet-schema-gen-x", "browser_download_url": "u"}]}]`
				if _, err := w.Write([]byte(body)); err != nil {
					t.Errorf("write response: %v", err)
				}
			}))
			defer server.Close()

			release, err := NewCatalogClient(server.URL, "fleetdm/fleet").LatestCompatible(context.Background())
			if err != nil {
				t.Fatalf("LatestCompatible failed: %v", err)
			}
			if release.Version != tt.want {
				t.Errorf("version = %q, want %q", release.Version, tt.want)
			}
		})
	}
}

func TestCatalogClientNoCompatibleRelease(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := `[{"tag_name": "v1.0.0", "assets": [{"name": "other-tool.tar.gz", "browser_download_url": "u"}]}]`
		if _, err := w.Write([]byte(body)); err != nil {
			t.Errorf("write response: %v", err)
		}
	}))
	defer server.Close()

	_, err := NewCatalogClient(server.URL, "fleetdm/fleet").LatestCompatible(context.Background())
	if !errors.Is(err, ErrNoCompatibleRelease) {
		t.Errorf("expected ErrNoCompatibleRelease, got %v", err)
	}
}

func TestCatalogClientFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server_error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "not_found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
		},
		{
			name: "malformed_json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"not": "an array"`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			_, err := NewCatalogClient(server.URL, "fleetdm/fleet").LatestCompatible(context.Background())
			if err == nil {
				t.Error("expected error but got none")
			}
		})
	}
}

func TestCatalogClientUnreachable(t *testing.T) {
	// Closed server: connection refused.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := NewCatalogClient(server.URL, "fleetdm/fleet").LatestCompatible(context.Background())
	if err == nil {
		t.Error("expected error for unreachable endpoint")
	}
}
