package modportal

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"
	"time"

	ferrors "github.com/matzehuels/factoriogen/pkg/errors"
	"github.com/matzehuels/factoriogen/pkg/integrations"
)

const flibResponse = `{
  "name": "flib",
  "title": "Factorio Library",
  "owner": "raiguard",
  "summary": "A set of high-quality, commonly-used utilities",
  "category": "utilities",
  "downloads_count": 1234567,
  "score": 42.5,
  "releases": [
    {
      "version": "0.12.0",
      "factorio_version": "1.1",
      "released_at": "2023-01-02T03:04:05.000000Z",
      "download_url": "/download/flib/1",
      "file_name": "flib_0.12.0.zip",
      "sha1": "abc",
      "info_json": {"factorio_version": "1.1"}
    },
    {
      "version": "0.14.0",
      "factorio_version": "2.0",
      "released_at": "2024-10-21T00:00:00.000000Z",
      "download_url": "/download/flib/2",
      "file_name": "flib_0.14.0.zip",
      "sha1": "def",
      "info_json": {"factorio_version": "2.0"}
    }
  ]
}`

func TestNewClient(t *testing.T) {
	c := NewClient(Options{})
	if c.BaseURL() != DefaultBaseURL {
		t.Errorf("BaseURL() = %q, want %q", c.BaseURL(), DefaultBaseURL)
	}
	if c.Timeout() != integrations.DefaultTimeout {
		t.Errorf("Timeout() = %v, want %v", c.Timeout(), integrations.DefaultTimeout)
	}

	c = NewClient(Options{BaseURL: "http://localhost:8080/api/", Timeout: time.Second})
	if c.BaseURL() != "http://localhost:8080/api" {
		t.Errorf("BaseURL() = %q, trailing slash not trimmed", c.BaseURL())
	}
}

func TestClient_FetchMod(t *testing.T) {
	var userAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgent = r.Header.Get("User-Agent")
		if r.URL.Path != "/mods/flib" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(flibResponse))
	}))
	defer server.Close()

	c := NewClient(Options{BaseURL: server.URL})

	mod, err := c.FetchMod(context.Background(), "flib")
	if err != nil {
		t.Fatalf("FetchMod failed: %v", err)
	}

	if mod.Name != "flib" || mod.Owner != "raiguard" {
		t.Errorf("unexpected mod identity: %+v", mod)
	}
	if len(mod.Releases) != 2 {
		t.Fatalf("expected 2 releases, got %d", len(mod.Releases))
	}
	if mod.Releases[1].FactorioVersion != "2.0" || mod.Releases[1].InfoJSON.FactorioVersion != "2.0" {
		t.Errorf("unexpected release: %+v", mod.Releases[1])
	}
	if mod.Releases[0].ReleasedAt != "2023-01-02T03:04:05.000000Z" {
		t.Errorf("ReleasedAt = %q", mod.Releases[0].ReleasedAt)
	}
	if got := mod.Versions(); !slices.Equal(got, []string{"0.12.0", "0.14.0"}) {
		t.Errorf("Versions() = %v", got)
	}
	if !strings.HasPrefix(userAgent, "factoriogen/") {
		t.Errorf("User-Agent = %q", userAgent)
	}
}

func TestClient_FetchMod_LenientReleaseFields(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty released_at", `{"releases":[{"version":"1.0.0","released_at":""}]}`},
		{"unparseable released_at", `{"releases":[{"version":"1.0.0","released_at":"last tuesday"}]}`},
		{"null fields", `{"name":null,"releases":[{"version":"1.0.0","released_at":null,"info_json":null}]}`},
		{"unknown fields", `{"releases":[{"version":"1.0.0","changelog":{"x":1}}],"tags":["a"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			mod, err := NewClient(Options{BaseURL: server.URL}).FetchMod(context.Background(), "m")
			if err != nil {
				t.Fatalf("FetchMod failed: %v", err)
			}
			if got := mod.Versions(); !slices.Equal(got, []string{"1.0.0"}) {
				t.Errorf("Versions() = %v", got)
			}
		})
	}
}

func TestClient_FetchMod_EscapesName(t *testing.T) {
	var rawPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawPath = r.URL.EscapedPath()
		w.Write([]byte(`{"name":"Some Mod","releases":[]}`))
	}))
	defer server.Close()

	if _, err := NewClient(Options{BaseURL: server.URL}).FetchMod(context.Background(), "Some Mod"); err != nil {
		t.Fatalf("FetchMod failed: %v", err)
	}
	if rawPath != "/mods/Some%20Mod" {
		t.Errorf("request path = %q", rawPath)
	}
}

func TestClient_FetchMod_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		timeout time.Duration
		want    error
		code    ferrors.Code
	}{
		{
			name:    "not found",
			handler: func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNotFound) },
			want:    integrations.ErrNotFound,
			code:    ferrors.ErrCodeNotFound,
		},
		{
			name:    "server error",
			handler: func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusBadGateway) },
			want:    integrations.ErrNetwork,
			code:    ferrors.ErrCodeNetwork,
		},
		{
			name:    "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(`{"releases": [`)) },
			want:    integrations.ErrNetwork,
			code:    ferrors.ErrCodeNetwork,
		},
		{
			name: "timeout",
			handler: func(w http.ResponseWriter, r *http.Request) {
				select {
				case <-r.Context().Done():
				case <-time.After(2 * time.Second):
				}
			},
			timeout: 50 * time.Millisecond,
			want:    integrations.ErrTimeout,
			code:    ferrors.ErrCodeTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			c := NewClient(Options{BaseURL: server.URL, Timeout: tt.timeout})
			mod, err := c.FetchMod(context.Background(), "missing-mod")
			if !errors.Is(err, tt.want) {
				t.Errorf("FetchMod() error = %v, want %v", err, tt.want)
			}
			if got := ferrors.GetCode(err); got != tt.code {
				t.Errorf("GetCode() = %q, want %q", got, tt.code)
			}
			if mod != nil {
				t.Error("FetchMod() returned a mod alongside an error")
			}
			if err != nil && !strings.Contains(err.Error(), "missing-mod") {
				t.Errorf("error %q does not name the mod", err)
			}
		})
	}
}
