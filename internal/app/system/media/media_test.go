package media_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/dalemusser/gatherhub/internal/app/system/media"
)

func TestIngestionClient_Resolve(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/resolve" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var asset media.Asset
		if err := json.NewDecoder(r.Body).Decode(&asset); err != nil {
			t.Errorf("failed to decode asset: %v", err)
		}
		if asset.Key != "upload-123" {
			t.Errorf("asset key: got %q, want %q", asset.Key, "upload-123")
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"url": "https://cdn.example.com/upload-123.jpg"})
	}))
	defer srv.Close()

	c := media.NewIngestionClient(srv.URL, zap.NewNop())
	url, err := c.Resolve(t.Context(), media.Asset{Key: "upload-123"})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if url != "https://cdn.example.com/upload-123.jpg" {
		t.Errorf("url: got %q", url)
	}
}

func TestIngestionClient_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := media.NewIngestionClient(srv.URL, zap.NewNop())
	_, err := c.Resolve(t.Context(), media.Asset{Key: "upload-123"})
	if !errors.Is(err, media.ErrIngestion) {
		t.Errorf("expected ErrIngestion, got %v", err)
	}
}

func TestIngestionClient_EmptyKey(t *testing.T) {
	c := media.NewIngestionClient("http://localhost:0", zap.NewNop())
	if _, err := c.Resolve(t.Context(), media.Asset{}); !errors.Is(err, media.ErrIngestion) {
		t.Errorf("expected ErrIngestion for empty key, got %v", err)
	}
}

func TestStaticResolver(t *testing.T) {
	s := media.StaticResolver{BaseURL: "http://localhost/media/"}
	url, err := s.Resolve(t.Context(), media.Asset{Key: "pic.jpg"})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if url != "http://localhost/media/pic.jpg" {
		t.Errorf("url: got %q", url)
	}
}

func TestStaticResolver_MintsKey(t *testing.T) {
	s := media.StaticResolver{BaseURL: "http://localhost/media"}
	url, err := s.Resolve(t.Context(), media.Asset{})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if !strings.HasPrefix(url, "http://localhost/media/") || url == "http://localhost/media/" {
		t.Errorf("expected minted key under base URL, got %q", url)
	}
}

func TestDisabled(t *testing.T) {
	var d media.Disabled
	if _, err := d.Resolve(t.Context(), media.Asset{Key: "x"}); !errors.Is(err, media.ErrNotConfigured) {
		t.Errorf("expected ErrNotConfigured, got %v", err)
	}
}
