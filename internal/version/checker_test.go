package version

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestIsNewerVersion(t *testing.T) {
	tests := []struct {
		name     string
		latest   string
		current  string
		expected bool
	}{
		{"same version", "0.0.28", "0.0.28", false},
		{"patch upgrade", "0.0.29", "0.0.28", true},
		{"patch downgrade", "0.0.27", "0.0.28", false},
		{"minor upgrade", "0.1.0", "0.0.28", true},
		{"minor downgrade", "0.0.1", "0.1.0", false},
		{"major upgrade", "1.0.0", "0.0.28", true},
		{"major downgrade", "0.0.28", "1.0.0", false},
		{"multi-digit patch", "0.0.100", "0.0.99", true},
		{"multi-digit minor", "0.100.0", "0.99.0", true},
		{"short form", "1.0", "0.0.28", true},
		{"short form behind", "0.0.28", "1.0", false},
		{"v prefix", "v0.2.0", "0.1.0", true},
		{"dev version ahead", "0.0.29-dev", "0.0.28", true},
		{"pre-release of same version", "0.0.28-alpha", "0.0.28", false},
		{"release after pre-release", "0.0.28", "0.0.28-alpha", true},
		{"build metadata ignored", "0.0.29+build123", "0.0.29", false},
		{"pre-release ordering", "0.0.29-beta", "0.0.29-alpha", true},
		{"unparseable current", "1.0.0", "dev", false},
		{"unparseable latest", "nightly", "1.0.0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := isNewerVersion(tt.latest, tt.current)
			if result != tt.expected {
				t.Errorf("isNewerVersion(%q, %q) = %v, want %v", tt.latest, tt.current, result, tt.expected)
			}
		})
	}
}

func TestCheckForUpdate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != releasePath {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"tag_name":"v0.3.0","name":"0.3.0","html_url":"https://example.com/r/0.3.0"}`))
	}))
	defer srv.Close()

	checker := NewChecker(srv.URL)

	update, err := checker.CheckForUpdate(context.Background(), "0.2.1")
	if err != nil {
		t.Fatal(err)
	}
	if !update.Available || update.Latest != "0.3.0" || update.URL != "https://example.com/r/0.3.0" {
		t.Errorf("update = %+v", update)
	}

	update, err = checker.CheckForUpdate(context.Background(), "0.3.0")
	if err != nil {
		t.Fatal(err)
	}
	if update.Available {
		t.Error("same version reported as update")
	}
}

func TestCheckForUpdateStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	if _, err := NewChecker(srv.URL).CheckForUpdate(context.Background(), "0.1.0"); err == nil {
		t.Error("expected error on 403")
	}
}
