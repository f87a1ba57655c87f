package images

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/net/html"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient(discardLogger())
	c.baseURL = srv.URL
	return c
}

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Snake Plant", "Dracaena trifasciata"},
		{"snake plant", "Dracaena trifasciata"},
		{"  Pothos  ", "Epipremnum aureum"},
		{"Monstera", "Monstera"},
		{"  Rose ", "Rose"},
	}
	for _, tt := range tests {
		if got := NormalizeTitle(tt.in); got != tt.want {
			t.Errorf("NormalizeTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestResolveFromSummary(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/api/rest_v1/page/summary/") {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, `{
			"title": "Rosa chinensis",
			"thumbnail": {"source": "https://upload.example/rose.jpg"},
			"content_urls": {"desktop": {"page": "https://en.wikipedia.org/wiki/Rosa_chinensis"}}
		}`)
	})

	info := c.Resolve(context.Background(), "Rose")
	if info.URL != "https://upload.example/rose.jpg" {
		t.Errorf("url = %q", info.URL)
	}
	if info.Caption != "Wikipedia: Rosa chinensis" {
		t.Errorf("caption = %q", info.Caption)
	}
	if info.PageURL == "" {
		t.Error("expected page url")
	}
}

func TestResolveFallsBackToSearch(t *testing.T) {
	var summaryCalls int
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/api/rest_v1/page/summary/"):
			summaryCalls++
			if summaryCalls == 1 {
				http.NotFound(w, r)
				return
			}
			fmt.Fprint(w, `{"title": "Ficus elastica", "thumbnail": {"source": "https://upload.example/ficus.jpg"}}`)
		case r.URL.Path == "/w/api.php":
			fmt.Fprint(w, `{"query": {"search": [{"title": "Ficus elastica"}]}}`)
		default:
			http.NotFound(w, r)
		}
	})

	info := c.Resolve(context.Background(), "Some Obscure Ficus")
	if info.URL != "https://upload.example/ficus.jpg" {
		t.Errorf("url = %q", info.URL)
	}
}

func TestResolvePlaceholderWhenEverythingMisses(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	info := c.Resolve(context.Background(), "Imaginary Plant")
	if !strings.HasPrefix(info.URL, "https://picsum.photos/seed/") {
		t.Errorf("expected placeholder url, got %q", info.URL)
	}
	if info.Caption != "Placeholder image" {
		t.Errorf("caption = %q", info.Caption)
	}
}

func TestFindOGImage(t *testing.T) {
	page := `<html><head>
		<meta property="og:title" content="Rose"/>
		<meta property="og:image" content="https://upload.example/og-rose.jpg"/>
	</head><body><p>text</p></body></html>`

	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	if got := findOGImage(doc); got != "https://upload.example/og-rose.jpg" {
		t.Errorf("findOGImage = %q", got)
	}
}

func TestFindOGImageAbsent(t *testing.T) {
	doc, err := html.Parse(strings.NewReader("<html><head></head><body></body></html>"))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	if got := findOGImage(doc); got != "" {
		t.Errorf("expected empty, got %q", got)
	}
}
