package api

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/maniwar/plantfacts/internal/config"
	"github.com/maniwar/plantfacts/internal/images"
	"github.com/maniwar/plantfacts/internal/llm"
	"github.com/maniwar/plantfacts/internal/plants"
	"github.com/maniwar/plantfacts/internal/search"
)

const sampleReport = `## Overview
The snake plant is a hardy succulent.

## Care Instructions
**Light:** Bright indirect
- Water weekly
- Avoid soggy soil

## Toxicity
Mildly toxic to cats and dogs.
`

type stubGen struct {
	text string
	err  error
}

func (g *stubGen) Complete(ctx context.Context, messages []llm.Message) (string, error) {
	return g.text, g.err
}

func (g *stubGen) Stream(ctx context.Context, messages []llm.Message, fn func(delta string) error) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	for _, chunk := range strings.SplitAfter(g.text, "\n") {
		if err := fn(chunk); err != nil {
			return "", err
		}
	}
	return g.text, nil
}

type memStore struct {
	data map[string]string
}

func (m *memStore) Get(ctx context.Context, subject string) (string, bool) {
	text, ok := m.data[subject]
	return text, ok
}

func (m *memStore) Set(ctx context.Context, subject, text string) error {
	m.data[subject] = text
	return nil
}

func (m *memStore) Delete(ctx context.Context, subject string) error {
	delete(m.data, subject)
	return nil
}

func newTestServer(t *testing.T, gen *stubGen, apiKey string) (*Server, *memStore) {
	t.Helper()
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	store := &memStore{data: map[string]string{}}
	svc := plants.NewService(gen, store, log)
	cfg := config.Config{
		APIKey:         apiKey,
		OpenAIModel:    "gpt-4o-mini",
		MaxUploadBytes: 1 << 20,
	}
	srv := NewServer(svc, images.NewClient(log), search.NewClient(log), llm.NewStats(time.Minute), log, cfg)
	return srv, store
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t, &stubGen{}, "")

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestAuthRequired(t *testing.T) {
	srv, _ := newTestServer(t, &stubGen{text: sampleReport}, "secret")

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/plants/fern/document", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status without token = %d, want 401", rec.Code)
	}

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/plants/fern/document", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status with bad token = %d, want 401", rec.Code)
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/plants/fern/document", nil)
	req.Header.Set("Authorization", "Bearer secret")
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status with good token = %d, want 200", rec.Code)
	}
}

func TestAuthDisabledWithoutKey(t *testing.T) {
	srv, _ := newTestServer(t, &stubGen{text: sampleReport}, "")

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/plants/fern/document", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 when auth is disabled", rec.Code)
	}
}

func TestPlantDocument(t *testing.T) {
	srv, store := newTestServer(t, &stubGen{text: sampleReport}, "")

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/plants/snake%20plant/document", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Name     string `json:"name"`
		Cached   bool   `json:"cached"`
		Document struct {
			Sections []struct {
				Title string `json:"title"`
				Style string `json:"style"`
			} `json:"sections"`
		} `json:"document"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Name != "Snake Plant" {
		t.Errorf("name = %q, want Snake Plant", resp.Name)
	}
	if resp.Cached {
		t.Error("cached = true on first request")
	}
	if len(resp.Document.Sections) != 3 {
		t.Fatalf("got %d sections, want 3", len(resp.Document.Sections))
	}
	if resp.Document.Sections[2].Title != "Toxicity" || resp.Document.Sections[2].Style != "warning" {
		t.Errorf("toxicity section = %+v", resp.Document.Sections[2])
	}
	if _, ok := store.data["Snake Plant"]; !ok {
		t.Error("report was not cached")
	}
}

func TestPlantDocumentGenerationFailure(t *testing.T) {
	srv, _ := newTestServer(t, &stubGen{err: context.DeadlineExceeded}, "")

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/plants/fern/document", nil))
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
}

func TestPlantFacts(t *testing.T) {
	srv, _ := newTestServer(t, &stubGen{text: sampleReport}, "")

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/plants/snake-plant/facts", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Facts []struct {
			Label string `json:"label"`
			Value string `json:"value"`
		} `json:"facts"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Facts) == 0 {
		t.Fatal("no facts extracted")
	}
	if resp.Facts[0].Label != "Safety" {
		t.Errorf("first fact = %+v, want Safety", resp.Facts[0])
	}
}

func TestPlantHTML(t *testing.T) {
	srv, _ := newTestServer(t, &stubGen{text: sampleReport}, "")

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/plants/fern/html", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "<h2>") {
		t.Errorf("body has no headings: %s", rec.Body.String())
	}
}

func TestPlantStream(t *testing.T) {
	srv, _ := newTestServer(t, &stubGen{text: sampleReport}, "")

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/plants/fern/stream", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"delta"`) {
		t.Error("no delta events in stream")
	}
	if !strings.Contains(body, "event: document") {
		t.Error("no final document event")
	}
	if !strings.Contains(body, "data: [DONE]") {
		t.Error("no DONE sentinel")
	}
}

func TestPlantCacheDelete(t *testing.T) {
	srv, store := newTestServer(t, &stubGen{}, "")
	store.data["Fern"] = "stale report"

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/plants/fern/cache", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if _, ok := store.data["Fern"]; ok {
		t.Error("cache entry survived deletion")
	}
}

func TestIdentify(t *testing.T) {
	srv, _ := newTestServer(t, &stubGen{text: "Monstera Deliciosa"}, "")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", "plant.jpg")
	if err != nil {
		t.Fatal(err)
	}
	part.Write([]byte("fake jpeg bytes"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/identify", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["name"] != "Monstera Deliciosa" {
		t.Errorf("name = %q", resp["name"])
	}
}

func TestIdentifyMissingImage(t *testing.T) {
	srv, _ := newTestServer(t, &stubGen{}, "")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("note", "no file here")
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/identify", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestLLMStats(t *testing.T) {
	srv, _ := newTestServer(t, &stubGen{}, "")

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stats/llm", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"model":"gpt-4o-mini"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}
