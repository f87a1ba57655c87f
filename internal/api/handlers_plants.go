package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/maniwar/plantfacts/internal/facts"
	"github.com/maniwar/plantfacts/internal/plants"
	"github.com/maniwar/plantfacts/internal/render"
	"github.com/maniwar/plantfacts/internal/report"
)

func plantName(r *http.Request) (string, error) {
	raw := chi.URLParam(r, "name")
	name, err := url.PathUnescape(raw)
	if err != nil {
		name = raw
	}
	name = plants.NormalizeName(name)
	if name == "" {
		return "", errors.New("plant name is required")
	}
	return name, nil
}

// handlePlant returns the full picture for one plant: raw report, structured
// document, quick facts, and an image.
func (s *Server) handlePlant(w http.ResponseWriter, r *http.Request) {
	name, err := plantName(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	raw, cached, err := s.plants.Report(r.Context(), name)
	if err != nil {
		s.log.Error("report generation failed", "plant", name, "error", err)
		jsonError(w, "report generation failed", http.StatusBadGateway)
		return
	}

	doc := report.Structure(raw, s.schema)
	img := s.images.Resolve(r.Context(), name)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"name":     name,
		"cached":   cached,
		"report":   raw,
		"document": doc,
		"facts":    facts.Extract(raw),
		"image":    img,
	})
}

// handlePlantStream streams report text as server-sent events. Each delta is
// a JSON object; the final event carries the structured document.
func (s *Server) handlePlantStream(w http.ResponseWriter, r *http.Request) {
	name, err := plantName(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		jsonError(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	raw, _, err := s.plants.StreamReport(r.Context(), name, func(delta string) error {
		payload, err := json.Marshal(map[string]string{"delta": delta})
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
			return err
		}
		flusher.Flush()
		return nil
	})
	if err != nil {
		s.log.Error("report stream failed", "plant", name, "error", err)
		fmt.Fprintf(w, "event: error\ndata: %s\n\n", `{"error":"report generation failed"}`)
		flusher.Flush()
		return
	}

	doc := report.Structure(raw, s.schema)
	payload, err := json.Marshal(doc)
	if err != nil {
		s.log.Error("document encode failed", "plant", name, "error", err)
		return
	}
	fmt.Fprintf(w, "event: document\ndata: %s\n\n", payload)
	fmt.Fprint(w, "data: [DONE]\n\n")
	flusher.Flush()
}

func (s *Server) handlePlantDocument(w http.ResponseWriter, r *http.Request) {
	name, err := plantName(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	raw, cached, err := s.plants.Report(r.Context(), name)
	if err != nil {
		s.log.Error("report generation failed", "plant", name, "error", err)
		jsonError(w, "report generation failed", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"name":     name,
		"cached":   cached,
		"document": report.Structure(raw, s.schema),
	})
}

func (s *Server) handlePlantHTML(w http.ResponseWriter, r *http.Request) {
	name, err := plantName(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	raw, _, err := s.plants.Report(r.Context(), name)
	if err != nil {
		s.log.Error("report generation failed", "plant", name, "error", err)
		jsonError(w, "report generation failed", http.StatusBadGateway)
		return
	}

	html, err := render.HTML(report.Structure(raw, s.schema))
	if err != nil {
		s.log.Error("html rendering failed", "plant", name, "error", err)
		jsonError(w, "rendering failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(html))
}

func (s *Server) handlePlantFacts(w http.ResponseWriter, r *http.Request) {
	name, err := plantName(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	raw, _, err := s.plants.Report(r.Context(), name)
	if err != nil {
		s.log.Error("report generation failed", "plant", name, "error", err)
		jsonError(w, "report generation failed", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"name":  name,
		"facts": facts.Extract(raw),
	})
}

func (s *Server) handlePlantImage(w http.ResponseWriter, r *http.Request) {
	name, err := plantName(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.images.Resolve(r.Context(), name))
}

func (s *Server) handlePlantCacheDelete(w http.ResponseWriter, r *http.Request) {
	name, err := plantName(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := s.plants.Invalidate(r.Context(), name); err != nil {
		s.log.Error("cache invalidation failed", "plant", name, "error", err)
		jsonError(w, "cache invalidation failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"name": name, "invalidated": true})
}

func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		jsonError(w, "q is required", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"query":       query,
		"suggestions": s.search.Suggest(r.Context(), query),
	})
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
