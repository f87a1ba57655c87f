package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/maniwar/plantfacts/internal/config"
	"github.com/maniwar/plantfacts/internal/images"
	"github.com/maniwar/plantfacts/internal/llm"
	"github.com/maniwar/plantfacts/internal/plants"
	"github.com/maniwar/plantfacts/internal/report"
	"github.com/maniwar/plantfacts/internal/search"
)

// Server is the HTTP API server for plantfacts.
type Server struct {
	router chi.Router
	plants *plants.Service
	images *images.Client
	search *search.Client
	stats  *llm.Stats
	schema report.Schema
	log    *slog.Logger
	cfg    config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(svc *plants.Service, img *images.Client, sug *search.Client, stats *llm.Stats, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		plants: svc,
		images: img,
		search: sug,
		stats:  stats,
		schema: report.DefaultSchema(),
		log:    log,
		cfg:    cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Get("/api/plants/{name}", s.handlePlant)
		r.Get("/api/plants/{name}/stream", s.handlePlantStream)
		r.Get("/api/plants/{name}/document", s.handlePlantDocument)
		r.Get("/api/plants/{name}/html", s.handlePlantHTML)
		r.Get("/api/plants/{name}/facts", s.handlePlantFacts)
		r.Get("/api/plants/{name}/image", s.handlePlantImage)
		r.Delete("/api/plants/{name}/cache", s.handlePlantCacheDelete)
		r.Post("/api/identify", s.handleIdentify)
		r.Get("/api/search/suggestions", s.handleSuggestions)
		r.Get("/api/stats/llm", s.handleLLMStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
