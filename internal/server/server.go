package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/meltforce/repbook/internal/storage"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	db     *storage.DB
	log    *slog.Logger
	apiKey string
	router chi.Router
}

// New creates a new Server with all routes configured.
func New(db *storage.DB, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		db:     db,
		log:    log,
		apiKey: apiKey,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Route("/api/v1", func(r chi.Router) {
		// Read endpoints (no auth — tsnet handles access)
		r.Get("/routines", s.handleListRoutines)
		r.Get("/routines/active", s.handleGetActiveRoutine)
		r.Get("/routines/{id}", s.handleGetRoutine)
		r.Get("/progress", s.handleGetProgress)
		r.Get("/progress/trend", s.handleGetTrend)
		r.Get("/notes", s.handleGetNotes)
		r.Get("/log", s.handleGetLog)
		r.Get("/log/volume", s.handleGetVolume)

		// Write endpoints (API key required)
		r.Group(func(r chi.Router) {
			r.Use(APIKeyAuth(s.apiKey))
			r.Put("/routines/{id}", s.handlePutRoutine)
			r.Delete("/routines/{id}", s.handleDeleteRoutine)
			r.Post("/routines/{id}/activate", s.handleActivateRoutine)
			r.Post("/progress", s.handlePostProgress)
			r.Post("/notes", s.handlePostNotes)
			r.Post("/log", s.handlePostLog)
		})
	})
}
