// Package api provides the HTTP API server and handlers for the DuelDisk application.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dueldisk/dueldisk-server/internal/cardsource"
	"github.com/dueldisk/dueldisk-server/internal/http/response"
	"github.com/dueldisk/dueldisk-server/internal/service"
	"github.com/dueldisk/dueldisk-server/internal/state"
	"github.com/dueldisk/dueldisk-server/internal/store"
	"github.com/dueldisk/dueldisk-server/internal/validation"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store      *store.Store
	collection *service.CollectionService
	decks      *service.DeckService
	source     cardsource.Source
	snapshot   *state.Snapshot
	validator  *validation.Validator
	router     *chi.Mux
	logger     *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
// source may be nil when no AI key is configured; scan, search, and wizard
// endpoints then report the source as unavailable.
func NewServer(
	store *store.Store,
	collection *service.CollectionService,
	decks *service.DeckService,
	source cardsource.Source,
	snapshot *state.Snapshot,
	logger *slog.Logger,
) *Server {
	s := &Server{
		store:      store,
		collection: collection,
		decks:      decks,
		source:     source,
		snapshot:   snapshot,
		validator:  validation.New(),
		router:     chi.NewRouter(),
		logger:     logger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Health check.
	s.router.Get("/health", s.handleHealthCheck)

	// The AI endpoints are expensive upstream; keep clients honest.
	sourceLimiter := NewRateLimiter(20, time.Minute, 5)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealthCheck)

		r.Route("/cards", func(r chi.Router) {
			r.Get("/", s.handleListCards)
			r.Post("/", s.handleAddCard)
			r.Get("/{id}", s.handleGetCard)
			r.Delete("/{id}", s.handleRemoveCopies)
		})

		r.Route("/decks", func(r chi.Router) {
			r.Get("/", s.handleListDecks)
			r.Post("/", s.handleCreateDeck)
			r.Get("/{id}", s.handleGetDeck)
			r.Delete("/{id}", s.handleDeleteDeck)
			r.Put("/{id}/notes", s.handleUpdateDeckNotes)
			r.Post("/{id}/cards", s.handleAddCardToDeck)
			r.Delete("/{id}/cards", s.handleRemoveCardFromDeck)
		})

		r.Get("/search", s.handleSearch)

		r.Group(func(r chi.Router) {
			r.Use(RateLimitMiddleware(sourceLimiter, s.logger))
			r.Post("/scan", s.handleScan)
			r.Post("/wizard/deck", s.handleWizardDeck)
		})

		r.Route("/backup", func(r chi.Router) {
			r.Get("/export", s.handleExport)
			r.Post("/import", s.handleImport)
		})
	})
}

// handleHealthCheck returns server health status.
func (s *Server) handleHealthCheck(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, map[string]string{
		"status": "healthy",
	}, s.logger)
}
