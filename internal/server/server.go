// Package server provides the HTTP server for the Sigil stroke recognition system.
package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/ayusman/sigil/internal/app"
	"github.com/ayusman/sigil/internal/server/api"
)

// Config holds the server configuration.
type Config struct {
	StaticDir string
	App       *app.App
}

// Server represents the HTTP server for the Sigil application.
type Server struct {
	config Config
	mux    *http.ServeMux
	events *EventsHandler
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	// Register the recognition API if an App is configured
	if a := s.config.App; a != nil {
		templateHandler := api.NewTemplateHandler(a)
		samplesHandler := api.NewSamplesHandler(a)
		previewHandler := api.NewPreviewHandler(a)

		// Route /api/templates/{id}/samples and /preview to their own handlers
		templateRouter := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch {
			case strings.HasSuffix(r.URL.Path, "/samples"):
				samplesHandler.ServeHTTP(w, r)
			case strings.HasSuffix(r.URL.Path, "/preview"):
				previewHandler.ServeHTTP(w, r)
			default:
				templateHandler.ServeHTTP(w, r)
			}
		})

		s.mux.Handle("/api/templates", templateRouter)
		s.mux.Handle("/api/templates/", templateRouter)
		s.mux.Handle("/api/recognize", api.NewRecognizeHandler(a))
		s.mux.Handle("/api/analyze", api.NewAnalyzeHandler(a))

		spellHandler := api.NewSpellHandler(a)
		s.mux.Handle("/api/spells", spellHandler)
		s.mux.Handle("/api/spells/", spellHandler)

		s.mux.Handle("/api/strokes", NewStrokesHandler(a))

		s.events = NewEventsHandler()
		a.RegisterMatchCallback(s.events.Publish)
		s.mux.Handle("/api/events", s.events)
	}

	// Serve static files if StaticDir is configured
	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(s.start)

	response := map[string]interface{}{
		"status": "ok",
		"uptime": uptime.String(),
	}
	if a := s.config.App; a != nil {
		response["templates"] = len(a.Templates())
		response["enabled"] = a.IsEnabled()
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
