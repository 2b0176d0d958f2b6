// Package server provides the HTTP server for the GestureTree renderer
// front-end: the photo API, the camera stream, and the scene WebSocket.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ayusman/gesturetree/internal/capture"
	"github.com/ayusman/gesturetree/internal/server/api"
	"github.com/ayusman/gesturetree/internal/store"
)

// Config holds the server configuration.
type Config struct {
	StaticDir string
	Store     *store.Store
	Camera    capture.Camera
	Scene     *SceneHandler

	// OnUpload and OnDelete run after a photo is stored or removed, so
	// the scene can grow or shed an ornament without a restart.
	OnUpload func(p *store.Photo)
	OnDelete func(id string)
}

// Server represents the HTTP server for the GestureTree application.
type Server struct {
	config Config
	mux    *http.ServeMux
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

	// Register photo API handler if Store is configured
	if s.config.Store != nil {
		photoHandler := api.NewPhotoHandler(s.config.Store)
		photoHandler.OnUpload = s.config.OnUpload
		photoHandler.OnDelete = s.config.OnDelete

		s.mux.Handle("/api/photos", photoHandler)
		s.mux.Handle("/api/photos/", photoHandler)
	}

	// Register camera stream endpoint if Camera is configured
	if s.config.Camera != nil {
		streamHandler := NewStreamHandler(s.config.Camera)
		s.mux.Handle("/api/stream", streamHandler)
	}

	// Register scene WebSocket endpoint if a scene handler is configured
	if s.config.Scene != nil {
		s.mux.Handle("/api/scene", s.config.Scene)
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
