package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// buildRouter creates the HTTP router with all routes and middleware.
//
// The /sensor prefix is the device and operator surface; the paths match
// what the ESP32 firmware and the dashboard already call.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.corsMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	// Health check
	r.Get("/health", s.handleHealth)

	r.Route("/sensor", func(r chi.Router) {
		// Device-facing endpoints
		r.Post("/data", s.handleIngest)
		r.Get("/control/{actuatorID}", s.handlePoll)
		r.Post("/status", s.handleStatus)

		// Operator-facing endpoints
		r.Get("/dashboard", s.handleDashboard)
		r.Post("/command", s.handleCommand)
		r.Get("/commands", s.handleCommandLog)
	})

	// WebSocket fan-out for live viewers
	r.Get(s.wsPath(), s.handleWebSocket)

	return r
}

// wsPath returns the configured WebSocket endpoint path.
func (s *Server) wsPath() string {
	if s.wsCfg.Path == "" {
		return "/ws"
	}
	return s.wsCfg.Path
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
	})
}
