package server

import (
	"fmt"
	"log"
	"net/http"

	"feedbackpulse/internal/handler"
	"feedbackpulse/internal/middleware"
)

// Server wraps the HTTP server
type Server struct {
	port           string
	api            *handler.API
	authMiddleware *middleware.AuthMiddleware
}

// New creates a new HTTP server
func New(port string, authToken string, api *handler.API) *Server {
	return &Server{
		port:           port,
		api:            api,
		authMiddleware: middleware.NewAuthMiddleware(authToken),
	}
}

// SetupRoutes configures HTTP routes
func (s *Server) SetupRoutes() {
	auth := s.authMiddleware.Authenticate
	http.HandleFunc("/ingest", auth(s.api.HandleIngest))
	http.HandleFunc("/dashboard", auth(s.api.HandleDashboard))
	http.HandleFunc("/feedback", auth(s.api.HandleRecent))
	http.HandleFunc("/ask", auth(s.api.HandleAsk))
	http.HandleFunc("/summary", auth(s.api.HandleSummary))
	http.HandleFunc("/trends", auth(s.api.HandleTrends))
	http.HandleFunc("/health", handler.HandleHealth)
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.SetupRoutes()

	log.Printf("HTTP server listening on :%s", s.port)
	if err := http.ListenAndServe(":"+s.port, nil); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
