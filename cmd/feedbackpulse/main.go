package main

import (
	"log"

	"feedbackpulse/internal/app"
	"feedbackpulse/internal/handler"
	"feedbackpulse/internal/server"
)

func main() {
	// Initialize application
	application, err := app.New()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer application.Store.Close()

	// Log startup information
	application.LogStartupInfo()

	// Create and start HTTP server
	api := handler.NewAPI(application.Pipeline, application.Analytics, application.Insights, application.Store)
	srv := server.New(application.Config.Port, application.Config.APIAuthToken, api)
	if err := srv.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
