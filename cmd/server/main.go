package main

import (
	"net/http"

	"github.com/eventdesk/eventdesk-api/internal/admission"
	"github.com/eventdesk/eventdesk-api/internal/auth"
	"github.com/eventdesk/eventdesk-api/internal/config"
	"github.com/eventdesk/eventdesk-api/internal/database"
	"github.com/eventdesk/eventdesk-api/internal/events"
	"github.com/eventdesk/eventdesk-api/internal/handlers"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	// Load Configuration
	cfg := config.LoadConfig()

	// Connect to Database
	db := database.Connect(cfg)

	// Initialize Core Components
	authHandler := auth.NewAuthHandler(cfg, db)
	scheduler := events.NewScheduler(db)
	controller := admission.NewController(db)

	// Initialize Handlers
	userHandler := handlers.NewUserHandler(db, authHandler)
	eventHandler := handlers.NewEventHandler(db, scheduler, authHandler)
	inscriptionHandler := handlers.NewInscriptionHandler(db, controller, authHandler)
	ratingHandler := handlers.NewRatingHandler(db, authHandler)
	dashboardHandler := handlers.NewDashboardHandler(db, authHandler)

	// Initialize Router
	r := chi.NewRouter()

	// Register Routes
	handlers.RegisterRoutes(r, cfg, authHandler, userHandler, eventHandler, inscriptionHandler, ratingHandler, dashboardHandler)

	// Start Server
	log.Info().Msgf("Starting server on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server")
	}
}
