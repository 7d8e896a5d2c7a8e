package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/eventdesk/eventdesk-api/internal/auth"
	"github.com/eventdesk/eventdesk-api/internal/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func created(o *huma.Operation) { o.DefaultStatus = http.StatusCreated }

func noContent(o *huma.Operation) { o.DefaultStatus = http.StatusNoContent }

func secured(o *huma.Operation) {
	o.Security = []map[string][]string{{"bearerAuth": {}}}
}

func RegisterRoutes(
	r *chi.Mux,
	cfg *config.Config,
	authHandler *auth.AuthHandler,
	userHandler *UserHandler,
	eventHandler *EventHandler,
	inscriptionHandler *InscriptionHandler,
	ratingHandler *RatingHandler,
	dashboardHandler *DashboardHandler,
) {
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	if cfg.EnableCORS {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		}))
	}

	humaConfig := huma.DefaultConfig("EventDesk API", "1.0.0")
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearerAuth": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "JWT",
		},
	}
	api := humachi.New(r, humaConfig)

	// Plain routes: liveness banner and the form-encoded credential exchange.
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Event management API"))
	})
	r.Post("/token", authHandler.HandleToken)

	// Users
	huma.Post(api, "/users", userHandler.HandleRegister, created)
	huma.Get(api, "/users/me", userHandler.HandleMe, secured)
	huma.Put(api, "/users/me", userHandler.HandleUpdateMe, secured)
	huma.Get(api, "/users/me/inscriptions", inscriptionHandler.HandleMyInscriptions, secured)
	huma.Get(api, "/users/all", userHandler.HandleListUsers, secured)
	huma.Put(api, "/users/{id}", userHandler.HandleAdminUpdateUser, secured)
	huma.Delete(api, "/users/{id}", userHandler.HandleDeleteUser, secured, noContent)

	// Events
	huma.Post(api, "/events", eventHandler.HandleCreateEvent, secured, created)
	huma.Get(api, "/events", eventHandler.HandleListEvents)
	huma.Get(api, "/events/{id}", eventHandler.HandleGetEvent)
	huma.Put(api, "/events/{id}", eventHandler.HandleUpdateEvent, secured)
	huma.Delete(api, "/events/{id}", eventHandler.HandleDeleteEvent, secured, noContent)
	huma.Get(api, "/dashboard/stats", dashboardHandler.HandleStats, secured)

	// Inscriptions
	huma.Post(api, "/events/{id}/inscribe", inscriptionHandler.HandleInscribe, created)
	huma.Get(api, "/events/{id}/inscriptions", inscriptionHandler.HandleListInscriptions, secured)
	huma.Put(api, "/inscriptions/{id}/checkin", inscriptionHandler.HandleCheckIn, secured)
	huma.Delete(api, "/inscriptions/{id}", inscriptionHandler.HandleCancel, noContent)

	// Ratings
	huma.Post(api, "/ratings", ratingHandler.HandleCreateRating, secured, created)
	huma.Get(api, "/ratings/event/{id}", ratingHandler.HandleListEventRatings)
}
