package router

import (
	"database/sql"
	"net/http"

	"eventhub/internal/config"
	"eventhub/internal/handlers"
	"eventhub/internal/mailer"
	"eventhub/internal/middleware"
	"eventhub/internal/models"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

func SetupRouter(db *sql.DB, logger zerolog.Logger, cfg config.Config) *mux.Router {
	m := mailer.New(cfg, logger)

	authHandler := handlers.NewAuthHandler(db, logger)
	userHandler := handlers.NewUserHandler(db, logger, m)
	eventHandler := handlers.NewEventHandler(db, logger)
	ticketHandler := handlers.NewTicketHandler(db, logger, m)
	discountHandler := handlers.NewDiscountHandler(db, logger)
	invitationHandler := handlers.NewInvitationHandler(db, logger, m)

	jwtSecret := cfg.JWTSecret
	if jwtSecret == "" {
		jwtSecret = "default-secret-key-change-in-production"
		logger.Warn().Msg("JWT_SECRET not set, using default key")
	}
	auth := middleware.Authentication(jwtSecret, logger)
	adminOnly := middleware.RequireRole(string(models.RoleAdmin))

	r := mux.NewRouter()

	rateLimiter := middleware.NewRateLimiter(rate.Limit(50), 100)

	r.Use(middleware.ErrorHandling(logger))
	r.Use(middleware.PerformanceMonitoring(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS())
	r.Use(rateLimiter.Middleware())

	api := r.PathPrefix("/api").Subrouter()

	authRoutes := api.PathPrefix("/auth").Subrouter()
	authRoutes.HandleFunc("/register", authHandler.Register).Methods("POST")
	authRoutes.HandleFunc("/login", authHandler.Login).Methods("POST")

	protectedAuth := authRoutes.PathPrefix("").Subrouter()
	protectedAuth.Use(auth)
	protectedAuth.HandleFunc("/change-password", authHandler.ChangePassword).Methods("PUT")

	// Public event reads.
	api.HandleFunc("/events", eventHandler.List).Methods("GET")
	api.HandleFunc("/events/{id:[0-9]+}", eventHandler.Get).Methods("GET")

	events := api.PathPrefix("/events").Subrouter()
	events.Use(auth)
	events.Use(middleware.RequestValidation())
	events.HandleFunc("", eventHandler.Create).Methods("POST")
	events.HandleFunc("/my-events", eventHandler.MyEvents).Methods("GET")
	events.HandleFunc("/my-tickets", ticketHandler.MyTickets).Methods("GET")
	events.HandleFunc("/statistics/all", ticketHandler.StatisticsAll).Methods("GET")
	events.HandleFunc("/speakers/approved", invitationHandler.ApprovedSpeakers).Methods("GET")
	events.HandleFunc("/tickets/check-in", ticketHandler.CheckIn).Methods("POST")
	events.HandleFunc("/tickets/check-out", ticketHandler.CheckOut).Methods("POST")
	events.HandleFunc("/{id:[0-9]+}", eventHandler.Update).Methods("PUT")
	events.HandleFunc("/{id:[0-9]+}", eventHandler.Delete).Methods("DELETE")
	events.HandleFunc("/{id:[0-9]+}/register", ticketHandler.Register).Methods("POST")
	events.HandleFunc("/{id:[0-9]+}/purchase-ticket", ticketHandler.Purchase).Methods("POST")
	events.HandleFunc("/{id:[0-9]+}/unregister", ticketHandler.Unregister).Methods("POST")
	events.HandleFunc("/{id:[0-9]+}/tickets", ticketHandler.EventTickets).Methods("GET")
	events.HandleFunc("/{eventId:[0-9]+}/statistics", ticketHandler.Statistics).Methods("GET")
	events.HandleFunc("/{eventId:[0-9]+}/invite-speaker", invitationHandler.Invite).Methods("POST")
	events.HandleFunc("/{eventId:[0-9]+}/invitations", invitationHandler.ListForEvent).Methods("GET")

	users := api.PathPrefix("/users").Subrouter()
	users.Use(auth)
	users.Use(middleware.RequestValidation())
	users.HandleFunc("/me", userHandler.Me).Methods("GET")
	users.HandleFunc("/me", userHandler.UpdateMe).Methods("PUT")
	users.HandleFunc("/me/speaker-invitations", userHandler.MySpeakerInvitations).Methods("GET")
	users.HandleFunc("/speaker-invitations/{id:[0-9]+}/respond", userHandler.RespondInvitation).Methods("PUT")
	users.HandleFunc("/request-speaker", userHandler.RequestSpeaker).Methods("POST")
	users.HandleFunc("/{userId:[0-9]+}/profile", userHandler.GetProfile).Methods("GET")

	speakerAdmin := users.PathPrefix("/speaker-requests").Subrouter()
	speakerAdmin.Use(adminOnly)
	speakerAdmin.HandleFunc("", userHandler.ListSpeakerRequests).Methods("GET")
	speakerAdmin.HandleFunc("/{userId:[0-9]+}", userHandler.DecideSpeakerRequest).Methods("PUT")

	discounts := api.PathPrefix("/discounts").Subrouter()
	discounts.Use(auth)
	discounts.Use(middleware.RequestValidation())
	discounts.HandleFunc("/validate", discountHandler.Validate).Methods("POST")

	discountAdmin := discounts.PathPrefix("").Subrouter()
	discountAdmin.Use(adminOnly)
	discountAdmin.HandleFunc("", discountHandler.Create).Methods("POST")
	discountAdmin.HandleFunc("", discountHandler.List).Methods("GET")
	discountAdmin.HandleFunc("/{id:[0-9]+}", discountHandler.Update).Methods("PUT")
	discountAdmin.HandleFunc("/{id:[0-9]+}", discountHandler.Delete).Methods("DELETE")

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	return r
}
