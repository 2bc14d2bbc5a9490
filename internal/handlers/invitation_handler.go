package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"

	"eventhub/internal/mailer"
	"eventhub/internal/middleware"
	"eventhub/internal/models"
	"eventhub/internal/services"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

type InvitationHandler struct {
	invitationService *services.InvitationService
	userService       *services.UserService
	logger            zerolog.Logger
}

func NewInvitationHandler(db *sql.DB, logger zerolog.Logger, m *mailer.Mailer) *InvitationHandler {
	userService := services.NewUserService(db, logger)
	eventService := services.NewEventService(db, logger)
	return &InvitationHandler{
		invitationService: services.NewInvitationService(db, logger, eventService, userService, m),
		userService:       userService,
		logger:            logger,
	}
}

func (h *InvitationHandler) ApprovedSpeakers(w http.ResponseWriter, r *http.Request) {
	speakers, err := h.userService.ListApprovedSpeakers()
	if err != nil {
		respondServiceError(w, err)
		return
	}

	profiles := make([]*models.PublicProfile, 0, len(speakers))
	for _, s := range speakers {
		profiles = append(profiles, s.Public())
	}
	respondWithJSON(w, http.StatusOK, profiles)
}

func (h *InvitationHandler) Invite(w http.ResponseWriter, r *http.Request) {
	eventID, err := strconv.Atoi(mux.Vars(r)["eventId"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_event_id", "Invalid event ID")
		return
	}
	userID, ok := middleware.GetUserID(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized", "User not authenticated")
		return
	}
	userRole, _ := middleware.GetUserRole(r)

	var req models.InviteSpeakerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	invitation, err := h.invitationService.Invite(eventID, userID, userRole, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, invitation)
}

func (h *InvitationHandler) ListForEvent(w http.ResponseWriter, r *http.Request) {
	eventID, err := strconv.Atoi(mux.Vars(r)["eventId"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_event_id", "Invalid event ID")
		return
	}
	userID, ok := middleware.GetUserID(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized", "User not authenticated")
		return
	}
	userRole, _ := middleware.GetUserRole(r)

	invitations, err := h.invitationService.ListForEvent(eventID, userID, userRole)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, invitations)
}
