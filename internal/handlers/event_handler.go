package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"

	"eventhub/internal/middleware"
	"eventhub/internal/models"
	"eventhub/internal/services"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

type EventHandler struct {
	eventService *services.EventService
	logger       zerolog.Logger
}

func NewEventHandler(db *sql.DB, logger zerolog.Logger) *EventHandler {
	return &EventHandler{
		eventService: services.NewEventService(db, logger),
		logger:       logger,
	}
}

func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized", "User not authenticated")
		return
	}

	var req models.CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	event, err := h.eventService.Create(userID, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, event)
}

func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.EventFilter{Category: q.Get("category")}

	if v := q.Get("isFree"); v != "" {
		isFree := v == "true"
		filter.IsFree = &isFree
	}
	if v := q.Get("featured"); v != "" {
		featured := v == "true"
		filter.Featured = &featured
	}
	if v := q.Get("upcoming"); v != "" {
		upcoming := v == "true"
		filter.Upcoming = &upcoming
	}

	events, err := h.eventService.ListEvents(filter)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, events)
}

func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	eventID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_event_id", "Invalid event ID")
		return
	}

	event, err := h.eventService.GetEventByID(eventID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, event)
}

func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	eventID, err := strconv.Atoi(mux.Vars(r)["id"])
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

	var req models.UpdateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	event, err := h.eventService.Update(eventID, userID, userRole, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, event)
}

func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	eventID, err := strconv.Atoi(mux.Vars(r)["id"])
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

	if err := h.eventService.Delete(eventID, userID, userRole); err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Event deleted"})
}

func (h *EventHandler) MyEvents(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized", "User not authenticated")
		return
	}

	events, err := h.eventService.ListByOrganizer(userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, events)
}
