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

type TicketHandler struct {
	ticketService *services.TicketService
	logger        zerolog.Logger
}

func NewTicketHandler(db *sql.DB, logger zerolog.Logger, m *mailer.Mailer) *TicketHandler {
	eventService := services.NewEventService(db, logger)
	discountService := services.NewDiscountService(db, logger)
	return &TicketHandler{
		ticketService: services.NewTicketService(db, logger, eventService, discountService, m),
		logger:        logger,
	}
}

func (h *TicketHandler) eventIDFromPath(w http.ResponseWriter, r *http.Request) (int, bool) {
	eventID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_event_id", "Invalid event ID")
		return 0, false
	}
	return eventID, true
}

func (h *TicketHandler) Register(w http.ResponseWriter, r *http.Request) {
	eventID, ok := h.eventIDFromPath(w, r)
	if !ok {
		return
	}
	userID, ok := middleware.GetUserID(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized", "User not authenticated")
		return
	}

	ticket, err := h.ticketService.RegisterFree(eventID, userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, ticket)
}

func (h *TicketHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	eventID, ok := h.eventIDFromPath(w, r)
	if !ok {
		return
	}
	userID, ok := middleware.GetUserID(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized", "User not authenticated")
		return
	}

	var req models.PurchaseRequest
	if r.Body != nil {
		// Body is optional; a bare purchase has no discount code.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	resp, err := h.ticketService.PurchasePaid(eventID, userID, req.DiscountCode)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, resp)
}

func (h *TicketHandler) Unregister(w http.ResponseWriter, r *http.Request) {
	eventID, ok := h.eventIDFromPath(w, r)
	if !ok {
		return
	}
	userID, ok := middleware.GetUserID(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized", "User not authenticated")
		return
	}

	if err := h.ticketService.Unregister(eventID, userID); err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Registration cancelled"})
}

func (h *TicketHandler) MyTickets(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized", "User not authenticated")
		return
	}

	tickets, err := h.ticketService.ListUserTickets(userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, tickets)
}

func (h *TicketHandler) EventTickets(w http.ResponseWriter, r *http.Request) {
	eventID, ok := h.eventIDFromPath(w, r)
	if !ok {
		return
	}
	userID, ok := middleware.GetUserID(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized", "User not authenticated")
		return
	}
	userRole, _ := middleware.GetUserRole(r)

	attendees, err := h.ticketService.ListEventTickets(eventID, userID, userRole)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, attendees)
}

func (h *TicketHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.ticketService.CheckIn)
}

func (h *TicketHandler) CheckOut(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.ticketService.CheckOut)
}

func (h *TicketHandler) transition(w http.ResponseWriter, r *http.Request, op func(*models.CheckInRequest, int, string) (*models.Ticket, error)) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized", "User not authenticated")
		return
	}
	userRole, _ := middleware.GetUserRole(r)

	var req models.CheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	ticket, err := op(&req, userID, userRole)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, ticket)
}

func (h *TicketHandler) Statistics(w http.ResponseWriter, r *http.Request) {
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

	stats, err := h.ticketService.Statistics(eventID, userID, userRole)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, stats)
}

func (h *TicketHandler) StatisticsAll(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized", "User not authenticated")
		return
	}
	userRole, _ := middleware.GetUserRole(r)

	stats, err := h.ticketService.StatisticsAll(userID, userRole)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, stats)
}
