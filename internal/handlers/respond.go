package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"eventhub/internal/services"
)

func respondWithError(w http.ResponseWriter, code int, errorCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{
		"error":   errorCode,
		"message": message,
	})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

// respondServiceError maps service sentinels onto the HTTP taxonomy:
// 404 for unknown ids, 403 for ownership, 409 for conflicts, 400 for
// everything the caller could fix.
func respondServiceError(w http.ResponseWriter, err error) {
	var conflict *services.RoomConflictError
	switch {
	case errors.Is(err, services.ErrNotFound):
		respondWithError(w, http.StatusNotFound, "not_found", "Resource not found")
	case errors.Is(err, services.ErrForbidden):
		respondWithError(w, http.StatusForbidden, "forbidden", "You do not have permission to do that")
	case errors.As(err, &conflict):
		respondWithError(w, http.StatusConflict, "room_conflict", conflict.Error())
	case errors.Is(err, services.ErrEventFull):
		respondWithError(w, http.StatusConflict, "event_full", err.Error())
	case errors.Is(err, services.ErrAlreadyRegistered):
		respondWithError(w, http.StatusConflict, "already_registered", err.Error())
	case errors.Is(err, services.ErrAlreadyInvited):
		respondWithError(w, http.StatusConflict, "already_invited", err.Error())
	case errors.Is(err, services.ErrInvitationClosed):
		respondWithError(w, http.StatusConflict, "invitation_closed", err.Error())
	case errors.Is(err, services.ErrAlreadyCheckedIn):
		respondWithError(w, http.StatusConflict, "already_checked_in", err.Error())
	case errors.Is(err, services.ErrNotCheckedIn):
		respondWithError(w, http.StatusBadRequest, "not_checked_in", err.Error())
	case errors.Is(err, services.ErrEventEnded):
		respondWithError(w, http.StatusBadRequest, "event_ended", err.Error())
	case errors.Is(err, services.ErrWrongEventType):
		respondWithError(w, http.StatusBadRequest, "wrong_event_type", err.Error())
	case errors.Is(err, services.ErrNotRegistered):
		respondWithError(w, http.StatusBadRequest, "not_registered", err.Error())
	case errors.Is(err, services.ErrNotApprovedSpeaker):
		respondWithError(w, http.StatusBadRequest, "not_approved_speaker", err.Error())
	case errors.Is(err, services.ErrDiscountNotFound),
		errors.Is(err, services.ErrDiscountExpired),
		errors.Is(err, services.ErrDiscountLimitReached):
		respondWithError(w, http.StatusBadRequest, "invalid_discount", err.Error())
	default:
		respondWithError(w, http.StatusBadRequest, "request_failed", err.Error())
	}
}
