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

type DiscountHandler struct {
	discountService *services.DiscountService
	logger          zerolog.Logger
}

func NewDiscountHandler(db *sql.DB, logger zerolog.Logger) *DiscountHandler {
	return &DiscountHandler{
		discountService: services.NewDiscountService(db, logger),
		logger:          logger,
	}
}

func (h *DiscountHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized", "User not authenticated")
		return
	}

	var req models.CreateDiscountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	code, err := h.discountService.Create(userID, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, code)
}

func (h *DiscountHandler) List(w http.ResponseWriter, r *http.Request) {
	codes, err := h.discountService.List()
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, codes)
}

func (h *DiscountHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_discount_id", "Invalid discount ID")
		return
	}

	var req models.UpdateDiscountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	code, err := h.discountService.Update(id, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, code)
}

func (h *DiscountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_discount_id", "Invalid discount ID")
		return
	}

	if err := h.discountService.Delete(id); err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Discount code deleted"})
}

func (h *DiscountHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var req models.ValidateDiscountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if req.Code == "" {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "Discount code is required")
		return
	}

	resp, err := h.discountService.Validate(&req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, resp)
}
