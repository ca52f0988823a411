package http

import (
	"encoding/json"
	"net/http"

	"fleetrental-backend/internal/service"
)

type RentalHandler struct {
	rentalSvc service.RentalService
}

func NewRentalHandler(rentalSvc service.RentalService) *RentalHandler {
	return &RentalHandler{rentalSvc: rentalSvc}
}

type beginRentalRequest struct {
	CarID     uint64 `json:"car_id"`
	StartDate uint64 `json:"start_date"`
	EndDate   uint64 `json:"end_date"`
}

type beginRentalResponse struct {
	RentID   uint64 `json:"rent_id"`
	RentCost uint64 `json:"rent_cost"`
}

func (h *RentalHandler) BeginRental(w http.ResponseWriter, r *http.Request) {
	address, ok := CallerAddress(r.Context())
	if !ok {
		writeErrorMessage(w, http.StatusUnauthorized, "caller identity missing")
		return
	}

	var req beginRentalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rent, err := h.rentalSvc.BeginRental(r.Context(), address, req.CarID, req.StartDate, req.EndDate)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, beginRentalResponse{RentID: rent.ID, RentCost: rent.RentCost})
}

func (h *RentalHandler) EndRental(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid rent id")
		return
	}

	rent, err := h.rentalSvc.EndRental(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rent)
}

func (h *RentalHandler) GetRental(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid rent id")
		return
	}

	rent, err := h.rentalSvc.GetRental(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rent)
}
