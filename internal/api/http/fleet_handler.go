package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"fleetrental-backend/internal/service"
)

type FleetHandler struct {
	fleetSvc service.FleetService
}

func NewFleetHandler(fleetSvc service.FleetService) *FleetHandler {
	return &FleetHandler{fleetSvc: fleetSvc}
}

type registerCarRequest struct {
	ID         uint64 `json:"id"`
	Name       string `json:"name"`
	Model      string `json:"model"`
	RentFee    uint64 `json:"rent_fee"`
	DepositFee uint64 `json:"deposit_fee"`
}

func (h *FleetHandler) RegisterCar(w http.ResponseWriter, r *http.Request) {
	var req registerCarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ID == 0 {
		writeErrorMessage(w, http.StatusBadRequest, "car id must be a positive integer")
		return
	}

	car, err := h.fleetSvc.RegisterCar(r.Context(), req.ID, req.Name, req.Model, req.RentFee, req.DepositFee)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, car)
}

func (h *FleetHandler) GetCar(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid car id")
		return
	}

	car, err := h.fleetSvc.GetCar(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, car)
}

func (h *FleetHandler) ListCars(w http.ResponseWriter, r *http.Request) {
	cars, err := h.fleetSvc.ListCars(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cars)
}

func pathID(r *http.Request, name string) (uint64, error) {
	return strconv.ParseUint(mux.Vars(r)[name], 10, 64)
}
