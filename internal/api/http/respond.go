package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"fleetrental-backend/internal/domain"
	"fleetrental-backend/internal/logger"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			logger.Error("Failed to encode response", "error", err)
		}
	}
}

func writeErrorMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeError maps the ledger's typed failures onto HTTP status codes:
// NotFound -> 404, conflicts -> 409, validation -> 400, insufficient
// balance -> 402, overflow -> 422, anything else -> 500 opaque storage error.
func writeError(w http.ResponseWriter, err error) {
	var (
		accountExists   *domain.AccountAlreadyExistsError
		accountNotFound *domain.AccountNotFoundError
		carExists       *domain.CarAlreadyExistsError
		carNotFound     *domain.CarNotFoundError
		carNotAvailable *domain.CarNotAvailableError
		carNotRented    *domain.CarNotRentedError
		rentClosed      *domain.RentAlreadyClosedError
		rentNotFound    *domain.RentNotFoundError
		invalidDates    *domain.InvalidDateRangeError
		insufficient    *domain.InsufficientBalanceError
		overflow        *domain.AmountOverflowError
		costOverflow    *domain.RentCostOverflowError
	)

	switch {
	case errors.As(err, &accountNotFound), errors.As(err, &carNotFound), errors.As(err, &rentNotFound):
		writeErrorMessage(w, http.StatusNotFound, err.Error())
	case errors.As(err, &accountExists), errors.As(err, &carExists),
		errors.As(err, &carNotAvailable), errors.As(err, &carNotRented),
		errors.As(err, &rentClosed):
		writeErrorMessage(w, http.StatusConflict, err.Error())
	case errors.As(err, &invalidDates):
		writeErrorMessage(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &insufficient):
		writeErrorMessage(w, http.StatusPaymentRequired, err.Error())
	case errors.As(err, &overflow), errors.As(err, &costOverflow):
		writeErrorMessage(w, http.StatusUnprocessableEntity, err.Error())
	default:
		logger.Error("Internal error", "error", err)
		writeErrorMessage(w, http.StatusInternalServerError, "internal error")
	}
}
