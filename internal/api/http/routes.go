package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"fleetrental-backend/internal/metrics"
	"fleetrental-backend/internal/security"
	"fleetrental-backend/internal/service"
)

// NewRouter wires the API surface: authenticated ledger operations under
// /api/v1 plus unauthenticated health and metrics endpoints.
func NewRouter(
	accountSvc service.AccountService,
	fleetSvc service.FleetService,
	rentalSvc service.RentalService,
	tokens security.TokenManager,
	collector *metrics.Collector,
) *mux.Router {
	accountHandler := NewAccountHandler(accountSvc)
	fleetHandler := NewFleetHandler(fleetSvc)
	rentalHandler := NewRentalHandler(rentalSvc)

	r := mux.NewRouter()
	r.Use(RequestIDMiddleware)
	r.Use(MetricsMiddleware(collector))

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)
	if collector != nil {
		r.Handle("/metrics", collector.Handler()).Methods(http.MethodGet)
	}

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(AuthMiddleware(tokens))

	api.HandleFunc("/accounts", accountHandler.OpenAccount).Methods(http.MethodPost)
	api.HandleFunc("/accounts/balance", accountHandler.GetBalance).Methods(http.MethodGet)
	api.HandleFunc("/accounts/deposit", accountHandler.Deposit).Methods(http.MethodPost)
	api.HandleFunc("/accounts/withdraw", accountHandler.Withdraw).Methods(http.MethodPost)

	api.HandleFunc("/cars", fleetHandler.RegisterCar).Methods(http.MethodPost)
	api.HandleFunc("/cars", fleetHandler.ListCars).Methods(http.MethodGet)
	api.HandleFunc("/cars/{id}", fleetHandler.GetCar).Methods(http.MethodGet)

	api.HandleFunc("/rentals", rentalHandler.BeginRental).Methods(http.MethodPost)
	api.HandleFunc("/rentals/{id}/end", rentalHandler.EndRental).Methods(http.MethodPost)
	api.HandleFunc("/rentals/{id}", rentalHandler.GetRental).Methods(http.MethodGet)

	return r
}
