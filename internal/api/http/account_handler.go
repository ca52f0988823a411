package http

import (
	"context"
	"encoding/json"
	"net/http"

	"fleetrental-backend/internal/service"
)

type AccountHandler struct {
	accountSvc service.AccountService
}

func NewAccountHandler(accountSvc service.AccountService) *AccountHandler {
	return &AccountHandler{accountSvc: accountSvc}
}

type openAccountRequest struct {
	Name     string `json:"name"`
	Lastname string `json:"lastname"`
}

type amountRequest struct {
	Amount uint64 `json:"amount"`
}

type balanceResponse struct {
	Address string `json:"address"`
	Balance uint64 `json:"balance"`
}

func (h *AccountHandler) OpenAccount(w http.ResponseWriter, r *http.Request) {
	address, ok := CallerAddress(r.Context())
	if !ok {
		writeErrorMessage(w, http.StatusUnauthorized, "caller identity missing")
		return
	}

	var req openAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		writeErrorMessage(w, http.StatusBadRequest, "name is required")
		return
	}

	account, err := h.accountSvc.OpenAccount(r.Context(), address, req.Name, req.Lastname)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, account)
}

func (h *AccountHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	address, ok := CallerAddress(r.Context())
	if !ok {
		writeErrorMessage(w, http.StatusUnauthorized, "caller identity missing")
		return
	}

	balance, err := h.accountSvc.GetBalance(r.Context(), address)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, balanceResponse{Address: address, Balance: balance})
}

func (h *AccountHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	h.applyAmount(w, r, h.accountSvc.Deposit)
}

func (h *AccountHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	h.applyAmount(w, r, h.accountSvc.Withdraw)
}

func (h *AccountHandler) applyAmount(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, address string, amount uint64) (uint64, error)) {
	address, ok := CallerAddress(r.Context())
	if !ok {
		writeErrorMessage(w, http.StatusUnauthorized, "caller identity missing")
		return
	}

	var req amountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	balance, err := op(r.Context(), address, req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, balanceResponse{Address: address, Balance: balance})
}
