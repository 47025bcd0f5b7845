package handler

import (
	"net/http"

	"github.com/farmvale/cryptofarm/internal/ledger"
	"github.com/farmvale/cryptofarm/internal/logger"
)

// RegisterAccountRequest represents the request to register a new account
type RegisterAccountRequest struct {
	Username string `json:"username" validate:"required,min=3,max=100,excludesall= "`
}

// AccountHandler handles account-related HTTP requests
type AccountHandler struct {
	ledgerSvc ledger.Service
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(ledgerSvc ledger.Service) *AccountHandler {
	return &AccountHandler{ledgerSvc: ledgerSvc}
}

// Register handles the account registration endpoint. It returns the new
// account plus the session token that authenticates subsequent requests.
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req RegisterAccountRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Register account"); err != nil {
		return
	}

	result, err := h.ledgerSvc.Register(r.Context(), req.Username)
	if err != nil {
		respondServiceError(w, r, "Register account", err)
		return
	}

	log.Info("Account registered", "username", req.Username, "account_id", result.Account.ID)
	respondJSON(w, http.StatusCreated, DataResponse{
		Message: MsgRegisteredSuccess,
		Data:    result,
	})
}

// Get returns the authenticated account's current state
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	account, ok := requireAccount(w, r)
	if !ok {
		return
	}

	// Re-read rather than trusting the middleware snapshot; balances move fast
	fresh, err := h.ledgerSvc.GetAccount(r.Context(), account.ID)
	if err != nil {
		respondServiceError(w, r, "Get account", err)
		return
	}

	respondJSON(w, http.StatusOK, fresh)
}

// Daily handles the daily bonus claim endpoint
func (h *AccountHandler) Daily(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	account, ok := requireAccount(w, r)
	if !ok {
		return
	}

	result, err := h.ledgerSvc.DailyBonus(r.Context(), account.ID)
	if err != nil {
		respondServiceError(w, r, "Daily bonus", err)
		return
	}

	log.Info("Daily bonus claimed", "account_id", account.ID, "credited", result.Credited)
	respondJSON(w, http.StatusOK, result)
}
