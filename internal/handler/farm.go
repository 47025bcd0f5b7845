package handler

import (
	"net/http"

	"github.com/farmvale/cryptofarm/internal/farm"
	"github.com/farmvale/cryptofarm/internal/logger"
)

// ClaimRequest represents the request to claim accrued currency for an item
type ClaimRequest struct {
	RowID string `json:"row_id" validate:"required,uuid4"`
}

// LevelUpRequest represents the request to level up an owned item
type LevelUpRequest struct {
	RowID string `json:"row_id" validate:"required,uuid4"`
}

// FarmHandler handles accrual and leveling HTTP requests
type FarmHandler struct {
	farmSvc farm.Service
}

// NewFarmHandler creates a new farm handler
func NewFarmHandler(farmSvc farm.Service) *FarmHandler {
	return &FarmHandler{farmSvc: farmSvc}
}

// Claim collects accrued currency for an owned item
func (h *FarmHandler) Claim(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	account, ok := requireAccount(w, r)
	if !ok {
		return
	}

	var req ClaimRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Claim"); err != nil {
		return
	}

	result, err := h.farmSvc.Claim(r.Context(), account.ID, req.RowID)
	if err != nil {
		respondServiceError(w, r, "Claim", err)
		return
	}

	log.Info("Claim complete", "account_id", account.ID, "row_id", req.RowID,
		"earned", result.Earned, "hours", result.HoursElapsed)
	respondJSON(w, http.StatusOK, result)
}

// LevelUp pays the level-up cost and increments the item's level
func (h *FarmHandler) LevelUp(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	account, ok := requireAccount(w, r)
	if !ok {
		return
	}

	var req LevelUpRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Level up"); err != nil {
		return
	}

	result, err := h.farmSvc.LevelUp(r.Context(), account.ID, req.RowID)
	if err != nil {
		respondServiceError(w, r, "Level up", err)
		return
	}

	log.Info("Level up complete", "account_id", account.ID, "row_id", req.RowID,
		"level", result.NewLevel, "cost", result.Cost)
	respondJSON(w, http.StatusOK, result)
}
