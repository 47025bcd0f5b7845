package handler

import (
	"net/http"

	"github.com/farmvale/cryptofarm/internal/inventory"
	"github.com/farmvale/cryptofarm/internal/logger"
)

// InventoryHandler handles inventory HTTP requests
type InventoryHandler struct {
	inventorySvc inventory.Service
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(inventorySvc inventory.Service) *InventoryHandler {
	return &InventoryHandler{inventorySvc: inventorySvc}
}

// Get returns the authenticated account's inventory
func (h *InventoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	account, ok := requireAccount(w, r)
	if !ok {
		return
	}

	views, err := h.inventorySvc.List(r.Context(), account.ID)
	if err != nil {
		logger.FromContext(r.Context()).Error("Get inventory failed",
			"error", err, "account_id", account.ID)
		respondError(w, http.StatusInternalServerError, ErrMsgGetInventoryFailed)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Data: views})
}
