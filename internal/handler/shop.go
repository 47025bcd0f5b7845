package handler

import (
	"net/http"

	"github.com/farmvale/cryptofarm/internal/logger"
	"github.com/farmvale/cryptofarm/internal/shop"
)

// ShopBuyRequest represents the request to buy a catalog item
type ShopBuyRequest struct {
	CatalogRef string `json:"catalog_ref" validate:"required,max=100"`
}

// ShopHandler handles catalog shop HTTP requests
type ShopHandler struct {
	shopSvc shop.Service
}

// NewShopHandler creates a new shop handler
func NewShopHandler(shopSvc shop.Service) *ShopHandler {
	return &ShopHandler{shopSvc: shopSvc}
}

// Browse returns the catalog with live converted prices
func (h *ShopHandler) Browse(w http.ResponseWriter, r *http.Request) {
	views, err := h.shopSvc.Browse(r.Context())
	if err != nil {
		logger.FromContext(r.Context()).Error("Get catalog failed", "error", err)
		respondError(w, http.StatusInternalServerError, ErrMsgGetCatalogFailed)
		return
	}
	respondJSON(w, http.StatusOK, DataResponse{Data: views})
}

// Buy handles a catalog purchase
func (h *ShopHandler) Buy(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	account, ok := requireAccount(w, r)
	if !ok {
		return
	}

	var req ShopBuyRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Shop buy"); err != nil {
		return
	}

	result, err := h.shopSvc.Buy(r.Context(), account.ID, req.CatalogRef)
	if err != nil {
		respondServiceError(w, r, "Shop buy", err)
		return
	}

	log.Info("Shop purchase complete", "account_id", account.ID,
		"catalog_ref", req.CatalogRef, "cost", result.Cost)
	respondJSON(w, http.StatusOK, result)
}
