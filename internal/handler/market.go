package handler

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/farmvale/cryptofarm/internal/logger"
	"github.com/farmvale/cryptofarm/internal/market"
)

// ListItemRequest represents the request to list an owned item for sale.
// Price is in the reference fiat currency and frozen for the listing's life.
type ListItemRequest struct {
	RowID string          `json:"row_id" validate:"required,uuid4"`
	Price decimal.Decimal `json:"price" validate:"required"`
}

// MarketBuyRequest represents the request to buy a marketplace listing
type MarketBuyRequest struct {
	ListingID string `json:"listing_id" validate:"required,uuid4"`
}

// MarketSellRequest represents the request to sell an item back to the catalog
type MarketSellRequest struct {
	RowID string `json:"row_id" validate:"required,uuid4"`
}

// WithdrawRequest represents the request to withdraw a listing
type WithdrawRequest struct {
	ListingID string `json:"listing_id" validate:"required,uuid4"`
}

// MarketHandler handles marketplace HTTP requests
type MarketHandler struct {
	marketSvc market.Service
}

// NewMarketHandler creates a new marketplace handler
func NewMarketHandler(marketSvc market.Service) *MarketHandler {
	return &MarketHandler{marketSvc: marketSvc}
}

// Browse returns all open listings with live converted prices
func (h *MarketHandler) Browse(w http.ResponseWriter, r *http.Request) {
	views, err := h.marketSvc.Browse(r.Context())
	if err != nil {
		logger.FromContext(r.Context()).Error("Get marketplace failed", "error", err)
		respondError(w, http.StatusInternalServerError, ErrMsgGetMarketplaceFailed)
		return
	}
	respondJSON(w, http.StatusOK, DataResponse{Data: views})
}

// List moves an owned item into a marketplace listing
func (h *MarketHandler) List(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	account, ok := requireAccount(w, r)
	if !ok {
		return
	}

	var req ListItemRequest
	if err := DecodeAndValidateRequest(r, w, &req, "List item"); err != nil {
		return
	}

	listing, err := h.marketSvc.List(r.Context(), account.ID, req.RowID, req.Price)
	if err != nil {
		respondServiceError(w, r, "List item", err)
		return
	}

	log.Info("Item listed", "account_id", account.ID, "listing_id", listing.ID, "price", req.Price)
	respondJSON(w, http.StatusCreated, DataResponse{
		Message: MsgListedSuccess,
		Data:    listing,
	})
}

// Buy purchases a marketplace listing
func (h *MarketHandler) Buy(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	account, ok := requireAccount(w, r)
	if !ok {
		return
	}

	var req MarketBuyRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Market buy"); err != nil {
		return
	}

	result, err := h.marketSvc.Buy(r.Context(), account.ID, req.ListingID)
	if err != nil {
		respondServiceError(w, r, "Market buy", err)
		return
	}

	log.Info("Listing bought", "account_id", account.ID,
		"listing_id", req.ListingID, "cost", result.Cost)
	respondJSON(w, http.StatusOK, result)
}

// Sell sells an owned item straight back to the catalog
func (h *MarketHandler) Sell(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	account, ok := requireAccount(w, r)
	if !ok {
		return
	}

	var req MarketSellRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Sell item"); err != nil {
		return
	}

	result, err := h.marketSvc.Sell(r.Context(), account.ID, req.RowID)
	if err != nil {
		respondServiceError(w, r, "Sell item", err)
		return
	}

	log.Info("Item sold", "account_id", account.ID, "row_id", req.RowID,
		"proceeds", result.Proceeds)
	respondJSON(w, http.StatusOK, result)
}

// Withdraw returns a listed item to the seller's inventory
func (h *MarketHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	account, ok := requireAccount(w, r)
	if !ok {
		return
	}

	var req WithdrawRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Withdraw listing"); err != nil {
		return
	}

	item, err := h.marketSvc.Withdraw(r.Context(), account.ID, req.ListingID)
	if err != nil {
		respondServiceError(w, r, "Withdraw listing", err)
		return
	}

	log.Info("Listing withdrawn", "account_id", account.ID, "listing_id", req.ListingID)
	respondJSON(w, http.StatusOK, DataResponse{
		Message: MsgWithdrawnSuccess,
		Data:    item,
	})
}
