package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/farmvale/cryptofarm/internal/domain"
	"github.com/farmvale/cryptofarm/internal/logger"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := getBuffer()
	defer putBuffer(buf)

	// Encode to the buffer first; headers are already sent if encoding fails
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError writes the mapped user-facing error response. Domain
// outcomes (insufficient funds, cooldowns, missing rows) are expected results
// of the operation and logged at Info; only unmapped errors are failures.
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	status, userMsg := mapServiceErrorToUserMessage(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(opName+" failed", "error", err)
	} else {
		log.Info(opName+" rejected", "status", status, "reason", err)
	}
	respondError(w, status, userMsg)
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgUnknownError        = "Unknown error"
	ErrMsgAccountNotFoundErr  = "Account not found"
	ErrMsgAccountExistsErr    = "That username is already registered"
	ErrMsgItemNotFoundErr     = "Item not found"
	ErrMsgListingNotFoundErr  = "Listing not found"
	ErrMsgNotEnoughFundsErr   = "Not enough funds"
	ErrMsgInventoryFullErr    = "No free inventory slots"
	ErrMsgInvalidPriceErr     = "Price must be positive"
	ErrMsgInvalidAmountErr    = "Amount must be positive"
	ErrMsgPricesUnavailable   = "Prices are temporarily unavailable. Please try again"
	ErrMsgUnknownCurrencyErr  = "Unknown currency"
	ErrMsgTradeConflictErr    = "Trade conflicted with another. Please try again"
	ErrMsgInvalidInputGeneric = "Invalid request. Please check your inputs."
)

// mapServiceErrorToUserMessage maps domain errors to HTTP status codes and
// messages users can act upon
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound, ErrMsgAccountNotFoundErr
	case errors.Is(err, domain.ErrAccountExists):
		return http.StatusConflict, ErrMsgAccountExistsErr
	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusNotFound, ErrMsgItemNotFoundErr
	case errors.Is(err, domain.ErrListingNotFound):
		return http.StatusNotFound, ErrMsgListingNotFoundErr
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusBadRequest, ErrMsgNotEnoughFundsErr
	case errors.Is(err, domain.ErrInsufficientSlots):
		return http.StatusBadRequest, ErrMsgInventoryFullErr
	case errors.Is(err, domain.ErrClaimTooSoon):
		// The message carries the next allowed time, keep it
		return http.StatusTooManyRequests, err.Error()
	case errors.Is(err, domain.ErrInvalidPrice):
		return http.StatusBadRequest, ErrMsgInvalidPriceErr
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest, ErrMsgInvalidAmountErr
	case errors.Is(err, domain.ErrOracleUnavailable):
		return http.StatusServiceUnavailable, ErrMsgPricesUnavailable
	case errors.Is(err, domain.ErrUnknownCurrency):
		return http.StatusBadRequest, ErrMsgUnknownCurrencyErr
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, ErrMsgTradeConflictErr
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputGeneric
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
