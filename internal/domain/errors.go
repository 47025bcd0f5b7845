package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Account errors
	ErrMsgAccountNotFound = "account not found"
	ErrMsgAccountExists   = "account already exists"

	// Catalog/inventory errors
	ErrMsgItemNotFound      = "item not found"
	ErrMsgInsufficientSlots = "insufficient slots"

	// Ledger errors
	ErrMsgInsufficientFunds = "insufficient funds"
	ErrMsgInvalidAmount     = "invalid amount"

	// Farm errors
	ErrMsgClaimTooSoon = "claim too soon"

	// Marketplace errors
	ErrMsgListingNotFound = "listing not found"
	ErrMsgInvalidPrice    = "invalid price"

	// Pricing errors
	ErrMsgOracleUnavailable = "price oracle unavailable"
	ErrMsgUnknownCurrency   = "unknown currency"

	// Concurrency errors
	ErrMsgConflict = "concurrent update conflict"

	// Input errors
	ErrMsgInvalidInput = "invalid input"

	// Database/System errors
	ErrMsgTxClosed = "tx is closed"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Account errors
	ErrAccountNotFound = errors.New(ErrMsgAccountNotFound)
	ErrAccountExists   = errors.New(ErrMsgAccountExists)

	// Catalog/inventory errors
	ErrItemNotFound      = errors.New(ErrMsgItemNotFound)
	ErrInsufficientSlots = errors.New(ErrMsgInsufficientSlots)

	// Ledger errors
	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)
	ErrInvalidAmount     = errors.New(ErrMsgInvalidAmount)

	// Farm errors
	ErrClaimTooSoon = errors.New(ErrMsgClaimTooSoon)

	// Marketplace errors
	ErrListingNotFound = errors.New(ErrMsgListingNotFound)
	ErrInvalidPrice    = errors.New(ErrMsgInvalidPrice)

	// Pricing errors
	ErrOracleUnavailable = errors.New(ErrMsgOracleUnavailable)
	ErrUnknownCurrency   = errors.New(ErrMsgUnknownCurrency)

	// Concurrency errors
	ErrConflict = errors.New(ErrMsgConflict)

	// Input errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
