package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgUnauthorized          = "Unauthorized"

	ErrMsgGetInventoryFailed   = "Failed to get inventory"
	ErrMsgGetCatalogFailed     = "Failed to get catalog"
	ErrMsgGetMarketplaceFailed = "Failed to get marketplace"
)

// Success messages for API responses
const (
	MsgRegisteredSuccess = "Account registered successfully"
	MsgListedSuccess     = "Item listed successfully"
	MsgWithdrawnSuccess  = "Listing withdrawn successfully"
)
