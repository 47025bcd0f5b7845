package server

// Header names
const (
	HeaderAPIKey         = "X-API-Key"
	HeaderAuthorization  = "Authorization"
	HeaderForwardedFor   = "X-Forwarded-For"
	HeaderContentType    = "X-Content-Type-Options"
	HeaderFrameOptions   = "X-Frame-Options"
	HeaderXSSProtection  = "X-XSS-Protection"
	HeaderReferrerPolicy = "Referrer-Policy"
)

// Security header values
const (
	HeaderValueNoSniff              = "nosniff"
	HeaderValueSameOrigin           = "SAMEORIGIN"
	HeaderValueXSSBlock             = "1; mode=block"
	HeaderValueReferrerStrictOrigin = "strict-origin-when-cross-origin"
)

// Bearer token prefix for session authentication
const bearerPrefix = "Bearer "

// PublicPaths are reachable without an API key
var PublicPaths = []string{
	"/healthz",
	"/readyz",
	"/metrics",
}

// Error messages
const (
	ErrMsgUnauthorized    = "Unauthorized"
	ErrMsgTooManyRequests = "Too many requests"
)

// Security log messages
const (
	LogMsgAuthFailed        = "Authentication failed"
	SecurityAlertFailedAuth = "SECURITY: repeated auth failures from IP"
	SecurityAlertHighRate   = "SECURITY: high request rate from IP"
)
