package types

// Standard header names used across the API
const (
	HeaderAuthorization = "Authorization"
	HeaderRequestID     = "X-Request-ID"
)
