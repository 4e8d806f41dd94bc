// Package api defines the shared HTTP response envelopes.
package api

// ErrorResponse is the uniform error body returned by all handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is a minimal success acknowledgement body.
type MessageResponse struct {
	Message string `json:"message"`
}
