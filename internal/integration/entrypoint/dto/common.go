// Package dto defines request and response shapes for the API endpoints.
package dto

// ErrorResponse is the standard error body for all endpoints.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// DateLayout is the wire format for date-only fields.
const DateLayout = "2006-01-02"
