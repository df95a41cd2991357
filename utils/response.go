package utils

// ErrorResponse is the JSON envelope for handler failures.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}
