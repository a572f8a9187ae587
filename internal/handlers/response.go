package handlers

import "github.com/gin-gonic/gin"

// APIError is the safe, generic error payload returned to clients.
// Diagnostic detail stays in the server log.
type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ErrorEnvelope wraps an APIError in the response body.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// RespondError writes a generic error body. msg must never contain raw
// provider bodies or credentials.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}
