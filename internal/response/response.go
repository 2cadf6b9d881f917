// Package response implements the uniform API envelope. Every endpoint,
// success or failure, answers with the same shape so clients can branch on
// a single boolean instead of sniffing the payload.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the wire shape of every API response.
type Envelope struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Data    any      `json:"data,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

// OK sends a 200 with optional message and data.
func OK(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

// Created sends a 201 with optional message and data.
func Created(c *gin.Context, message string, data any) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Message: message, Data: data})
}

// ValidationFailed sends a 400 with the full list of violations.
func ValidationFailed(c *gin.Context, errs []string) {
	c.JSON(http.StatusBadRequest, Envelope{Success: false, Message: "Validation failed", Errors: errs})
}

// BadRequest sends a 400 with a single message.
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request"
	}
	c.JSON(http.StatusBadRequest, Envelope{Success: false, Message: message})
}

// Unauthorized sends a 401. Handlers pass the same generic message for every
// credential failure so responses never reveal whether an account exists.
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Authentication required"
	}
	c.JSON(http.StatusUnauthorized, Envelope{Success: false, Message: message})
}

// NotFound sends a 404. Missing resources and resources owned by someone
// else are reported identically.
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Resource not found"
	}
	c.JSON(http.StatusNotFound, Envelope{Success: false, Message: message})
}

// Conflict sends a 409.
func Conflict(c *gin.Context, message string) {
	if message == "" {
		message = "Resource conflict"
	}
	c.JSON(http.StatusConflict, Envelope{Success: false, Message: message})
}

// InternalError sends a 500. The message is a fixed client-safe string;
// the underlying error is never put on the wire.
func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "Internal server error"
	}
	c.JSON(http.StatusInternalServerError, Envelope{Success: false, Message: message})
}
