// Package response defines consistent HTTP response structures.
// Successful responses carry the resource as the JSON body; every failure
// uses the Error envelope.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"inventory/src/core/domain"
)

// StatusClientClosedRequest is reported when the caller aborted the request.
const StatusClientClosedRequest = 499

// Error represents an error response.
type Error struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	// Code is a machine-readable error code (e.g., "NOT_FOUND", "VALIDATION_ERROR")
	Code string `json:"code"`

	// Message is a human-readable error description
	Message string `json:"message"`

	// Field is the field that caused the error (for validation errors)
	Field string `json:"field,omitempty"`

	// RequestID is the request ID for debugging
	RequestID string `json:"request_id,omitempty"`
}

// OK sends a 200 response with data.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Created sends a 201 response with the created resource and its location.
func Created(c *gin.Context, location string, data any) {
	c.Header("Location", location)
	c.JSON(http.StatusCreated, data)
}

// NoContent sends a 204 response with no body.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func write(c *gin.Context, status int, code, message, field, requestID string) {
	c.AbortWithStatusJSON(status, Error{
		Error: ErrorDetail{
			Code:      code,
			Message:   message,
			Field:     field,
			RequestID: requestID,
		},
	})
}

// BadRequest sends a 400 response.
func BadRequest(c *gin.Context, message, requestID string) {
	write(c, http.StatusBadRequest, "BAD_REQUEST", message, "", requestID)
}

// ValidationError sends a 400 response for validation failures.
func ValidationError(c *gin.Context, field, message, requestID string) {
	write(c, http.StatusBadRequest, "VALIDATION_ERROR", message, field, requestID)
}

// NotFound sends a 404 response.
func NotFound(c *gin.Context, message, requestID string) {
	write(c, http.StatusNotFound, "NOT_FOUND", message, "", requestID)
}

// Conflict sends a 409 response.
func Conflict(c *gin.Context, code, message, requestID string) {
	write(c, http.StatusConflict, code, message, "", requestID)
}

// Unprocessable sends a 422 response for rejected state transitions.
func Unprocessable(c *gin.Context, message, requestID string) {
	write(c, http.StatusUnprocessableEntity, "INVALID_OPERATION", message, "", requestID)
}

// Forbidden sends a 403 response.
func Forbidden(c *gin.Context, message, requestID string) {
	write(c, http.StatusForbidden, "FORBIDDEN", message, "", requestID)
}

// Unauthorized sends a 401 response.
func Unauthorized(c *gin.Context, message, requestID string) {
	write(c, http.StatusUnauthorized, "UNAUTHORIZED", message, "", requestID)
}

// TooManyRequests sends a 429 response.
func TooManyRequests(c *gin.Context, requestID string) {
	write(c, http.StatusTooManyRequests, "RATE_LIMITED", "too many requests, retry later", "", requestID)
}

// InternalError sends a 500 response.
func InternalError(c *gin.Context, requestID string) {
	write(c, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred", "", requestID)
}

// FromDomainError converts a domain error to an appropriate HTTP response.
// Errors outside the domain taxonomy are reported as 500 without detail.
func FromDomainError(c *gin.Context, err error, requestID string) {
	msg := domain.MessageOf(err)
	switch {
	case domain.IsValidationError(err):
		ValidationError(c, domain.FieldOf(err), msg, requestID)
	case domain.IsNotFound(err):
		NotFound(c, err.Error(), requestID)
	case domain.IsAlreadyExists(err):
		Conflict(c, "ALREADY_EXISTS", msg, requestID)
	case domain.IsHasDependents(err):
		Conflict(c, "HAS_DEPENDENTS", msg, requestID)
	case domain.IsInvalidOperation(err):
		Unprocessable(c, msg, requestID)
	case domain.IsCancelled(err):
		write(c, StatusClientClosedRequest, "CANCELLED", "request cancelled", "", requestID)
	case domain.IsUnauthorized(err):
		Unauthorized(c, msg, requestID)
	case domain.IsForbidden(err):
		Forbidden(c, msg, requestID)
	default:
		_ = c.Error(err)
		InternalError(c, requestID)
	}
}
