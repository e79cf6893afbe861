package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"escapada/internal/checkout"
	"escapada/internal/repository"
	"escapada/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrInvalidTouristID),
		errors.Is(err, service.ErrInvalidPartnerID),
		errors.Is(err, service.ErrInvalidTripID),
		errors.Is(err, service.ErrInvalidServiceID),
		errors.Is(err, service.ErrInvalidBookingID),
		errors.Is(err, service.ErrInvalidServicePrice),
		errors.Is(err, service.ErrInvalidPassengerCount),
		errors.Is(err, service.ErrCardNumberTooShort),
		errors.Is(err, service.ErrCardNumberInvalid):
		return http.StatusBadRequest

	// Conflict errors
	case errors.Is(err, service.ErrTripNotActive),
		errors.Is(err, service.ErrCheckoutInFlight),
		errors.Is(err, service.ErrBookingAlreadyRedeemed),
		errors.Is(err, service.ErrBookingNotConfirmed):
		return http.StatusConflict

	// Forbidden/Business rule errors
	case errors.Is(err, service.ErrPartnerMismatch):
		return http.StatusForbidden

	// Split integrity failure: the attempt is aborted, nothing was written.
	case errors.Is(err, checkout.ErrSplitIntegrity):
		return http.StatusUnprocessableEntity

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
