package api

import (
	"errors"
	"net/http"

	"gastroguide/internal/apperrors"

	"github.com/gin-gonic/gin"
)

// statusOf maps application errors onto HTTP status codes.
func statusOf(err error) int {
	switch apperrors.CodeOf(err) {
	case apperrors.ErrCodeValidationFailed:
		return http.StatusBadRequest
	case apperrors.ErrCodeBookingNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// publicMessage hides collaborator causes from callers.
func publicMessage(err error) string {
	var se *apperrors.StandardError
	switch apperrors.CodeOf(err) {
	case apperrors.ErrCodeValidationFailed:
		if errors.As(err, &se) {
			return se.Message
		}
	case apperrors.ErrCodeBookingNotFound:
		return "Booking not found"
	}
	if apperrors.IsCollaboratorError(err) {
		return "Service temporarily unavailable"
	}
	return "Internal server error"
}

func fail(c *gin.Context, err error) {
	c.JSON(statusOf(err), gin.H{"success": false, "error": publicMessage(err)})
}
