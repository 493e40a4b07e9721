package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kendall-kelly/cafe-tropis-api/booking"
	"github.com/kendall-kelly/cafe-tropis-api/repository"
	"github.com/kendall-kelly/cafe-tropis-api/services"
	"github.com/kendall-kelly/cafe-tropis-api/utils"
)

func respondSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "VALIDATION_ERROR",
			"message": "Invalid request data",
			"details": err.Error(),
		},
	})
}

// respondServiceError maps domain errors onto status codes. Anything it does
// not recognise is a 500 and is recorded on the context for the request log.
func respondServiceError(c *gin.Context, err error, message string) {
	var validationErr *booking.ValidationError
	var uploadErr *utils.FileUploadError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    validationErr.Code,
				"message": validationErr.Message,
				"details": validationErr.Field,
			},
		})
	case errors.As(err, &uploadErr):
		respondError(c, http.StatusBadRequest, uploadErr.Code, uploadErr.Message)
	case errors.Is(err, booking.ErrInvalidTransition):
		respondError(c, http.StatusConflict, "INVALID_STATE", err.Error())
	case errors.Is(err, services.ErrSessionNotFound):
		respondError(c, http.StatusNotFound, "SESSION_NOT_FOUND", "Booking session not found or expired")
	case errors.Is(err, repository.ErrNotFound):
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Resource not found")
	case errors.Is(err, services.ErrInvalidStatusTransition):
		respondError(c, http.StatusConflict, "INVALID_STATUS_TRANSITION", "Only pending orders can be confirmed or rejected")
	case errors.Is(err, services.ErrOrderPending):
		respondError(c, http.StatusConflict, "ORDER_PENDING", "Confirm or reject the order before deleting it")
	case errors.Is(err, services.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
	case errors.Is(err, services.ErrImageStorageDisabled):
		respondError(c, http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE", "Image storage is not configured")
	case errors.Is(err, services.ErrTokenRejected):
		respondError(c, http.StatusUnauthorized, "SESSION_EXPIRED", "Session expired, please log in again")
	default:
		_ = c.Error(err)
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", message)
	}
}
