package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/ArowuTest/rsu-vesting/internal/middleware"
	"github.com/ArowuTest/rsu-vesting/internal/repositories"
	"github.com/ArowuTest/rsu-vesting/internal/services"
)

// errorStatus maps service errors to HTTP status codes
func errorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidAward):
		return http.StatusUnprocessableEntity
	case errors.Is(err, repositories.ErrAwardNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrInvalidSession):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, action string, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("request_id", c.GetString(middleware.RequestIDKey)).Msg(action + " failed")
		c.JSON(status, gin.H{"error": action + " failed"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
