package handler

import (
	"errors"
	"net/http"

	"racedebrief/internal/api/apperr"
	"racedebrief/internal/api/service"

	"github.com/gin-gonic/gin"
)

// writeError maps the service error taxonomy onto HTTP status codes.
// Unrecognized errors stay a 500 so programming mistakes are loud.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperr.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, apperr.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperr.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, apperr.ErrDuplicate), errors.Is(err, apperr.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, apperr.ErrStoreUnavailable):
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// identityFromContext rebuilds the request's Identity from what
// AuthMiddleware stored. Missing values mean the route was wired
// without the middleware.
func identityFromContext(c *gin.Context) (service.Identity, bool) {
	userID, exists := c.Get("userID")
	if !exists {
		return service.Identity{}, false
	}
	role, _ := c.Get("role")

	identity := service.Identity{}
	identity.UserID, _ = userID.(string)
	identity.Role, _ = role.(string)
	return identity, identity.UserID != ""
}
