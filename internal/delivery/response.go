package delivery

import (
	"errors"
	"net/http"

	"product_service/internal/domain"

	"github.com/gin-gonic/gin"
)

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrIDMismatch), errors.Is(err, domain.ErrInvalidProductID):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// abortWithError ends the request with the status mapped from err and no body.
// The error is recorded on the context so the access log can report it.
func abortWithError(c *gin.Context, err error) {
	status := mapErrorToStatus(err)
	errType := gin.ErrorTypePublic
	if status == http.StatusInternalServerError {
		errType = gin.ErrorTypePrivate
	}
	_ = c.Error(err).SetType(errType)
	c.AbortWithStatus(status)
}
