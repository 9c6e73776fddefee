package handlers

import (
	"errors"
	"net/http"

	"poll-service/internal/server/service"
	"poll-service/pkg/response"

	"github.com/gin-gonic/gin"
)

// respondError maps a domain error to an HTTP status and the error
// envelope. Unknown errors become an opaque INTERNAL_ERROR.
func respondError(c *gin.Context, err error) {
	var domainErr *service.Error
	if !errors.As(err, &domainErr) {
		c.JSON(http.StatusInternalServerError, response.Err(service.CodeInternal, "internal error"))
		return
	}
	c.JSON(httpStatus(domainErr.Code), response.Err(domainErr.Code, domainErr.Message))
}

func httpStatus(code string) int {
	switch code {
	case service.CodeValidation:
		return http.StatusBadRequest
	case service.CodeUnauthorized:
		return http.StatusUnauthorized
	case service.CodeNotFound:
		return http.StatusNotFound
	case service.CodeNotStarted, service.CodeEnded, service.CodeAlreadyVoted:
		return http.StatusConflict
	case service.CodeNotImplemented:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
