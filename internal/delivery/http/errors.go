package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmgilman/go/errors"

	"github.com/recipebox/backend/internal/domain"
)

// statusFor maps an error code to the HTTP status returned to API clients.
// Upstream failures are reported as 502 since the client request was fine.
func statusFor(code errors.ErrorCode) int {
	switch code {
	case domain.CodeInvalidURL, domain.CodeBadRequest, errors.CodeInvalidInput:
		return http.StatusBadRequest
	case domain.CodeNotFound:
		return http.StatusNotFound
	case domain.CodeUnauthorized, domain.CodeForbidden, domain.CodeInvalidData,
		domain.CodeInvalidResponse, domain.CodeServerError:
		return http.StatusBadGateway
	case errors.CodeRateLimit:
		return http.StatusTooManyRequests
	case errors.CodeNotImplemented:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// respondError aborts the request with the JSON form of err.
func respondError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(statusFor(errors.GetCode(err)), errors.ToJSON(err))
}
