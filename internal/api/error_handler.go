package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/psikobank/user-registry/internal/core/domain"
)

// errorResponse is the error form of the response envelope.
type errorResponse struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that maps domain errors
// onto status codes and renders them in the error envelope. Unexpected errors
// are logged and reported as a generic 500.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	var (
		he *echo.HTTPError
		fe *domain.ForbiddenError
		ve *domain.ValidationError
	)

	switch {
	case errors.As(err, &fe):
		return http.StatusForbidden, errorResponse{Status: "error", Message: fe.Reason}
	case errors.As(err, &ve):
		return http.StatusUnprocessableEntity, errorResponse{Status: "error", Message: ve.Error(), Errors: ve.Fields}
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, errorResponse{Status: "error", Message: "Unauthorized"}
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, errorResponse{Status: "error", Message: "user not found"}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorResponse{Status: "error", Message: "invalid credentials"}
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, errorResponse{Status: "error", Message: "unauthenticated"}
	case errors.As(err, &he):
		// echo's own errors: bind failures, unknown routes, auth middleware
		if he.Code >= http.StatusInternalServerError {
			log.Error().Err(err).Str("method", c.Request().Method).Str("path", c.Path()).Msg("request failed")
		}
		return he.Code, errorResponse{Status: "error", Message: fmt.Sprintf("%v", he.Message)}
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Status: "error", Message: "internal server error"}
}
