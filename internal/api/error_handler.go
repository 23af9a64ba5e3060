package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/craftcrm/platform/internal/core/domain"
)

// errorEnvelope is the canonical error body for all API errors:
// {"success": false, "error": "<message>"}.
type errorEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders the uniform envelope on every failure.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorEnvelope{Success: false, Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Schema violations carry the offending field and reason verbatim.
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusUnprocessableEntity, ve.Error()
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrTenantNotFound),
		errors.Is(err, domain.ErrAppNotFound),
		errors.Is(err, domain.ErrModuleNotFound),
		errors.Is(err, domain.ErrFieldNotFound),
		errors.Is(err, domain.ErrRecordNotFound),
		errors.Is(err, domain.ErrViewNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrInvalidBusinessType):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrAlreadyGenerated),
		errors.Is(err, domain.ErrSlugTaken),
		errors.Is(err, domain.ErrModuleExists),
		errors.Is(err, domain.ErrUserExists),
		errors.Is(err, domain.ErrSetupComplete),
		errors.Is(err, domain.ErrVersionConflict):
		return http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrSessionExpired):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, domain.ErrForbidden),
		errors.Is(err, domain.ErrSystemField):
		return http.StatusForbidden, err.Error()
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
