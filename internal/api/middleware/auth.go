package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/craftcrm/platform/internal/core/domain"
)

// SessionValidator is the slice of the auth service the middleware needs.
type SessionValidator interface {
	ValidateSession(ctx context.Context, token string) (*domain.CrmUser, *domain.CrmSession, error)
}

// Session validates the bearer token against the session store and injects
// the resolved user and session into the request context.
func Session(auth SessionValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := bearerToken(c)
			if err != nil {
				return err
			}

			user, session, err := auth.ValidateSession(c.Request().Context(), token)
			if err != nil {
				if err == domain.ErrSessionExpired {
					return echo.NewHTTPError(http.StatusUnauthorized, "session expired")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid session")
			}

			c.Set("user", user)
			c.Set("session", session)
			c.Set("token", token)

			return next(c)
		}
	}
}

func bearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
	}
	return parts[1], nil
}
