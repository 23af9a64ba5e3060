package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// envelope is the uniform response body: {success, data?, error?}. Non-2xx
// statuses always carry success=false; the central error handler produces
// those, handlers only emit successes.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func ok(c echo.Context, data any) error {
	return c.JSON(http.StatusOK, envelope{Success: true, Data: data})
}

func created(c echo.Context, data any) error {
	return c.JSON(http.StatusCreated, envelope{Success: true, Data: data})
}
