package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/craftcrm/platform/internal/core/domain"
	"github.com/craftcrm/platform/internal/core/ports"
)

// AuthHandler handles HTTP requests for authentication and user management.
type AuthHandler struct {
	service ports.AuthService
}

func NewAuthHandler(service ports.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Setup handles POST /v1/auth/setup. It bootstraps the app's first user as
// owner and is rejected once any user exists.
func (h *AuthHandler) Setup(c echo.Context) error {
	var req setupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.service.Setup(c.Request().Context(), req.AppID, req.Email, req.Name, req.Password)
	if err != nil {
		return err
	}
	return created(c, toUserResponse(user))
}

// Login handles POST /v1/auth/login.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.Login(c.Request().Context(), req.AppID, req.Email, req.Password)
	if err != nil {
		return err
	}
	return ok(c, loginResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		User:      toUserResponse(result.User),
	})
}

// Me handles GET /v1/auth/me and echoes the session's user.
func (h *AuthHandler) Me(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	return ok(c, toUserResponse(user))
}

// Logout handles POST /v1/auth/logout. Every session of the token's user is
// revoked, not just the presented one.
func (h *AuthHandler) Logout(c echo.Context) error {
	token, _ := c.Get("token").(string)
	if token == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	if err := h.service.Logout(c.Request().Context(), token); err != nil {
		return err
	}
	return ok(c, map[string]string{"message": "logged out"})
}

// Invite handles POST /v1/users.
func (h *AuthHandler) Invite(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req inviteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	invited, err := h.service.Invite(c.Request().Context(), user.AppID, req.Email, req.Name, req.Password, domain.Role(req.Role))
	if err != nil {
		return err
	}
	return created(c, toUserResponse(invited))
}

// List handles GET /v1/users for the session's app.
func (h *AuthHandler) List(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	users, err := h.service.ListUsers(c.Request().Context(), user.AppID)
	if err != nil {
		return err
	}
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return ok(c, out)
}

// ChangeRole handles PATCH /v1/users/:id/role.
func (h *AuthHandler) ChangeRole(c echo.Context) error {
	var req changeRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.service.ChangeRole(c.Request().Context(), c.Param("id"), domain.Role(req.Role))
	if err != nil {
		return err
	}
	return ok(c, toUserResponse(updated))
}

// ChangePassword handles POST /v1/auth/password for the session's own user.
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.ChangePassword(c.Request().Context(), user.ID, req.Current, req.Next); err != nil {
		return err
	}
	return ok(c, map[string]string{"message": "password changed"})
}

func toUserResponse(u *domain.CrmUser) userResponse {
	perms := make([]string, 0, len(u.Permissions))
	for _, p := range u.Permissions {
		perms = append(perms, string(p))
	}
	return userResponse{
		ID:          u.ID,
		AppID:       u.AppID,
		Email:       u.Email,
		Name:        u.Name,
		Role:        string(u.Role),
		Permissions: perms,
		Active:      u.Active,
	}
}
