package handler

type setupRequest struct {
	AppID    string `json:"app_id"   validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Name     string `json:"name"     validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginRequest struct {
	AppID    string `json:"app_id"   validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt string       `json:"expires_at"`
	User      userResponse `json:"user"`
}

type inviteRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Name     string `json:"name"     validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role"     validate:"required,oneof=admin member viewer"`
}

type changeRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=owner admin member viewer"`
}

type changePasswordRequest struct {
	Current string `json:"current_password" validate:"required"`
	Next    string `json:"new_password"     validate:"required,min=8"`
}

// userResponse never carries the password hash, only identity and the
// stamped permission set the client needs for UI gating.
type userResponse struct {
	ID          string   `json:"id"`
	AppID       string   `json:"app_id"`
	Email       string   `json:"email"`
	Name        string   `json:"name"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
	Active      bool     `json:"active"`
}
