package domain

import "time"

// Role is a CRM user's role within one app.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
	RoleViewer Role = "viewer"
)

// KnownRole reports whether r is one of the defined roles.
func KnownRole(r Role) bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleMember, RoleViewer:
		return true
	}
	return false
}

// CrmUser belongs to exactly one CRM app. Permissions are stamped from the
// role table when the user is created or their role changes; authorization
// checks read the stored set and never re-derive it from the role.
type CrmUser struct {
	ID           string       `json:"id" bson:"_id,omitempty"`
	AppID        string       `json:"app_id" bson:"app_id"`
	Email        string       `json:"email" bson:"email"`
	Name         string       `json:"name" bson:"name"`
	PasswordHash string       `json:"-" bson:"password_hash"`
	Role         Role         `json:"role" bson:"role"`
	Permissions  []Permission `json:"permissions" bson:"permissions"`
	Active       bool         `json:"active" bson:"active"`
	CreatedAt    time.Time    `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at" bson:"updated_at"`
}

// CrmSession is a bearer token with a fixed expiry. Multiple concurrent
// sessions per user are allowed; logout revokes all of them.
type CrmSession struct {
	Token     string    `json:"token" bson:"_id"`
	UserID    string    `json:"user_id" bson:"user_id"`
	AppID     string    `json:"app_id" bson:"app_id"`
	ExpiresAt time.Time `json:"expires_at" bson:"expires_at"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Expired reports whether the session is past its expiry at time now.
func (s CrmSession) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
