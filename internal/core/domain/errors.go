package domain

import (
	"errors"
	"fmt"
)

var ErrTenantNotFound = errors.New("tenant not found")
var ErrAppNotFound = errors.New("crm app not found")
var ErrModuleNotFound = errors.New("module not found")
var ErrFieldNotFound = errors.New("field not found")
var ErrRecordNotFound = errors.New("record not found")
var ErrViewNotFound = errors.New("view not found")
var ErrUserNotFound = errors.New("user not found")

var ErrInvalidBusinessType = errors.New("unknown business type")
var ErrAlreadyGenerated = errors.New("crm app already generated")
var ErrSlugTaken = errors.New("tenant slug already taken")
var ErrModuleExists = errors.New("module name already in use")
var ErrUserExists = errors.New("user already exists")
var ErrSetupComplete = errors.New("setup already completed")
var ErrSystemField = errors.New("system field cannot be modified")
var ErrVersionConflict = errors.New("record was modified concurrently")

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrSessionExpired = errors.New("session expired")
var ErrForbidden = errors.New("access forbidden")

// Validation failure reasons. The reason string is part of the API contract.
const (
	ReasonRequired  = "required"
	ReasonDuplicate = "duplicate"
	ReasonType      = "type"
	ReasonUnknown   = "unknown"
	ReasonOption    = "option"
)

// ValidationError reports a single schema violation on a record payload.
type ValidationError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("field %q: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
