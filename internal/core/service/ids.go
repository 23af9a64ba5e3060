package service

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// newID returns a 24-hex-char random identifier.
func newID() string {
	b := make([]byte, 12)
	if _, err := rand.Read(b); err != nil {
		// fallback: use current nanoseconds
		return fmt.Sprintf("%024x", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}

// newToken returns an opaque session token with enough entropy that tokens
// are unguessable.
func newToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%064x", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}
