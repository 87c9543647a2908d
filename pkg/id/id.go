package id

import (
	"crypto/rand"
	"encoding/hex"
	"regexp"
)

var reHex32 = regexp.MustCompile(`^[a-f0-9]{32}$`)

// NewRequestID returns 32 lowercase hex characters, used for X-Request-Id
// and accepted as an Ax-Request-Id.
func NewRequestID() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// IsHex32 reports whether s has the NewRequestID shape.
func IsHex32(s string) bool { return reHex32.MatchString(s) }
