package id

import (
	"crypto/rand"
	"encoding/hex"
)

// NewID32 returns a random identifier of exactly 32 lowercase hex characters.
// Used as the public id for users, loan requests, funded loans, negotiations
// and credit-report requests.
func NewID32() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
