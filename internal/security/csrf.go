package security

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
)

// CSRFHeader carries the token on mutating drill requests
const CSRFHeader = "X-CSRF-Token"

// CSRFGenerator derives CSRF tokens from the drill session ID with HMAC-SHA256,
// so tokens need no server-side storage.
type CSRFGenerator struct {
	secret []byte
}

// NewCSRFGenerator creates a generator keyed by secret. An empty secret is
// replaced by 32 random bytes, which invalidates tokens on restart.
func NewCSRFGenerator(secret string) *CSRFGenerator {
	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			panic("security: read random CSRF key: " + err.Error())
		}
	}
	return &CSRFGenerator{secret: key}
}

// Token returns the CSRF token for sessionID
func (g *CSRFGenerator) Token(sessionID string) string {
	mac := hmac.New(sha256.New, g.secret)
	mac.Write([]byte(sessionID))
	return hex.EncodeToString(mac.Sum(nil))
}

// Valid reports whether token belongs to sessionID
func (g *CSRFGenerator) Valid(sessionID, token string) bool {
	if sessionID == "" || token == "" {
		return false
	}
	return hmac.Equal([]byte(g.Token(sessionID)), []byte(token))
}
