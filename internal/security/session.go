package security

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

// SessionCookieName names the cookie holding the drill session ID
const SessionCookieName = "drill_session"

// GenerateSessionID creates a new UUID for session identification
func GenerateSessionID() string {
	return uuid.New().String()
}

// ValidSessionID reports whether id has the shape GenerateSessionID produces
func ValidSessionID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// IsSecureRequest determines if the request is over HTTPS
// Checks TLS connection, X-Forwarded-Proto header (for reverse proxies), and URL scheme
func IsSecureRequest(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto == "https" {
		return true
	}
	return r.URL.Scheme == "https"
}

// SessionCookie creates the drill session cookie.
// The Secure flag follows the request scheme.
func SessionCookie(r *http.Request, sessionID string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    sessionID,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   IsSecureRequest(r),
		SameSite: http.SameSiteStrictMode,
	}
}

// ClearSessionCookie expires the drill session cookie
func ClearSessionCookie(r *http.Request) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   IsSecureRequest(r),
		SameSite: http.SameSiteStrictMode,
	}
}

// SessionIDFromRequest returns the drill session ID carried by r, if well formed
func SessionIDFromRequest(r *http.Request) (string, bool) {
	c, err := r.Cookie(SessionCookieName)
	if err != nil || !ValidSessionID(c.Value) {
		return "", false
	}
	return c.Value, true
}
