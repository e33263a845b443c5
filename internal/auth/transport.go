package auth

import (
	"net/http"
	"strings"
	"time"
)

const (
	// CookieName carries the session token for browser clients.
	CookieName = "jwt"
	// LoggedOutValue overwrites the cookie on logout.
	LoggedOutValue = "loggedout"

	logoutCookieTTL = 10 * time.Second
)

// ExtractToken returns the bearer token from the Authorization header, falling
// back to the session cookie. The sentinel logout value is not a token.
func ExtractToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		if token := strings.TrimSpace(strings.TrimPrefix(h, "Bearer ")); token != "" {
			return token
		}
	}
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" && c.Value != LoggedOutValue {
		return c.Value
	}
	return ""
}

// SetSessionCookie writes the token as an httpOnly cookie, secure when the
// request arrived over TLS directly or through a TLS-terminating proxy.
func SetSessionCookie(w http.ResponseWriter, r *http.Request, token string, ttl time.Duration, now time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  now.Add(ttl),
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   isSecure(r),
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie replaces the session cookie with a short-lived sentinel.
func ClearSessionCookie(w http.ResponseWriter, r *http.Request, now time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    LoggedOutValue,
		Path:     "/",
		Expires:  now.Add(logoutCookieTTL),
		MaxAge:   int(logoutCookieTTL.Seconds()),
		HttpOnly: true,
		Secure:   isSecure(r),
		SameSite: http.SameSiteLaxMode,
	})
}

func isSecure(r *http.Request) bool {
	return r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}
