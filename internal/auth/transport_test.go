package auth

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractToken(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, ExtractToken(r))

	r.AddCookie(&http.Cookie{Name: CookieName, Value: "from-cookie"})
	assert.Equal(t, "from-cookie", ExtractToken(r))

	r.Header.Set("Authorization", "Bearer from-header")
	assert.Equal(t, "from-header", ExtractToken(r), "header wins")

	r.Header.Set("Authorization", "Basic abc")
	assert.Equal(t, "from-cookie", ExtractToken(r))

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: LoggedOutValue})
	assert.Empty(t, ExtractToken(r))
}

func TestSetSessionCookie(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/", nil)

	SetSessionCookie(w, r, "tok", 24*time.Hour, now)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, CookieName, c.Name)
	assert.Equal(t, "tok", c.Value)
	assert.True(t, c.HttpOnly)
	assert.False(t, c.Secure)
	assert.Equal(t, 86400, c.MaxAge)
}

func TestSetSessionCookie_Secure(t *testing.T) {
	now := time.Now()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/", nil)
	r.Header.Set("X-Forwarded-Proto", "https")
	SetSessionCookie(w, r, "tok", time.Hour, now)
	assert.True(t, w.Result().Cookies()[0].Secure)

	w = httptest.NewRecorder()
	r = httptest.NewRequest(http.MethodPost, "/", nil)
	r.TLS = &tls.ConnectionState{}
	SetSessionCookie(w, r, "tok", time.Hour, now)
	assert.True(t, w.Result().Cookies()[0].Secure)
}

func TestClearSessionCookie(t *testing.T) {
	w := httptest.NewRecorder()
	ClearSessionCookie(w, httptest.NewRequest(http.MethodGet, "/", nil), time.Now())

	c := w.Result().Cookies()[0]
	assert.Equal(t, LoggedOutValue, c.Value)
	assert.Equal(t, 10, c.MaxAge)
	assert.True(t, c.HttpOnly)
}
