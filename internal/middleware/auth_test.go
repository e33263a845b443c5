package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"tourhub_backend/internal/auth"
	"tourhub_backend/internal/models"
	"tourhub_backend/internal/repositories/repotest"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type authHarness struct {
	store  *repotest.UserStore
	tokens *auth.TokenIssuer
	mw     *AuthMiddleware
}

func newAuthHarness() *authHarness {
	store := repotest.NewUserStore(auth.NewHasher(bcrypt.MinCost, 2))
	tokens := auth.NewTokenIssuer("secret", time.Hour)
	return &authHarness{
		store:  store,
		tokens: tokens,
		mw:     NewAuthMiddleware(auth.NewAuthenticator(tokens, IdentityLookup(store, nil))),
	}
}

func (h *authHarness) user(t *testing.T, email string, role models.UserRole) (*models.User, string) {
	t.Helper()
	u := &models.User{Name: "Test", Email: email, Role: role}
	require.NoError(t, h.store.Create(context.Background(), nil, u, "Secret123!"))
	token, err := h.tokens.Issue(u.ID)
	require.NoError(t, err)
	return u, token
}

func (h *authHarness) router() *gin.Engine {
	r := gin.New()
	whoami := func(c *gin.Context) {
		if u := CurrentIdentity(c); u != nil {
			c.JSON(http.StatusOK, gin.H{"id": u.ID})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": nil})
	}
	r.GET("/protected", h.mw.Protect(), whoami)
	r.GET("/admin", h.mw.Protect(models.UserRoleAdmin), whoami)
	r.GET("/staff", h.mw.Protect(), RestrictTo(models.UserRoleAdmin, models.UserRoleLeadGuide), whoami)
	r.GET("/public", h.mw.IsLoggedIn(), whoami)
	return r
}

func do(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestProtect(t *testing.T) {
	h := newAuthHarness()
	u, token := h.user(t, "ann@example.com", models.UserRoleUser)
	r := h.router()

	w := do(r, "/protected", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "fail", decode(t, w)["status"])

	w = do(r, "/protected", "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, "/protected", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, u.ID, decode(t, w)["id"])
}

func TestProtect_Cookie(t *testing.T) {
	h := newAuthHarness()
	_, token := h.user(t, "ann@example.com", models.UserRoleUser)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
	w := httptest.NewRecorder()
	h.router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProtect_Roles(t *testing.T) {
	h := newAuthHarness()
	_, userToken := h.user(t, "ann@example.com", models.UserRoleUser)
	_, adminToken := h.user(t, "root@example.com", models.UserRoleAdmin)
	_, leadToken := h.user(t, "lead@example.com", models.UserRoleLeadGuide)
	r := h.router()

	assert.Equal(t, http.StatusForbidden, do(r, "/admin", userToken).Code)
	assert.Equal(t, http.StatusOK, do(r, "/admin", adminToken).Code)
	assert.Equal(t, http.StatusForbidden, do(r, "/admin", leadToken).Code)

	assert.Equal(t, http.StatusForbidden, do(r, "/staff", userToken).Code)
	assert.Equal(t, http.StatusOK, do(r, "/staff", leadToken).Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "/staff", "").Code)
}

func TestProtect_DeactivatedIdentity(t *testing.T) {
	h := newAuthHarness()
	u, token := h.user(t, "ann@example.com", models.UserRoleUser)
	r := h.router()
	require.Equal(t, http.StatusOK, do(r, "/protected", token).Code)

	require.NoError(t, h.store.Deactivate(context.Background(), nil, u.ID))
	assert.Equal(t, http.StatusUnauthorized, do(r, "/protected", token).Code)
}

func TestIsLoggedIn_NeverRejects(t *testing.T) {
	h := newAuthHarness()
	u, token := h.user(t, "ann@example.com", models.UserRoleUser)
	r := h.router()

	w := do(r, "/public", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, decode(t, w)["id"])

	w = do(r, "/public", "garbage")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, decode(t, w)["id"])

	w = do(r, "/public", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, u.ID, decode(t, w)["id"])
}
