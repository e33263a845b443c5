package middleware

import (
	"context"
	"errors"

	"tourhub_backend/internal/auth"
	"tourhub_backend/internal/logger"
	"tourhub_backend/internal/models"
	"tourhub_backend/internal/repositories"
	"tourhub_backend/pkg/apperrors"
	"tourhub_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthMiddleware runs the authorization pipeline for gin routes.
type AuthMiddleware struct {
	authn *auth.Authenticator
}

func NewAuthMiddleware(authn *auth.Authenticator) *AuthMiddleware {
	return &AuthMiddleware{authn: authn}
}

// Protect runs the strict pipeline, followed by a role check when roles are given.
func (m *AuthMiddleware) Protect(roles ...models.UserRole) gin.HandlerFunc {
	pipeline := m.authn.Pipeline()
	if len(roles) > 0 {
		pipeline = pipeline.Then(auth.RestrictToStage(roles...))
	}

	return func(c *gin.Context) {
		st := &auth.State{Request: c.Request}
		if res := pipeline.Run(c.Request.Context(), st); res.Rejected() {
			if st.Identity != nil {
				attachIdentity(c, st.Identity)
			}
			apperrors.HandleError(c, res.Err)
			return
		}
		attachIdentity(c, st.Identity)
		c.Next()
	}
}

// IsLoggedIn runs the permissive pipeline; it never rejects a request.
func (m *AuthMiddleware) IsLoggedIn() gin.HandlerFunc {
	return func(c *gin.Context) {
		if user := m.authn.Identify(c.Request.Context(), c.Request); user != nil {
			attachIdentity(c, user)
		}
		c.Next()
	}
}

// RestrictTo is the role check for groups already behind Protect.
func RestrictTo(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		if res := auth.Authorize(CurrentIdentity(c), roles...); res.Rejected() {
			apperrors.HandleError(c, res.Err)
			return
		}
		c.Next()
	}
}

// CurrentIdentity returns the identity resolved for this request, or nil.
func CurrentIdentity(c *gin.Context) *models.User {
	user, _ := auth.IdentityFrom(c.Request.Context())
	return user
}

func attachIdentity(c *gin.Context, user *models.User) {
	ctx := auth.WithIdentity(c.Request.Context(), user)
	ctx = logger.WithUserID(ctx, user.ID)
	c.Request = c.Request.WithContext(ctx)
	c.Set(string(contextkeys.IdentityContextKey), user)
}

// IdentityLookup resolves token subjects through the active-only read path.
// A transaction in the request context takes precedence over db.
func IdentityLookup(userRepo repositories.UserRepository, db *gorm.DB) auth.IdentityLookup {
	return func(ctx context.Context, id string) (*models.User, error) {
		conn := db
		if tx, ok := ctx.Value(contextkeys.DBContextKey).(*gorm.DB); ok && tx != nil {
			conn = tx
		}
		user, err := userRepo.FindActiveByID(ctx, conn, id)
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, auth.ErrIdentityNotFound
		}
		return user, err
	}
}
