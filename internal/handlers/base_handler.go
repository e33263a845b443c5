package handlers

import (
	"fmt"
	"strconv"

	"tourhub_backend/internal/logger"
	"tourhub_backend/internal/middleware"
	"tourhub_backend/internal/models"
	"tourhub_backend/internal/repositories"
	"tourhub_backend/internal/validator"
	"tourhub_backend/pkg/apperrors"
	"tourhub_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ============================================================================
// 1. Base handler
// ============================================================================

type BaseHandler struct {
	validator *validator.Validator
}

func NewBaseHandler(v *validator.Validator) *BaseHandler {
	return &BaseHandler{
		validator: v,
	}
}

// ============================================================================
// 2. DB access
// ============================================================================

// GetDB returns the *gorm.DB (pool or transaction) placed in the gin context by
// DBMiddleware. Every handler that talks to a service must use it.
func (h *BaseHandler) GetDB(c *gin.Context) *gorm.DB {
	dbKey := string(contextkeys.DBContextKey)

	val, ok := c.Get(dbKey)
	if !ok {
		logger.CtxError(c.Request.Context(), "critical error: db key not found in context", "key", dbKey)
		panic("critical error: DBMiddleware did not set the db key")
	}

	db, ok := val.(*gorm.DB)
	if !ok {
		logger.CtxError(c.Request.Context(), "critical error: db in context is not *gorm.DB", "key", dbKey, "type", fmt.Sprintf("%T", val))
		panic("critical error: db in context has incorrect type")
	}

	return db
}

// ============================================================================
// 3. Binding and validation
// ============================================================================

func (h *BaseHandler) BindAndValidate_JSON(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := c.ShouldBindJSON(obj); err != nil {
		logger.CtxWithError(ctx, "Failed to bind JSON body", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body: "+err.Error()))
		return false
	}

	return h.validate(c, obj)
}

func (h *BaseHandler) validate(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := h.validator.Validate(obj); err != nil {
		if vErr, ok := err.(*validator.ValidationError); ok {
			logger.CtxWarn(ctx, "Validation failed", "errors", vErr.Errors, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.ValidationError(vErr.Errors))
		} else {
			logger.CtxWithError(ctx, "Internal validator error", err, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.InternalError(err))
		}
		return false
	}
	return true
}

// ============================================================================
// 4. Error handling
// ============================================================================

func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		if appErr.IsOperational() {
			logger.CtxWarn(ctx, "Service error",
				"error", appErr.Message,
				"details", appErr.Details,
				"path", c.Request.URL.Path,
			)
		}
		apperrors.HandleError(c, appErr)
	} else {
		logger.CtxWithError(ctx, "Internal server error", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.InternalError(err))
	}
}

// ============================================================================
// 5. Helpers
// ============================================================================

// CurrentUser returns the identity attached by the auth middleware. Routes
// behind Protect always have one; a missing identity is answered with 401.
func (h *BaseHandler) CurrentUser(c *gin.Context) (*models.User, bool) {
	user := middleware.CurrentIdentity(c)
	if user == nil {
		logger.CtxWarn(c.Request.Context(), "Unauthorized access: no identity in context",
			"path", c.Request.URL.Path,
			"ip", c.ClientIP(),
		)
		apperrors.HandleError(c, apperrors.ErrNotLoggedIn)
		return nil, false
	}
	return user, true
}

// BaseURL is the scheme and host the client used to reach this request.
func BaseURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host
}

func ParseQueryInt(c *gin.Context, key string, defaultValue int) int {
	valueStr := c.Query(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func ParsePagination(c *gin.Context) (page int, limit int) {
	page = ParseQueryInt(c, "page", repositories.DefaultPage)
	if page <= 0 {
		page = repositories.DefaultPage
	}

	limit = ParseQueryInt(c, "limit", repositories.DefaultLimit)
	if limit <= 0 {
		limit = repositories.DefaultLimit
	}
	if limit > repositories.MaxLimit {
		limit = repositories.MaxLimit
	}

	return page, limit
}

var reservedQueryKeys = map[string]struct{}{
	"page":   {},
	"limit":  {},
	"sort":   {},
	"fields": {},
}

// ParseListOptions reads page, limit and sort; every other query key becomes
// an equality filter, which the repository checks against its column list.
func ParseListOptions(c *gin.Context) repositories.ListOptions {
	page, limit := ParsePagination(c)
	opts := repositories.ListOptions{
		Page:    page,
		Limit:   limit,
		Sort:    c.Query("sort"),
		Filters: map[string]interface{}{},
	}
	for key, values := range c.Request.URL.Query() {
		if _, reserved := reservedQueryKeys[key]; reserved || len(values) == 0 {
			continue
		}
		opts.Filters[key] = values[0]
	}
	return opts
}
