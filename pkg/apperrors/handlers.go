package apperrors

import (
	"tourhub_backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every failed API response.
type ErrorResponse struct {
	Status string    `json:"status"`
	Error  *AppError `json:"error"`
}

// GinErrorHandler writes AppErrors as JSON.
type GinErrorHandler struct {
	Debug bool
}

func (h *GinErrorHandler) HandleGinError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
	}

	if !appErr.IsOperational() {
		logger.FromContext(c.Request.Context()).Error("server error",
			"code", appErr.Code,
			"error", err.Error(),
			"path", c.Request.URL.Path,
		)
		if !h.Debug {
			// never leak internals of non-operational errors
			cp := *appErr
			cp.Details = nil
			appErr = &cp
		}
	}

	c.AbortWithStatusJSON(appErr.HTTPCode, ErrorResponse{Status: appErr.Status(), Error: appErr})
}

var defaultHandler = &GinErrorHandler{}

// SetDebug toggles detail exposure for server errors.
func SetDebug(debug bool) {
	defaultHandler = &GinErrorHandler{Debug: debug}
}

// HandleError is the shortcut used by handlers and middleware.
func HandleError(c *gin.Context, err error) {
	defaultHandler.HandleGinError(c, err)
}
