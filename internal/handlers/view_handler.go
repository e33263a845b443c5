package handlers

import (
	"embed"
	"html/template"
	"net/http"

	"tourhub_backend/internal/middleware"
	"tourhub_backend/internal/models"
	"tourhub_backend/internal/repositories"
	"tourhub_backend/internal/services"
	"tourhub_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

//go:embed views/*.html
var viewFS embed.FS

// LoadViews parses the embedded page templates for gin's HTML renderer.
func LoadViews() (*template.Template, error) {
	return template.ParseFS(viewFS, "views/*.html")
}

type ViewHandler struct {
	*BaseHandler
	tourService services.TourService
}

func NewViewHandler(base *BaseHandler, tourService services.TourService) *ViewHandler {
	return &ViewHandler{
		BaseHandler: base,
		tourService: tourService,
	}
}

type pageData struct {
	Title   string
	User    *models.User
	Tours   []models.Tour
	Tour    *models.Tour
	Message string
}

func (h *ViewHandler) Overview(c *gin.Context) {
	tours, _, err := h.tourService.List(c.Request.Context(), h.GetDB(c), repositories.ListOptions{})
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.HTML(http.StatusOK, "overview", pageData{
		Title: "All Tours",
		User:  middleware.CurrentIdentity(c),
		Tours: tours,
	})
}

func (h *ViewHandler) Tour(c *gin.Context) {
	tour, err := h.tourService.GetBySlug(c.Request.Context(), h.GetDB(c), c.Param("slug"))
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.HTML(http.StatusOK, "tour", pageData{
		Title: tour.Name,
		User:  middleware.CurrentIdentity(c),
		Tour:  tour,
	})
}

func (h *ViewHandler) Login(c *gin.Context) {
	c.HTML(http.StatusOK, "login", pageData{
		Title: "Log into your account",
		User:  middleware.CurrentIdentity(c),
	})
}

func (h *ViewHandler) Account(c *gin.Context) {
	c.HTML(http.StatusOK, "account", pageData{
		Title: "Your account",
		User:  middleware.CurrentIdentity(c),
	})
}

func (h *ViewHandler) renderError(c *gin.Context, err error) {
	appErr, ok := apperrors.AsAppError(err)
	if !ok || !appErr.IsOperational() {
		h.HandleServiceError(c, err)
		return
	}
	c.HTML(appErr.HTTPCode, "error", pageData{
		Title:   "Something went wrong!",
		User:    middleware.CurrentIdentity(c),
		Message: appErr.Message,
	})
}
