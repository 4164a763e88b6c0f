package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/dvanenk/bookery/internal/app/middleware"
	"github.com/dvanenk/bookery/internal/app/models"
	"github.com/dvanenk/bookery/internal/app/renderer"
	"github.com/dvanenk/bookery/internal/observability/metrics"
)

type AuthHandlers struct {
	service  AuthService
	renderer *renderer.Renderer
	logger   *zap.Logger
}

func NewAuthHandlers(service AuthService, r *renderer.Renderer, logger *zap.Logger) *AuthHandlers {
	return &AuthHandlers{
		service:  service,
		renderer: r,
		logger:   logger,
	}
}

// RegisterPage handles GET /register.
func (h *AuthHandlers) RegisterPage(c *gin.Context) {
	h.renderer.HTML(c, http.StatusOK, "register.html", gin.H{})
}

// Register handles POST /register.
func (h *AuthHandlers) Register(c *gin.Context) {
	username := c.PostForm("register_username")
	password := c.PostForm("register_password")
	rpassword := c.PostForm("register_rpassword")

	err := h.service.Register(c.Request.Context(), username, password, rpassword)
	metrics.Get().AuthAttemptsTotal.Add(c.Request.Context(), 1,
		metric.WithAttributes(attribute.String("op", "register"), attribute.Bool("ok", err == nil)))

	switch {
	case err == nil:
		c.Redirect(http.StatusSeeOther, "/")
	case errors.Is(err, models.ErrPasswordMismatch):
		// Soft failure: re-prompt instead of a hard error page.
		h.renderer.HTML(c, http.StatusOK, "register.html", gin.H{
			"Message": "passwords weren't the same...",
		})
	case errors.Is(err, models.ErrBadRequest):
		h.renderer.Error(c, http.StatusBadRequest, "No username/password specified")
	case errors.Is(err, models.ErrConflict):
		h.renderer.Error(c, http.StatusBadRequest, "User already registered")
	default:
		h.logger.Error("Registration failed", zap.Error(err))
		h.renderer.Error(c, http.StatusInternalServerError, "Registration failed")
	}
}

// Login handles POST /login.
func (h *AuthHandlers) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	err := h.service.Verify(c.Request.Context(), username, password)
	metrics.Get().AuthAttemptsTotal.Add(c.Request.Context(), 1,
		metric.WithAttributes(attribute.String("op", "login"), attribute.Bool("ok", err == nil)))

	switch {
	case err == nil:
		if err := middleware.SetIdentity(c, models.Identity{Username: username}); err != nil {
			h.logger.Error("Failed to save session", zap.Error(err))
			h.renderer.Error(c, http.StatusInternalServerError, "Login failed")
			return
		}
		c.Redirect(http.StatusSeeOther, "/search")
	case errors.Is(err, models.ErrBadRequest):
		h.renderer.Error(c, http.StatusBadRequest, "No username/password specified")
	default:
		// One generic outcome for unknown user and wrong password alike.
		h.renderer.Error(c, http.StatusUnauthorized, "Login failed")
	}
}

// Logout handles GET /logout. Logging out an anonymous session is a no-op.
func (h *AuthHandlers) Logout(c *gin.Context) {
	if err := middleware.ClearIdentity(c); err != nil {
		h.logger.Error("Failed to clear session", zap.Error(err))
	}
	c.Redirect(http.StatusSeeOther, "/")
}
