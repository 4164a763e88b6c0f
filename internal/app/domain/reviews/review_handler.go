package reviews

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/dvanenk/bookery/internal/app/models"
	"github.com/dvanenk/bookery/internal/app/renderer"
	"github.com/dvanenk/bookery/internal/observability/metrics"
)

type ReviewHandlers struct {
	service  ReviewService
	renderer *renderer.Renderer
	logger   *zap.Logger
}

func NewReviewHandlers(service ReviewService, r *renderer.Renderer, logger *zap.Logger) *ReviewHandlers {
	return &ReviewHandlers{
		service:  service,
		renderer: r,
		logger:   logger,
	}
}

// Submit handles POST /:isbn. Route access is gated by RequireAuth; the
// identity-match and uniqueness checks happen in the service and store.
func (h *ReviewHandlers) Submit(c *gin.Context) {
	isbn := c.Param("isbn")
	declaredAuthor := c.PostForm("review_username")
	body := c.PostForm("review")

	rating, err := strconv.ParseFloat(c.PostForm("rating"), 64)
	if err != nil {
		h.renderer.Error(c, http.StatusBadRequest, "Invalid rating")
		return
	}

	identity := renderer.GetIdentity(c)
	err = h.service.Submit(c.Request.Context(), identity, declaredAuthor, isbn, rating, body)
	metrics.Get().ReviewSubmissionsTotal.Add(c.Request.Context(), 1,
		metric.WithAttributes(attribute.Bool("ok", err == nil)))

	switch {
	case err == nil:
		c.Redirect(http.StatusSeeOther, "/"+isbn)
	case errors.Is(err, models.ErrConflict):
		h.renderer.Error(c, http.StatusForbidden, "You can't review more than once.")
	case errors.Is(err, models.ErrForbidden):
		h.renderer.Error(c, http.StatusForbidden, "You can't submit a review which is not under your name.")
	case errors.Is(err, models.ErrNotFound):
		h.renderer.Error(c, http.StatusNotFound, "Book not found")
	default:
		h.logger.Error("Review submission failed", zap.String("isbn", isbn), zap.Error(err))
		h.renderer.Error(c, http.StatusInternalServerError, "Could not record review")
	}
}
