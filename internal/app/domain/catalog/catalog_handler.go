package catalog

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dvanenk/bookery/internal/app/models"
	"github.com/dvanenk/bookery/internal/app/renderer"
)

type CatalogHandlers struct {
	service  CatalogService
	renderer *renderer.Renderer
	logger   *zap.Logger
}

func NewCatalogHandlers(service CatalogService, r *renderer.Renderer, logger *zap.Logger) *CatalogHandlers {
	return &CatalogHandlers{
		service:  service,
		renderer: r,
		logger:   logger,
	}
}

// SearchPage handles GET /search. Route access is gated by RequireAuth.
func (h *CatalogHandlers) SearchPage(c *gin.Context) {
	query := c.Query("search")

	results, err := h.service.Search(c.Request.Context(), query)
	if err != nil {
		h.logger.Error("Search failed", zap.String("query", query), zap.Error(err))
		h.renderer.Error(c, http.StatusInternalServerError, "Search failed")
		return
	}

	h.renderer.HTML(c, http.StatusOK, "search.html", gin.H{
		"SearchQuery": query,
		"Results":     results,
	})
}

// BookPage handles GET /:isbn. Route access is gated by RequireAuth.
func (h *CatalogHandlers) BookPage(c *gin.Context) {
	isbn := c.Param("isbn")

	book, reviews, rating, err := h.service.BookDetail(c.Request.Context(), isbn)
	switch {
	case err == nil:
	case errors.Is(err, models.ErrNotFound):
		h.renderer.Error(c, http.StatusNotFound, "Book not found")
		return
	case errors.Is(err, models.ErrIntegrity):
		h.renderer.Error(c, http.StatusBadRequest, "Catalog lookup returned inconsistent data")
		return
	default:
		h.logger.Error("Book page failed", zap.String("isbn", isbn), zap.Error(err))
		h.renderer.Error(c, http.StatusInternalServerError, "Could not load book")
		return
	}

	h.renderer.HTML(c, http.StatusOK, "book.html", gin.H{
		"Book":      book,
		"Reviews":   reviews,
		"Goodreads": rating,
	})
}

// Summary handles GET /api/:isbn. No authentication required. An ISBN
// matching more than one catalog row is answered with 401; clients of this
// endpoint have always been told to treat that as "do not trust the data".
func (h *CatalogHandlers) Summary(c *gin.Context) {
	isbn := c.Param("isbn")

	summary, err := h.service.Summary(c.Request.Context(), isbn)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, summary)
	case errors.Is(err, models.ErrNotFound):
		h.renderer.Error(c, http.StatusNotFound, "Book not found")
	case errors.Is(err, models.ErrIntegrity):
		h.renderer.Error(c, http.StatusUnauthorized, "Catalog lookup returned inconsistent data")
	default:
		h.logger.Error("Summary failed", zap.String("isbn", isbn), zap.Error(err))
		h.renderer.Error(c, http.StatusInternalServerError, "Could not load book")
	}
}
