package home

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dvanenk/bookery/internal/app/renderer"
)

type HomeHandlers struct {
	renderer *renderer.Renderer
}

func NewHomeHandlers(r *renderer.Renderer) *HomeHandlers {
	return &HomeHandlers{renderer: r}
}

// Index handles GET /. The page renders for everyone; the identity, when
// present, comes along through the shared envelope.
func (h *HomeHandlers) Index(c *gin.Context) {
	h.renderer.HTML(c, http.StatusOK, "home.html", gin.H{})
}
