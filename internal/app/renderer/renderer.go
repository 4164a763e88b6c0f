// Package renderer owns the HTML template set and the page-data envelope
// shared by every rendered page: the current identity and the navbar links.
package renderer

import (
	"embed"
	"html/template"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dvanenk/bookery/internal/app/models"
)

//go:embed templates
var templateFS embed.FS

// IdentityKey is the gin context key under which the session middleware
// stores the request's models.Identity.
const IdentityKey = "identity"

const navbarCacheKey = "navbar"

// GetIdentity returns the identity resolved for this request. The zero value
// (anonymous) comes back when the middleware has not run or nobody is logged
// in, so callers never see an unset variable.
func GetIdentity(c *gin.Context) models.Identity {
	if v, ok := c.Get(IdentityKey); ok {
		if id, ok := v.(models.Identity); ok {
			return id
		}
	}
	return models.Identity{}
}

type Renderer struct {
	logger *zap.Logger
	cache  *cache.Cache
}

func New(logger *zap.Logger) *Renderer {
	return &Renderer{
		logger: logger,
		cache:  cache.New(cache.NoExpiration, cache.NoExpiration),
	}
}

// LoadTemplates parses the embedded template set into the gin engine.
func LoadTemplates(r *gin.Engine) error {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return err
	}
	r.SetHTMLTemplate(tmpl)
	return nil
}

// Navbar builds the navigation link list: label-capitalized, sorted by path.
// The list is static, so it is computed once and memoized process-wide.
func (r *Renderer) Navbar() []models.NavLink {
	if v, ok := r.cache.Get(navbarCacheKey); ok {
		return v.([]models.NavLink)
	}

	caser := cases.Title(language.English)
	links := []models.NavLink{
		{Path: "/", Label: "Home"},
		{Path: "/search", Label: caser.String("search"), LoginRequired: true},
	}
	sort.Slice(links, func(i, j int) bool { return links[i].Path < links[j].Path })

	r.cache.Set(navbarCacheKey, links, cache.NoExpiration)
	return links
}

// HTML renders a page template with the shared envelope merged in. Data keys
// "User" and "URLs" are reserved.
func (r *Renderer) HTML(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	identity := GetIdentity(c)
	if !identity.Anonymous() {
		data["User"] = identity.Username
		data["Login"] = true
	}
	data["URLs"] = r.Navbar()
	c.HTML(status, name, data)
}

// Error renders the error page for a non-2xx response: a short header (the
// HTTP reason phrase) and the specific cause, plus the identity if present.
func (r *Renderer) Error(c *gin.Context, status int, message string) {
	r.HTML(c, status, "error.html", gin.H{
		"Header":  http.StatusText(status),
		"Message": message,
	})
	c.Abort()
}
