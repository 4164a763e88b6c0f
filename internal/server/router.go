package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/dvanenk/bookery/internal/app/middleware"
	"github.com/dvanenk/bookery/internal/app/renderer"
	"github.com/dvanenk/bookery/internal/pkg/config"
	"github.com/dvanenk/bookery/internal/routes"
)

// SetupRouter configures and returns the Gin router with all middleware and
// routes.
func SetupRouter(dbPool *pgxpool.Pool, cfg *config.Config, logger *zap.Logger) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(ginzap.Ginzap(logger, time.RFC3339, true))
	r.Use(ginzap.RecoveryWithZap(logger, true))
	r.Use(otelgin.Middleware("bookery"))
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeaders())

	store := cookie.NewStore([]byte(cfg.Session.Secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.Session.MaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(cfg.Session.CookieName, store))
	r.Use(middleware.IdentityFromSession())

	if err := renderer.LoadTemplates(r); err != nil {
		return nil, err
	}

	routes.Setup(r, dbPool, cfg, logger)

	return r, nil
}
