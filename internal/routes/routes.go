package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/dvanenk/bookery/internal/app/domain/auth"
	"github.com/dvanenk/bookery/internal/app/domain/catalog"
	"github.com/dvanenk/bookery/internal/app/domain/home"
	"github.com/dvanenk/bookery/internal/app/domain/reviews"
	"github.com/dvanenk/bookery/internal/app/middleware"
	"github.com/dvanenk/bookery/internal/app/renderer"
	"github.com/dvanenk/bookery/internal/pkg/config"
	"github.com/dvanenk/bookery/internal/pkg/goodreads"
)

type AppHandlers struct {
	Home    *home.HomeHandlers
	Auth    *auth.AuthHandlers
	Catalog *catalog.CatalogHandlers
	Reviews *reviews.ReviewHandlers
}

// Setup wires repositories, services and handlers and registers every route.
func Setup(r *gin.Engine, dbPool *pgxpool.Pool, cfg *config.Config, log *zap.Logger) {
	rend := renderer.New(log)
	handlers := setupDependencies(dbPool, cfg, rend, log)
	setupRouter(r, handlers, rend)
}

func setupDependencies(dbPool *pgxpool.Pool, cfg *config.Config, rend *renderer.Renderer, log *zap.Logger) *AppHandlers {
	accountRepo := auth.NewPostgresAccountRepo(dbPool, log)
	bookRepo := catalog.NewPostgresBookRepo(dbPool, log)
	reviewRepo := reviews.NewPostgresReviewRepo(dbPool, log)
	ratingClient := goodreads.NewClient(cfg.Goodreads, log)

	authService := auth.NewAuthService(accountRepo, log)
	catalogService := catalog.NewCatalogService(bookRepo, reviewRepo, ratingClient, log)
	reviewService := reviews.NewReviewService(reviewRepo, log)

	return &AppHandlers{
		Home:    home.NewHomeHandlers(rend),
		Auth:    auth.NewAuthHandlers(authService, rend, log),
		Catalog: catalog.NewCatalogHandlers(catalogService, rend, log),
		Reviews: reviews.NewReviewHandlers(reviewService, rend, log),
	}
}

func setupRouter(r *gin.Engine, h *AppHandlers, rend *renderer.Renderer) {
	requireAuth := middleware.RequireAuth(rend)

	r.GET("/", h.Home.Index)
	r.GET("/register", h.Auth.RegisterPage)
	r.POST("/register", h.Auth.Register)
	r.POST("/login", h.Auth.Login)
	r.GET("/logout", h.Auth.Logout)

	r.GET("/search", requireAuth, h.Catalog.SearchPage)
	r.GET("/:isbn", requireAuth, h.Catalog.BookPage)
	r.POST("/:isbn", requireAuth, h.Reviews.Submit)

	r.GET("/api/:isbn", h.Catalog.Summary)

	r.NoMethod(func(c *gin.Context) {
		rend.Error(c, http.StatusMethodNotAllowed, "The method is not allowed for the requested URL.")
	})
	r.NoRoute(func(c *gin.Context) {
		rend.Error(c, http.StatusNotFound, "The requested URL was not found on the server.")
	})
}
