package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/bookstore/catalog-api/docs"
	"github.com/bookstore/catalog-api/internal/api/handler"
	"github.com/bookstore/catalog-api/internal/api/middleware"
	"github.com/bookstore/catalog-api/internal/core/domain"
	"github.com/bookstore/catalog-api/internal/core/ports"
)

// Dependencies carries everything NewRouter wires into the routes.
type Dependencies struct {
	Logger zerolog.Logger

	Authors ports.AuthorService
	Genres  ports.GenreService
	Books   ports.BookService
	Auth    ports.AuthService

	// HealthChecks are run by /health/ready, keyed by dependency name.
	HealthChecks map[string]handler.Check

	// UploadDir is served statically under UploadPrefix.
	UploadDir    string
	UploadPrefix string

	// AuthRateLimit and AuthRateBurst throttle login and register per client IP.
	AuthRateLimit float64
	AuthRateBurst int

	// Registry receives the HTTP metrics. Nil means the default registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if d.Registry != nil {
		registerer, gatherer = d.Registry, d.Registry
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "bookstore",
		Registerer: registerer,
	}))

	// --- Operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.HealthChecks)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	if d.UploadDir != "" && d.UploadPrefix != "" {
		e.Static(d.UploadPrefix, d.UploadDir)
	}

	// --- Access control ---
	auth := middleware.Auth(d.Auth)
	admin := middleware.RBAC(domain.RoleAdmin)
	user := middleware.RBAC(domain.RoleUser)
	limit := middleware.RateLimit(d.AuthRateLimit, d.AuthRateBurst)

	// Path entities resolve after authentication and before authorization,
	// so a missing entity is a 404 for any authenticated caller.
	authorID := middleware.Entity(handler.AuthorKey, d.Authors.Get)
	genreID := middleware.Entity(handler.GenreKey, d.Genres.Get)
	bookID := middleware.Entity(handler.BookKey, d.Books.Get)

	api := e.Group("/api")

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(d.Auth)
	api.POST("/login", authHandler.Login, limit)
	api.POST("/register", authHandler.Register, limit)
	api.GET("/me", authHandler.Me, auth, user)

	// --- Author routes ---
	authorHandler := handler.NewAuthorHandler(d.Authors, d.Books)
	api.GET("/authors", authorHandler.List)
	api.GET("/authors/:id", authorHandler.Get, authorID)
	api.GET("/authors/:id/books", authorHandler.Books, authorID)
	api.POST("/authors", authorHandler.Create, auth, admin)
	api.PUT("/authors/:id", authorHandler.Update, auth, authorID, admin)
	api.DELETE("/authors/:id", authorHandler.Delete, auth, authorID, admin)

	// --- Genre routes ---
	genreHandler := handler.NewGenreHandler(d.Genres, d.Books)
	api.GET("/genres", genreHandler.List)
	api.GET("/genres/:id", genreHandler.Get, genreID)
	api.GET("/genres/:id/books", genreHandler.Books, genreID)
	api.POST("/genres", genreHandler.Create, auth, admin)
	api.PUT("/genres/:id", genreHandler.Update, auth, genreID, admin)
	api.DELETE("/genres/:id", genreHandler.Delete, auth, genreID, admin)

	// --- Book routes ---
	bookHandler := handler.NewBookHandler(d.Books)
	api.GET("/books", bookHandler.List)
	api.GET("/books/:id", bookHandler.Get, bookID)
	api.POST("/books", bookHandler.Create, auth, admin)
	api.POST("/books/:id/image", bookHandler.UploadImage, auth, bookID, admin)
	api.PUT("/books/:id", bookHandler.Update, auth, bookID, admin)
	api.DELETE("/books/:id", bookHandler.Delete, auth, bookID, admin)

	return e
}
