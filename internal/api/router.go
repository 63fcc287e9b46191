package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/realtorhub/homes-api/docs"
	"github.com/realtorhub/homes-api/internal/api/handler"
	"github.com/realtorhub/homes-api/internal/api/middleware"
	"github.com/realtorhub/homes-api/internal/core/domain"
	"github.com/realtorhub/homes-api/internal/core/ports"
)

// Deps holds everything the router needs to build its handlers.
type Deps struct {
	AuthService ports.AuthService
	HomeService ports.HomeService
	JWTSecret   string
	// Readiness dependencies keyed by name, e.g. "mongodb", "redis".
	Pingers map[string]handler.Pinger
	Logger  zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(middleware.Tracing())
	e.Use(echoprometheus.NewMiddleware("homes"))

	authMiddleware := middleware.Auth(d.JWTSecret)
	realtorOnly := middleware.RBAC(d.AuthService, domain.RoleRealtor)

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(d.AuthService)
	e.POST("/auth/signup", authHandler.Signup)
	e.POST("/auth/signin", authHandler.Signin)
	e.GET("/auth/me", authHandler.Me, authMiddleware)

	// --- Home routes ---
	homeHandler := handler.NewHomeHandler(d.HomeService)
	homes := e.Group("/home")
	homes.GET("", homeHandler.List)
	homes.GET("/:id", homeHandler.Get)
	homes.POST("", homeHandler.Create, authMiddleware, realtorOnly)
	homes.PUT("/:id", homeHandler.Update, authMiddleware, realtorOnly)
	homes.DELETE("/:id", homeHandler.Delete, authMiddleware, realtorOnly)
	homes.POST("/:id/images", homeHandler.AddImage, authMiddleware, realtorOnly)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler(d.Pingers)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness) // pings every configured dependency

	// --- Ops ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
