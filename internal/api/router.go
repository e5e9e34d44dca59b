package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/psikobank/user-registry/docs"
	"github.com/psikobank/user-registry/internal/api/handler"
	"github.com/psikobank/user-registry/internal/api/middleware"
	"github.com/psikobank/user-registry/internal/core/domain"
	"github.com/psikobank/user-registry/internal/core/ports"
	"github.com/psikobank/user-registry/internal/core/service"
)

// Dependencies are the adapters the router wires the services onto.
type Dependencies struct {
	Users        ports.UserRepository
	Denylist     ports.TokenDenylist
	JWTSecret    string
	TokenTTL     time.Duration
	Logger       zerolog.Logger
	HealthChecks []handler.Check
	// Registry receives the HTTP request metrics and serves /metrics.
	// Nil means the default Prometheus registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Logger))
	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if deps.Registry != nil {
		registerer, gatherer = deps.Registry, deps.Registry
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "psikobank",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Dependencies ---
	userService := service.NewUserService(deps.Users, deps.Logger)
	authService := service.NewAuthService(deps.Users, deps.Denylist, deps.JWTSecret, deps.TokenTTL, deps.Logger)
	userHandler := handler.NewUserHandler(userService)
	authHandler := handler.NewAuthHandler(authService)
	healthHandler := handler.NewHealthHandler(deps.HealthChecks...)

	authenticated := []echo.MiddlewareFunc{
		middleware.Auth(deps.JWTSecret, deps.Denylist, deps.Logger),
		middleware.Requester(deps.Users),
	}

	// --- Auth routes ---
	auth := e.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout, authenticated...)
	auth.GET("/me", authHandler.Me, authenticated...)

	// --- User registry ---
	users := e.Group("/users", authenticated...)
	users.GET("", userHandler.List)
	users.POST("", userHandler.Create, middleware.RBAC(domain.ActionCreate))
	users.GET("/:id", userHandler.Show)
	users.PUT("/:id", userHandler.Update)
	users.PATCH("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)

	// --- Operational endpoints (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
