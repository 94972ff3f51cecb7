package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/productmgmt/product-api/internal/api/handler"
	"github.com/productmgmt/product-api/internal/api/middleware"
	"github.com/productmgmt/product-api/internal/core/domain"
	"github.com/productmgmt/product-api/internal/core/ports"
	"github.com/productmgmt/product-api/internal/pkg/jwtauth"
)

const metricsPath = "/metrics"

// Dependencies are the collaborators the HTTP layer needs.
type Dependencies struct {
	Products ports.ProductService
	Auth     ports.AuthService
	DB       handler.Pinger
	Tokens   jwtauth.Config
	Logger   zerolog.Logger

	// Registerer and Gatherer back the HTTP metrics. They default to the
	// process-wide Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	if deps.Registerer == nil {
		deps.Registerer = prometheus.DefaultRegisterer
	}
	if deps.Gatherer == nil {
		deps.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "product_api",
		Subsystem:  "http",
		Registerer: deps.Registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == metricsPath
		},
	}))

	// --- Public routes ---
	healthHandler := handler.NewHealthHandler(deps.DB)
	authHandler := handler.NewAuthHandler(deps.Auth)

	e.GET("/", handler.Home)
	e.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – is the database reachable?
	e.POST("/login", authHandler.Login)
	e.GET(metricsPath, echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: deps.Gatherer,
	}))

	// --- Product routes (bearer token, Admin role) ---
	productHandler := handler.NewProductHandler(deps.Products)
	products := e.Group("/products",
		middleware.Auth(deps.Tokens),
		middleware.RBAC(domain.RoleAdmin),
	)
	products.GET("", productHandler.List)
	products.POST("", productHandler.Create)
	products.GET("/:id", productHandler.Get)
	products.PUT("/:id", productHandler.Update)
	products.DELETE("/:id", productHandler.Delete)

	e.RouteNotFound("/*", func(c echo.Context) error {
		return c.NoContent(http.StatusNotFound)
	})

	return e
}
