package api

import (
	"dfc-optim-service/internal/api/handlers"
	"dfc-optim-service/internal/platform/obs"
	"dfc-optim-service/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// BodyLimit caps request bodies.
const BodyLimit = "10M"

// NewRouter wires HTTP handlers with their dependencies.
// Handlers stay unaware of concrete adapters.
func NewRouter(svc *services.OptimizeService, metrics *obs.Metrics) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(requestID())
	e.Use(requestLogger(metrics))
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit(BodyLimit))

	optim := &handlers.OptimHandler{Service: svc}

	e.GET("/health", handlers.Health)
	e.POST("/optim", optim.Optim)
	e.POST("/optim/needs", optim.Needs)
	e.POST("/optim/raw", optim.Raw)

	if metrics != nil {
		e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	}

	return e
}
