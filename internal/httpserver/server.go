package httpserver

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/cloudmart/pkg/metrics"
	loggingmw "github.com/Skotchmaster/cloudmart/pkg/middleware/logging"
)

// New builds the echo instance with the middleware chain and all routes.
func New(base *slog.Logger, m *metrics.ServerMetrics, d *Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	if m != nil {
		e.Use(m.Middleware())
		d.Metrics = echo.WrapHandler(m.Handler())
	}
	e.Use(loggingmw.RequestLogger(base))

	Register(e, d)
	return e
}
