package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const (
	dbConnected    = "connected"
	dbNotConnected = "not_connected_yet"
)

// Pinger is satisfied by *backend.Backend.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHTTP struct {
	DB   Pinger
	Mode string
	// Degraded marks a process running without a database.
	Degraded bool
}

type healthResponse struct {
	Status string `json:"status"`
	DB     string `json:"db"`
	Mode   string `json:"mode"`
}

// Health always answers 200; the db field says whether storage is reachable.
func (h *HealthHTTP) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, healthResponse{
		Status: "healthy",
		DB:     h.dbState(c.Request().Context()),
		Mode:   h.Mode,
	})
}

func (h *HealthHTTP) Live(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

// Ready fails only when a configured database stops answering. Degraded mode
// is ready by definition.
func (h *HealthHTTP) Ready(c echo.Context) error {
	if h.Degraded {
		return c.NoContent(http.StatusOK)
	}
	if h.dbState(c.Request().Context()) != dbConnected {
		return c.NoContent(http.StatusServiceUnavailable)
	}
	return c.NoContent(http.StatusOK)
}

func (h *HealthHTTP) dbState(ctx context.Context) string {
	if h.DB == nil {
		return dbNotConnected
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := h.DB.Ping(ctx); err != nil {
		return dbNotConnected
	}
	return dbConnected
}
