package httpserver

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/cloudmart/internal/models"
	"github.com/Skotchmaster/cloudmart/internal/service"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrEmptyCart),
		errors.Is(err, models.ErrCartTooLarge),
		errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, models.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// fail logs err under event and converts it into an echo error. Server
// errors keep their cause out of the response body.
func fail(l *slog.Logger, event string, err error) error {
	status := statusFor(err)
	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		l.Error(event, "status", status, "error", err)
		return echo.NewHTTPError(status, "internal error").SetInternal(err)
	}

	l.Warn(event, "status", status, "error", err)
	return echo.NewHTTPError(status, message(err, status))
}

func message(err error, status int) string {
	switch {
	case errors.Is(err, models.ErrEmptyCart):
		return "Cart is empty"
	case errors.Is(err, models.ErrCartTooLarge):
		return "Cart has too many items to order at once"
	case errors.Is(err, models.ErrConflict):
		return "Cart changed while placing the order, try again"
	case errors.Is(err, models.ErrUnavailable):
		return "Database not configured"
	case status == http.StatusNotFound:
		return "Product not found"
	default:
		return err.Error()
	}
}
