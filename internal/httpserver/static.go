package httpserver

import (
	_ "embed"
	"net/http"

	"github.com/labstack/echo/v4"
)

//go:embed static/index.html
var indexHTML []byte

func Home(c echo.Context) error {
	return c.HTMLBlob(http.StatusOK, indexHTML)
}
