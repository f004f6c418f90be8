package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/cloudmart/internal/service"
	"github.com/Skotchmaster/cloudmart/pkg/logging"
)

type CatalogHTTP struct {
	Svc *service.CatalogService
}

func (h *CatalogHTTP) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.list_products")

	category := c.QueryParam("category")
	products, err := h.Svc.ListProducts(ctx, category)
	if err != nil {
		return fail(l, "list_products_error", err)
	}

	l.Debug("list_products_success", "category", category, "count", len(products))
	return c.JSON(http.StatusOK, products)
}

func (h *CatalogHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.get_product")

	product, err := h.Svc.GetProduct(ctx, c.Param("id"))
	if err != nil {
		return fail(l, "get_product_error", err)
	}

	return c.JSON(http.StatusOK, product)
}

func (h *CatalogHTTP) Categories(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.categories")

	cats, err := h.Svc.Categories(ctx)
	if err != nil {
		return fail(l, "list_categories_error", err)
	}

	return c.JSON(http.StatusOK, cats)
}
