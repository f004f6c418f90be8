package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/cloudmart/internal/service"
	"github.com/Skotchmaster/cloudmart/pkg/logging"
)

type CartHTTP struct {
	Svc *service.CartService
}

type addItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  *int   `json:"quantity"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get_cart")

	items, err := h.Svc.GetCart(ctx, userID(c))
	if err != nil {
		return fail(l, "get_cart_error", err)
	}

	return c.JSON(http.StatusOK, items)
}

func (h *CartHTTP) AddItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add_item")

	var req addItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	qty := 1
	if req.Quantity != nil {
		qty = *req.Quantity
	}

	msg, err := h.Svc.AddToCart(ctx, userID(c), req.ProductID, qty)
	if err != nil {
		return fail(l, "add_to_cart_error", err)
	}

	l.Info("add_to_cart_success", "product_id", req.ProductID, "quantity", qty)
	return c.JSON(http.StatusOK, messageResponse{Message: msg})
}

func (h *CartHTTP) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove_item")

	productID := c.Param("product_id")
	msg, err := h.Svc.RemoveFromCart(ctx, userID(c), productID)
	if err != nil {
		return fail(l, "remove_from_cart_error", err)
	}

	l.Info("remove_from_cart_success", "product_id", productID)
	return c.JSON(http.StatusOK, messageResponse{Message: msg})
}
