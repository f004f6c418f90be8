package httpserver

import (
	"github.com/labstack/echo/v4"
)

const userIDKey = "user_id"

type Deps struct {
	CatalogHandler *CatalogHTTP
	CartHandler    *CartHTTP
	OrderHandler   *OrderHTTP
	HealthHandler  *HealthHTTP
	// DefaultUser is attached to every API request in place of a login.
	DefaultUser string
	Metrics     echo.HandlerFunc
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/", Home)
	e.GET("/health", d.HealthHandler.Health)
	e.GET("/health/live", d.HealthHandler.Live)
	e.GET("/health/ready", d.HealthHandler.Ready)
	if d.Metrics != nil {
		e.GET("/metrics", d.Metrics)
	}

	api := e.Group("/api/v1", withUser(d.DefaultUser))

	api.GET("/products", d.CatalogHandler.ListProducts)
	api.GET("/products/:id", d.CatalogHandler.GetProduct)
	api.GET("/categories", d.CatalogHandler.Categories)

	api.GET("/cart", d.CartHandler.GetCart)
	api.POST("/cart/items", d.CartHandler.AddItem)
	api.DELETE("/cart/items/:product_id", d.CartHandler.RemoveItem)

	api.POST("/orders", d.OrderHandler.PlaceOrder)
	api.GET("/orders", d.OrderHandler.ListOrders)
}

func withUser(id string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(userIDKey, id)
			return next(c)
		}
	}
}

func userID(c echo.Context) string {
	s, _ := c.Get(userIDKey).(string)
	return s
}
