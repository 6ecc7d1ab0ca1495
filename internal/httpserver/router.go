package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mushroomery/shop/internal/middleware"
)

type Deps struct {
	AuthHandler    *AuthHTTP
	ProductHandler *ProductHTTP
	CartHandler    *CartHTTP
	Auth           *middleware.RequireAuth
}

// Register wires the route table. The paths are a contract with the
// existing client and keep their historical shapes.
func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	e.POST("/users/register", d.AuthHandler.Register)
	e.POST("/users/login", d.AuthHandler.Login)
	e.GET("/api/users", d.AuthHandler.ListUsers)

	e.POST("/products/create", d.ProductHandler.Create)
	e.GET("/api/products", d.ProductHandler.List)
	e.GET("/products/search", d.ProductHandler.Search)

	gate := d.Auth.Middleware

	e.GET("/auth/me", d.AuthHandler.Me, gate)
	e.POST("/carts/create", d.CartHandler.Create, gate)
	e.GET("/carts", d.CartHandler.Get, gate)
	e.DELETE("/carts/:cartId", d.CartHandler.Delete, gate)
	e.POST("/carts/items", d.CartHandler.AddItem, gate)
	e.DELETE("/carts/items/:productId", d.CartHandler.RemoveItem, gate)
}
