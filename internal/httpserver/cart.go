package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mushroomery/shop/internal/logging"
	"github.com/mushroomery/shop/internal/middleware"
	"github.com/mushroomery/shop/internal/service"
)

type CartHTTP struct {
	Svc *service.CartService
}

func (h *CartHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart_create")

	userID, err := middleware.UserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authorized")
	}

	cart, err := h.Svc.CreateCart(ctx, userID)
	if err != nil {
		l.Warn("cart_create_failed", "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, cart)
}

func (h *CartHTTP) Get(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authorized")
	}

	rows, err := h.Svc.FetchCart(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, rows)
}

// Delete removes the caller's cart. Unknown cart ids fall through to a
// 204 as well; the operation is idempotent.
func (h *CartHTTP) Delete(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authorized")
	}

	cartID, err := uuid.Parse(c.Param("cartId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid cart id")
	}

	if err := h.Svc.DeleteCart(c.Request().Context(), userID, cartID); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CartHTTP) AddItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart_add_item")

	userID, err := middleware.UserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authorized")
	}

	var req struct {
		ProductID uuid.UUID `json:"product_id"`
		Quantity  uint      `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("cart_add_item_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	item, err := h.Svc.AddItem(ctx, userID, req.ProductID, req.Quantity)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, item)
}

func (h *CartHTTP) RemoveItem(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authorized")
	}

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	if err := h.Svc.RemoveItem(c.Request().Context(), userID, productID); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
