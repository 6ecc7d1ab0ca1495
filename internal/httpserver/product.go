package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mushroomery/shop/internal/logging"
	"github.com/mushroomery/shop/internal/models"
	"github.com/mushroomery/shop/internal/service"
	"github.com/mushroomery/shop/internal/util"
)

type ProductHTTP struct {
	Svc *service.CatalogService
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

func (h *ProductHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product_create")

	var req struct {
		Name          string  `json:"name"`
		Description   string  `json:"description"`
		Price         float64 `json:"price"`
		StockQuantity int     `json:"stock_quantity"`
		Image         string  `json:"image"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("product_create_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	product := models.Product{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		Image:         req.Image,
	}
	if err := h.Svc.CreateProduct(ctx, &product); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, product)
}

func (h *ProductHTTP) List(c echo.Context) error {
	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	items, total, err := h.Svc.ListProducts(c.Request().Context(), offset, limit)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"data": items,
		"meta": echo.Map{
			"page":        page,
			"size":        limit,
			"total":       total,
			"total_pages": (total + int64(limit) - 1) / int64(limit),
			"has_prev":    page > 1,
			"has_next":    int64(offset+limit) < total,
		},
	})
}

func (h *ProductHTTP) Search(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query parameter q is required")
	}

	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	from, limit := util.Calculate(page, size)

	total, products, err := h.Svc.SearchProducts(c.Request().Context(), q, from, limit)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"total": total, "products": products})
}
