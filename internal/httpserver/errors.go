package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mushroomery/shop/internal/service"
)

// httpError maps service sentinel errors onto HTTP statuses. Anything
// unrecognized is a 500 with a generic body.
func httpError(err error) error {
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		return echo.NewHTTPError(http.StatusUnauthorized, "not authorized")
	case errors.Is(err, service.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrUnavailable):
		return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}
