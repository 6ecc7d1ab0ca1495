package middleware

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mushroomery/shop/internal/service"
)

type RequireAuth struct {
	Auth *service.AuthService
}

func NewRequireAuth(auth *service.AuthService) *RequireAuth {
	return &RequireAuth{Auth: auth}
}

// Middleware gates a route on a valid bearer token. The token travels
// raw in the Authorization header, without a "Bearer " prefix.
func (m *RequireAuth) Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw := c.Request().Header.Get(echo.HeaderAuthorization)
		if raw == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "not authorized")
		}

		user, err := m.Auth.Resolve(c.Request().Context(), raw)
		if err != nil {
			if errors.Is(err, service.ErrUnauthorized) {
				return echo.NewHTTPError(http.StatusUnauthorized, "not authorized")
			}
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}

		c.Set("user_id", user.ID)
		c.Set("username", user.Username)
		c.Set("role", user.Role)
		return next(c)
	}
}

// UserID pulls the authenticated user's id out of the request context.
func UserID(c echo.Context) (uuid.UUID, error) {
	id, ok := c.Get("user_id").(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, errors.New("unauthorized")
	}
	return id, nil
}
