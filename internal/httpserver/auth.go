package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mushroomery/shop/internal/logging"
	"github.com/mushroomery/shop/internal/models"
	"github.com/mushroomery/shop/internal/service"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_register")

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.Register(ctx, req.Username, req.Password, req.Role)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, user)
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_login")

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	token, err := h.Svc.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		l.Warn("login_failed", "username", req.Username)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"token": token})
}

// Me returns the caller behind the presented token: id and username,
// nothing else.
func (h *AuthHTTP) Me(c echo.Context) error {
	id, ok := c.Get("user_id").(uuid.UUID)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authorized")
	}
	username, _ := c.Get("username").(string)

	return c.JSON(http.StatusOK, models.UserSummary{
		ID:       id,
		Username: username,
	})
}

func (h *AuthHTTP) ListUsers(c echo.Context) error {
	users, err := h.Svc.ListUsers(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, users)
}
