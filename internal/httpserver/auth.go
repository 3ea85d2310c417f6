package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/avidela/product-catalog/internal/events"
	"github.com/avidela/product-catalog/internal/logging"
	"github.com/avidela/product-catalog/internal/repo"
	"github.com/avidela/product-catalog/internal/service"
	"github.com/avidela/product-catalog/internal/tokens"
	"github.com/avidela/product-catalog/internal/transport"
)

type AuthHTTP struct {
	Svc      *service.AuthService
	Producer *events.Producer

	// SecureCookies turns on the Secure cookie flag, production only.
	SecureCookies bool
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing required fields")
	}

	user, err := h.Svc.Register(ctx, req.Email, req.Password, req.Username)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			return echo.NewHTTPError(http.StatusBadRequest, "missing required fields")
		case errors.Is(err, repo.ErrUserAlreadyExists):
			l.Warn("register_conflict", "status", 400)
			return echo.NewHTTPError(http.StatusBadRequest, "user already exists")
		default:
			l.Error("register_failed", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
		}
	}

	publishEvent(ctx, h.Producer, events.TopicUsers, user.ID, map[string]any{
		"type":     "user_registered",
		"userID":   user.ID,
		"username": user.Username,
	})

	return c.JSON(http.StatusCreated, transport.UserSummary{
		ID:       user.ID,
		Email:    user.Email,
		Username: user.Username,
	})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "email and password are required")
	}

	token, user, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			return echo.NewHTTPError(http.StatusBadRequest, "email and password are required")
		case errors.Is(err, service.ErrInvalidCredentials):
			// unknown email and wrong password are indistinguishable here
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
		case errors.Is(err, tokens.ErrNoSecret):
			l.Error("login_failed", "status", 500, "reason", "JWT_SECRET is not set")
			return echo.NewHTTPError(http.StatusInternalServerError, "server configuration incomplete")
		default:
			l.Error("login_failed", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
		}
	}

	c.SetCookie(SessionCookie(token, h.SecureCookies))

	publishEvent(ctx, h.Producer, events.TopicUsers, user.ID, map[string]any{
		"type":     "user_logged_in",
		"userID":   user.ID,
		"username": user.Username,
	})

	return c.JSON(http.StatusOK, transport.LoginResponse{
		OK: true,
		User: transport.UserSummary{
			ID:       user.ID,
			Email:    user.Email,
			Username: user.Username,
		},
	})
}

// Logout only clears the cookie. An issued token stays valid until it
// expires; there is no revocation list.
func (h *AuthHTTP) Logout(c echo.Context) error {
	c.SetCookie(ClearSessionCookie(h.SecureCookies))
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

func (h *AuthHTTP) Me(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.me")

	userID, _ := c.Get("user_id").(string)

	user, err := h.Svc.WhoAmI(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("me_failed", "status", 404, "reason", "user record is gone")
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		l.Error("me_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusOK, user)
}
