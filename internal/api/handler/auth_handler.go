package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jobber/portal-gateway/internal/api/metrics"
	apimiddleware "github.com/jobber/portal-gateway/internal/api/middleware"
	"github.com/jobber/portal-gateway/internal/core/domain"
	"github.com/jobber/portal-gateway/internal/core/ports"
)

// AuthHandler handles login, logout and registration.
type AuthHandler struct {
	authService   ports.AuthService
	sessionSecret string
	sessionTTL    time.Duration
}

func NewAuthHandler(authService ports.AuthService, sessionSecret string, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{authService: authService, sessionSecret: sessionSecret, sessionTTL: sessionTTL}
}

type loginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type sessionResponse struct {
	ID       int64  `json:"id,omitempty"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Degraded bool   `json:"degraded,omitempty"`
}

// Login authenticates and sets the portal session cookie.
//
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	sid, session, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		case errors.Is(err, domain.ErrBackendUnreachable):
			metrics.LoginsTotal.WithLabelValues("unreachable").Inc()
		}
		return err
	}

	if session.Degraded {
		metrics.LoginsTotal.WithLabelValues("degraded").Inc()
	} else {
		metrics.LoginsTotal.WithLabelValues("success").Inc()
	}

	token, err := apimiddleware.MintSessionToken(h.sessionSecret, sid, h.sessionTTL)
	if err != nil {
		return err
	}
	c.SetCookie(h.sessionCookie(token, h.sessionTTL))

	return c.JSON(http.StatusOK, sessionResponse{
		ID:       session.UserID,
		Username: session.Username,
		Role:     string(session.Role),
		Degraded: session.Degraded,
	})
}

// Logout clears the session. Always succeeds locally: an expired or corrupt
// cookie still gets expired client-side, and the backend call is best-effort.
//
// @Summary      Log out
// @Tags         auth
// @Success      204
// @Router       /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(apimiddleware.SessionCookieName); err == nil && cookie.Value != "" {
		if sid, err := apimiddleware.ParseSessionToken(h.sessionSecret, cookie.Value); err == nil {
			if err := h.authService.Logout(c.Request().Context(), sid); err != nil {
				return err
			}
		}
	}

	c.SetCookie(h.sessionCookie("", -time.Hour))
	return c.NoContent(http.StatusNoContent)
}

type registerRequest struct {
	Username   string `json:"username" form:"username" validate:"required"`
	Password   string `json:"password" form:"password" validate:"required,min=6"`
	Email      string `json:"email" form:"email" validate:"required,email"`
	FullName   string `json:"fullName" form:"fullName" validate:"required"`
	Phone      string `json:"phone" form:"phone"`
	Skills     string `json:"skills" form:"skills"`
	Experience string `json:"experience" form:"experience"`
	Role       string `json:"role" form:"role" validate:"omitempty,oneof=APPLICANT EMPLOYER"`
}

// Register creates a backend account. No session is established; the user
// logs in afterwards.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account details"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	reg := domain.Registration{
		Username:   req.Username,
		Password:   req.Password,
		Email:      req.Email,
		FullName:   req.FullName,
		Phone:      req.Phone,
		Skills:     req.Skills,
		Experience: req.Experience,
		Role:       domain.ParseRole(req.Role),
	}

	if err := h.authService.Register(c.Request().Context(), reg); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, map[string]string{"status": "registered"})
}

func (h *AuthHandler) sessionCookie(value string, maxAge time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     apimiddleware.SessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
