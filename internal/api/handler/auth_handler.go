package handler

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/bookstore/catalog-api/internal/api/metrics"
	"github.com/bookstore/catalog-api/internal/core/form"
	"github.com/bookstore/catalog-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type meResponse struct {
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Roles []string `json:"roles"`
}

// Register creates a new user account and returns its first API token.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      form.UserPayload  true  "User registration details"
// @Success      200   {object}  successResponse{message=message{data=registerResponse}}
// @Failure      400   {object}  map[string]any
// @Failure      429   {object}  map[string]any
// @Router       /api/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var payload form.UserPayload
	if err := decodeJSON(c, &payload); err != nil {
		return err
	}

	user, token, err := h.authService.Register(c.Request().Context(), payload)
	metrics.AuthEventsTotal.WithLabelValues("register", metrics.Result(err)).Inc()
	if err != nil {
		return err
	}

	return success(c, fmt.Sprintf("User %s was successfully registered.", user.Name), registerResponse{
		Name:  user.Name,
		Email: user.Email,
		Token: token.Token,
	})
}

// Login verifies the credentials and returns a fresh API token. Any token
// issued earlier to the same user stops working.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  successResponse{message=message{data=loginResponse}}
// @Failure      401   {object}  map[string]any
// @Failure      429   {object}  map[string]any
// @Router       /api/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := decodeJSON(c, &req); err != nil {
		return err
	}

	user, token, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	metrics.AuthEventsTotal.WithLabelValues("login", metrics.Result(err)).Inc()
	if err != nil {
		return err
	}

	return success(c, fmt.Sprintf("User %s was successfully logged in.", user.Name), loginResponse{Token: token.Token})
}

// Me returns the authenticated user.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  successResponse{message=message{data=meResponse}}
// @Failure      401  {object}  map[string]any
// @Router       /api/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	return success(c, "", meResponse{
		Name:  user.Name,
		Email: user.Email,
		Roles: user.EffectiveRoles(),
	})
}
