package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/psikobank/user-registry/internal/api/metrics"
	"github.com/psikobank/user-registry/internal/api/middleware"
	"github.com/psikobank/user-registry/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates an active account with the user role.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      ports.RegisterInput  true  "Sign-up details"
// @Success      201   {object}  userEnvelope
// @Failure      400   {object}  messageEnvelope
// @Failure      422   {object}  validationEnvelope
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var in ports.RegisterInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.authService.Register(c.Request().Context(), in)
	metrics.Observe("register", "", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, successMessage("Registration successful", toUserResponse(user)))
}

// Login authenticates a user and returns a JWT.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  tokenEnvelope
// @Failure      400   {object}  messageEnvelope
// @Failure      401   {object}  messageEnvelope
// @Failure      422   {object}  validationEnvelope
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	metrics.Observe("login", "", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, success(tokenResponse{Token: token, User: toUserResponse(user)}))
}

// Logout revokes the presented token.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageEnvelope
// @Failure      401  {object}  messageEnvelope
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	err := h.authService.Logout(c.Request().Context(), claims)
	metrics.Observe("logout", "", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successMessage("Logged out", nil))
}

// Me returns the authenticated requester.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userEnvelope
// @Failure      401  {object}  messageEnvelope
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	user, err := requester(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, success(toUserResponse(user)))
}
