package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"researchops/internal/auth"
	apperrors "researchops/internal/errors"
	"researchops/internal/notify"
	"researchops/internal/service"
)

// AuthHandler handles login, logout, and channel subscription auth.
type AuthHandler struct {
	authService service.AuthService
	publisher   *notify.Publisher
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, publisher *notify.Publisher) *AuthHandler {
	return &AuthHandler{authService: authService, publisher: publisher}
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Identity string `json:"identity" validate:"required,min=3,max=255"`
	Password string `json:"password" validate:"required,min=8,max=255"`
}

// Login godoc
// @Summary Authenticate user and obtain access token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Login credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.InvalidInputResponse
// @Failure 401 {object} errors.MessageResponse
// @Failure 422 {object} errors.FieldsResponse
// @Router / [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindJSON(c, &req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.InvalidInput())
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, apperrors.Fields(fieldErrors(err)))
	}

	token, csrf, _, err := h.authService.Login(c.Request().Context(), req.Identity, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, apperrors.Message(apperrors.ErrInvalidCredentials.Error()))
		}
		return c.JSON(http.StatusInternalServerError, apperrors.Message("failed to login"))
	}

	auth.SetTokenCookies(c.Response(), token, csrf)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"data": map[string]string{"access_token": token},
	})
}

// Logout godoc
// @Summary Logout current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.MessageResponse
// @Router / [delete]
func (h *AuthHandler) Logout(c echo.Context) error {
	// Tokens are stateless; clearing the cookies is the whole logout.
	auth.ClearTokenCookies(c.Response())
	return c.JSON(http.StatusOK, map[string]interface{}{
		"data": map[string]bool{"logout": true},
	})
}

// AuthorizeChannel godoc
// @Summary Authenticate a relay channel subscription
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Security BearerAuth
// @Param channel_name formData string true "Channel name"
// @Param socket_id formData string true "Socket ID"
// @Success 200 {object} notify.SignedAuth
// @Failure 400 {object} errors.InvalidInputResponse
// @Failure 401 {object} errors.MessageResponse
// @Router /pusher [post]
func (h *AuthHandler) AuthorizeChannel(c echo.Context) error {
	channel := c.FormValue("channel_name")
	socketID := c.FormValue("socket_id")
	if channel == "" || socketID == "" {
		return c.JSON(http.StatusBadRequest, apperrors.InvalidInput())
	}

	user := auth.MustCurrentUser(c)
	signed, err := h.publisher.AuthenticateSubscription(channel, socketID, user.Username)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, apperrors.Message("failed to authenticate channel"))
	}

	return c.JSON(http.StatusOK, signed)
}
