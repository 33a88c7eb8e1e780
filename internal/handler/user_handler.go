package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "researchops/internal/errors"
	"researchops/internal/service"
)

// UserHandler handles registration and user listing.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// RegisterRequest represents a registration request.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=3,max=255"`
	Password string `json:"password" validate:"required,min=8,max=255"`
}

// RegisterResponse echoes the accepted registration data. The password is
// never returned.
type RegisterResponse struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

// Register godoc
// @Summary Register new user
// @Tags users
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "Registration data"
// @Success 200 {object} RegisterResponse
// @Failure 400 {object} errors.InvalidInputResponse
// @Failure 422 {object} errors.FieldsResponse
// @Router /user [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := bindJSON(c, &req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.InvalidInput())
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, apperrors.Fields(fieldErrors(err)))
	}

	user, err := h.svc.Register(c.Request().Context(), req.Email, req.Username, req.Password)
	if err != nil {
		var fields apperrors.FieldErrors
		if errors.As(err, &fields) {
			return c.JSON(http.StatusUnprocessableEntity, apperrors.Fields(fields))
		}
		return c.JSON(http.StatusInternalServerError, apperrors.Message("failed to register user"))
	}

	return c.JSON(http.StatusOK, RegisterResponse{
		Email:    user.Email,
		Username: user.Username,
	})
}

// List godoc
// @Summary Get all users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.MessageResponse
// @Router /user/ [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.svc.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, apperrors.Message("failed to list users"))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"data": users})
}
