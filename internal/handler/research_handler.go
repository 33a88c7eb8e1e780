package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"researchops/internal/auth"
	apperrors "researchops/internal/errors"
	"researchops/internal/model"
	"researchops/internal/service"
)

// ResearchHandler handles research creation and history listing.
type ResearchHandler struct {
	svc service.ResearchService
}

// NewResearchHandler creates a handler layer.
func NewResearchHandler(svc service.ResearchService) *ResearchHandler {
	return &ResearchHandler{svc: svc}
}

// CreateResearchRequest represents a create-research request.
type CreateResearchRequest struct {
	Question string `json:"question" validate:"required,min=1,max=2000"`
}

// List godoc
// @Summary Get user research history
// @Tags research
// @Produce json
// @Security BearerAuth
// @Param username query string true "Username to fetch research history for"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.MessageResponse
// @Failure 401 {object} errors.MessageResponse
// @Failure 404 {object} errors.MessageResponse
// @Router /researches/ [get]
func (h *ResearchHandler) List(c echo.Context) error {
	username := c.QueryParam("username")
	if username == "" {
		return c.JSON(http.StatusBadRequest, apperrors.Message(apperrors.ErrUserNotFound.Error()))
	}

	researches, err := h.svc.ListForUser(c.Request().Context(), username)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, apperrors.Message(apperrors.ErrUserNotFound.Error()))
		}
		return c.JSON(http.StatusInternalServerError, apperrors.Message("failed to list researches"))
	}

	if researches == nil {
		researches = []model.Research{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"data": researches})
}

// Create godoc
// @Summary Create new research question
// @Tags research
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateResearchRequest true "Research question"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.InvalidInputResponse
// @Failure 401 {object} errors.MessageResponse
// @Failure 422 {object} errors.FieldsResponse
// @Failure 500 {object} errors.MessageResponse
// @Failure 502 {object} errors.MessageResponse
// @Router /researches [post]
func (h *ResearchHandler) Create(c echo.Context) error {
	var req CreateResearchRequest
	if err := bindJSON(c, &req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.InvalidInput())
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, apperrors.Fields(fieldErrors(err)))
	}

	user := auth.MustCurrentUser(c)
	research, err := h.svc.Create(c.Request().Context(), user, req.Question)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrUpstreamUnavailable):
			return c.JSON(http.StatusBadGateway, apperrors.Message(apperrors.ErrUpstreamUnavailable.Error()))
		case errors.Is(err, apperrors.ErrUpstreamMalformed):
			return c.JSON(http.StatusInternalServerError, apperrors.Message(apperrors.ErrUpstreamMalformed.Error()))
		default:
			return c.JSON(http.StatusInternalServerError, apperrors.Message("failed to create research"))
		}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"data": research})
}
