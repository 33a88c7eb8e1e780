package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"researchops/internal/notify"
)

// HealthHandler exposes liveness and dependency checks.
type HealthHandler struct {
	db        *gorm.DB
	publisher *notify.Publisher
}

// NewHealthHandler creates a health handler.
func NewHealthHandler(db *gorm.DB, publisher *notify.Publisher) *HealthHandler {
	return &HealthHandler{db: db, publisher: publisher}
}

// Up reports process liveness.
func (h *HealthHandler) Up(c echo.Context) error {
	return c.String(http.StatusOK, "")
}

// UpDatabases verifies connectivity to the database and the relay.
func (h *HealthHandler) UpDatabases(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.publisher.Ping(ctx); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "redis unavailable")
	}
	if err := h.db.WithContext(ctx).Exec("SELECT 1").Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "database unavailable")
	}
	return c.String(http.StatusOK, "")
}
