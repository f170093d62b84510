package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fidalli/crm-backend/pkg/api/errors"
	"github.com/fidalli/crm-backend/pkg/dashboard"
)

// DashboardHandler serves the combined, cached overview.
type DashboardHandler struct {
	dashboard *dashboard.Service
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dash *dashboard.Service) *DashboardHandler {
	return &DashboardHandler{dashboard: dash}
}

// Overview returns the dashboard payload, served from cache when fresh.
func (h *DashboardHandler) Overview(c echo.Context) error {
	overview, err := h.dashboard.Overview(c.Request().Context())
	if err != nil {
		return errors.InternalError(c, err)
	}
	return c.JSON(http.StatusOK, overview)
}
