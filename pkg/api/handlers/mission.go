package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/fidalli/crm-backend/config"
	"github.com/fidalli/crm-backend/pkg/api/errors"
	"github.com/fidalli/crm-backend/pkg/dashboard"
	"github.com/fidalli/crm-backend/pkg/domain"
	"github.com/fidalli/crm-backend/pkg/filter"
	"github.com/fidalli/crm-backend/pkg/metrics"
	"github.com/fidalli/crm-backend/pkg/models"
	"github.com/fidalli/crm-backend/pkg/store"
)

var missionSearchFields = []string{"title", "description"}

var missionFilterKeys = []string{
	"entityId", "status",
	"budgetMin", "budgetMax",
	"profitabilityMin", "profitabilityMax",
	"startDateFrom", "startDateTo",
}

// MissionHandler handles engagement endpoints
type MissionHandler struct {
	store     *store.Store
	config    *config.Config
	dashboard *dashboard.Service
	metrics   *metrics.Metrics
	validator *validator.Validate
}

// NewMissionHandler creates a new mission handler
func NewMissionHandler(st *store.Store, cfg *config.Config, dash *dashboard.Service, m *metrics.Metrics) *MissionHandler {
	return &MissionHandler{
		store:     st,
		config:    cfg,
		dashboard: dash,
		metrics:   m,
		validator: validator.New(),
	}
}

// List returns the filtered, paginated mission collection.
func (h *MissionHandler) List(c echo.Context) error {
	q, page, limit := listParams(c, missionSearchFields, missionFilterKeys, h.config.SearchMinChars)

	if h.metrics != nil && q.Term != "" {
		h.metrics.RecordSearch("missions")
	}

	matched := filter.Apply(h.store.ListMissions(), q)
	p := models.NewPagination(page, limit, len(matched))
	return c.JSON(http.StatusOK, models.ListResponse[domain.Mission]{
		Items:      models.Paginate(matched, p),
		Pagination: p,
	})
}

// Get returns one mission by ID.
func (h *MissionHandler) Get(c echo.Context) error {
	mission, err := h.store.GetMission(c.Param("id"))
	if err != nil {
		return errors.FromDomain(c, err)
	}
	return c.JSON(http.StatusOK, mission)
}

// Create adds a mission. Profitability is derived server-side.
func (h *MissionHandler) Create(c echo.Context) error {
	req, ok, err := h.bindMission(c)
	if !ok {
		return err
	}

	mission, err := h.store.CreateMission(req)
	if err != nil {
		return errors.FromDomain(c, err)
	}

	invalidateDashboard(c.Request().Context(), h.dashboard)
	return c.JSON(http.StatusCreated, mission)
}

// Update replaces a mission and rederives profitability.
func (h *MissionHandler) Update(c echo.Context) error {
	req, ok, err := h.bindMission(c)
	if !ok {
		return err
	}

	mission, err := h.store.UpdateMission(c.Param("id"), req)
	if err != nil {
		return errors.FromDomain(c, err)
	}

	invalidateDashboard(c.Request().Context(), h.dashboard)
	return c.JSON(http.StatusOK, mission)
}

// Delete removes a mission.
func (h *MissionHandler) Delete(c echo.Context) error {
	if err := h.store.DeleteMission(c.Param("id")); err != nil {
		return errors.FromDomain(c, err)
	}
	invalidateDashboard(c.Request().Context(), h.dashboard)
	return c.JSON(http.StatusOK, models.MessageResponse{Message: "Mission deleted"})
}

// bindMission binds and validates the body, including the date fields the
// tag language cannot parse.
func (h *MissionHandler) bindMission(c echo.Context) (domain.Mission, bool, error) {
	var req models.MissionRequest
	if err := c.Bind(&req); err != nil {
		return domain.Mission{}, false, errors.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.Struct(req); err != nil {
		return domain.Mission{}, false, errors.ValidationFailed(c, err)
	}

	fields := make(map[string]string)

	startDate, err := models.ParseDate(req.StartDate)
	if err != nil {
		fields["startDate"] = "must be a date (2006-01-02 or RFC 3339)"
	}

	mission := domain.Mission{
		EntityID:    req.EntityID,
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.MissionStatus(req.Status),
		Budget:      req.Budget,
		ActualCost:  req.ActualCost,
		StartDate:   startDate,
	}

	if req.EndDate != "" {
		endDate, err := models.ParseDate(req.EndDate)
		if err != nil {
			fields["endDate"] = "must be a date (2006-01-02 or RFC 3339)"
		} else if !endDate.Before(startDate) {
			mission.EndDate = &endDate
		} else {
			fields["endDate"] = "must not be before startDate"
		}
	}

	if len(fields) > 0 {
		return domain.Mission{}, false, errors.FieldErrors(c, fields)
	}
	return mission, true, nil
}
