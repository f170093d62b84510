package handlers

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/fidalli/crm-backend/config"
	"github.com/fidalli/crm-backend/pkg/analytics"
	"github.com/fidalli/crm-backend/pkg/api/errors"
	"github.com/fidalli/crm-backend/pkg/dashboard"
	"github.com/fidalli/crm-backend/pkg/domain"
	"github.com/fidalli/crm-backend/pkg/filter"
	"github.com/fidalli/crm-backend/pkg/metrics"
	"github.com/fidalli/crm-backend/pkg/models"
	"github.com/fidalli/crm-backend/pkg/scoring"
	"github.com/fidalli/crm-backend/pkg/store"
)

// entitySearchFields are the text-search fields for the entity list.
var entitySearchFields = []string{"companyName", "sector", "region", "email"}

// entityFilterKeys are the query parameters accepted as field filters.
var entityFilterKeys = []string{
	"status", "priority", "sector", "region",
	"scoreMin", "scoreMax",
	"revenueMin", "revenueMax",
	"employeesMin", "employeesMax",
	"createdAtFrom", "createdAtTo",
}

// EntityHandler handles company record endpoints
type EntityHandler struct {
	store     *store.Store
	config    *config.Config
	dashboard *dashboard.Service
	metrics   *metrics.Metrics
	validator *validator.Validate
}

// NewEntityHandler creates a new entity handler
func NewEntityHandler(st *store.Store, cfg *config.Config, dash *dashboard.Service, m *metrics.Metrics) *EntityHandler {
	return &EntityHandler{
		store:     st,
		config:    cfg,
		dashboard: dash,
		metrics:   m,
		validator: validator.New(),
	}
}

// List returns the filtered, paginated entity collection.
func (h *EntityHandler) List(c echo.Context) error {
	q, page, limit := listParams(c, entitySearchFields, entityFilterKeys, h.config.SearchMinChars)

	if h.metrics != nil && q.Term != "" {
		h.metrics.RecordSearch("entities")
	}

	matched := filter.Apply(h.store.ListEntities(), q)
	p := models.NewPagination(page, limit, len(matched))
	return c.JSON(http.StatusOK, models.ListResponse[domain.Entity]{
		Items:      models.Paginate(matched, p),
		Pagination: p,
	})
}

// Get returns one entity by ID.
func (h *EntityHandler) Get(c echo.Context) error {
	entity, err := h.store.GetEntity(c.Param("id"))
	if err != nil {
		return errors.FromDomain(c, err)
	}
	return c.JSON(http.StatusOK, entity)
}

// Create adds a new entity. The score is derived server-side.
func (h *EntityHandler) Create(c echo.Context) error {
	req, ok, err := h.bindEntity(c)
	if !ok {
		return err
	}

	entity, err := h.store.CreateEntity(req)
	if err != nil {
		return errors.FromDomain(c, err)
	}

	if h.metrics != nil {
		h.metrics.RecordEntityCreated()
	}
	invalidateDashboard(c.Request().Context(), h.dashboard)
	return c.JSON(http.StatusCreated, entity)
}

// Update replaces an entity and rederives its score.
func (h *EntityHandler) Update(c echo.Context) error {
	req, ok, err := h.bindEntity(c)
	if !ok {
		return err
	}

	entity, err := h.store.UpdateEntity(c.Param("id"), req)
	if err != nil {
		return errors.FromDomain(c, err)
	}

	invalidateDashboard(c.Request().Context(), h.dashboard)
	return c.JSON(http.StatusOK, entity)
}

// Delete removes an entity and everything attached to it.
func (h *EntityHandler) Delete(c echo.Context) error {
	if err := h.store.DeleteEntity(c.Param("id")); err != nil {
		return errors.FromDomain(c, err)
	}
	invalidateDashboard(c.Request().Context(), h.dashboard)
	return c.JSON(http.StatusOK, models.MessageResponse{Message: "Entity deleted"})
}

// Score returns the per-component score breakdown for one entity.
func (h *EntityHandler) Score(c echo.Context) error {
	entity, err := h.store.GetEntity(c.Param("id"))
	if err != nil {
		return errors.FromDomain(c, err)
	}
	return c.JSON(http.StatusOK, scoring.ScoreBreakdown(entity))
}

// EntitySummary is the combined per-entity view.
type EntitySummary struct {
	Entity        domain.Entity              `json:"entity"`
	Contacts      []domain.Contact           `json:"contacts"`
	Missions      analytics.MissionStats     `json:"missions"`
	Opportunities analytics.OpportunityStats `json:"opportunities"`
	Interactions  analytics.InteractionStats `json:"interactions"`
}

// Summary returns the entity with its contacts and per-collection stats.
func (h *EntityHandler) Summary(c echo.Context) error {
	id := c.Param("id")
	entity, err := h.store.GetEntity(id)
	if err != nil {
		return errors.FromDomain(c, err)
	}

	return c.JSON(http.StatusOK, EntitySummary{
		Entity:        entity,
		Contacts:      h.store.ContactsByEntity(id),
		Missions:      analytics.MissionStatistics(h.store.MissionsByEntity(id)),
		Opportunities: analytics.OpportunityStatistics(h.store.OpportunitiesByEntity(id)),
		Interactions:  analytics.InteractionStatistics(h.store.InteractionsByEntity(id), time.Now()),
	})
}

// bindEntity binds and validates the body. When ok is false the error
// response has already been written and the returned error is its write
// result.
func (h *EntityHandler) bindEntity(c echo.Context) (domain.Entity, bool, error) {
	var req models.EntityRequest
	if err := c.Bind(&req); err != nil {
		return domain.Entity{}, false, errors.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.Struct(req); err != nil {
		return domain.Entity{}, false, errors.ValidationFailed(c, err)
	}

	priority := domain.Priority(req.Priority)
	if priority == "" {
		priority = domain.PriorityMedium
	}

	return domain.Entity{
		CompanyName: req.CompanyName,
		Sector:      req.Sector,
		Region:      req.Region,
		Email:       req.Email,
		Phone:       req.Phone,
		Website:     req.Website,
		Revenue:     req.Revenue,
		Employees:   req.Employees,
		Status:      domain.EntityStatus(req.Status),
		Priority:    priority,
		Notes:       req.Notes,
	}, true, nil
}
