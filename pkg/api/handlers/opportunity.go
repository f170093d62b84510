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

var opportunitySearchFields = []string{"title", "description"}

var opportunityFilterKeys = []string{
	"entityId", "stage", "requiresApproval",
	"valueMin", "valueMax",
	"probabilityMin", "probabilityMax",
	"weightedValueMin", "weightedValueMax",
	"deadlineFrom", "deadlineTo",
}

// OpportunityHandler handles pipeline endpoints
type OpportunityHandler struct {
	store     *store.Store
	config    *config.Config
	dashboard *dashboard.Service
	metrics   *metrics.Metrics
	validator *validator.Validate
}

// NewOpportunityHandler creates a new opportunity handler
func NewOpportunityHandler(st *store.Store, cfg *config.Config, dash *dashboard.Service, m *metrics.Metrics) *OpportunityHandler {
	return &OpportunityHandler{
		store:     st,
		config:    cfg,
		dashboard: dash,
		metrics:   m,
		validator: validator.New(),
	}
}

// List returns the filtered, paginated pipeline.
func (h *OpportunityHandler) List(c echo.Context) error {
	q, page, limit := listParams(c, opportunitySearchFields, opportunityFilterKeys, h.config.SearchMinChars)

	if h.metrics != nil && q.Term != "" {
		h.metrics.RecordSearch("opportunities")
	}

	matched := filter.Apply(h.store.ListOpportunities(), q)
	p := models.NewPagination(page, limit, len(matched))
	return c.JSON(http.StatusOK, models.ListResponse[domain.Opportunity]{
		Items:      models.Paginate(matched, p),
		Pagination: p,
	})
}

// Get returns one opportunity by ID.
func (h *OpportunityHandler) Get(c echo.Context) error {
	opportunity, err := h.store.GetOpportunity(c.Param("id"))
	if err != nil {
		return errors.FromDomain(c, err)
	}
	return c.JSON(http.StatusOK, opportunity)
}

// Create adds an opportunity. Weighted value and the approval gate are
// derived server-side.
func (h *OpportunityHandler) Create(c echo.Context) error {
	req, ok, err := h.bindOpportunity(c)
	if !ok {
		return err
	}

	opportunity, err := h.store.CreateOpportunity(req)
	if err != nil {
		return errors.FromDomain(c, err)
	}

	invalidateDashboard(c.Request().Context(), h.dashboard)
	return c.JSON(http.StatusCreated, opportunity)
}

// Update replaces an opportunity and rederives its stored fields.
func (h *OpportunityHandler) Update(c echo.Context) error {
	req, ok, err := h.bindOpportunity(c)
	if !ok {
		return err
	}

	opportunity, err := h.store.UpdateOpportunity(c.Param("id"), req)
	if err != nil {
		return errors.FromDomain(c, err)
	}

	invalidateDashboard(c.Request().Context(), h.dashboard)
	return c.JSON(http.StatusOK, opportunity)
}

// Delete removes an opportunity.
func (h *OpportunityHandler) Delete(c echo.Context) error {
	if err := h.store.DeleteOpportunity(c.Param("id")); err != nil {
		return errors.FromDomain(c, err)
	}
	invalidateDashboard(c.Request().Context(), h.dashboard)
	return c.JSON(http.StatusOK, models.MessageResponse{Message: "Opportunity deleted"})
}

func (h *OpportunityHandler) bindOpportunity(c echo.Context) (domain.Opportunity, bool, error) {
	var req models.OpportunityRequest
	if err := c.Bind(&req); err != nil {
		return domain.Opportunity{}, false, errors.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.Struct(req); err != nil {
		return domain.Opportunity{}, false, errors.ValidationFailed(c, err)
	}

	deadline, err := models.ParseDate(req.Deadline)
	if err != nil {
		return domain.Opportunity{}, false, errors.FieldErrors(c, map[string]string{
			"deadline": "must be a date (2006-01-02 or RFC 3339)",
		})
	}

	return domain.Opportunity{
		EntityID:    req.EntityID,
		Title:       req.Title,
		Description: req.Description,
		Stage:       domain.OpportunityStage(req.Stage),
		Value:       req.Value,
		Probability: req.Probability,
		Deadline:    deadline,
	}, true, nil
}
