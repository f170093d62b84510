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

var interactionSearchFields = []string{"subject", "description", "outcome"}

var interactionFilterKeys = []string{
	"entityId", "contactId", "type", "followUpRequired",
	"dateFrom", "dateTo",
	"followUpDateFrom", "followUpDateTo",
	"durationMin", "durationMax",
}

// InteractionHandler handles logged-touch endpoints
type InteractionHandler struct {
	store     *store.Store
	config    *config.Config
	dashboard *dashboard.Service
	metrics   *metrics.Metrics
	validator *validator.Validate
}

// NewInteractionHandler creates a new interaction handler
func NewInteractionHandler(st *store.Store, cfg *config.Config, dash *dashboard.Service, m *metrics.Metrics) *InteractionHandler {
	return &InteractionHandler{
		store:     st,
		config:    cfg,
		dashboard: dash,
		metrics:   m,
		validator: validator.New(),
	}
}

// List returns the filtered, paginated interaction collection.
func (h *InteractionHandler) List(c echo.Context) error {
	q, page, limit := listParams(c, interactionSearchFields, interactionFilterKeys, h.config.SearchMinChars)

	if h.metrics != nil && q.Term != "" {
		h.metrics.RecordSearch("interactions")
	}

	matched := filter.Apply(h.store.ListInteractions(), q)
	p := models.NewPagination(page, limit, len(matched))
	return c.JSON(http.StatusOK, models.ListResponse[domain.Interaction]{
		Items:      models.Paginate(matched, p),
		Pagination: p,
	})
}

// Get returns one interaction by ID.
func (h *InteractionHandler) Get(c echo.Context) error {
	interaction, err := h.store.GetInteraction(c.Param("id"))
	if err != nil {
		return errors.FromDomain(c, err)
	}
	return c.JSON(http.StatusOK, interaction)
}

// Create logs a new interaction.
func (h *InteractionHandler) Create(c echo.Context) error {
	req, ok, err := h.bindInteraction(c)
	if !ok {
		return err
	}

	interaction, err := h.store.CreateInteraction(req)
	if err != nil {
		return errors.FromDomain(c, err)
	}

	if h.metrics != nil {
		h.metrics.RecordInteractionLogged(string(interaction.Type))
	}
	invalidateDashboard(c.Request().Context(), h.dashboard)
	return c.JSON(http.StatusCreated, interaction)
}

// Update replaces an interaction.
func (h *InteractionHandler) Update(c echo.Context) error {
	req, ok, err := h.bindInteraction(c)
	if !ok {
		return err
	}

	interaction, err := h.store.UpdateInteraction(c.Param("id"), req)
	if err != nil {
		return errors.FromDomain(c, err)
	}

	invalidateDashboard(c.Request().Context(), h.dashboard)
	return c.JSON(http.StatusOK, interaction)
}

// Delete removes an interaction.
func (h *InteractionHandler) Delete(c echo.Context) error {
	if err := h.store.DeleteInteraction(c.Param("id")); err != nil {
		return errors.FromDomain(c, err)
	}
	invalidateDashboard(c.Request().Context(), h.dashboard)
	return c.JSON(http.StatusOK, models.MessageResponse{Message: "Interaction deleted"})
}

// bindInteraction binds and validates the body. Calls must carry a
// duration, and a requested follow-up must carry a date; both rules live
// here because the tag language cannot express them.
func (h *InteractionHandler) bindInteraction(c echo.Context) (domain.Interaction, bool, error) {
	var req models.InteractionRequest
	if err := c.Bind(&req); err != nil {
		return domain.Interaction{}, false, errors.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.Struct(req); err != nil {
		return domain.Interaction{}, false, errors.ValidationFailed(c, err)
	}

	fields := make(map[string]string)

	date, err := models.ParseDate(req.Date)
	if err != nil {
		fields["date"] = "must be a date (2006-01-02 or RFC 3339)"
	}

	if domain.InteractionType(req.Type) == domain.InteractionCall && req.Duration == nil {
		fields["duration"] = "is required for calls"
	}

	interaction := domain.Interaction{
		EntityID:         req.EntityID,
		ContactID:        req.ContactID,
		Type:             domain.InteractionType(req.Type),
		Subject:          req.Subject,
		Description:      req.Description,
		Outcome:          req.Outcome,
		Duration:         req.Duration,
		Date:             date,
		FollowUpRequired: req.FollowUpRequired,
	}

	if req.FollowUpRequired {
		if req.FollowUpDate == "" {
			fields["followUpDate"] = "is required when a follow-up is requested"
		} else if due, err := models.ParseDate(req.FollowUpDate); err != nil {
			fields["followUpDate"] = "must be a date (2006-01-02 or RFC 3339)"
		} else {
			interaction.FollowUpDate = &due
		}
	}

	if len(fields) > 0 {
		return domain.Interaction{}, false, errors.FieldErrors(c, fields)
	}
	return interaction, true, nil
}
