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

var contactSearchFields = []string{"firstName", "lastName", "email", "role"}

var contactFilterKeys = []string{
	"entityId", "role", "isPrimary",
	"createdAtFrom", "createdAtTo",
}

// ContactHandler handles contact endpoints
type ContactHandler struct {
	store     *store.Store
	config    *config.Config
	dashboard *dashboard.Service
	metrics   *metrics.Metrics
	validator *validator.Validate
}

// NewContactHandler creates a new contact handler
func NewContactHandler(st *store.Store, cfg *config.Config, dash *dashboard.Service, m *metrics.Metrics) *ContactHandler {
	return &ContactHandler{
		store:     st,
		config:    cfg,
		dashboard: dash,
		metrics:   m,
		validator: validator.New(),
	}
}

// List returns the filtered, paginated contact collection.
func (h *ContactHandler) List(c echo.Context) error {
	q, page, limit := listParams(c, contactSearchFields, contactFilterKeys, h.config.SearchMinChars)

	if h.metrics != nil && q.Term != "" {
		h.metrics.RecordSearch("contacts")
	}

	matched := filter.Apply(h.store.ListContacts(), q)
	p := models.NewPagination(page, limit, len(matched))
	return c.JSON(http.StatusOK, models.ListResponse[domain.Contact]{
		Items:      models.Paginate(matched, p),
		Pagination: p,
	})
}

// Get returns one contact by ID.
func (h *ContactHandler) Get(c echo.Context) error {
	contact, err := h.store.GetContact(c.Param("id"))
	if err != nil {
		return errors.FromDomain(c, err)
	}
	return c.JSON(http.StatusOK, contact)
}

// Create adds a contact. Designating it primary demotes the previous one.
func (h *ContactHandler) Create(c echo.Context) error {
	req, ok, err := h.bindContact(c)
	if !ok {
		return err
	}

	contact, err := h.store.CreateContact(req)
	if err != nil {
		return errors.FromDomain(c, err)
	}

	invalidateDashboard(c.Request().Context(), h.dashboard)
	return c.JSON(http.StatusCreated, contact)
}

// Update replaces a contact.
func (h *ContactHandler) Update(c echo.Context) error {
	req, ok, err := h.bindContact(c)
	if !ok {
		return err
	}

	contact, err := h.store.UpdateContact(c.Param("id"), req)
	if err != nil {
		return errors.FromDomain(c, err)
	}

	invalidateDashboard(c.Request().Context(), h.dashboard)
	return c.JSON(http.StatusOK, contact)
}

// Delete removes a contact.
func (h *ContactHandler) Delete(c echo.Context) error {
	if err := h.store.DeleteContact(c.Param("id")); err != nil {
		return errors.FromDomain(c, err)
	}
	invalidateDashboard(c.Request().Context(), h.dashboard)
	return c.JSON(http.StatusOK, models.MessageResponse{Message: "Contact deleted"})
}

// bindContact binds and validates the body. When ok is false the error
// response has already been written and the returned error is its write
// result.
func (h *ContactHandler) bindContact(c echo.Context) (domain.Contact, bool, error) {
	var req models.ContactRequest
	if err := c.Bind(&req); err != nil {
		return domain.Contact{}, false, errors.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.Struct(req); err != nil {
		return domain.Contact{}, false, errors.ValidationFailed(c, err)
	}

	return domain.Contact{
		EntityID:  req.EntityID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
		Email:     req.Email,
		Phone:     req.Phone,
		WhatsApp:  req.WhatsApp,
		IsPrimary: req.IsPrimary,
		Notes:     req.Notes,
	}, true, nil
}
