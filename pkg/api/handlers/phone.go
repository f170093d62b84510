package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/fidalli/crm-backend/config"
	"github.com/fidalli/crm-backend/pkg/api/errors"
	"github.com/fidalli/crm-backend/pkg/models"
	"github.com/fidalli/crm-backend/pkg/phone"
)

// PhoneHandler validates and normalizes phone numbers.
type PhoneHandler struct {
	config    *config.Config
	validator *validator.Validate
}

// NewPhoneHandler creates a new phone handler
func NewPhoneHandler(cfg *config.Config) *PhoneHandler {
	return &PhoneHandler{
		config:    cfg,
		validator: validator.New(),
	}
}

// Validate parses a phone number and returns its formats and line type.
func (h *PhoneHandler) Validate(c echo.Context) error {
	var req models.PhoneValidationRequest
	if err := c.Bind(&req); err != nil {
		return errors.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.Struct(req); err != nil {
		return errors.ValidationFailed(c, err)
	}

	region := req.Region
	if region == "" {
		region = h.config.DefaultPhoneRegion
	}

	result, err := phone.Validate(req.Phone, region)
	if err != nil {
		return errors.BadRequest(c, "Could not parse phone number")
	}
	return c.JSON(http.StatusOK, result)
}
