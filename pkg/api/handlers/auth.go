package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/fidalli/crm-backend/config"
	"github.com/fidalli/crm-backend/pkg/api/errors"
	"github.com/fidalli/crm-backend/pkg/api/middleware"
	"github.com/fidalli/crm-backend/pkg/auth"
	"github.com/fidalli/crm-backend/pkg/domain"
	"github.com/fidalli/crm-backend/pkg/metrics"
	"github.com/fidalli/crm-backend/pkg/models"
	"github.com/fidalli/crm-backend/pkg/store"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	store     *store.Store
	config    *config.Config
	blacklist *auth.TokenBlacklist
	metrics   *metrics.Metrics
	validator *validator.Validate
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(st *store.Store, cfg *config.Config, blacklist *auth.TokenBlacklist, m *metrics.Metrics) *AuthHandler {
	return &AuthHandler{
		store:     st,
		config:    cfg,
		blacklist: blacklist,
		metrics:   m,
		validator: validator.New(),
	}
}

// Login authenticates a collaborator by username or email and returns a JWT.
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return errors.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.Struct(req); err != nil {
		return errors.ValidationFailed(c, err)
	}

	collaborator, err := h.store.FindCollaborator(req.Login)
	if err != nil || !auth.CheckPassword(collaborator.PasswordHash, req.Password) {
		h.recordLogin(false)
		return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error:   "invalid_credentials",
			Message: "Invalid login or password",
		})
	}

	token, err := auth.GenerateJWT(
		collaborator.ID,
		collaborator.Email,
		string(collaborator.Role),
		h.config.JWTSecret,
		h.config.JWTExpirationHours,
	)
	if err != nil {
		return errors.InternalError(c, err)
	}

	h.recordLogin(true)
	return c.JSON(http.StatusOK, models.TokenResponse{
		Token:     token,
		ExpiresIn: h.config.JWTExpirationHours * 3600,
	})
}

// Logout revokes the current JWT token
func (h *AuthHandler) Logout(c echo.Context) error {
	token, ok := c.Get(middleware.ContextToken).(string)
	if !ok || token == "" {
		return errors.UnauthorizedError(c)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	// Blacklist TTL matches the JWT lifetime; the entry expires with the token
	expiration := time.Duration(h.config.JWTExpirationHours) * time.Hour
	if err := h.blacklist.Add(ctx, token, expiration); err != nil {
		return errors.InternalError(c, err)
	}

	return c.JSON(http.StatusOK, models.MessageResponse{Message: "Successfully logged out"})
}

// Me returns the authenticated collaborator's profile.
func (h *AuthHandler) Me(c echo.Context) error {
	collaboratorID, ok := c.Get(middleware.ContextCollaboratorID).(string)
	if !ok || collaboratorID == "" {
		return errors.UnauthorizedError(c)
	}

	collaborator, err := h.store.GetCollaborator(collaboratorID)
	if err != nil {
		return errors.FromDomain(c, err)
	}
	return c.JSON(http.StatusOK, collaborator)
}

// CreateCollaborator registers a new account. Admin only.
func (h *AuthHandler) CreateCollaborator(c echo.Context) error {
	var req models.CollaboratorRequest
	if err := c.Bind(&req); err != nil {
		return errors.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.Struct(req); err != nil {
		return errors.ValidationFailed(c, err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return errors.InternalError(c, err)
	}

	role := domain.CollaboratorRole(req.Role)
	if role == "" {
		role = domain.RoleMember
	}

	collaborator, err := h.store.CreateCollaborator(domain.Collaborator{
		Email:        req.Email,
		Username:     req.Username,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: hash,
		Role:         role,
	})
	if err != nil {
		return errors.FromDomain(c, err)
	}

	return c.JSON(http.StatusCreated, collaborator)
}

// ListCollaborators returns every account. Admin only.
func (h *AuthHandler) ListCollaborators(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.ListCollaborators())
}

func (h *AuthHandler) recordLogin(success bool) {
	if h.metrics != nil {
		h.metrics.RecordLoginAttempt(success)
	}
}
