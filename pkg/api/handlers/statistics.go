package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fidalli/crm-backend/pkg/analytics"
	"github.com/fidalli/crm-backend/pkg/domain"
	"github.com/fidalli/crm-backend/pkg/scoring"
	"github.com/fidalli/crm-backend/pkg/store"
)

// StatisticsHandler serves the per-collection roll-ups.
type StatisticsHandler struct {
	store *store.Store
}

// NewStatisticsHandler creates a new statistics handler
func NewStatisticsHandler(st *store.Store) *StatisticsHandler {
	return &StatisticsHandler{store: st}
}

// Missions returns the mission roll-up.
func (h *StatisticsHandler) Missions(c echo.Context) error {
	return c.JSON(http.StatusOK, analytics.MissionStatistics(h.store.ListMissions()))
}

// Opportunities returns the pipeline roll-up.
func (h *StatisticsHandler) Opportunities(c echo.Context) error {
	return c.JSON(http.StatusOK, analytics.OpportunityStatistics(h.store.ListOpportunities()))
}

// Interactions returns the interaction roll-up against the current clock.
func (h *StatisticsHandler) Interactions(c echo.Context) error {
	return c.JSON(http.StatusOK, analytics.InteractionStatistics(h.store.ListInteractions(), time.Now()))
}

// Contacts returns the contact roll-up.
func (h *StatisticsHandler) Contacts(c echo.Context) error {
	return c.JSON(http.StatusOK, analytics.ContactStatistics(h.store.ListContacts()))
}

// ScoresResponse carries the score distribution and the leaderboard.
type ScoresResponse struct {
	Distribution map[string]int  `json:"distribution"`
	Top          []domain.Entity `json:"top"`
}

// Scores returns the score distribution plus the top-scored entities.
// The "top" query parameter bounds the leaderboard size (default 10).
func (h *StatisticsHandler) Scores(c echo.Context) error {
	n, _ := strconv.Atoi(c.QueryParam("top"))
	if n <= 0 {
		n = 10
	}

	entities := h.store.ListEntities()
	return c.JSON(http.StatusOK, ScoresResponse{
		Distribution: scoring.Distribution(entities),
		Top:          scoring.TopEntities(entities, n),
	})
}
