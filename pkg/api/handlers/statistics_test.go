package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fidalli/crm-backend/pkg/analytics"
	"github.com/fidalli/crm-backend/pkg/domain"
	"github.com/fidalli/crm-backend/pkg/store"
)

func TestStatisticsMissions(t *testing.T) {
	st := store.New()
	entity, _ := seedEntities(t, st)

	_, err := st.CreateMission(domain.Mission{
		EntityID:   entity.ID,
		Title:      "Audit",
		Status:     domain.MissionActive,
		Budget:     8_000_000,
		ActualCost: 5_000_000,
	})
	require.NoError(t, err)

	h := NewStatisticsHandler(st)
	c, rec := newContext(t, http.MethodGet, "/api/v1/statistics/missions", "")

	require.NoError(t, h.Missions(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var stats analytics.MissionStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, 1, stats.Active)
	assert.Equal(t, 38, stats.OverallProfitability) // 37.5 rounds up
}

func TestStatisticsOpportunitiesEmpty(t *testing.T) {
	h := NewStatisticsHandler(store.New())
	c, rec := newContext(t, http.MethodGet, "/api/v1/statistics/opportunities", "")

	require.NoError(t, h.Opportunities(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var stats analytics.OpportunityStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Zero(t, stats.Total)
	assert.Zero(t, stats.ConversionRate)
	assert.Zero(t, stats.AverageDealSize)
}

func TestStatisticsScores(t *testing.T) {
	st := store.New()
	seedEntities(t, st)

	h := NewStatisticsHandler(st)
	c, rec := newContext(t, http.MethodGet, "/api/v1/statistics/scores?top=1", "")

	require.NoError(t, h.Scores(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ScoresResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Top, 1)
	assert.Equal(t, "Sahel Logistics", resp.Top[0].CompanyName)
	assert.Equal(t, 1, resp.Distribution["excellent"])
}
