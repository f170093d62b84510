package analytics

import (
	"testing"
	"time"

	"github.com/fidalli/crm-backend/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int                { return &v }
func timePtr(t time.Time) *time.Time   { return &t }

func TestMissionStatistics(t *testing.T) {
	t.Run("empty collection yields all zeros", func(t *testing.T) {
		stats := MissionStatistics(nil)
		assert.Equal(t, MissionStats{}, stats)
	})

	t.Run("aggregates counts and budgets", func(t *testing.T) {
		missions := []domain.Mission{
			{Status: domain.MissionDraft, Budget: 10_000_000, ActualCost: 2_000_000, Profitability: 80},
			{Status: domain.MissionActive, Budget: 20_000_000, ActualCost: 15_000_000, Profitability: 25},
			{Status: domain.MissionCompleted, Budget: 10_000_000, ActualCost: 8_000_000, Profitability: 20},
			{Status: domain.MissionCancelled, Budget: 0, ActualCost: 0, Profitability: 0},
		}
		stats := MissionStatistics(missions)
		assert.Equal(t, 4, stats.Total)
		assert.Equal(t, 2, stats.Active) // draft counts as active work in progress
		assert.Equal(t, 1, stats.Completed)
		assert.Equal(t, int64(40_000_000), stats.TotalBudget)
		assert.Equal(t, int64(25_000_000), stats.TotalActualCost)
		// (40M - 25M) / 40M = 37.5% rounds to 38
		assert.Equal(t, 38, stats.OverallProfitability)
		// (80 + 25 + 20 + 0) / 4 = 31.25 rounds to 31
		assert.Equal(t, 31, stats.AverageProfitability)
	})

	t.Run("zero total budget yields zero overall profitability", func(t *testing.T) {
		missions := []domain.Mission{{Status: domain.MissionActive, Budget: 0, ActualCost: 5_000}}
		stats := MissionStatistics(missions)
		assert.Equal(t, 0, stats.OverallProfitability)
	})
}

func TestOpportunityStatistics(t *testing.T) {
	t.Run("empty collection yields all zeros", func(t *testing.T) {
		stats := OpportunityStatistics(nil)
		assert.Equal(t, OpportunityStats{}, stats)
	})

	t.Run("conversion rate rounds won over total", func(t *testing.T) {
		opportunities := []domain.Opportunity{
			{Stage: domain.StageWon, Value: 10_000_000, Probability: 100, WeightedValue: 10_000_000},
			{Stage: domain.StageWon, Value: 20_000_000, Probability: 100, WeightedValue: 20_000_000},
			{Stage: domain.StageLost, Value: 5_000_000, Probability: 0, WeightedValue: 0},
		}
		stats := OpportunityStatistics(opportunities)
		assert.Equal(t, 3, stats.Total)
		assert.Equal(t, 2, stats.Won)
		assert.Equal(t, 1, stats.Lost)
		assert.Equal(t, 0, stats.Active)
		// round(2/3 * 100) = 67
		assert.Equal(t, 67, stats.ConversionRate)
		// mean of won values: (10M + 20M) / 2
		assert.Equal(t, int64(15_000_000), stats.AverageDealSize)
	})

	t.Run("active excludes closed stages", func(t *testing.T) {
		opportunities := []domain.Opportunity{
			{Stage: domain.StageProspection, Value: 1_000_000, Probability: 10, WeightedValue: 100_000},
			{Stage: domain.StageNegotiation, Value: 2_000_000, Probability: 80, WeightedValue: 1_600_000},
			{Stage: domain.StageLost, Value: 3_000_000, Probability: 0, WeightedValue: 0},
		}
		stats := OpportunityStatistics(opportunities)
		assert.Equal(t, 2, stats.Active)
		assert.Equal(t, int64(6_000_000), stats.TotalValue)
		assert.Equal(t, int64(1_700_000), stats.WeightedValue)
		// (10 + 80 + 0) / 3 = 30
		assert.Equal(t, 30, stats.AverageProbability)
		// Nothing won, average deal size stays 0
		assert.Equal(t, int64(0), stats.AverageDealSize)
	})
}

func TestInteractionStatistics(t *testing.T) {
	now := time.Date(2025, 6, 15, 14, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	tomorrow := now.AddDate(0, 0, 1)

	t.Run("empty collection yields zeroed stats", func(t *testing.T) {
		stats := InteractionStatistics(nil, now)
		assert.Equal(t, 0, stats.Total)
		assert.Equal(t, 0, stats.AverageDuration)
		assert.Empty(t, stats.ByType)
	})

	t.Run("overdue follow-up leaves the pending bucket", func(t *testing.T) {
		interactions := []domain.Interaction{
			{Type: domain.InteractionCall, Date: yesterday, FollowUpRequired: true, FollowUpDate: timePtr(yesterday), Duration: intPtr(30)},
			{Type: domain.InteractionEmail, Date: yesterday, FollowUpRequired: true, FollowUpDate: timePtr(tomorrow)},
		}
		stats := InteractionStatistics(interactions, now)
		assert.Equal(t, 1, stats.OverdueFollowUps)
		assert.Equal(t, 1, stats.FollowUpRequired)
	})

	t.Run("today matches the calendar day, not a 24h window", func(t *testing.T) {
		interactions := []domain.Interaction{
			{Type: domain.InteractionMeeting, Date: time.Date(2025, 6, 15, 0, 30, 0, 0, time.UTC)},
			{Type: domain.InteractionMeeting, Date: time.Date(2025, 6, 14, 23, 30, 0, 0, time.UTC)},
		}
		stats := InteractionStatistics(interactions, now)
		assert.Equal(t, 1, stats.Today)
	})

	t.Run("average duration uses only logged durations", func(t *testing.T) {
		interactions := []domain.Interaction{
			{Type: domain.InteractionCall, Date: yesterday, Duration: intPtr(10)},
			{Type: domain.InteractionCall, Date: yesterday, Duration: intPtr(25)},
			{Type: domain.InteractionEmail, Date: yesterday},
		}
		stats := InteractionStatistics(interactions, now)
		// (10 + 25) / 2 = 17.5 rounds to 18
		assert.Equal(t, 18, stats.AverageDuration)
		assert.Equal(t, 2, stats.ByType[domain.InteractionCall])
		assert.Equal(t, 1, stats.ByType[domain.InteractionEmail])
	})
}

func TestContactStatistics(t *testing.T) {
	contacts := []domain.Contact{
		{EntityID: "e1", IsPrimary: true, WhatsApp: "+221771234567"},
		{EntityID: "e1"},
		{EntityID: "e2", IsPrimary: true},
	}
	stats := ContactStatistics(contacts)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.Primary)
	assert.Equal(t, 1, stats.WithWhatsApp)
	assert.Equal(t, 2, stats.EntitiesCovered)
}

func TestClosingSoon(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	opportunities := []domain.Opportunity{
		{ID: "late", Stage: domain.StageProposal, Deadline: now.AddDate(0, 2, 0)},
		{ID: "soon", Stage: domain.StageProposal, Deadline: now.AddDate(0, 0, 3)},
		{ID: "sooner", Stage: domain.StageNegotiation, Deadline: now.AddDate(0, 0, 1)},
		{ID: "won", Stage: domain.StageWon, Deadline: now.AddDate(0, 0, 2)},
		{ID: "past", Stage: domain.StageProposal, Deadline: now.AddDate(0, 0, -1)},
	}

	closing := ClosingSoon(opportunities, now, 30*24*time.Hour, 10)
	ids := make([]string, len(closing))
	for i, o := range closing {
		ids[i] = o.ID
	}
	assert.Equal(t, []string{"sooner", "soon"}, ids)
}

func TestOverdueMissions(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	missions := []domain.Mission{
		{ID: "overdue", Status: domain.MissionActive, EndDate: timePtr(now.AddDate(0, 0, -5))},
		{ID: "ongoing", Status: domain.MissionActive, EndDate: timePtr(now.AddDate(0, 0, 5))},
		{ID: "open-ended", Status: domain.MissionActive},
		{ID: "done", Status: domain.MissionCompleted, EndDate: timePtr(now.AddDate(0, 0, -5))},
	}
	overdue := OverdueMissions(missions, now)
	assert.Len(t, overdue, 1)
	assert.Equal(t, "overdue", overdue[0].ID)
}

func TestRecentInteractions(t *testing.T) {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	interactions := []domain.Interaction{
		{ID: "a", Date: base},
		{ID: "b", Date: base.AddDate(0, 0, 2)},
		{ID: "c", Date: base.AddDate(0, 0, 1)},
	}
	recent := RecentInteractions(interactions, 2)
	assert.Len(t, recent, 2)
	assert.Equal(t, "b", recent[0].ID)
	assert.Equal(t, "c", recent[1].ID)
	// Input order is untouched
	assert.Equal(t, "a", interactions[0].ID)
}
