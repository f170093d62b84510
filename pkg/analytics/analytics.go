// Package analytics derives roll-up statistics over the CRM collections.
// Every function is a pure computation over the snapshot it is handed;
// time-sensitive aggregates take "now" explicitly so results are never
// memoized and tests stay deterministic.
package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/fidalli/crm-backend/pkg/domain"
)

// MissionStats summarizes a mission collection.
type MissionStats struct {
	Total                int   `json:"total"`
	Active               int   `json:"active"`    // draft or active
	Completed            int   `json:"completed"`
	AverageProfitability int   `json:"averageProfitability"` // rounded mean of per-mission percentages
	TotalBudget          int64 `json:"totalBudget"`
	TotalActualCost      int64 `json:"totalActualCost"`
	OverallProfitability int   `json:"overallProfitability"` // (budget - cost) / budget, percent
}

// MissionStatistics aggregates missions. All divisions are zero-guarded:
// an empty collection or a zero total budget yields 0, never an error.
func MissionStatistics(missions []domain.Mission) MissionStats {
	stats := MissionStats{Total: len(missions)}

	profitabilitySum := 0
	for _, m := range missions {
		switch m.Status {
		case domain.MissionDraft, domain.MissionActive:
			stats.Active++
		case domain.MissionCompleted:
			stats.Completed++
		}
		stats.TotalBudget += m.Budget
		stats.TotalActualCost += m.ActualCost
		profitabilitySum += m.Profitability
	}

	if stats.Total > 0 {
		stats.AverageProfitability = roundToInt(float64(profitabilitySum) / float64(stats.Total))
	}
	if stats.TotalBudget > 0 {
		margin := float64(stats.TotalBudget-stats.TotalActualCost) / float64(stats.TotalBudget)
		stats.OverallProfitability = roundToInt(margin * 100)
	}
	return stats
}

// OpportunityStats summarizes a pipeline collection.
type OpportunityStats struct {
	Total              int   `json:"total"`
	Active             int   `json:"active"` // stage not won or lost
	Won                int   `json:"won"`
	Lost               int   `json:"lost"`
	TotalValue         int64 `json:"totalValue"`
	WeightedValue      int64 `json:"weightedValue"` // sum of stored per-item weighted values
	AverageProbability int   `json:"averageProbability"`
	ConversionRate     int   `json:"conversionRate"`  // won / total, percent
	AverageDealSize    int64 `json:"averageDealSize"` // mean value among won only
}

// OpportunityStatistics aggregates opportunities.
func OpportunityStatistics(opportunities []domain.Opportunity) OpportunityStats {
	stats := OpportunityStats{Total: len(opportunities)}

	probabilitySum := 0
	var wonValue int64
	for _, o := range opportunities {
		switch o.Stage {
		case domain.StageWon:
			stats.Won++
			wonValue += o.Value
		case domain.StageLost:
			stats.Lost++
		default:
			stats.Active++
		}
		stats.TotalValue += o.Value
		stats.WeightedValue += o.WeightedValue
		probabilitySum += o.Probability
	}

	if stats.Total > 0 {
		stats.AverageProbability = roundToInt(float64(probabilitySum) / float64(stats.Total))
		stats.ConversionRate = roundToInt(float64(stats.Won) / float64(stats.Total) * 100)
	}
	if stats.Won > 0 {
		stats.AverageDealSize = int64(math.Round(float64(wonValue) / float64(stats.Won)))
	}
	return stats
}

// InteractionStats summarizes logged touches.
type InteractionStats struct {
	Total            int                            `json:"total"`
	Today            int                            `json:"today"` // same calendar day as now
	FollowUpRequired int                            `json:"followUpRequired"` // pending, due now or later
	OverdueFollowUps int                            `json:"overdueFollowUps"` // pending, due strictly before now
	ByType           map[domain.InteractionType]int `json:"byType"`
	AverageDuration  int                            `json:"averageDuration"` // rounded mean of logged durations, minutes
}

// InteractionStatistics aggregates interactions against the given clock
// reading. Follow-ups split on now: strictly past due dates are overdue,
// everything else still pending counts as followUpRequired.
func InteractionStatistics(interactions []domain.Interaction, now time.Time) InteractionStats {
	stats := InteractionStats{
		Total:  len(interactions),
		ByType: make(map[domain.InteractionType]int),
	}

	durationSum := 0
	durationCount := 0
	for _, i := range interactions {
		stats.ByType[i.Type]++

		if sameDay(i.Date, now) {
			stats.Today++
		}
		if i.FollowUpRequired && i.FollowUpDate != nil {
			if i.FollowUpDate.Before(now) {
				stats.OverdueFollowUps++
			} else {
				stats.FollowUpRequired++
			}
		}
		if i.Duration != nil {
			durationSum += *i.Duration
			durationCount++
		}
	}

	if durationCount > 0 {
		stats.AverageDuration = roundToInt(float64(durationSum) / float64(durationCount))
	}
	return stats
}

// ContactStats summarizes a contact collection.
type ContactStats struct {
	Total           int `json:"total"`
	Primary         int `json:"primary"`
	WithWhatsApp    int `json:"withWhatsApp"`
	EntitiesCovered int `json:"entitiesCovered"` // distinct entities with at least one contact
}

// ContactStatistics aggregates contacts.
func ContactStatistics(contacts []domain.Contact) ContactStats {
	stats := ContactStats{Total: len(contacts)}

	entities := make(map[string]struct{})
	for _, c := range contacts {
		if c.IsPrimary {
			stats.Primary++
		}
		if c.WhatsApp != "" {
			stats.WithWhatsApp++
		}
		entities[c.EntityID] = struct{}{}
	}
	stats.EntitiesCovered = len(entities)
	return stats
}

// ClosingSoon returns up to n open opportunities whose deadline falls
// within the window after now, soonest first. Won and lost deals are out.
func ClosingSoon(opportunities []domain.Opportunity, now time.Time, window time.Duration, n int) []domain.Opportunity {
	var open []domain.Opportunity
	limit := now.Add(window)
	for _, o := range opportunities {
		if o.Stage == domain.StageWon || o.Stage == domain.StageLost {
			continue
		}
		if o.Deadline.Before(now) || o.Deadline.After(limit) {
			continue
		}
		open = append(open, o)
	}
	sort.SliceStable(open, func(i, j int) bool {
		return open[i].Deadline.Before(open[j].Deadline)
	})
	if n > 0 && len(open) > n {
		open = open[:n]
	}
	return open
}

// OverdueMissions returns active missions whose end date has passed.
func OverdueMissions(missions []domain.Mission, now time.Time) []domain.Mission {
	var overdue []domain.Mission
	for _, m := range missions {
		if m.Status != domain.MissionActive || m.EndDate == nil {
			continue
		}
		if m.EndDate.Before(now) {
			overdue = append(overdue, m)
		}
	}
	return overdue
}

// OverdueFollowUps returns interactions whose pending follow-up date is
// strictly before now.
func OverdueFollowUps(interactions []domain.Interaction, now time.Time) []domain.Interaction {
	var overdue []domain.Interaction
	for _, i := range interactions {
		if i.FollowUpRequired && i.FollowUpDate != nil && i.FollowUpDate.Before(now) {
			overdue = append(overdue, i)
		}
	}
	return overdue
}

// RecentInteractions returns the n most recent interactions by date,
// newest first, ties keeping original relative order.
func RecentInteractions(interactions []domain.Interaction, n int) []domain.Interaction {
	if n <= 0 {
		return nil
	}
	sorted := make([]domain.Interaction, len(interactions))
	copy(sorted, interactions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// roundToInt rounds half away from zero, matching how the percentages
// are displayed.
func roundToInt(v float64) int {
	return int(math.Round(v))
}

func sameDay(a, b time.Time) bool {
	a = a.In(b.Location())
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
