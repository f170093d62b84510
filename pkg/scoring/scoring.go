// Package scoring computes the 0-100 quality score of an entity from its
// revenue, headcount and client/prospect status. All functions are pure;
// the store calls Score on every entity write and persists the result.
package scoring

import (
	"sort"

	"github.com/fidalli/crm-backend/pkg/domain"
)

// Scoring weights and thresholds
const (
	// Revenue band (40 points max, XOF)
	RevenueTier1       = 100_000_000
	RevenueTier2       = 50_000_000
	RevenueTier3       = 10_000_000
	ScoreRevenueTier1  = 40
	ScoreRevenueTier2  = 30
	ScoreRevenueTier3  = 20
	ScoreRevenueLow    = 10
	ScoreRevenueAbsent = 5

	// Employees band (30 points max)
	EmployeesTier1       = 100
	EmployeesTier2       = 50
	EmployeesTier3       = 20
	EmployeesTier4       = 10
	ScoreEmployeesTier1  = 30
	ScoreEmployeesTier2  = 25
	ScoreEmployeesTier3  = 20
	ScoreEmployeesTier4  = 15
	ScoreEmployeesLow    = 10
	ScoreEmployeesAbsent = 5

	// Status band
	ScoreStatusClient   = 30
	ScoreStatusProspect = 15

	// Maximum possible score
	MaxTotalScore = 100
)

// Score computes the entity quality score. Nil revenue or employees means
// the data is missing and takes the minimum band; an explicit zero is a
// known value and takes the lowest present band. The cap at 100 is never
// reached by the bands alone (40+30+30) but guards future weight changes.
func Score(revenue *int64, employees *int, status domain.EntityStatus) int {
	total := RevenueBand(revenue) + EmployeesBand(employees) + StatusBand(status)
	if total > MaxTotalScore {
		return MaxTotalScore
	}
	return total
}

// ScoreEntity computes the score from an entity record.
func ScoreEntity(e domain.Entity) int {
	return Score(e.Revenue, e.Employees, e.Status)
}

// RevenueBand returns the revenue contribution to the score.
func RevenueBand(revenue *int64) int {
	if revenue == nil {
		return ScoreRevenueAbsent
	}
	switch r := *revenue; {
	case r >= RevenueTier1:
		return ScoreRevenueTier1
	case r >= RevenueTier2:
		return ScoreRevenueTier2
	case r >= RevenueTier3:
		return ScoreRevenueTier3
	default:
		return ScoreRevenueLow
	}
}

// EmployeesBand returns the headcount contribution to the score.
func EmployeesBand(employees *int) int {
	if employees == nil {
		return ScoreEmployeesAbsent
	}
	switch e := *employees; {
	case e >= EmployeesTier1:
		return ScoreEmployeesTier1
	case e >= EmployeesTier2:
		return ScoreEmployeesTier2
	case e >= EmployeesTier3:
		return ScoreEmployeesTier3
	case e >= EmployeesTier4:
		return ScoreEmployeesTier4
	default:
		return ScoreEmployeesLow
	}
}

// StatusBand returns the relationship contribution to the score. Any
// status other than client scores as prospect.
func StatusBand(status domain.EntityStatus) int {
	if status == domain.StatusClient {
		return ScoreStatusClient
	}
	return ScoreStatusProspect
}

// Breakdown details how each band contributed to an entity's score.
type Breakdown struct {
	Revenue   int `json:"revenue"`
	Employees int `json:"employees"`
	Status    int `json:"status"`
	Total     int `json:"total"`
}

// ScoreBreakdown returns the per-band contributions for an entity.
func ScoreBreakdown(e domain.Entity) Breakdown {
	b := Breakdown{
		Revenue:   RevenueBand(e.Revenue),
		Employees: EmployeesBand(e.Employees),
		Status:    StatusBand(e.Status),
	}
	b.Total = b.Revenue + b.Employees + b.Status
	if b.Total > MaxTotalScore {
		b.Total = MaxTotalScore
	}
	return b
}

// Score distribution buckets
const (
	BucketExcellent = "excellent" // 80-100
	BucketGood      = "good"      // 60-79
	BucketFair      = "fair"      // 40-59
	BucketPoor      = "poor"      // 20-39
	BucketCritical  = "critical"  // 0-19
)

// Distribution buckets entities by stored score.
func Distribution(entities []domain.Entity) map[string]int {
	dist := map[string]int{
		BucketExcellent: 0,
		BucketGood:      0,
		BucketFair:      0,
		BucketPoor:      0,
		BucketCritical:  0,
	}
	for _, e := range entities {
		dist[bucket(e.Score)]++
	}
	return dist
}

func bucket(score int) string {
	switch {
	case score >= 80:
		return BucketExcellent
	case score >= 60:
		return BucketGood
	case score >= 40:
		return BucketFair
	case score >= 20:
		return BucketPoor
	default:
		return BucketCritical
	}
}

// TopEntities returns the n highest-scored entities, ties keeping their
// original relative order.
func TopEntities(entities []domain.Entity, n int) []domain.Entity {
	if n <= 0 {
		return nil
	}
	sorted := make([]domain.Entity, len(entities))
	copy(sorted, entities)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
