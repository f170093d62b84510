// Package store holds every CRM collection in process memory behind one
// RWMutex. Mutations build a fresh slice and swap it in, so readers
// always observe a complete snapshot. The store also owns the write-time
// derivations: entity scores, mission profitability, opportunity weighted
// value and the approval gate are computed here and stored, never
// recomputed on read.
package store

import (
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fidalli/crm-backend/pkg/domain"
	"github.com/fidalli/crm-backend/pkg/scoring"
)

// Store is the process-wide CRM state container.
type Store struct {
	mu sync.RWMutex

	entities      []domain.Entity
	contacts      []domain.Contact
	missions      []domain.Mission
	opportunities []domain.Opportunity
	interactions  []domain.Interaction
	collaborators []domain.Collaborator

	now func() time.Time
}

// New creates an empty store.
func New() *Store {
	return &Store{now: time.Now}
}

// NewWithClock creates a store with an injected clock, for tests.
func NewWithClock(now func() time.Time) *Store {
	return &Store{now: now}
}

func newID() string {
	return uuid.NewString()
}

// snapshot copies a collection so callers never alias store-owned slices.
func snapshot[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	return out
}

// replaceAt returns a copy of items with index i swapped for v.
func replaceAt[T any](items []T, i int, v T) []T {
	out := make([]T, len(items))
	copy(out, items)
	out[i] = v
	return out
}

// removeAt returns a copy of items without index i.
func removeAt[T any](items []T, i int) []T {
	out := make([]T, 0, len(items)-1)
	out = append(out, items[:i]...)
	out = append(out, items[i+1:]...)
	return out
}

// profitability derives the stored margin percentage for a mission.
// A zero budget yields 0 rather than a division error.
func profitability(budget, actualCost int64) int {
	if budget <= 0 {
		return 0
	}
	return int(math.Round(float64(budget-actualCost) / float64(budget) * 100))
}

// weightedValue derives the stored pipeline valuation of an opportunity.
func weightedValue(value int64, probability int) int64 {
	return int64(math.Round(float64(value) * float64(probability) / 100))
}

// deriveEntity recomputes the stored score from the scoreable fields.
func deriveEntity(e *domain.Entity) {
	e.Score = scoring.Score(e.Revenue, e.Employees, e.Status)
}

// deriveMission recomputes the stored profitability.
func deriveMission(m *domain.Mission) {
	m.Profitability = profitability(m.Budget, m.ActualCost)
}

// deriveOpportunity recomputes weighted value and the approval gate.
func deriveOpportunity(o *domain.Opportunity) {
	o.WeightedValue = weightedValue(o.Value, o.Probability)
	o.RequiresApproval = o.Value > domain.ApprovalThreshold
}
