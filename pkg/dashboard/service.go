// Package dashboard assembles the combined overview served at
// /api/v1/dashboard, cached in Redis so repeated loads do not rescan
// every collection.
package dashboard

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fidalli/crm-backend/pkg/analytics"
	"github.com/fidalli/crm-backend/pkg/cache"
	"github.com/fidalli/crm-backend/pkg/domain"
	"github.com/fidalli/crm-backend/pkg/metrics"
	"github.com/fidalli/crm-backend/pkg/scoring"
	"github.com/fidalli/crm-backend/pkg/store"
)

const (
	overviewKey = "dashboard:overview"
	overviewTTL = 5 * time.Minute

	topEntitiesCount     = 5
	closingSoonWindow    = 30 * 24 * time.Hour
	closingSoonCount     = 5
	recentInteractionCnt = 10
)

// Overview is the full dashboard payload.
type Overview struct {
	TotalEntities     int                        `json:"totalEntities"`
	Clients           int                        `json:"clients"`
	Prospects         int                        `json:"prospects"`
	ScoreDistribution map[string]int             `json:"scoreDistribution"`
	TopEntities       []domain.Entity            `json:"topEntities"`
	Missions          analytics.MissionStats     `json:"missions"`
	Opportunities     analytics.OpportunityStats `json:"opportunities"`
	Interactions      analytics.InteractionStats `json:"interactions"`
	Contacts          analytics.ContactStats     `json:"contacts"`
	ClosingSoon       []domain.Opportunity       `json:"closingSoon"`
	OverdueMissions   []domain.Mission           `json:"overdueMissions"`
	OverdueFollowUps  []domain.Interaction       `json:"overdueFollowUps"`
	RecentActivity    []domain.Interaction       `json:"recentActivity"`
	GeneratedAt       time.Time                  `json:"generatedAt"`
}

// Service builds and caches the dashboard overview.
type Service struct {
	store   *store.Store
	cache   *cache.Client
	metrics *metrics.Metrics
}

// NewService creates a dashboard service. cache and metrics may be nil.
func NewService(st *store.Store, c *cache.Client, m *metrics.Metrics) *Service {
	return &Service{store: st, cache: c, metrics: m}
}

// Overview returns the dashboard, serving from cache when possible.
func (s *Service) Overview(ctx context.Context) (Overview, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, overviewKey); err == nil {
			var cached Overview
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				if s.metrics != nil {
					s.metrics.RecordCacheHit("dashboard")
				}
				return cached, nil
			}
		}
		if s.metrics != nil {
			s.metrics.RecordCacheMiss("dashboard")
		}
	}

	overview := s.build(time.Now())

	if s.cache != nil {
		if raw, err := json.Marshal(overview); err == nil {
			// Best effort; a cache write failure never fails the request
			_ = s.cache.Set(ctx, overviewKey, raw, overviewTTL)
		}
	}
	return overview, nil
}

// Refresh rebuilds the overview and overwrites the cache entry. Used by
// the hourly warm job.
func (s *Service) Refresh(ctx context.Context) error {
	overview := s.build(time.Now())
	if s.cache == nil {
		return nil
	}
	raw, err := json.Marshal(overview)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, overviewKey, raw, overviewTTL)
}

// Invalidate drops all dashboard cache entries. Called after any write.
func (s *Service) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	_ = s.cache.DeletePattern(ctx, "dashboard:*")
}

func (s *Service) build(now time.Time) Overview {
	entities := s.store.ListEntities()
	missions := s.store.ListMissions()
	opportunities := s.store.ListOpportunities()
	interactions := s.store.ListInteractions()
	contacts := s.store.ListContacts()

	clients := 0
	for _, e := range entities {
		if e.Status == domain.StatusClient {
			clients++
		}
	}

	return Overview{
		TotalEntities:     len(entities),
		Clients:           clients,
		Prospects:         len(entities) - clients,
		ScoreDistribution: scoring.Distribution(entities),
		TopEntities:       scoring.TopEntities(entities, topEntitiesCount),
		Missions:          analytics.MissionStatistics(missions),
		Opportunities:     analytics.OpportunityStatistics(opportunities),
		Interactions:      analytics.InteractionStatistics(interactions, now),
		Contacts:          analytics.ContactStatistics(contacts),
		ClosingSoon:       analytics.ClosingSoon(opportunities, now, closingSoonWindow, closingSoonCount),
		OverdueMissions:   analytics.OverdueMissions(missions, now),
		OverdueFollowUps:  analytics.OverdueFollowUps(interactions, now),
		RecentActivity:    analytics.RecentInteractions(interactions, recentInteractionCnt),
		GeneratedAt:       now,
	}
}
