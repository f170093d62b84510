package store

import "github.com/fidalli/crm-backend/pkg/domain"

// CreateOpportunity stores a new opportunity for an existing entity.
// Weighted value and the approval gate are derived here and stored, so
// later threshold changes never alter historical records.
func (s *Store) CreateOpportunity(o domain.Opportunity) (domain.Opportunity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.entityExists(o.EntityID) {
		return domain.Opportunity{}, domain.NewNotFoundError("entity")
	}

	now := s.now()
	o.ID = newID()
	o.CreatedAt = now
	o.UpdatedAt = now
	deriveOpportunity(&o)

	s.opportunities = append(snapshot(s.opportunities), o)
	return o, nil
}

// GetOpportunity returns the opportunity with the given id.
func (s *Store) GetOpportunity(id string) (domain.Opportunity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, o := range s.opportunities {
		if o.ID == id {
			return o, nil
		}
	}
	return domain.Opportunity{}, domain.NewNotFoundError("opportunity")
}

// UpdateOpportunity replaces the mutable fields of an opportunity and
// rederives weighted value and the approval gate from the new values.
func (s *Store) UpdateOpportunity(id string, o domain.Opportunity) (domain.Opportunity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.opportunities {
		if existing.ID != id {
			continue
		}
		if o.EntityID != existing.EntityID && !s.entityExists(o.EntityID) {
			return domain.Opportunity{}, domain.NewNotFoundError("entity")
		}
		o.ID = existing.ID
		o.CreatedAt = existing.CreatedAt
		o.UpdatedAt = s.now()
		deriveOpportunity(&o)

		s.opportunities = replaceAt(s.opportunities, i, o)
		return o, nil
	}
	return domain.Opportunity{}, domain.NewNotFoundError("opportunity")
}

// DeleteOpportunity removes an opportunity.
func (s *Store) DeleteOpportunity(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, o := range s.opportunities {
		if o.ID == id {
			s.opportunities = removeAt(s.opportunities, i)
			return nil
		}
	}
	return domain.NewNotFoundError("opportunity")
}

// ListOpportunities returns a snapshot of all opportunities.
func (s *Store) ListOpportunities() []domain.Opportunity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot(s.opportunities)
}

// OpportunitiesByEntity returns the opportunities of one entity.
func (s *Store) OpportunitiesByEntity(entityID string) []domain.Opportunity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Opportunity
	for _, o := range s.opportunities {
		if o.EntityID == entityID {
			out = append(out, o)
		}
	}
	return out
}
