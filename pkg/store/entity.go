package store

import "github.com/fidalli/crm-backend/pkg/domain"

// CreateEntity stores a new entity. The ID, timestamps and score are
// assigned here; any score on the input is ignored.
func (s *Store) CreateEntity(e domain.Entity) (domain.Entity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	e.ID = newID()
	e.CreatedAt = now
	e.UpdatedAt = now
	deriveEntity(&e)

	s.entities = append(snapshot(s.entities), e)
	return e, nil
}

// GetEntity returns the entity with the given id.
func (s *Store) GetEntity(id string) (domain.Entity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.entities {
		if e.ID == id {
			return e, nil
		}
	}
	return domain.Entity{}, domain.NewNotFoundError("entity")
}

// UpdateEntity replaces the mutable fields of an entity and recomputes
// its score. Identity and creation time are preserved.
func (s *Store) UpdateEntity(id string, e domain.Entity) (domain.Entity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.entities {
		if existing.ID != id {
			continue
		}
		e.ID = existing.ID
		e.CreatedAt = existing.CreatedAt
		e.UpdatedAt = s.now()
		deriveEntity(&e)

		s.entities = replaceAt(s.entities, i, e)
		return e, nil
	}
	return domain.Entity{}, domain.NewNotFoundError("entity")
}

// DeleteEntity removes an entity and cascades to its contacts, missions,
// opportunities and interactions.
func (s *Store) DeleteEntity(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, e := range s.entities {
		if e.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.NewNotFoundError("entity")
	}

	s.entities = removeAt(s.entities, idx)
	s.contacts = dropByEntity(s.contacts, id, func(c domain.Contact) string { return c.EntityID })
	s.missions = dropByEntity(s.missions, id, func(m domain.Mission) string { return m.EntityID })
	s.opportunities = dropByEntity(s.opportunities, id, func(o domain.Opportunity) string { return o.EntityID })
	s.interactions = dropByEntity(s.interactions, id, func(i domain.Interaction) string { return i.EntityID })
	return nil
}

// ListEntities returns a snapshot of all entities in insertion order.
func (s *Store) ListEntities() []domain.Entity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot(s.entities)
}

func (s *Store) entityExists(id string) bool {
	for _, e := range s.entities {
		if e.ID == id {
			return true
		}
	}
	return false
}

func dropByEntity[T any](items []T, entityID string, key func(T) string) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if key(item) != entityID {
			out = append(out, item)
		}
	}
	return out
}
