package store

import "github.com/fidalli/crm-backend/pkg/domain"

// CreateInteraction stores a new interaction for an existing entity. A
// contact reference, when present, must belong to the same entity.
func (s *Store) CreateInteraction(i domain.Interaction) (domain.Interaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.entityExists(i.EntityID) {
		return domain.Interaction{}, domain.NewNotFoundError("entity")
	}
	if err := s.checkContactRef(i); err != nil {
		return domain.Interaction{}, err
	}

	now := s.now()
	i.ID = newID()
	i.CreatedAt = now
	i.UpdatedAt = now

	s.interactions = append(snapshot(s.interactions), i)
	return i, nil
}

// GetInteraction returns the interaction with the given id.
func (s *Store) GetInteraction(id string) (domain.Interaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, i := range s.interactions {
		if i.ID == id {
			return i, nil
		}
	}
	return domain.Interaction{}, domain.NewNotFoundError("interaction")
}

// UpdateInteraction replaces the mutable fields of an interaction.
func (s *Store) UpdateInteraction(id string, in domain.Interaction) (domain.Interaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.interactions {
		if existing.ID != id {
			continue
		}
		if in.EntityID != existing.EntityID && !s.entityExists(in.EntityID) {
			return domain.Interaction{}, domain.NewNotFoundError("entity")
		}
		if err := s.checkContactRef(in); err != nil {
			return domain.Interaction{}, err
		}
		in.ID = existing.ID
		in.CreatedAt = existing.CreatedAt
		in.UpdatedAt = s.now()

		s.interactions = replaceAt(s.interactions, i, in)
		return in, nil
	}
	return domain.Interaction{}, domain.NewNotFoundError("interaction")
}

// DeleteInteraction removes an interaction.
func (s *Store) DeleteInteraction(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, in := range s.interactions {
		if in.ID == id {
			s.interactions = removeAt(s.interactions, i)
			return nil
		}
	}
	return domain.NewNotFoundError("interaction")
}

// ListInteractions returns a snapshot of all interactions.
func (s *Store) ListInteractions() []domain.Interaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot(s.interactions)
}

// InteractionsByEntity returns the interactions logged against one entity.
func (s *Store) InteractionsByEntity(entityID string) []domain.Interaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Interaction
	for _, i := range s.interactions {
		if i.EntityID == entityID {
			out = append(out, i)
		}
	}
	return out
}

// checkContactRef verifies an optional contact reference points at a
// contact of the interaction's entity. Callers hold the lock.
func (s *Store) checkContactRef(i domain.Interaction) error {
	if i.ContactID == "" {
		return nil
	}
	for _, c := range s.contacts {
		if c.ID == i.ContactID {
			if c.EntityID != i.EntityID {
				return domain.NewValidationError("contact does not belong to the entity")
			}
			return nil
		}
	}
	return domain.NewNotFoundError("contact")
}
