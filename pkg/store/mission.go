package store

import "github.com/fidalli/crm-backend/pkg/domain"

// CreateMission stores a new mission for an existing entity and derives
// its stored profitability.
func (s *Store) CreateMission(m domain.Mission) (domain.Mission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.entityExists(m.EntityID) {
		return domain.Mission{}, domain.NewNotFoundError("entity")
	}

	now := s.now()
	m.ID = newID()
	m.CreatedAt = now
	m.UpdatedAt = now
	deriveMission(&m)

	s.missions = append(snapshot(s.missions), m)
	return m, nil
}

// GetMission returns the mission with the given id.
func (s *Store) GetMission(id string) (domain.Mission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, m := range s.missions {
		if m.ID == id {
			return m, nil
		}
	}
	return domain.Mission{}, domain.NewNotFoundError("mission")
}

// UpdateMission replaces the mutable fields of a mission and rederives
// profitability.
func (s *Store) UpdateMission(id string, m domain.Mission) (domain.Mission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.missions {
		if existing.ID != id {
			continue
		}
		if m.EntityID != existing.EntityID && !s.entityExists(m.EntityID) {
			return domain.Mission{}, domain.NewNotFoundError("entity")
		}
		m.ID = existing.ID
		m.CreatedAt = existing.CreatedAt
		m.UpdatedAt = s.now()
		deriveMission(&m)

		s.missions = replaceAt(s.missions, i, m)
		return m, nil
	}
	return domain.Mission{}, domain.NewNotFoundError("mission")
}

// DeleteMission removes a mission.
func (s *Store) DeleteMission(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, m := range s.missions {
		if m.ID == id {
			s.missions = removeAt(s.missions, i)
			return nil
		}
	}
	return domain.NewNotFoundError("mission")
}

// ListMissions returns a snapshot of all missions.
func (s *Store) ListMissions() []domain.Mission {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot(s.missions)
}

// MissionsByEntity returns the missions of one entity.
func (s *Store) MissionsByEntity(entityID string) []domain.Mission {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Mission
	for _, m := range s.missions {
		if m.EntityID == entityID {
			out = append(out, m)
		}
	}
	return out
}
