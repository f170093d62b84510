package store

import (
	"strings"

	"github.com/fidalli/crm-backend/pkg/domain"
)

// CreateCollaborator stores a new collaborator. Email and username are
// unique, compared case-insensitively.
func (s *Store) CreateCollaborator(c domain.Collaborator) (domain.Collaborator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.collaborators {
		if strings.EqualFold(existing.Email, c.Email) {
			return domain.Collaborator{}, domain.NewConflictError("email already registered")
		}
		if strings.EqualFold(existing.Username, c.Username) {
			return domain.Collaborator{}, domain.NewConflictError("username already taken")
		}
	}

	now := s.now()
	c.ID = newID()
	c.CreatedAt = now
	c.UpdatedAt = now

	s.collaborators = append(snapshot(s.collaborators), c)
	return c, nil
}

// GetCollaborator returns the collaborator with the given id.
func (s *Store) GetCollaborator(id string) (domain.Collaborator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.collaborators {
		if c.ID == id {
			return c, nil
		}
	}
	return domain.Collaborator{}, domain.NewNotFoundError("collaborator")
}

// FindCollaborator looks a collaborator up by username or email.
func (s *Store) FindCollaborator(login string) (domain.Collaborator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.collaborators {
		if strings.EqualFold(c.Username, login) || strings.EqualFold(c.Email, login) {
			return c, nil
		}
	}
	return domain.Collaborator{}, domain.NewNotFoundError("collaborator")
}

// ListCollaborators returns a snapshot of all collaborators.
func (s *Store) ListCollaborators() []domain.Collaborator {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot(s.collaborators)
}
