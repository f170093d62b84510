package store

import "github.com/fidalli/crm-backend/pkg/domain"

// CreateContact stores a new contact for an existing entity. Designating
// it primary demotes the entity's previous primary contact.
func (s *Store) CreateContact(c domain.Contact) (domain.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.entityExists(c.EntityID) {
		return domain.Contact{}, domain.NewNotFoundError("entity")
	}

	now := s.now()
	c.ID = newID()
	c.CreatedAt = now
	c.UpdatedAt = now

	contacts := snapshot(s.contacts)
	if c.IsPrimary {
		contacts = s.demotePrimary(contacts, c.EntityID, "")
	}
	s.contacts = append(contacts, c)
	return c, nil
}

// GetContact returns the contact with the given id.
func (s *Store) GetContact(id string) (domain.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.contacts {
		if c.ID == id {
			return c, nil
		}
	}
	return domain.Contact{}, domain.NewNotFoundError("contact")
}

// UpdateContact replaces the mutable fields of a contact. Promoting a
// contact to primary demotes any other primary of the same entity.
func (s *Store) UpdateContact(id string, c domain.Contact) (domain.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.contacts {
		if existing.ID != id {
			continue
		}
		if c.EntityID != existing.EntityID && !s.entityExists(c.EntityID) {
			return domain.Contact{}, domain.NewNotFoundError("entity")
		}
		c.ID = existing.ID
		c.CreatedAt = existing.CreatedAt
		c.UpdatedAt = s.now()

		contacts := snapshot(s.contacts)
		if c.IsPrimary {
			contacts = s.demotePrimary(contacts, c.EntityID, c.ID)
		}
		s.contacts = replaceAt(contacts, i, c)
		return c, nil
	}
	return domain.Contact{}, domain.NewNotFoundError("contact")
}

// DeleteContact removes a contact.
func (s *Store) DeleteContact(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, c := range s.contacts {
		if c.ID == id {
			s.contacts = removeAt(s.contacts, i)
			return nil
		}
	}
	return domain.NewNotFoundError("contact")
}

// ListContacts returns a snapshot of all contacts.
func (s *Store) ListContacts() []domain.Contact {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot(s.contacts)
}

// ContactsByEntity returns the contacts attached to one entity.
func (s *Store) ContactsByEntity(entityID string) []domain.Contact {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Contact
	for _, c := range s.contacts {
		if c.EntityID == entityID {
			out = append(out, c)
		}
	}
	return out
}

// demotePrimary clears IsPrimary on every contact of the entity except
// keepID. Callers pass an already-copied slice.
func (s *Store) demotePrimary(contacts []domain.Contact, entityID, keepID string) []domain.Contact {
	for i, c := range contacts {
		if c.EntityID == entityID && c.IsPrimary && c.ID != keepID {
			c.IsPrimary = false
			c.UpdatedAt = s.now()
			contacts[i] = c
		}
	}
	return contacts
}
