package testdata

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/fidalli/crm-backend/pkg/auth"
	"github.com/fidalli/crm-backend/pkg/domain"
	"github.com/fidalli/crm-backend/pkg/store"
)

// SeedOptions controls demo data volume.
type SeedOptions struct {
	Entities           int
	ContactsPerEntity  int
	MissionsPerEntity  int
	DealsPerEntity     int
	TouchesPerEntity   int
	AdminEmail         string
	AdminPassword      string
}

// DefaultSeedOptions is the volume used for local development.
func DefaultSeedOptions() SeedOptions {
	return SeedOptions{
		Entities:          25,
		ContactsPerEntity: 2,
		MissionsPerEntity: 2,
		DealsPerEntity:    2,
		TouchesPerEntity:  4,
		AdminEmail:        "admin@fidalli.local",
		AdminPassword:     "admin1234",
	}
}

// Seed fills the store with demo records and a default admin account.
func Seed(st *store.Store, opts SeedOptions) error {
	hash, err := auth.HashPassword(opts.AdminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	_, err = st.CreateCollaborator(domain.Collaborator{
		Email:        opts.AdminEmail,
		Username:     "admin",
		FirstName:    "Awa",
		LastName:     "Diop",
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
	})
	if err != nil {
		return fmt.Errorf("failed to create admin collaborator: %w", err)
	}

	for i := 0; i < opts.Entities; i++ {
		entity, err := st.CreateEntity(Entity())
		if err != nil {
			return fmt.Errorf("failed to seed entity: %w", err)
		}

		var contactIDs []string
		for j := 0; j < opts.ContactsPerEntity; j++ {
			contact, err := st.CreateContact(Contact(entity.ID, j == 0))
			if err != nil {
				return fmt.Errorf("failed to seed contact: %w", err)
			}
			contactIDs = append(contactIDs, contact.ID)
		}

		for j := 0; j < opts.MissionsPerEntity; j++ {
			if _, err := st.CreateMission(Mission(entity.ID)); err != nil {
				return fmt.Errorf("failed to seed mission: %w", err)
			}
		}

		for j := 0; j < opts.DealsPerEntity; j++ {
			if _, err := st.CreateOpportunity(Opportunity(entity.ID)); err != nil {
				return fmt.Errorf("failed to seed opportunity: %w", err)
			}
		}

		for j := 0; j < opts.TouchesPerEntity; j++ {
			contactID := ""
			if len(contactIDs) > 0 && rand.Float64() < 0.7 {
				contactID = contactIDs[rand.Intn(len(contactIDs))]
			}
			if _, err := st.CreateInteraction(Interaction(entity.ID, contactID)); err != nil {
				return fmt.Errorf("failed to seed interaction: %w", err)
			}
		}
	}

	log.Printf("✅ Seeded %d entities with demo data (admin: %s)", opts.Entities, opts.AdminEmail)
	return nil
}
