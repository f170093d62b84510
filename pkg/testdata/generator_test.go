package testdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fidalli/crm-backend/pkg/domain"
	"github.com/fidalli/crm-backend/pkg/store"
)

func TestGeneratedRecordsAreValid(t *testing.T) {
	for i := 0; i < 50; i++ {
		e := Entity()
		assert.NotEmpty(t, e.CompanyName)
		assert.True(t, domain.ValidEntityStatus(e.Status))

		m := Mission("ent-1")
		assert.True(t, domain.ValidMissionStatus(m.Status))
		assert.Greater(t, m.Budget, int64(0))

		o := Opportunity("ent-1")
		assert.True(t, domain.ValidOpportunityStage(o.Stage))
		assert.GreaterOrEqual(t, o.Probability, 0)
		assert.LessOrEqual(t, o.Probability, 100)

		i := Interaction("ent-1", "")
		assert.True(t, domain.ValidInteractionType(i.Type))
		if i.Type == domain.InteractionCall {
			require.NotNil(t, i.Duration)
			assert.Greater(t, *i.Duration, 0)
		}
		if i.FollowUpRequired {
			assert.NotNil(t, i.FollowUpDate)
		}
	}
}

func TestSeedPopulatesStore(t *testing.T) {
	st := store.New()
	opts := DefaultSeedOptions()
	opts.Entities = 5

	require.NoError(t, Seed(st, opts))

	entities := st.ListEntities()
	require.Len(t, entities, 5)
	for _, e := range entities {
		// Scores are derived at write time, never left at zero
		assert.GreaterOrEqual(t, e.Score, 25)
		assert.LessOrEqual(t, e.Score, 100)
	}

	assert.Len(t, st.ListContacts(), 10)
	assert.Len(t, st.ListMissions(), 10)
	assert.Len(t, st.ListOpportunities(), 10)
	assert.Len(t, st.ListInteractions(), 20)

	admin, err := st.FindCollaborator(opts.AdminEmail)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, admin.Role)
}
