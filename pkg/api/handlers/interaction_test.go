package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fidalli/crm-backend/pkg/domain"
	"github.com/fidalli/crm-backend/pkg/models"
	"github.com/fidalli/crm-backend/pkg/store"
)

func TestInteractionCreateCallRequiresDuration(t *testing.T) {
	st := store.New()
	entity, _ := seedEntities(t, st)
	h := NewInteractionHandler(st, testConfig(), nil, nil)

	body := fmt.Sprintf(`{"entityId":%q,"type":"call","subject":"Relance","date":"2026-08-01"}`, entity.ID)
	c, rec := newContext(t, http.MethodPost, "/api/v1/interactions", body)

	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp models.ValidationErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Fields, "duration")
}

func TestInteractionCreateFollowUpNeedsDate(t *testing.T) {
	st := store.New()
	entity, _ := seedEntities(t, st)
	h := NewInteractionHandler(st, testConfig(), nil, nil)

	body := fmt.Sprintf(`{"entityId":%q,"type":"email","subject":"Relance","date":"2026-08-01","followUpRequired":true}`, entity.ID)
	c, rec := newContext(t, http.MethodPost, "/api/v1/interactions", body)

	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp models.ValidationErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Fields, "followUpDate")
}

func TestInteractionCreateValid(t *testing.T) {
	st := store.New()
	entity, _ := seedEntities(t, st)
	h := NewInteractionHandler(st, testConfig(), nil, nil)

	body := fmt.Sprintf(`{"entityId":%q,"type":"call","subject":"Point d'avancement","date":"2026-08-01","duration":30}`, entity.ID)
	c, rec := newContext(t, http.MethodPost, "/api/v1/interactions", body)

	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var interaction domain.Interaction
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &interaction))
	require.NotNil(t, interaction.Duration)
	assert.Equal(t, 30, *interaction.Duration)
}

func TestInteractionContactMustBelongToEntity(t *testing.T) {
	st := store.New()
	entity, other := seedEntities(t, st)

	contact, err := st.CreateContact(domain.Contact{
		EntityID:  other.ID,
		FirstName: "Moussa",
		LastName:  "Ndiaye",
	})
	require.NoError(t, err)

	h := NewInteractionHandler(st, testConfig(), nil, nil)
	body := fmt.Sprintf(`{"entityId":%q,"contactId":%q,"type":"email","subject":"Relance","date":"2026-08-01"}`, entity.ID, contact.ID)
	c, rec := newContext(t, http.MethodPost, "/api/v1/interactions", body)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
