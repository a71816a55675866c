package services_test

import (
	"encoding/hex"
	"encoding/json"
	"testing"

	"github.com/cardtaphq/cardtap-backend/internal/dto"
	"github.com/cardtaphq/cardtap-backend/internal/models"
	"github.com/cardtaphq/cardtap-backend/internal/services"
	"github.com/cardtaphq/cardtap-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebhookService(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := services.NewWebhookService(db)

	owner := testutil.CreateProfile(t, db, "hooks", "hooks.user")
	other := testutil.CreateProfile(t, db, "nothooks", "nothooks.user")

	t.Run("CreateGeneratesSecret", func(t *testing.T) {
		created, err := svc.Create(owner.ID, &dto.CreateWebhookRequest{
			Name:   "crm sync",
			URL:    "https://crm.example.com/hooks",
			Events: []string{models.EventProfileView, models.EventLinkClick},
		})
		require.NoError(t, err)

		assert.Len(t, created.Secret, 64)
		_, err = hex.DecodeString(created.Secret)
		assert.NoError(t, err)
		assert.True(t, created.Enabled)

		var events []string
		require.NoError(t, json.Unmarshal(created.Events, &events))
		assert.Equal(t, []string{models.EventProfileView, models.EventLinkClick}, events)
	})

	t.Run("SecretsDiffer", func(t *testing.T) {
		a, err := svc.Create(owner.ID, &dto.CreateWebhookRequest{
			Name: "a", URL: "https://a.example.com", Events: []string{models.EventNFCScan},
		})
		require.NoError(t, err)
		b, err := svc.Create(owner.ID, &dto.CreateWebhookRequest{
			Name: "b", URL: "https://b.example.com", Events: []string{models.EventNFCScan},
		})
		require.NoError(t, err)
		assert.NotEqual(t, a.Secret, b.Secret)
	})

	t.Run("SecretNeverMarshals", func(t *testing.T) {
		webhooks, err := svc.List(owner.ID)
		require.NoError(t, err)
		require.NotEmpty(t, webhooks)

		out, err := json.Marshal(webhooks)
		require.NoError(t, err)
		assert.NotContains(t, string(out), `"secret"`)
		for _, w := range webhooks {
			assert.NotContains(t, string(out), w.Secret)
		}
	})

	t.Run("UpdateKeepsSecret", func(t *testing.T) {
		webhooks, err := svc.List(owner.ID)
		require.NoError(t, err)
		target := webhooks[0]

		updated, err := svc.Update(owner.ID, target.ID, &dto.UpdateWebhookRequest{
			Name:   strPtr("renamed"),
			Events: []string{models.EventContactSave},
		})
		require.NoError(t, err)
		assert.Equal(t, "renamed", updated.Name)
		assert.Equal(t, target.Secret, updated.Secret)
		assert.Equal(t, target.URL, updated.URL)

		var events []string
		require.NoError(t, json.Unmarshal(updated.Events, &events))
		assert.Equal(t, []string{models.EventContactSave}, events)
	})

	t.Run("OwnershipScoping", func(t *testing.T) {
		webhooks, err := svc.List(owner.ID)
		require.NoError(t, err)
		target := webhooks[0]

		_, err = svc.Get(other.ID, target.ID)
		assert.ErrorIs(t, err, services.ErrWebhookNotFound)

		err = svc.Delete(other.ID, target.ID)
		assert.ErrorIs(t, err, services.ErrWebhookNotFound)
	})

	t.Run("DeleteCascadesDeliveries", func(t *testing.T) {
		webhooks, err := svc.List(owner.ID)
		require.NoError(t, err)
		target := webhooks[0]
		require.NoError(t, db.Create(&models.WebhookDelivery{WebhookID: target.ID, Attempt: 1, Status: 200}).Error)

		require.NoError(t, svc.Delete(owner.ID, target.ID))

		var deliveries int64
		require.NoError(t, db.Model(&models.WebhookDelivery{}).Where("webhook_id = ?", target.ID).Count(&deliveries).Error)
		assert.Zero(t, deliveries)
	})
}
