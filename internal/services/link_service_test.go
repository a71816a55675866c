package services_test

import (
	"testing"

	"github.com/cardtaphq/cardtap-backend/internal/dto"
	"github.com/cardtaphq/cardtap-backend/internal/models"
	"github.com/cardtaphq/cardtap-backend/internal/services"
	"github.com/cardtaphq/cardtap-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func TestLinkService(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := services.NewLinkService(db)

	owner := testutil.CreateProfile(t, db, "owner", "link.owner")
	other := testutil.CreateProfile(t, db, "other", "other.user")

	t.Run("CreateAndList", func(t *testing.T) {
		_, err := svc.Create(owner.ID, &dto.CreateLinkRequest{
			Title: "Blog", URL: "https://blog.example.com", Position: 1,
		})
		require.NoError(t, err)
		_, err = svc.Create(owner.ID, &dto.CreateLinkRequest{
			Title: "Shop", URL: "https://shop.example.com", Position: 0,
		})
		require.NoError(t, err)

		links, err := svc.List(owner.ID)
		require.NoError(t, err)
		require.Len(t, links, 2)
		assert.Equal(t, "Shop", links[0].Title)
		assert.Equal(t, "Blog", links[1].Title)
	})

	t.Run("ListEnabledFiltersDisabled", func(t *testing.T) {
		hidden, err := svc.Create(owner.ID, &dto.CreateLinkRequest{
			Title: "Hidden", URL: "https://hidden.example.com", Position: 9, Enabled: boolPtr(false),
		})
		require.NoError(t, err)

		enabled, err := svc.ListEnabled(owner.ID)
		require.NoError(t, err)
		for _, l := range enabled {
			assert.NotEqual(t, hidden.ID, l.ID)
		}

		all, err := svc.List(owner.ID)
		require.NoError(t, err)
		assert.Len(t, all, len(enabled)+1)
	})

	t.Run("UpdateScopedToOwner", func(t *testing.T) {
		links, err := svc.List(owner.ID)
		require.NoError(t, err)
		target := links[0]

		_, err = svc.Update(other.ID, target.ID, &dto.UpdateLinkRequest{Title: strPtr("stolen")})
		assert.ErrorIs(t, err, services.ErrLinkNotFound)

		updated, err := svc.Update(owner.ID, target.ID, &dto.UpdateLinkRequest{Title: strPtr("Store")})
		require.NoError(t, err)
		assert.Equal(t, "Store", updated.Title)
		assert.Equal(t, target.URL, updated.URL)
	})

	t.Run("Reorder", func(t *testing.T) {
		db := testutil.NewTestDB(t)
		svc := services.NewLinkService(db)
		p := testutil.CreateProfile(t, db, "reorder", "reorder.user")

		l1 := testutil.CreateLink(t, db, p.ID, "one", 0)
		l2 := testutil.CreateLink(t, db, p.ID, "two", 1)
		l3 := testutil.CreateLink(t, db, p.ID, "three", 2)
		omitted := testutil.CreateLink(t, db, p.ID, "omitted", 7)

		require.NoError(t, svc.Reorder(p.ID, []uuid.UUID{l2.ID, l1.ID, l3.ID}))

		positions := map[string]int{}
		var links []models.Link
		require.NoError(t, db.Where("profile_id = ?", p.ID).Find(&links).Error)
		for _, l := range links {
			positions[l.Title] = l.Position
		}
		assert.Equal(t, 0, positions["two"])
		assert.Equal(t, 1, positions["one"])
		assert.Equal(t, 2, positions["three"])
		// Links left out of the reorder list keep their position.
		assert.Equal(t, 7, positions["omitted"])
		_ = omitted
	})

	t.Run("ReorderIgnoresForeignLinks", func(t *testing.T) {
		foreign := testutil.CreateLink(t, db, other.ID, "foreign", 5)
		require.NoError(t, svc.Reorder(owner.ID, []uuid.UUID{foreign.ID}))

		var reloaded models.Link
		require.NoError(t, db.First(&reloaded, "id = ?", foreign.ID).Error)
		assert.Equal(t, 5, reloaded.Position)
	})

	t.Run("Delete", func(t *testing.T) {
		links, err := svc.List(owner.ID)
		require.NoError(t, err)
		target := links[0]

		err = svc.Delete(other.ID, target.ID)
		assert.ErrorIs(t, err, services.ErrLinkNotFound)

		require.NoError(t, svc.Delete(owner.ID, target.ID))
		err = svc.Delete(owner.ID, target.ID)
		assert.ErrorIs(t, err, services.ErrLinkNotFound)
	})
}
