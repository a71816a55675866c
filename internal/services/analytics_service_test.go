package services_test

import (
	"testing"
	"time"

	"github.com/cardtaphq/cardtap-backend/internal/models"
	"github.com/cardtaphq/cardtap-backend/internal/services"
	"github.com/cardtaphq/cardtap-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyticsService(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := services.NewAnalyticsService(db)

	p := testutil.CreateProfile(t, db, "analytics", "analytics.user")

	// Anchor timestamps at UTC noon so day boundaries stay unambiguous.
	now := time.Now().UTC()
	day0 := time.Date(now.Year(), now.Month(), now.Day(), 12, 0, 0, 0, time.UTC)
	day2 := day0.AddDate(0, 0, -2)
	day9 := day0.AddDate(0, 0, -9)

	l1 := testutil.CreateLink(t, db, p.ID, "portfolio", 0)
	l2 := testutil.CreateLink(t, db, p.ID, "newsletter", 1)
	l3 := testutil.CreateLink(t, db, p.ID, "shop", 2)

	// Views: 2 today, 3 two days ago, 4 outside the 7-day window.
	for i := 0; i < 2; i++ {
		testutil.CreateEvent(t, db, p.ID, models.EventProfileView, nil, day0)
	}
	for i := 0; i < 3; i++ {
		testutil.CreateEvent(t, db, p.ID, models.EventProfileView, nil, day2)
	}
	for i := 0; i < 4; i++ {
		testutil.CreateEvent(t, db, p.ID, models.EventProfileView, nil, day9)
	}

	// Clicks: l1 x3, l2 x1, l3 x2 within the window.
	for i := 0; i < 3; i++ {
		testutil.CreateEvent(t, db, p.ID, models.EventLinkClick, &l1.ID, day2)
	}
	testutil.CreateEvent(t, db, p.ID, models.EventLinkClick, &l2.ID, day0)
	for i := 0; i < 2; i++ {
		testutil.CreateEvent(t, db, p.ID, models.EventLinkClick, &l3.ID, day0)
	}

	testutil.CreateEvent(t, db, p.ID, models.EventNFCScan, nil, day0)
	testutil.CreateEvent(t, db, p.ID, models.EventContactSave, nil, day0)
	testutil.CreateEvent(t, db, p.ID, models.EventContactSave, nil, day2)
	testutil.CreateEvent(t, db, p.ID, models.EventWalletAdd, nil, day0)

	// The shop link is deleted after its clicks were recorded.
	require.NoError(t, db.Delete(&models.Link{}, "id = ?", l3.ID).Error)

	t.Run("WindowedTotals", func(t *testing.T) {
		got, err := svc.GetAnalytics(p.ID, 7)
		require.NoError(t, err)
		assert.EqualValues(t, 5, got.ProfileViews)
		assert.EqualValues(t, 6, got.LinkClicks)
		assert.EqualValues(t, 1, got.NFCScans)
		assert.EqualValues(t, 2, got.ContactsSaved)
	})

	t.Run("TotalsMonotonicInWindow", func(t *testing.T) {
		week, err := svc.GetAnalytics(p.ID, 7)
		require.NoError(t, err)
		month, err := svc.GetAnalytics(p.ID, 30)
		require.NoError(t, err)
		assert.EqualValues(t, 9, month.ProfileViews)
		assert.GreaterOrEqual(t, month.ProfileViews, week.ProfileViews)
		assert.GreaterOrEqual(t, month.LinkClicks, week.LinkClicks)
	})

	t.Run("TopLinksOrderedWithDeletedFallback", func(t *testing.T) {
		got, err := svc.GetAnalytics(p.ID, 7)
		require.NoError(t, err)
		require.Len(t, got.TopLinks, 3)

		assert.Equal(t, "portfolio", got.TopLinks[0].Title)
		assert.EqualValues(t, 3, got.TopLinks[0].Clicks)

		// Clicks on a since-deleted link keep counting under 'Unknown'.
		assert.Equal(t, "Unknown", got.TopLinks[1].Title)
		assert.EqualValues(t, 2, got.TopLinks[1].Clicks)

		assert.Equal(t, "newsletter", got.TopLinks[2].Title)
		assert.EqualValues(t, 1, got.TopLinks[2].Clicks)

		// Descending by click count throughout.
		for i := 1; i < len(got.TopLinks); i++ {
			assert.LessOrEqual(t, got.TopLinks[i].Clicks, got.TopLinks[i-1].Clicks)
		}
	})

	t.Run("DailyViewsSkipSilentDays", func(t *testing.T) {
		got, err := svc.GetAnalytics(p.ID, 7)
		require.NoError(t, err)
		require.Len(t, got.DailyViews, 2)

		assert.Equal(t, day2.Format("2006-01-02"), got.DailyViews[0].Date)
		assert.EqualValues(t, 3, got.DailyViews[0].Views)
		assert.Equal(t, day0.Format("2006-01-02"), got.DailyViews[1].Date)
		assert.EqualValues(t, 2, got.DailyViews[1].Views)
	})

	t.Run("EmptyWindow", func(t *testing.T) {
		quiet := testutil.CreateProfile(t, db, "quiet", "quiet.user")
		got, err := svc.GetAnalytics(quiet.ID, 7)
		require.NoError(t, err)
		assert.Zero(t, got.ProfileViews)
		assert.Zero(t, got.LinkClicks)
		assert.Zero(t, got.NFCScans)
		assert.Zero(t, got.ContactsSaved)
		assert.NotNil(t, got.TopLinks)
		assert.Empty(t, got.TopLinks)
		assert.NotNil(t, got.DailyViews)
		assert.Empty(t, got.DailyViews)
	})
}
