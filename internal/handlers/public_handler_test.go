package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cardtaphq/cardtap-backend/internal/config"
	"github.com/cardtaphq/cardtap-backend/internal/dto"
	"github.com/cardtaphq/cardtap-backend/internal/handlers"
	"github.com/cardtaphq/cardtap-backend/internal/models"
	"github.com/cardtaphq/cardtap-backend/internal/services"
	"github.com/cardtaphq/cardtap-backend/internal/testutil"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newPublicApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db := testutil.NewTestDB(t)

	cfg := &config.Config{PublicBaseURL: "https://cardtap.test"}
	profileService := services.NewProfileService(db)
	linkService := services.NewLinkService(db)
	eventService := services.NewEventService(db, nil)
	h := handlers.NewPublicHandler(cfg, profileService, linkService, eventService)

	app := fiber.New()
	app.Get("/api/public/profile/:username", h.GetProfile)
	app.Get("/api/public/links/:profileId", h.GetLinks)
	app.Get("/api/qr/:username", h.QRCode)
	app.Get("/api/vcard/:username", h.VCard)
	app.Post("/api/track/link-click", h.TrackLinkClick)
	app.Post("/api/track/event", h.TrackEvent)
	return app, db
}

func TestPublicProfileRecordsView(t *testing.T) {
	app, db := newPublicApp(t)
	testutil.CreateProfile(t, db, "user-a", "jane.doe")

	req := httptest.NewRequest(http.MethodGet, "/api/public/profile/jane.doe?utm_source=qr&utm_campaign=launch", nil)
	req.Header.Set("Referer", "https://linkedin.com")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"jane.doe"`)

	var events []models.Event
	require.NoError(t, db.Where("profile_id = ?", "user-a").Find(&events).Error)
	require.Len(t, events, 1)
	assert.Equal(t, models.EventProfileView, events[0].EventType)
	assert.Equal(t, "https://linkedin.com", events[0].Referrer)
	assert.Contains(t, string(events[0].UTM), `"source":"qr"`)
	assert.Contains(t, string(events[0].UTM), `"campaign":"launch"`)
}

func TestPublicProfileHidesPrivate(t *testing.T) {
	app, db := newPublicApp(t)
	p := testutil.CreateProfile(t, db, "user-b", "private.person")
	require.NoError(t, db.Model(p).Update("is_public", false).Error)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/public/profile/private.person", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/public/profile/no.such.user", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var events int64
	require.NoError(t, db.Model(&models.Event{}).Count(&events).Error)
	assert.Zero(t, events)
}

func TestPublicLinksOnlyEnabled(t *testing.T) {
	app, db := newPublicApp(t)
	p := testutil.CreateProfile(t, db, "user-c", "linker")
	testutil.CreateLink(t, db, p.ID, "visible", 0)
	hidden := testutil.CreateLink(t, db, p.ID, "hidden", 1)
	require.NoError(t, db.Model(hidden).Update("enabled", false).Error)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/public/links/user-c", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var links []models.Link
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&links))
	require.Len(t, links, 1)
	assert.Equal(t, "visible", links[0].Title)
}

func TestQRCodeEncodesProfileURL(t *testing.T) {
	app, db := newPublicApp(t)
	testutil.CreateProfile(t, db, "user-d", "scanme")

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/qr/scanme", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var qr dto.QRCodeResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&qr))
	assert.Equal(t, "https://cardtap.test/@scanme", qr.ProfileURL)
	assert.True(t, strings.HasPrefix(qr.QRCode, "data:image/png;base64,"))
	assert.Greater(t, len(qr.QRCode), len("data:image/png;base64,"))
}

func TestVCardAttachment(t *testing.T) {
	app, db := newPublicApp(t)
	p := testutil.CreateProfile(t, db, "user-e", "cardholder")
	require.NoError(t, db.Model(p).Updates(map[string]interface{}{
		"display_name": "Card Holder",
		"email":        "card@example.com",
	}).Error)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/vcard/cardholder", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/vcard", resp.Header.Get("Content-Type"))
	assert.Equal(t, `attachment; filename="cardholder.vcf"`, resp.Header.Get("Content-Disposition"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	text := string(body)
	assert.True(t, strings.HasPrefix(text, "BEGIN:VCARD\nVERSION:3.0"))
	assert.True(t, strings.HasSuffix(text, "END:VCARD"))
	assert.Contains(t, text, "FN:Card Holder")
	assert.Contains(t, text, "EMAIL:card@example.com")
	assert.Contains(t, text, "URL:https://cardtap.test/@cardholder")
}

func TestTrackLinkClick(t *testing.T) {
	app, db := newPublicApp(t)
	p := testutil.CreateProfile(t, db, "user-f", "tracked")
	l := testutil.CreateLink(t, db, p.ID, "clicky", 0)

	payload, err := json.Marshal(dto.TrackLinkClickRequest{
		LinkID:    l.ID,
		ProfileID: p.ID,
		UTM:       &dto.UTMParams{Source: "newsletter"},
		Referrer:  "https://mail.example.com",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/track/link-click", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var events []models.Event
	require.NoError(t, db.Where("profile_id = ?", p.ID).Find(&events).Error)
	require.Len(t, events, 1)
	assert.Equal(t, models.EventLinkClick, events[0].EventType)
	require.NotNil(t, events[0].LinkID)
	assert.Equal(t, l.ID, *events[0].LinkID)
	assert.Contains(t, string(events[0].UTM), `"source":"newsletter"`)
}

func TestTrackEventValidatesType(t *testing.T) {
	app, db := newPublicApp(t)
	p := testutil.CreateProfile(t, db, "user-g", "scanner")

	body := []byte(`{"profileId":"user-g","eventType":"bogus_type"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/track/event", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body = []byte(`{"profileId":"user-g","eventType":"nfc_scan"}`)
	req = httptest.NewRequest(http.MethodPost, "/api/track/event", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var events []models.Event
	require.NoError(t, db.Where("profile_id = ?", p.ID).Find(&events).Error)
	require.Len(t, events, 1)
	assert.Equal(t, models.EventNFCScan, events[0].EventType)
}
