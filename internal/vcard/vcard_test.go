package vcard

import (
	"strings"
	"testing"

	"github.com/cardtaphq/cardtap-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFullProfile(t *testing.T) {
	p := &models.Profile{
		DisplayName: "Jane Doe",
		Title:       "Engineer",
		Email:       "jane@example.com",
		Phone:       "+15550100",
		Address:     "1 Main St",
		Bio:         "Builder of things",
	}

	got := Build(p, "https://cardtap.app/@jane.doe")
	lines := strings.Split(got, "\n")

	require.Len(t, lines, 10)
	assert.Equal(t, "BEGIN:VCARD", lines[0])
	assert.Equal(t, "VERSION:3.0", lines[1])
	assert.Equal(t, "FN:Jane Doe", lines[2])
	assert.Equal(t, "TITLE:Engineer", lines[3])
	assert.Equal(t, "EMAIL:jane@example.com", lines[4])
	assert.Equal(t, "TEL:+15550100", lines[5])
	assert.Equal(t, "ADR:;;1 Main St;;;;", lines[6])
	assert.Equal(t, "URL:https://cardtap.app/@jane.doe", lines[7])
	assert.Equal(t, "NOTE:Builder of things", lines[8])
	assert.Equal(t, "END:VCARD", lines[9])
}

func TestBuildEmptyFieldsRenderAsEmptyValues(t *testing.T) {
	got := Build(&models.Profile{}, "https://cardtap.app/@ghost")
	lines := strings.Split(got, "\n")

	// Empty optional fields keep their lines with empty values.
	require.Len(t, lines, 10)
	assert.Equal(t, "FN:", lines[2])
	assert.Equal(t, "TITLE:", lines[3])
	assert.Equal(t, "EMAIL:", lines[4])
	assert.Equal(t, "TEL:", lines[5])
	assert.Equal(t, "ADR:;;;;;;", lines[6])
	assert.Equal(t, "NOTE:", lines[8])

	assert.True(t, strings.HasPrefix(got, "BEGIN:VCARD\nVERSION:3.0"))
	assert.True(t, strings.HasSuffix(got, "END:VCARD"))
}
