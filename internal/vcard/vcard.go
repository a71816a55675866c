// Package vcard renders vCard 3.0 contact cards from profile fields.
package vcard

import (
	"strings"

	"github.com/cardtaphq/cardtap-backend/internal/models"
)

// Build renders the profile as a vCard 3.0 string. Field order is fixed
// (FN, TITLE, EMAIL, TEL, ADR, URL, NOTE) and empty optional fields render as
// empty values rather than omitted lines, so the output shape is stable.
func Build(p *models.Profile, profileURL string) string {
	lines := []string{
		"BEGIN:VCARD",
		"VERSION:3.0",
		"FN:" + p.DisplayName,
		"TITLE:" + p.Title,
		"EMAIL:" + p.Email,
		"TEL:" + p.Phone,
		"ADR:;;" + p.Address + ";;;;",
		"URL:" + profileURL,
		"NOTE:" + p.Bio,
		"END:VCARD",
	}
	return strings.Join(lines, "\n")
}
