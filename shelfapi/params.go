package shelfapi

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

// dateLayouts are the formats accepted for DateCompleted, tried in
// order. Whatever parses is re-emitted as plain YYYY-MM-DD.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
}

// MembershipParams is the optional metadata sent along a membership
// write. Fields left at their zero value are omitted from the outbound
// payload entirely. Omission, not a null, is how "unspecified" travels.
type MembershipParams struct {
	Status        Status
	Rating        int64
	PersonalNotes string
	PlayTimeHours float64
	DateCompleted string
}

func (p MembershipParams) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Status, validation.In(
			StatusOwned, StatusWishlist, StatusPlaying, StatusCompleted, StatusDropped,
		)),
		validation.Field(&p.Rating, validation.Min(int64(0)), validation.Max(int64(10))),
		validation.Field(&p.PlayTimeHours, validation.Min(float64(0))),
	)
}

// payload builds the request body for a membership write. gameID may be
// zero, in which case it's left out (updates address the game in the
// URL instead).
func (p MembershipParams) payload(gameID int64) map[string]interface{} {
	payload := make(map[string]interface{})

	if gameID != 0 {
		payload["game_id"] = gameID
	}
	if p.Status != "" {
		payload["status"] = p.Status
	}
	if p.Rating > 0 {
		payload["rating"] = p.Rating
	}
	if notes := strings.TrimSpace(p.PersonalNotes); notes != "" {
		payload["personal_notes"] = notes
	}
	if p.PlayTimeHours > 0 {
		payload["play_time_hours"] = p.PlayTimeHours
	}
	if date, ok := normalizeDate(p.DateCompleted); ok {
		payload["date_completed"] = date
	}

	return payload
}

// normalizeDate coerces a completion date to calendar-date form. An
// unparseable date is dropped rather than rejected: the server never
// sees it, and the caller isn't told. Known leniency, kept as observed.
func normalizeDate(input string) (string, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, input); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}

// CreateCollectionParams names a new collection.
type CreateCollectionParams struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Public      bool   `json:"is_public"`
}

func (p CreateCollectionParams) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required),
	)
}

// ListGamesParams filters a catalog listing. Zero values mean "don't
// filter".
type ListGamesParams struct {
	Platform string
	Genre    string
	Search   string
}
