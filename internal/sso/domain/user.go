package domain

import (
	"strings"
	"time"
)

// User is the principal a token is issued for. Only ID is mandatory; the
// profile fields are whatever the identity store knows about the person.
type User struct {
	ID          string
	Email       string
	DisplayName string
	GivenName   string
	FamilyName  string
	AvatarURL   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// FullName joins the given and family names, trimmed.
func (u User) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(u.GivenName) + " " + strings.TrimSpace(u.FamilyName))
}

// Name picks the display name, falling back to the full name. An empty result
// means the user has no usable name.
func (u User) Name() string {
	if name := strings.TrimSpace(u.DisplayName); name != "" {
		return name
	}
	return u.FullName()
}
