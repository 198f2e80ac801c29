package domain

import "time"

type Client struct {
	ID         string
	Name       string
	SecretHash string // argon2 encoded, empty for public clients
	Protected  bool   // If true, client cannot be deleted
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Confidential reports whether the client was registered with a secret.
func (c Client) Confidential() bool {
	return c.SecretHash != ""
}
