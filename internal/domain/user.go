package domain

import "time"

// User represents a registered account in the marketplace.
// Emails are stored lower-cased so uniqueness is case-insensitive.
type User struct {
	ID        string
	Name      string
	Email     string
	CreatedAt time.Time
}
