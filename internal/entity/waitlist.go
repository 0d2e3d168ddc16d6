package entity

import (
	"time"
)

// WaitlistEntry represents one registered (email, username) pair.
// Entries are created exactly once and never updated or deleted.
type WaitlistEntry struct {
	Id             string    `db:"id" json:"id"`
	Email          string    `db:"email" json:"email"`
	Username       string    `db:"username" json:"username"`
	WaitlistNumber int       `db:"waitlist_number" json:"waitlistNumber"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
}
