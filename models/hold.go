package models

import "time"

// SlotHold reserves an interval for a limited time between a passed
// availability check and the matching create call. Holds are advisory: the
// calendar itself stays the source of truth at creation time.
type SlotHold struct {
	Key       string    `json:"key"`   // canonical interval key
	Token     string    `json:"token"` // reservation token bound to the hold
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

// Expired reports whether the hold has lapsed at the given instant.
func (h SlotHold) Expired(now time.Time) bool {
	return !now.Before(h.ExpiresAt)
}
