package domain

import "time"

// Subscription statuses. Status is active/trial and valid only while EndsAt
// is in the future; the expiry sweep transitions stale rows to expired.
const (
	SubStatusTrial   = "trial"
	SubStatusActive  = "active"
	SubStatusExpired = "expired"
)

// Subscription is a per-chat paid (or trial) plan record.
type Subscription struct {
	ChatID   int64
	Status   string
	Plan     string
	StartsAt time.Time // UTC
	EndsAt   time.Time // UTC
}

// Valid reports whether the subscription entitles the user at nowUTC.
func (s *Subscription) Valid(nowUTC time.Time) bool {
	if s == nil {
		return false
	}
	if s.Status != SubStatusTrial && s.Status != SubStatusActive {
		return false
	}
	return s.EndsAt.After(nowUTC)
}
