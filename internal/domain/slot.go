package domain

import "time"

// Slot is a bookable time window for one provider. The half-open interval
// [StartsAt, EndsAt) and the (provider, starts_at) pair are both enforced
// by the store. Available is toggled only by the reservation engine.
type Slot struct {
	ID         string
	ProviderID string
	StartsAt   time.Time
	EndsAt     time.Time
	Available  bool
	CreatedAt  time.Time
}
