package domain

import "time"

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "PENDING"
	ReservationStatusConfirmed ReservationStatus = "CONFIRMED"
	ReservationStatusFailed    ReservationStatus = "FAILED"
	ReservationStatusCancelled ReservationStatus = "CANCELLED"
)

// Active reports whether the reservation still occupies its slot. The store
// enforces at most one active reservation per slot.
func (s ReservationStatus) Active() bool {
	return s == ReservationStatusPending || s == ReservationStatusConfirmed
}

// Reservation is a requester's claim on a slot. ExpiresAt is set only while
// PENDING and cleared on confirmation; rows are never deleted by the engine,
// terminal states carry their timestamps instead.
type Reservation struct {
	ID          string
	SlotID      string
	ProviderID  string
	RequesterID string
	Status      ReservationStatus
	ExpiresAt   *time.Time
	ConfirmedAt *time.Time
	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
