package domain

import "time"

type EventType string

const (
	EventReservationReserved  EventType = "reservation.reserved"
	EventReservationConfirmed EventType = "reservation.confirmed"
	EventReservationCancelled EventType = "reservation.cancelled"
	EventReservationExpired   EventType = "reservation.expired"
)

// ReservationEvent is an outbox record written in the same transaction as
// the transition it describes. A dispatcher hands it to downstream
// consumers; the engine itself never delivers notifications.
type ReservationEvent struct {
	ID            int64
	ReservationID string
	Type          EventType
	Payload       map[string]any
	CreatedAt     time.Time
}
