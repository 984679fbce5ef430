package domain

import "time"

// Provider is a practitioner whose schedule is sliced into slots.
type Provider struct {
	ID        string
	Name      string
	Specialty string
	CreatedAt time.Time
}
