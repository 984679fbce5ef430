package domain

import "errors"

var (
	ErrSlotNotFound         = errors.New("slot not found")
	ErrSlotUnavailable      = errors.New("slot unavailable")
	ErrSlotContended        = errors.New("slot locked by a concurrent request")
	ErrSlotAlreadyReserved  = errors.New("slot already has an active reservation")
	ErrSlotExists           = errors.New("slot already exists")
	ErrReservationNotFound  = errors.New("reservation not found")
	ErrReservationExpired   = errors.New("reservation expired")
	ErrInvalidState         = errors.New("invalid reservation state")
	ErrProviderNotFound     = errors.New("provider not found")
	ErrProviderNameRequired = errors.New("provider name required")
	ErrInvalidInterval      = errors.New("invalid slot interval")
	ErrInvalidID            = errors.New("invalid id")
)
