package app

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Akash9874/Medbook/internal/clock"
	"github.com/Akash9874/Medbook/internal/domain"
)

type BookingRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	LockAvailableSlot(ctx context.Context, slotID string) (domain.Slot, error)
	CreateReservation(ctx context.Context, res domain.Reservation) error
	MarkSlotAvailable(ctx context.Context, slotID string, available bool) error
	AppendEvent(ctx context.Context, event domain.ReservationEvent) error
}

// BookingService owns the lock-and-reserve protocol: an exclusive,
// non-waiting lock on the slot row and the reservation insert commit or
// roll back together.
type BookingService struct {
	repo          BookingRepository
	clock         clock.Clock
	confirmWindow time.Duration
}

const defaultConfirmWindow = 2 * time.Minute

func NewBookingService(repo BookingRepository, clk clock.Clock, opts ...BookingServiceOption) *BookingService {
	svc := &BookingService{
		repo:          repo,
		clock:         clk,
		confirmWindow: defaultConfirmWindow,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type BookingServiceOption func(*BookingService)

// WithConfirmWindow overrides how long a pending reservation may wait for
// confirmation before it expires.
func WithConfirmWindow(d time.Duration) BookingServiceOption {
	return func(s *BookingService) {
		if d > 0 {
			s.confirmWindow = d
		}
	}
}

type ReserveInput struct {
	RequesterID string
	SlotID      string
}

// Reserve attempts to claim the slot for the requester. It fails fast:
// a slot locked by a concurrent attempt yields ErrSlotContended rather
// than waiting for the other transaction to finish.
func (s *BookingService) Reserve(ctx context.Context, in ReserveInput) (domain.Reservation, error) {
	if in.RequesterID == "" || in.SlotID == "" {
		return domain.Reservation{}, domain.ErrInvalidID
	}

	now := s.clock.Now()
	var result domain.Reservation

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		slot, err := s.repo.LockAvailableSlot(txCtx, in.SlotID)
		if err != nil {
			return err
		}

		expiresAt := now.Add(s.confirmWindow)
		res := domain.Reservation{
			ID:          uuid.NewString(),
			SlotID:      slot.ID,
			ProviderID:  slot.ProviderID,
			RequesterID: in.RequesterID,
			Status:      domain.ReservationStatusPending,
			ExpiresAt:   &expiresAt,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		if err := s.repo.CreateReservation(txCtx, res); err != nil {
			return err
		}
		if err := s.repo.MarkSlotAvailable(txCtx, slot.ID, false); err != nil {
			return err
		}
		if err := s.repo.AppendEvent(txCtx, newReservationEvent(res, domain.EventReservationReserved)); err != nil {
			return err
		}

		result = res
		return nil
	})
	reserveOutcomes.WithLabelValues(reserveOutcome(err)).Inc()
	if err != nil {
		return domain.Reservation{}, err
	}
	return result, nil
}
