package app

import (
	"context"
	"fmt"

	"github.com/Akash9874/Medbook/internal/clock"
	"github.com/Akash9874/Medbook/internal/domain"
)

type ReservationRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetReservationForUpdate(ctx context.Context, reservationID string) (domain.Reservation, error)
	UpdateReservation(ctx context.Context, res domain.Reservation) error
	MarkSlotAvailable(ctx context.Context, slotID string, available bool) error
	AppendEvent(ctx context.Context, event domain.ReservationEvent) error
}

// ReservationService drives the reservation state machine:
// PENDING -> CONFIRMED | FAILED | CANCELLED, CONFIRMED -> CANCELLED.
// Transitions run under an ordinary blocking row lock on the reservation;
// contention there is the owner racing the sweeper, never other slots.
type ReservationService struct {
	repo  ReservationRepository
	clock clock.Clock
}

func NewReservationService(repo ReservationRepository, clk clock.Clock) *ReservationService {
	return &ReservationService{
		repo:  repo,
		clock: clk,
	}
}

type ConfirmInput struct {
	RequesterID   string
	ReservationID string
	Privileged    bool
}

// Confirm finalizes a pending reservation. A reservation past its deadline
// is failed and its slot released as part of this very call, so the caller
// learns about expiry the moment they try to act on it.
func (s *ReservationService) Confirm(ctx context.Context, in ConfirmInput) (domain.Reservation, error) {
	now := s.clock.Now()

	var result domain.Reservation
	var expired bool

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		res, err := s.repo.GetReservationForUpdate(txCtx, in.ReservationID)
		if err != nil {
			return err
		}
		if !in.Privileged && res.RequesterID != in.RequesterID {
			// Not-owned reads as not-found so reservation ids cannot be probed.
			return domain.ErrReservationNotFound
		}
		if res.Status != domain.ReservationStatusPending {
			return fmt.Errorf("%w: %s", domain.ErrInvalidState, res.Status)
		}

		if res.ExpiresAt == nil || !now.Before(*res.ExpiresAt) {
			// The expiry transition must commit even though the confirm fails.
			res.Status = domain.ReservationStatusFailed
			res.ExpiresAt = nil
			res.UpdatedAt = now
			if err := s.repo.UpdateReservation(txCtx, res); err != nil {
				return err
			}
			if err := s.repo.MarkSlotAvailable(txCtx, res.SlotID, true); err != nil {
				return err
			}
			if err := s.repo.AppendEvent(txCtx, newReservationEvent(res, domain.EventReservationExpired)); err != nil {
				return err
			}
			expired = true
			return nil
		}

		res.Status = domain.ReservationStatusConfirmed
		res.ConfirmedAt = &now
		res.ExpiresAt = nil
		res.UpdatedAt = now
		if err := s.repo.UpdateReservation(txCtx, res); err != nil {
			return err
		}
		if err := s.repo.AppendEvent(txCtx, newReservationEvent(res, domain.EventReservationConfirmed)); err != nil {
			return err
		}

		result = res
		return nil
	})
	if err != nil {
		return domain.Reservation{}, err
	}
	if expired {
		reservationTransitions.WithLabelValues("expired").Inc()
		return domain.Reservation{}, domain.ErrReservationExpired
	}
	reservationTransitions.WithLabelValues("confirmed").Inc()
	return result, nil
}

type CancelInput struct {
	RequesterID   string
	ReservationID string
	Privileged    bool
}

// Cancel releases a pending or confirmed reservation and restores the
// slot's availability in the same transaction.
func (s *ReservationService) Cancel(ctx context.Context, in CancelInput) (domain.Reservation, error) {
	now := s.clock.Now()

	var result domain.Reservation

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		res, err := s.repo.GetReservationForUpdate(txCtx, in.ReservationID)
		if err != nil {
			return err
		}
		if !in.Privileged && res.RequesterID != in.RequesterID {
			return domain.ErrReservationNotFound
		}
		if !res.Status.Active() {
			return fmt.Errorf("%w: %s", domain.ErrInvalidState, res.Status)
		}

		res.Status = domain.ReservationStatusCancelled
		res.CancelledAt = &now
		res.ExpiresAt = nil
		res.UpdatedAt = now
		if err := s.repo.UpdateReservation(txCtx, res); err != nil {
			return err
		}
		if err := s.repo.MarkSlotAvailable(txCtx, res.SlotID, true); err != nil {
			return err
		}
		if err := s.repo.AppendEvent(txCtx, newReservationEvent(res, domain.EventReservationCancelled)); err != nil {
			return err
		}

		result = res
		return nil
	})
	if err != nil {
		return domain.Reservation{}, err
	}
	reservationTransitions.WithLabelValues("cancelled").Inc()
	return result, nil
}
