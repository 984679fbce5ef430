package app

import (
	"context"
	"time"

	"github.com/Akash9874/Medbook/internal/clock"
	"github.com/Akash9874/Medbook/internal/domain"
)

type SweepRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	ListExpiredPendingForUpdate(ctx context.Context, now time.Time) ([]domain.Reservation, error)
	FailReservations(ctx context.Context, reservationIDs []string, now time.Time) error
	ReleaseSlots(ctx context.Context, slotIDs []string) error
	AppendEvent(ctx context.Context, event domain.ReservationEvent) error
}

// SweepService reclaims slots held by pending reservations whose deadline
// has passed. PENDING plus an elapsed expires_at is a stable condition, so
// a row skipped in one pass (locked by a concurrent confirm) is simply
// found again by the next one.
type SweepService struct {
	repo  SweepRepository
	clock clock.Clock
}

func NewSweepService(repo SweepRepository, clk clock.Clock) *SweepService {
	return &SweepService{
		repo:  repo,
		clock: clk,
	}
}

// SweepExpired fails every expired pending reservation and restores the
// corresponding slots, returning how many reservations were transitioned.
// It is idempotent and safe to invoke concurrently with itself and with
// reserve/confirm/cancel.
func (s *SweepService) SweepExpired(ctx context.Context) (int, error) {
	now := s.clock.Now()
	count := 0

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		expired, err := s.repo.ListExpiredPendingForUpdate(txCtx, now)
		if err != nil {
			return err
		}
		if len(expired) == 0 {
			return nil
		}

		reservationIDs := make([]string, 0, len(expired))
		slotIDs := make([]string, 0, len(expired))
		for _, res := range expired {
			reservationIDs = append(reservationIDs, res.ID)
			slotIDs = append(slotIDs, res.SlotID)
		}

		if err := s.repo.FailReservations(txCtx, reservationIDs, now); err != nil {
			return err
		}
		if err := s.repo.ReleaseSlots(txCtx, slotIDs); err != nil {
			return err
		}
		for _, res := range expired {
			res.Status = domain.ReservationStatusFailed
			res.ExpiresAt = nil
			if err := s.repo.AppendEvent(txCtx, newReservationEvent(res, domain.EventReservationExpired)); err != nil {
				return err
			}
		}

		count = len(expired)
		return nil
	})
	if err != nil {
		return 0, err
	}
	sweptReservations.Add(float64(count))
	return count, nil
}
