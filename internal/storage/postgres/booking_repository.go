package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Akash9874/Medbook/internal/domain"
)

type BookingRepository struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

func (r *BookingRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

// LockAvailableSlot acquires an exclusive, non-waiting lock on the slot row
// filtered to available = true. A row held by a concurrent transaction
// surfaces as ErrSlotContended instead of blocking; a row filtered out is
// probed once more to tell "never existed" from "already taken".
func (r *BookingRepository) LockAvailableSlot(ctx context.Context, slotID string) (domain.Slot, error) {
	const query = `
SELECT id, provider_id, starts_at, ends_at, available, created_at
FROM slots
WHERE id = $1 AND available
FOR UPDATE NOWAIT`

	var s domain.Slot
	err := q(ctx, r.pool).QueryRow(ctx, query, slotID).
		Scan(&s.ID, &s.ProviderID, &s.StartsAt, &s.EndsAt, &s.Available, &s.CreatedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Slot{}, domain.ErrInvalidID
		}
		if isLockNotAvailable(err) {
			return domain.Slot{}, domain.ErrSlotContended
		}
		if errors.Is(err, pgx.ErrNoRows) {
			var exists bool
			if probeErr := q(ctx, r.pool).QueryRow(ctx,
				`SELECT EXISTS (SELECT 1 FROM slots WHERE id = $1)`, slotID,
			).Scan(&exists); probeErr != nil {
				return domain.Slot{}, fmt.Errorf("probe slot: %w", probeErr)
			}
			if !exists {
				return domain.Slot{}, domain.ErrSlotNotFound
			}
			return domain.Slot{}, domain.ErrSlotUnavailable
		}
		return domain.Slot{}, fmt.Errorf("lock slot: %w", err)
	}
	return s, nil
}

func (r *BookingRepository) CreateReservation(ctx context.Context, res domain.Reservation) error {
	const stmt = `
INSERT INTO reservations (id, slot_id, provider_id, requester_id, status, expires_at, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := q(ctx, r.pool).Exec(ctx, stmt,
		res.ID,
		res.SlotID,
		res.ProviderID,
		res.RequesterID,
		res.Status,
		res.ExpiresAt,
		res.CreatedAt,
		res.UpdatedAt,
	)
	if err != nil {
		// The partial unique index over active reservations fires here when
		// a committed reservation already owns the slot.
		if isUniqueViolation(err) {
			return domain.ErrSlotAlreadyReserved
		}
		if isForeignKeyViolation(err) {
			return domain.ErrSlotNotFound
		}
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create reservation: %w", err)
	}
	return nil
}

func (r *BookingRepository) MarkSlotAvailable(ctx context.Context, slotID string, available bool) error {
	tag, err := q(ctx, r.pool).Exec(ctx,
		`UPDATE slots SET available = $2 WHERE id = $1`, slotID, available)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("mark slot availability: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSlotNotFound
	}
	return nil
}

func (r *BookingRepository) AppendEvent(ctx context.Context, event domain.ReservationEvent) error {
	return appendEvent(ctx, r.pool, event)
}
