package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Akash9874/Medbook/internal/domain"
)

type ReservationRepository struct {
	pool *pgxpool.Pool
}

func NewReservationRepository(pool *pgxpool.Pool) *ReservationRepository {
	return &ReservationRepository{pool: pool}
}

func (r *ReservationRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

// GetReservationForUpdate takes an ordinary blocking row lock on the
// reservation. Confirm, cancel and the sweeper all serialize here, so
// exactly one of them settles a given reservation.
func (r *ReservationRepository) GetReservationForUpdate(ctx context.Context, reservationID string) (domain.Reservation, error) {
	const query = `
SELECT id, slot_id, provider_id, requester_id, status, expires_at, confirmed_at, cancelled_at, created_at, updated_at
FROM reservations
WHERE id = $1
FOR UPDATE`

	var res domain.Reservation
	err := q(ctx, r.pool).QueryRow(ctx, query, reservationID).Scan(
		&res.ID,
		&res.SlotID,
		&res.ProviderID,
		&res.RequesterID,
		&res.Status,
		&res.ExpiresAt,
		&res.ConfirmedAt,
		&res.CancelledAt,
		&res.CreatedAt,
		&res.UpdatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Reservation{}, domain.ErrInvalidID
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Reservation{}, domain.ErrReservationNotFound
		}
		return domain.Reservation{}, fmt.Errorf("get reservation for update: %w", err)
	}
	return res, nil
}

func (r *ReservationRepository) UpdateReservation(ctx context.Context, res domain.Reservation) error {
	const stmt = `
UPDATE reservations
SET status = $2, expires_at = $3, confirmed_at = $4, cancelled_at = $5, updated_at = $6
WHERE id = $1`

	tag, err := q(ctx, r.pool).Exec(ctx, stmt,
		res.ID,
		res.Status,
		res.ExpiresAt,
		res.ConfirmedAt,
		res.CancelledAt,
		res.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update reservation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrReservationNotFound
	}
	return nil
}

func (r *ReservationRepository) MarkSlotAvailable(ctx context.Context, slotID string, available bool) error {
	tag, err := q(ctx, r.pool).Exec(ctx,
		`UPDATE slots SET available = $2 WHERE id = $1`, slotID, available)
	if err != nil {
		return fmt.Errorf("mark slot availability: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSlotNotFound
	}
	return nil
}

func (r *ReservationRepository) AppendEvent(ctx context.Context, event domain.ReservationEvent) error {
	return appendEvent(ctx, r.pool, event)
}
