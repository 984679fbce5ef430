package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Akash9874/Medbook/internal/domain"
)

type SweepRepository struct {
	pool *pgxpool.Pool
}

func NewSweepRepository(pool *pgxpool.Pool) *SweepRepository {
	return &SweepRepository{pool: pool}
}

func (r *SweepRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

// ListExpiredPendingForUpdate locks every stale pending reservation,
// skipping rows currently locked by a concurrent confirm. A skipped row is
// still PENDING and expired afterwards (or terminal, and no longer our
// business), so the next pass resolves it either way.
func (r *SweepRepository) ListExpiredPendingForUpdate(ctx context.Context, now time.Time) ([]domain.Reservation, error) {
	const query = `
SELECT id, slot_id, provider_id, requester_id, status, expires_at, confirmed_at, cancelled_at, created_at, updated_at
FROM reservations
WHERE status = 'PENDING' AND expires_at < $1
ORDER BY id
FOR UPDATE SKIP LOCKED`

	rows, err := q(ctx, r.pool).Query(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("list expired pending: %w", err)
	}
	defer rows.Close()

	var out []domain.Reservation
	for rows.Next() {
		var res domain.Reservation
		if err := rows.Scan(
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
		); err != nil {
			return nil, fmt.Errorf("scan expired reservation: %w", err)
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expired reservations: %w", err)
	}
	return out, nil
}

func (r *SweepRepository) FailReservations(ctx context.Context, reservationIDs []string, now time.Time) error {
	if len(reservationIDs) == 0 {
		return nil
	}
	const stmt = `
UPDATE reservations
SET status = 'FAILED', expires_at = NULL, updated_at = $2
WHERE id = ANY($1)`

	if _, err := q(ctx, r.pool).Exec(ctx, stmt, reservationIDs, now); err != nil {
		return fmt.Errorf("fail reservations: %w", err)
	}
	return nil
}

func (r *SweepRepository) ReleaseSlots(ctx context.Context, slotIDs []string) error {
	if len(slotIDs) == 0 {
		return nil
	}
	if _, err := q(ctx, r.pool).Exec(ctx,
		`UPDATE slots SET available = TRUE WHERE id = ANY($1)`, slotIDs); err != nil {
		return fmt.Errorf("release slots: %w", err)
	}
	return nil
}

func (r *SweepRepository) AppendEvent(ctx context.Context, event domain.ReservationEvent) error {
	return appendEvent(ctx, r.pool, event)
}
