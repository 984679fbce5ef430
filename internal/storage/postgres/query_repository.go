package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Akash9874/Medbook/internal/domain"
)

type QueryRepository struct {
	pool *pgxpool.Pool
}

func NewQueryRepository(pool *pgxpool.Pool) *QueryRepository {
	return &QueryRepository{pool: pool}
}

const reservationColumns = `id, slot_id, provider_id, requester_id, status, expires_at, confirmed_at, cancelled_at, created_at, updated_at`

func (r *QueryRepository) ListReservationsByRequester(ctx context.Context, requesterID string, status *domain.ReservationStatus, limit, offset int) ([]domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE requester_id = $1`
	args := []any{requesterID}
	if status != nil {
		query += ` AND status = $2`
		args = append(args, *status)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("list reservations by requester: %w", err)
	}
	defer rows.Close()
	return scanReservations(rows)
}

func (r *QueryRepository) ListReservationsByProvider(ctx context.Context, providerID string, day time.Time) ([]domain.Reservation, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)

	const query = `
SELECT r.id, r.slot_id, r.provider_id, r.requester_id, r.status, r.expires_at, r.confirmed_at, r.cancelled_at, r.created_at, r.updated_at
FROM reservations r
JOIN slots s ON s.id = r.slot_id
WHERE r.provider_id = $1 AND s.starts_at >= $2 AND s.starts_at < $3
ORDER BY s.starts_at`

	rows, err := r.pool.Query(ctx, query, providerID, dayStart, dayStart.Add(24*time.Hour))
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("list reservations by provider: %w", err)
	}
	defer rows.Close()
	return scanReservations(rows)
}

func (r *QueryRepository) GetReservation(ctx context.Context, reservationID string) (domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`

	var res domain.Reservation
	err := r.pool.QueryRow(ctx, query, reservationID).Scan(
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
		return domain.Reservation{}, fmt.Errorf("get reservation: %w", err)
	}
	return res, nil
}

func scanReservations(rows pgx.Rows) ([]domain.Reservation, error) {
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
			return nil, fmt.Errorf("scan reservation: %w", err)
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reservations: %w", err)
	}
	return out, nil
}
