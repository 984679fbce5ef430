package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Akash9874/Medbook/internal/domain"
)

type AdminRepository struct {
	pool *pgxpool.Pool
}

func NewAdminRepository(pool *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{pool: pool}
}

func (r *AdminRepository) CreateProvider(ctx context.Context, provider domain.Provider) error {
	const stmt = `
INSERT INTO providers (id, name, specialty, created_at)
VALUES ($1, $2, $3, $4)`

	if _, err := r.pool.Exec(ctx, stmt, provider.ID, provider.Name, provider.Specialty, provider.CreatedAt); err != nil {
		return fmt.Errorf("create provider: %w", err)
	}
	return nil
}

func (r *AdminRepository) ListProviders(ctx context.Context) ([]domain.Provider, error) {
	const query = `SELECT id, name, specialty, created_at FROM providers ORDER BY created_at, id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list providers: %w", err)
	}
	defer rows.Close()

	var out []domain.Provider
	for rows.Next() {
		var p domain.Provider
		if err := rows.Scan(&p.ID, &p.Name, &p.Specialty, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan provider: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate providers: %w", err)
	}
	return out, nil
}

const insertSlotStmt = `
INSERT INTO slots (id, provider_id, starts_at, ends_at, available, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

func (r *AdminRepository) CreateSlot(ctx context.Context, slot domain.Slot) error {
	_, err := r.pool.Exec(ctx, insertSlotStmt,
		slot.ID, slot.ProviderID, slot.StartsAt, slot.EndsAt, slot.Available, slot.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrSlotExists
		}
		if isForeignKeyViolation(err) {
			return domain.ErrProviderNotFound
		}
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create slot: %w", err)
	}
	return nil
}

// CreateSlots inserts a batch of template slots, skipping those whose
// (provider, starts_at) pair is already taken, and reports the ones
// actually created.
func (r *AdminRepository) CreateSlots(ctx context.Context, slots []domain.Slot) ([]domain.Slot, error) {
	const stmt = insertSlotStmt + `
ON CONFLICT ON CONSTRAINT slots_provider_starts_at_uq DO NOTHING`

	var created []domain.Slot
	err := withTx(ctx, r.pool, func(txCtx context.Context) error {
		for _, slot := range slots {
			tag, err := q(txCtx, r.pool).Exec(txCtx, stmt,
				slot.ID, slot.ProviderID, slot.StartsAt, slot.EndsAt, slot.Available, slot.CreatedAt)
			if err != nil {
				if isForeignKeyViolation(err) {
					return domain.ErrProviderNotFound
				}
				if isInvalidUUID(err) {
					return domain.ErrInvalidID
				}
				return fmt.Errorf("create slot %s: %w", slot.StartsAt, err)
			}
			if tag.RowsAffected() > 0 {
				created = append(created, slot)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *AdminRepository) DeleteSlot(ctx context.Context, slotID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM slots WHERE id = $1`, slotID)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("delete slot: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSlotNotFound
	}
	return nil
}

func (r *AdminRepository) ListSlots(ctx context.Context, providerID string, day time.Time, onlyAvailable bool) ([]domain.Slot, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)

	query := `
SELECT id, provider_id, starts_at, ends_at, available, created_at
FROM slots
WHERE provider_id = $1 AND starts_at >= $2 AND starts_at < $3`
	if onlyAvailable {
		query += ` AND available`
	}
	query += ` ORDER BY starts_at`

	rows, err := r.pool.Query(ctx, query, providerID, dayStart, dayStart.Add(24*time.Hour))
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("list slots: %w", err)
	}
	defer rows.Close()

	var out []domain.Slot
	for rows.Next() {
		var s domain.Slot
		if err := rows.Scan(&s.ID, &s.ProviderID, &s.StartsAt, &s.EndsAt, &s.Available, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate slots: %w", err)
	}
	return out, nil
}
