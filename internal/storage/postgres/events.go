package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Akash9874/Medbook/internal/domain"
)

// appendEvent writes an outbox row inside whatever transaction the context
// carries; the dispatcher picks it up after commit.
func appendEvent(ctx context.Context, pool *pgxpool.Pool, event domain.ReservationEvent) error {
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return fmt.Errorf("marshal event payload: %w", err)
	}

	const stmt = `
INSERT INTO reservation_events (reservation_id, event_type, payload)
VALUES ($1, $2, $3)`

	if _, err := q(ctx, pool).Exec(ctx, stmt, event.ReservationID, string(event.Type), payload); err != nil {
		return fmt.Errorf("append reservation event: %w", err)
	}
	return nil
}
