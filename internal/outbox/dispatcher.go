package outbox

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var (
	publishTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "booking_outbox_publish_total",
		Help: "Total number of successfully published reservation events.",
	})
	failTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "booking_outbox_fail_total",
		Help: "Total number of publish failures after exhausting retries.",
	})
	lagSeconds = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "booking_outbox_lag_seconds",
		Help: "Age of the oldest processed reservation event in seconds.",
	})
)

// Publisher is the slice of a NATS connection the dispatcher needs.
type Publisher interface {
	PublishMsg(msg *nats.Msg) error
}

// Config defines tunables for the dispatcher.
type Config struct {
	PollInterval time.Duration
	BatchSize    int
	RetryMax     int
}

// Dispatcher drains unpublished reservation events from the database and
// publishes them to NATS, one subject per event type. Rows are claimed with
// SKIP LOCKED so multiple dispatchers never double-publish.
type Dispatcher struct {
	pool      *pgxpool.Pool
	publisher Publisher
	logger    *zap.Logger
	cfg       Config
	tracer    trace.Tracer
}

func NewDispatcher(pool *pgxpool.Pool, publisher Publisher, logger *zap.Logger, cfg Config) *Dispatcher {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 200 * time.Millisecond
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if cfg.RetryMax <= 0 {
		cfg.RetryMax = 3
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		pool:      pool,
		publisher: publisher,
		logger:    logger,
		cfg:       cfg,
		tracer:    otel.Tracer("booking.outbox.dispatcher"),
	}
}

// Run polls until the context is cancelled.
func (d *Dispatcher) Run(ctx context.Context) error {
	if d.pool == nil || d.publisher == nil {
		return errors.New("outbox dispatcher requires database and publisher")
	}
	ticker := time.NewTicker(d.cfg.PollInterval)
	defer ticker.Stop()
	for {
		if err := d.processOnce(ctx); err != nil && !errors.Is(err, context.Canceled) {
			d.logger.Error("outbox batch failed", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

type record struct {
	ID            int64
	ReservationID string
	EventType     string
	Payload       []byte
	CreatedAt     time.Time
}

func (d *Dispatcher) processOnce(ctx context.Context) error {
	ctx, span := d.tracer.Start(ctx, "outbox.batch")
	defer span.End()

	tx, err := d.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	records, err := d.loadPending(ctx, tx)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return tx.Commit(ctx)
	}

	ids := make([]int64, 0, len(records))
	maxLag := 0.0
	for _, rec := range records {
		if err := d.publishWithRetry(ctx, rec); err != nil {
			return err
		}
		ids = append(ids, rec.ID)
		publishTotal.Inc()
		if lag := time.Since(rec.CreatedAt).Seconds(); lag > maxLag {
			maxLag = lag
		}
	}
	lagSeconds.Set(maxLag)

	if _, err := tx.Exec(ctx,
		`UPDATE reservation_events SET published = TRUE WHERE id = ANY($1)`, ids); err != nil {
		return fmt.Errorf("mark published: %w", err)
	}
	return tx.Commit(ctx)
}

func (d *Dispatcher) loadPending(ctx context.Context, tx pgx.Tx) ([]record, error) {
	rows, err := tx.Query(ctx, `
		SELECT id, reservation_id, event_type, payload, created_at
		FROM reservation_events
		WHERE published = FALSE
		ORDER BY id
		LIMIT $1
		FOR UPDATE SKIP LOCKED`, d.cfg.BatchSize)
	if err != nil {
		return nil, fmt.Errorf("select events: %w", err)
	}
	defer rows.Close()

	var records []record
	for rows.Next() {
		var rec record
		if err := rows.Scan(&rec.ID, &rec.ReservationID, &rec.EventType, &rec.Payload, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return records, nil
}

func (d *Dispatcher) publishWithRetry(ctx context.Context, rec record) error {
	ctx, span := d.tracer.Start(ctx, "outbox.publish")
	defer span.End()

	if rec.EventType == "" {
		return fmt.Errorf("event %d missing type", rec.ID)
	}
	msg := nats.NewMsg(rec.EventType)
	msg.Data = rec.Payload
	msg.Header.Set("Reservation-Id", rec.ReservationID)
	if sc := span.SpanContext(); sc.IsValid() {
		msg.Header.Set("traceparent", fmt.Sprintf("00-%s-%s-01", sc.TraceID(), sc.SpanID()))
	}

	var attempt int
	for {
		attempt++
		err := d.publisher.PublishMsg(msg)
		if err == nil {
			return nil
		}
		d.logger.Warn("publish failed",
			zap.Error(err),
			zap.Int("attempt", attempt),
			zap.Int64("event_id", rec.ID))
		if attempt >= d.cfg.RetryMax {
			failTotal.Inc()
			return fmt.Errorf("publish event %d: %w", rec.ID, err)
		}
		backoff := time.Duration(attempt*attempt) * 100 * time.Millisecond
		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
