package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Akash9874/Medbook/internal/clock"
	"github.com/Akash9874/Medbook/internal/domain"
)

func TestBookingService_Reserve(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	window := 2 * time.Minute

	availableSlot := domain.Slot{
		ID:         "slot-1",
		ProviderID: "provider-1",
		StartsAt:   now.Add(24 * time.Hour),
		EndsAt:     now.Add(24*time.Hour + 30*time.Minute),
		Available:  true,
	}

	t.Run("reserves an available slot", func(t *testing.T) {
		store := newFakeStore([]domain.Slot{availableSlot}, nil)
		svc := NewBookingService(store, clock.NewFixed(now), WithConfirmWindow(window))

		res, err := svc.Reserve(context.Background(), ReserveInput{RequesterID: "user-1", SlotID: "slot-1"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if res.ID == "" {
			t.Fatalf("expected reservation ID to be set")
		}
		if res.Status != domain.ReservationStatusPending {
			t.Fatalf("expected status PENDING, got %s", res.Status)
		}
		if res.ProviderID != "provider-1" {
			t.Fatalf("expected provider denormalized onto reservation, got %q", res.ProviderID)
		}
		if res.ExpiresAt == nil || !res.ExpiresAt.Equal(now.Add(window)) {
			t.Fatalf("expected expires_at %v, got %v", now.Add(window), res.ExpiresAt)
		}
		if store.slots["slot-1"].Available {
			t.Fatalf("expected slot marked unavailable")
		}
		if got := store.eventTypes(); len(got) != 1 || got[0] != domain.EventReservationReserved {
			t.Fatalf("expected one reserved event, got %v", got)
		}
	})

	t.Run("unavailable slot is rejected", func(t *testing.T) {
		taken := availableSlot
		taken.Available = false
		store := newFakeStore([]domain.Slot{taken}, nil)
		svc := NewBookingService(store, clock.NewFixed(now))

		_, err := svc.Reserve(context.Background(), ReserveInput{RequesterID: "user-1", SlotID: "slot-1"})
		if !errors.Is(err, domain.ErrSlotUnavailable) {
			t.Fatalf("expected ErrSlotUnavailable, got %v", err)
		}
		if len(store.reservations) != 0 {
			t.Fatalf("expected no reservation created")
		}
	})

	t.Run("unknown slot is rejected", func(t *testing.T) {
		store := newFakeStore(nil, nil)
		svc := NewBookingService(store, clock.NewFixed(now))

		_, err := svc.Reserve(context.Background(), ReserveInput{RequesterID: "user-1", SlotID: "slot-9"})
		if !errors.Is(err, domain.ErrSlotNotFound) {
			t.Fatalf("expected ErrSlotNotFound, got %v", err)
		}
	})

	t.Run("contended lock fails fast", func(t *testing.T) {
		store := newFakeStore([]domain.Slot{availableSlot}, nil)
		store.lockErr = domain.ErrSlotContended
		svc := NewBookingService(store, clock.NewFixed(now))

		_, err := svc.Reserve(context.Background(), ReserveInput{RequesterID: "user-1", SlotID: "slot-1"})
		if !errors.Is(err, domain.ErrSlotContended) {
			t.Fatalf("expected ErrSlotContended, got %v", err)
		}
	})

	t.Run("active reservation uniqueness is surfaced", func(t *testing.T) {
		existing := domain.Reservation{
			ID:          "res-1",
			SlotID:      "slot-1",
			ProviderID:  "provider-1",
			RequesterID: "user-2",
			Status:      domain.ReservationStatusConfirmed,
		}
		// Slot still flagged available even though a committed reservation
		// exists; the partial unique index is the backstop.
		store := newFakeStore([]domain.Slot{availableSlot}, []domain.Reservation{existing})
		svc := NewBookingService(store, clock.NewFixed(now))

		_, err := svc.Reserve(context.Background(), ReserveInput{RequesterID: "user-1", SlotID: "slot-1"})
		if !errors.Is(err, domain.ErrSlotAlreadyReserved) {
			t.Fatalf("expected ErrSlotAlreadyReserved, got %v", err)
		}
	})

	t.Run("missing ids are rejected", func(t *testing.T) {
		store := newFakeStore(nil, nil)
		svc := NewBookingService(store, clock.NewFixed(now))

		if _, err := svc.Reserve(context.Background(), ReserveInput{SlotID: "slot-1"}); !errors.Is(err, domain.ErrInvalidID) {
			t.Fatalf("expected ErrInvalidID, got %v", err)
		}
		if _, err := svc.Reserve(context.Background(), ReserveInput{RequesterID: "user-1"}); !errors.Is(err, domain.ErrInvalidID) {
			t.Fatalf("expected ErrInvalidID, got %v", err)
		}
	})
}
