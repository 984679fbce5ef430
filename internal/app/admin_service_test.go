package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Akash9874/Medbook/internal/clock"
	"github.com/Akash9874/Medbook/internal/domain"
)

func TestAdminService(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	t.Run("create provider requires a name", func(t *testing.T) {
		store := newFakeStore(nil, nil)
		svc := NewAdminService(store, clock.NewFixed(now))

		if _, err := svc.CreateProvider(context.Background(), CreateProviderInput{}); !errors.Is(err, domain.ErrProviderNameRequired) {
			t.Fatalf("expected ErrProviderNameRequired, got %v", err)
		}

		provider, err := svc.CreateProvider(context.Background(), CreateProviderInput{Name: "Dr. Ruiz", Specialty: "cardiology"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if provider.ID == "" {
			t.Fatalf("expected provider ID to be set")
		}

		providers, err := svc.ListProviders(context.Background())
		if err != nil || len(providers) != 1 {
			t.Fatalf("expected one provider, got %v (%v)", providers, err)
		}
	})

	t.Run("create slot validates the interval", func(t *testing.T) {
		store := newFakeStore(nil, nil)
		svc := NewAdminService(store, clock.NewFixed(now))

		_, err := svc.CreateSlot(context.Background(), CreateSlotInput{
			ProviderID: "provider-1",
			StartsAt:   day.Add(9 * time.Hour),
			EndsAt:     day.Add(9 * time.Hour),
		})
		if !errors.Is(err, domain.ErrInvalidInterval) {
			t.Fatalf("expected ErrInvalidInterval, got %v", err)
		}

		slot, err := svc.CreateSlot(context.Background(), CreateSlotInput{
			ProviderID: "provider-1",
			StartsAt:   day.Add(9 * time.Hour),
			EndsAt:     day.Add(9*time.Hour + 30*time.Minute),
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !slot.Available {
			t.Fatalf("new slot must start available")
		}

		_, err = svc.CreateSlot(context.Background(), CreateSlotInput{
			ProviderID: "provider-1",
			StartsAt:   day.Add(9 * time.Hour),
			EndsAt:     day.Add(10 * time.Hour),
		})
		if !errors.Is(err, domain.ErrSlotExists) {
			t.Fatalf("expected ErrSlotExists on duplicate start, got %v", err)
		}
	})

	t.Run("day template expands into consecutive slots", func(t *testing.T) {
		store := newFakeStore(nil, nil)
		svc := NewAdminService(store, clock.NewFixed(now))

		created, err := svc.CreateSlots(context.Background(), CreateSlotsInput{
			ProviderID: "provider-1",
			Day:        day,
			From:       9 * time.Hour,
			To:         11 * time.Hour,
			SlotLength: 30 * time.Minute,
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(created) != 4 {
			t.Fatalf("expected 4 slots, got %d", len(created))
		}
		if !created[0].StartsAt.Equal(day.Add(9 * time.Hour)) {
			t.Fatalf("unexpected first slot start %v", created[0].StartsAt)
		}
		if !created[3].EndsAt.Equal(day.Add(11 * time.Hour)) {
			t.Fatalf("unexpected last slot end %v", created[3].EndsAt)
		}

		// Re-posting the same template only fills the gaps.
		again, err := svc.CreateSlots(context.Background(), CreateSlotsInput{
			ProviderID: "provider-1",
			Day:        day,
			From:       9 * time.Hour,
			To:         12 * time.Hour,
			SlotLength: 30 * time.Minute,
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(again) != 2 {
			t.Fatalf("expected 2 new slots, got %d", len(again))
		}
	})

	t.Run("day template rejects degenerate windows", func(t *testing.T) {
		store := newFakeStore(nil, nil)
		svc := NewAdminService(store, clock.NewFixed(now))

		cases := []CreateSlotsInput{
			{ProviderID: "provider-1", Day: day, From: 9 * time.Hour, To: 9 * time.Hour, SlotLength: 30 * time.Minute},
			{ProviderID: "provider-1", Day: day, From: 10 * time.Hour, To: 9 * time.Hour, SlotLength: 30 * time.Minute},
			{ProviderID: "provider-1", Day: day, From: 9 * time.Hour, To: 11 * time.Hour, SlotLength: 0},
			{ProviderID: "provider-1", Day: day, From: 9 * time.Hour, To: 9*time.Hour + 10*time.Minute, SlotLength: 30 * time.Minute},
		}
		for _, in := range cases {
			if _, err := svc.CreateSlots(context.Background(), in); !errors.Is(err, domain.ErrInvalidInterval) {
				t.Fatalf("expected ErrInvalidInterval for %+v, got %v", in, err)
			}
		}
	})

	t.Run("delete slot", func(t *testing.T) {
		store := newFakeStore([]domain.Slot{{ID: "slot-1", ProviderID: "provider-1", StartsAt: day, EndsAt: day.Add(time.Hour), Available: true}}, nil)
		svc := NewAdminService(store, clock.NewFixed(now))

		if err := svc.DeleteSlot(context.Background(), "slot-1"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if err := svc.DeleteSlot(context.Background(), "slot-1"); !errors.Is(err, domain.ErrSlotNotFound) {
			t.Fatalf("expected ErrSlotNotFound, got %v", err)
		}
	})

	t.Run("list slots filters availability", func(t *testing.T) {
		store := newFakeStore([]domain.Slot{
			{ID: "slot-1", ProviderID: "provider-1", StartsAt: day.Add(9 * time.Hour), EndsAt: day.Add(10 * time.Hour), Available: true},
			{ID: "slot-2", ProviderID: "provider-1", StartsAt: day.Add(10 * time.Hour), EndsAt: day.Add(11 * time.Hour), Available: false},
		}, nil)
		svc := NewAdminService(store, clock.NewFixed(now))

		all, err := svc.ListSlots(context.Background(), ListSlotsInput{ProviderID: "provider-1", Day: day})
		if err != nil || len(all) != 2 {
			t.Fatalf("expected 2 slots, got %v (%v)", all, err)
		}
		open, err := svc.ListSlots(context.Background(), ListSlotsInput{ProviderID: "provider-1", Day: day, OnlyAvailable: true})
		if err != nil || len(open) != 1 || open[0].ID != "slot-1" {
			t.Fatalf("expected only slot-1, got %v (%v)", open, err)
		}
	})
}
