package app

import (
	"context"
	"sort"
	"time"

	"github.com/Akash9874/Medbook/internal/domain"
)

// fakeStore is an in-memory stand-in for the Postgres repositories. It
// mirrors the store-level rules the real schema enforces: at most one
// active reservation per slot and one slot per (provider, starts_at).
type fakeStore struct {
	providers    map[string]domain.Provider
	slots        map[string]domain.Slot
	reservations map[string]domain.Reservation
	events       []domain.ReservationEvent

	lockErr error
}

func newFakeStore(slots []domain.Slot, reservations []domain.Reservation) *fakeStore {
	f := &fakeStore{
		providers:    make(map[string]domain.Provider),
		slots:        make(map[string]domain.Slot),
		reservations: make(map[string]domain.Reservation),
	}
	for _, s := range slots {
		f.slots[s.ID] = s
	}
	for _, r := range reservations {
		f.reservations[r.ID] = r
	}
	return f
}

func (f *fakeStore) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (f *fakeStore) LockAvailableSlot(_ context.Context, slotID string) (domain.Slot, error) {
	if f.lockErr != nil {
		return domain.Slot{}, f.lockErr
	}
	slot, ok := f.slots[slotID]
	if !ok {
		return domain.Slot{}, domain.ErrSlotNotFound
	}
	if !slot.Available {
		return domain.Slot{}, domain.ErrSlotUnavailable
	}
	return slot, nil
}

func (f *fakeStore) CreateReservation(_ context.Context, res domain.Reservation) error {
	for _, existing := range f.reservations {
		if existing.SlotID == res.SlotID && existing.Status.Active() {
			return domain.ErrSlotAlreadyReserved
		}
	}
	f.reservations[res.ID] = res
	return nil
}

func (f *fakeStore) MarkSlotAvailable(_ context.Context, slotID string, available bool) error {
	slot, ok := f.slots[slotID]
	if !ok {
		return domain.ErrSlotNotFound
	}
	slot.Available = available
	f.slots[slotID] = slot
	return nil
}

func (f *fakeStore) AppendEvent(_ context.Context, event domain.ReservationEvent) error {
	event.ID = int64(len(f.events) + 1)
	f.events = append(f.events, event)
	return nil
}

func (f *fakeStore) GetReservationForUpdate(_ context.Context, reservationID string) (domain.Reservation, error) {
	res, ok := f.reservations[reservationID]
	if !ok {
		return domain.Reservation{}, domain.ErrReservationNotFound
	}
	return res, nil
}

func (f *fakeStore) UpdateReservation(_ context.Context, res domain.Reservation) error {
	if _, ok := f.reservations[res.ID]; !ok {
		return domain.ErrReservationNotFound
	}
	f.reservations[res.ID] = res
	return nil
}

func (f *fakeStore) ListExpiredPendingForUpdate(_ context.Context, now time.Time) ([]domain.Reservation, error) {
	var out []domain.Reservation
	for _, res := range f.reservations {
		if res.Status == domain.ReservationStatusPending && res.ExpiresAt != nil && res.ExpiresAt.Before(now) {
			out = append(out, res)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStore) FailReservations(_ context.Context, reservationIDs []string, now time.Time) error {
	for _, id := range reservationIDs {
		res := f.reservations[id]
		res.Status = domain.ReservationStatusFailed
		res.ExpiresAt = nil
		res.UpdatedAt = now
		f.reservations[id] = res
	}
	return nil
}

func (f *fakeStore) ReleaseSlots(_ context.Context, slotIDs []string) error {
	for _, id := range slotIDs {
		slot := f.slots[id]
		slot.Available = true
		f.slots[id] = slot
	}
	return nil
}

func (f *fakeStore) ListReservationsByRequester(_ context.Context, requesterID string, status *domain.ReservationStatus, limit, offset int) ([]domain.Reservation, error) {
	var out []domain.Reservation
	for _, res := range f.reservations {
		if res.RequesterID != requesterID {
			continue
		}
		if status != nil && res.Status != *status {
			continue
		}
		out = append(out, res)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeStore) ListReservationsByProvider(_ context.Context, providerID string, day time.Time) ([]domain.Reservation, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	var out []domain.Reservation
	for _, res := range f.reservations {
		if res.ProviderID != providerID {
			continue
		}
		slot, ok := f.slots[res.SlotID]
		if !ok {
			continue
		}
		if slot.StartsAt.Before(dayStart) || !slot.StartsAt.Before(dayEnd) {
			continue
		}
		out = append(out, res)
	}
	sort.Slice(out, func(i, j int) bool {
		return f.slots[out[i].SlotID].StartsAt.Before(f.slots[out[j].SlotID].StartsAt)
	})
	return out, nil
}

func (f *fakeStore) GetReservation(_ context.Context, reservationID string) (domain.Reservation, error) {
	res, ok := f.reservations[reservationID]
	if !ok {
		return domain.Reservation{}, domain.ErrReservationNotFound
	}
	return res, nil
}

func (f *fakeStore) CreateProvider(_ context.Context, provider domain.Provider) error {
	f.providers[provider.ID] = provider
	return nil
}

func (f *fakeStore) ListProviders(_ context.Context) ([]domain.Provider, error) {
	out := make([]domain.Provider, 0, len(f.providers))
	for _, p := range f.providers {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeStore) CreateSlot(_ context.Context, slot domain.Slot) error {
	if len(f.providers) > 0 {
		if _, ok := f.providers[slot.ProviderID]; !ok {
			return domain.ErrProviderNotFound
		}
	}
	for _, existing := range f.slots {
		if existing.ProviderID == slot.ProviderID && existing.StartsAt.Equal(slot.StartsAt) {
			return domain.ErrSlotExists
		}
	}
	f.slots[slot.ID] = slot
	return nil
}

func (f *fakeStore) CreateSlots(ctx context.Context, slots []domain.Slot) ([]domain.Slot, error) {
	var created []domain.Slot
	for _, slot := range slots {
		switch err := f.CreateSlot(ctx, slot); err {
		case nil:
			created = append(created, slot)
		case domain.ErrSlotExists:
		default:
			return nil, err
		}
	}
	return created, nil
}

func (f *fakeStore) DeleteSlot(_ context.Context, slotID string) error {
	if _, ok := f.slots[slotID]; !ok {
		return domain.ErrSlotNotFound
	}
	delete(f.slots, slotID)
	for id, res := range f.reservations {
		if res.SlotID == slotID {
			delete(f.reservations, id)
		}
	}
	return nil
}

func (f *fakeStore) ListSlots(_ context.Context, providerID string, day time.Time, onlyAvailable bool) ([]domain.Slot, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	var out []domain.Slot
	for _, slot := range f.slots {
		if slot.ProviderID != providerID {
			continue
		}
		if slot.StartsAt.Before(dayStart) || !slot.StartsAt.Before(dayEnd) {
			continue
		}
		if onlyAvailable && !slot.Available {
			continue
		}
		out = append(out, slot)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartsAt.Before(out[j].StartsAt) })
	return out, nil
}

func (f *fakeStore) eventTypes() []domain.EventType {
	out := make([]domain.EventType, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e.Type)
	}
	return out
}
