package app

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Akash9874/Medbook/internal/clock"
	"github.com/Akash9874/Medbook/internal/domain"
)

type AdminRepository interface {
	CreateProvider(ctx context.Context, provider domain.Provider) error
	ListProviders(ctx context.Context) ([]domain.Provider, error)
	CreateSlot(ctx context.Context, slot domain.Slot) error
	CreateSlots(ctx context.Context, slots []domain.Slot) ([]domain.Slot, error)
	DeleteSlot(ctx context.Context, slotID string) error
	ListSlots(ctx context.Context, providerID string, day time.Time, onlyAvailable bool) ([]domain.Slot, error)
}

// AdminService is the provider/slot administration surface. It creates and
// deletes slot rows; the availability flag itself is only ever toggled by
// the reservation engine.
type AdminService struct {
	repo  AdminRepository
	clock clock.Clock
}

func NewAdminService(repo AdminRepository, clk clock.Clock) *AdminService {
	return &AdminService{
		repo:  repo,
		clock: clk,
	}
}

type CreateProviderInput struct {
	Name      string
	Specialty string
}

func (s *AdminService) CreateProvider(ctx context.Context, in CreateProviderInput) (domain.Provider, error) {
	if in.Name == "" {
		return domain.Provider{}, domain.ErrProviderNameRequired
	}

	provider := domain.Provider{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Specialty: in.Specialty,
		CreatedAt: s.clock.Now(),
	}

	if err := s.repo.CreateProvider(ctx, provider); err != nil {
		return domain.Provider{}, err
	}
	return provider, nil
}

func (s *AdminService) ListProviders(ctx context.Context) ([]domain.Provider, error) {
	return s.repo.ListProviders(ctx)
}

type CreateSlotInput struct {
	ProviderID string
	StartsAt   time.Time
	EndsAt     time.Time
}

func (s *AdminService) CreateSlot(ctx context.Context, in CreateSlotInput) (domain.Slot, error) {
	if in.ProviderID == "" {
		return domain.Slot{}, domain.ErrInvalidID
	}
	if !in.EndsAt.After(in.StartsAt) {
		return domain.Slot{}, domain.ErrInvalidInterval
	}

	slot := domain.Slot{
		ID:         uuid.NewString(),
		ProviderID: in.ProviderID,
		StartsAt:   in.StartsAt.UTC(),
		EndsAt:     in.EndsAt.UTC(),
		Available:  true,
		CreatedAt:  s.clock.Now(),
	}

	if err := s.repo.CreateSlot(ctx, slot); err != nil {
		return domain.Slot{}, err
	}
	return slot, nil
}

type CreateSlotsInput struct {
	ProviderID string
	Day        time.Time
	From       time.Duration
	To         time.Duration
	SlotLength time.Duration
}

// CreateSlots expands a day template (working window plus slot length) into
// consecutive slots. Template slots that collide with an existing
// (provider, starts_at) pair are skipped rather than failing the batch, so
// re-posting the same template is harmless.
func (s *AdminService) CreateSlots(ctx context.Context, in CreateSlotsInput) ([]domain.Slot, error) {
	if in.ProviderID == "" {
		return nil, domain.ErrInvalidID
	}
	if in.SlotLength <= 0 || in.From < 0 || in.To <= in.From {
		return nil, domain.ErrInvalidInterval
	}

	day := time.Date(in.Day.Year(), in.Day.Month(), in.Day.Day(), 0, 0, 0, 0, time.UTC)
	now := s.clock.Now()

	var slots []domain.Slot
	for start := in.From; start+in.SlotLength <= in.To; start += in.SlotLength {
		slots = append(slots, domain.Slot{
			ID:         uuid.NewString(),
			ProviderID: in.ProviderID,
			StartsAt:   day.Add(start),
			EndsAt:     day.Add(start + in.SlotLength),
			Available:  true,
			CreatedAt:  now,
		})
	}
	if len(slots) == 0 {
		return nil, domain.ErrInvalidInterval
	}

	return s.repo.CreateSlots(ctx, slots)
}

func (s *AdminService) DeleteSlot(ctx context.Context, slotID string) error {
	if slotID == "" {
		return domain.ErrInvalidID
	}
	return s.repo.DeleteSlot(ctx, slotID)
}

type ListSlotsInput struct {
	ProviderID    string
	Day           time.Time
	OnlyAvailable bool
}

func (s *AdminService) ListSlots(ctx context.Context, in ListSlotsInput) ([]domain.Slot, error) {
	if in.ProviderID == "" {
		return nil, domain.ErrInvalidID
	}
	return s.repo.ListSlots(ctx, in.ProviderID, in.Day, in.OnlyAvailable)
}
