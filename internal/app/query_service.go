package app

import (
	"context"
	"time"

	"github.com/Akash9874/Medbook/internal/domain"
)

type QueryRepository interface {
	ListReservationsByRequester(ctx context.Context, requesterID string, status *domain.ReservationStatus, limit, offset int) ([]domain.Reservation, error)
	ListReservationsByProvider(ctx context.Context, providerID string, day time.Time) ([]domain.Reservation, error)
	GetReservation(ctx context.Context, reservationID string) (domain.Reservation, error)
}

// QueryService serves read-side projections. No locking: these are
// informational views, never decision inputs for reserve or confirm.
type QueryService struct {
	repo QueryRepository
}

func NewQueryService(repo QueryRepository) *QueryService {
	return &QueryService{repo: repo}
}

const (
	defaultPageLimit = 50
	maxPageLimit     = 100
)

type ListByRequesterInput struct {
	RequesterID string
	Status      *domain.ReservationStatus
	Limit       int
	Offset      int
}

// ListByRequester returns the requester's reservations, newest first.
func (s *QueryService) ListByRequester(ctx context.Context, in ListByRequesterInput) ([]domain.Reservation, error) {
	if in.RequesterID == "" {
		return nil, domain.ErrInvalidID
	}
	limit := in.Limit
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	offset := in.Offset
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListReservationsByRequester(ctx, in.RequesterID, in.Status, limit, offset)
}

// ListByProvider returns all reservations whose slot starts on the given
// day for one provider. Administrative view, no ownership filter.
func (s *QueryService) ListByProvider(ctx context.Context, providerID string, day time.Time) ([]domain.Reservation, error) {
	if providerID == "" {
		return nil, domain.ErrInvalidID
	}
	return s.repo.ListReservationsByProvider(ctx, providerID, day)
}

type GetReservationInput struct {
	RequesterID   string
	ReservationID string
	Privileged    bool
}

// Get fetches one reservation. A reservation owned by someone else reads
// as not-found unless the caller is privileged.
func (s *QueryService) Get(ctx context.Context, in GetReservationInput) (domain.Reservation, error) {
	if in.ReservationID == "" {
		return domain.Reservation{}, domain.ErrInvalidID
	}
	res, err := s.repo.GetReservation(ctx, in.ReservationID)
	if err != nil {
		return domain.Reservation{}, err
	}
	if !in.Privileged && res.RequesterID != in.RequesterID {
		return domain.Reservation{}, domain.ErrReservationNotFound
	}
	return res, nil
}
