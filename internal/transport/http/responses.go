package http

import (
	"time"

	"github.com/Akash9874/Medbook/internal/domain"
)

type reservationResponse struct {
	ID          string     `json:"id"`
	SlotID      string     `json:"slot_id"`
	ProviderID  string     `json:"provider_id"`
	RequesterID string     `json:"requester_id"`
	Status      string     `json:"status"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func toReservationResponse(res domain.Reservation) reservationResponse {
	return reservationResponse{
		ID:          res.ID,
		SlotID:      res.SlotID,
		ProviderID:  res.ProviderID,
		RequesterID: res.RequesterID,
		Status:      string(res.Status),
		ExpiresAt:   res.ExpiresAt,
		ConfirmedAt: res.ConfirmedAt,
		CancelledAt: res.CancelledAt,
		CreatedAt:   res.CreatedAt,
	}
}

func toReservationResponses(in []domain.Reservation) []reservationResponse {
	out := make([]reservationResponse, 0, len(in))
	for _, res := range in {
		out = append(out, toReservationResponse(res))
	}
	return out
}

type slotResponse struct {
	ID         string    `json:"id"`
	ProviderID string    `json:"provider_id"`
	StartsAt   time.Time `json:"starts_at"`
	EndsAt     time.Time `json:"ends_at"`
	Available  bool      `json:"available"`
}

func toSlotResponse(slot domain.Slot) slotResponse {
	return slotResponse{
		ID:         slot.ID,
		ProviderID: slot.ProviderID,
		StartsAt:   slot.StartsAt,
		EndsAt:     slot.EndsAt,
		Available:  slot.Available,
	}
}

func toSlotResponses(in []domain.Slot) []slotResponse {
	out := make([]slotResponse, 0, len(in))
	for _, slot := range in {
		out = append(out, toSlotResponse(slot))
	}
	return out
}

type providerResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Specialty string `json:"specialty,omitempty"`
}

func toProviderResponse(p domain.Provider) providerResponse {
	return providerResponse{ID: p.ID, Name: p.Name, Specialty: p.Specialty}
}
