package app

import "github.com/Akash9874/Medbook/internal/domain"

func newReservationEvent(res domain.Reservation, t domain.EventType) domain.ReservationEvent {
	return domain.ReservationEvent{
		ReservationID: res.ID,
		Type:          t,
		Payload: map[string]any{
			"reservation_id": res.ID,
			"slot_id":        res.SlotID,
			"provider_id":    res.ProviderID,
			"requester_id":   res.RequesterID,
			"status":         string(res.Status),
		},
	}
}
