package app

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/Akash9874/Medbook/internal/domain"
)

var (
	reserveOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "booking_reserve_outcomes_total",
		Help: "Reserve attempts partitioned by outcome.",
	}, []string{"outcome"})
	reservationTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reservation_transitions_total",
		Help: "Reservation state transitions by kind.",
	}, []string{"transition"})
	sweptReservations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reservations_swept_total",
		Help: "Pending reservations failed by the expiry sweeper.",
	})
)

func reserveOutcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrSlotContended):
		return "contended"
	case errors.Is(err, domain.ErrSlotUnavailable):
		return "unavailable"
	case errors.Is(err, domain.ErrSlotAlreadyReserved):
		return "already_reserved"
	case errors.Is(err, domain.ErrSlotNotFound):
		return "not_found"
	default:
		return "error"
	}
}
