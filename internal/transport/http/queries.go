package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Akash9874/Medbook/internal/app"
	"github.com/Akash9874/Medbook/internal/auth"
	"github.com/Akash9874/Medbook/internal/domain"
)

type reservationReader interface {
	ListByRequester(ctx context.Context, in app.ListByRequesterInput) ([]domain.Reservation, error)
	Get(ctx context.Context, in app.GetReservationInput) (domain.Reservation, error)
}

// ListReservationsHandler returns the caller's reservations, newest first,
// optionally filtered by status.
func ListReservationsHandler(svc reservationReader) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := auth.IdentityFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, codeForbidden, "missing identity")
			return
		}

		in := app.ListByRequesterInput{RequesterID: identity.UserID}
		if raw := r.URL.Query().Get("status"); raw != "" {
			status := domain.ReservationStatus(raw)
			switch status {
			case domain.ReservationStatusPending, domain.ReservationStatusConfirmed,
				domain.ReservationStatusFailed, domain.ReservationStatusCancelled:
				in.Status = &status
			default:
				writeError(w, http.StatusBadRequest, codeInvalidStatus, "unknown status")
				return
			}
		}
		in.Limit = intQueryParam(r, "limit")
		in.Offset = intQueryParam(r, "offset")

		out, err := svc.ListByRequester(r.Context(), in)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toReservationResponses(out))
	})
}

// GetReservationHandler fetches one reservation. Someone else's reservation
// reads as not-found for ordinary callers.
func GetReservationHandler(svc reservationReader) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := auth.IdentityFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, codeForbidden, "missing identity")
			return
		}

		res, err := svc.Get(r.Context(), app.GetReservationInput{
			RequesterID:   identity.UserID,
			ReservationID: chi.URLParam(r, "id"),
			Privileged:    identity.Privileged(),
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toReservationResponse(res))
	})
}

func intQueryParam(r *http.Request, name string) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}
