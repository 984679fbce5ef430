package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Akash9874/Medbook/internal/app"
	"github.com/Akash9874/Medbook/internal/auth"
	"github.com/Akash9874/Medbook/internal/domain"
)

type canceller interface {
	Cancel(ctx context.Context, in app.CancelInput) (domain.Reservation, error)
}

// CancelHandler releases a pending or confirmed reservation owned by the
// caller. The freed slot is immediately reservable again.
func CancelHandler(svc canceller) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := auth.IdentityFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, codeForbidden, "missing identity")
			return
		}

		res, err := svc.Cancel(r.Context(), app.CancelInput{
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
