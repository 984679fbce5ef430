package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Akash9874/Medbook/internal/app"
	"github.com/Akash9874/Medbook/internal/auth"
	"github.com/Akash9874/Medbook/internal/domain"
)

type confirmer interface {
	Confirm(ctx context.Context, in app.ConfirmInput) (domain.Reservation, error)
}

// ConfirmHandler finalizes a pending reservation owned by the caller.
func ConfirmHandler(svc confirmer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := auth.IdentityFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, codeForbidden, "missing identity")
			return
		}

		res, err := svc.Confirm(r.Context(), app.ConfirmInput{
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
