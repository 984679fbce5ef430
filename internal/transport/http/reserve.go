package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Akash9874/Medbook/internal/app"
	"github.com/Akash9874/Medbook/internal/auth"
	"github.com/Akash9874/Medbook/internal/domain"
)

type reserver interface {
	Reserve(ctx context.Context, in app.ReserveInput) (domain.Reservation, error)
}

type reserveRequest struct {
	SlotID string `json:"slot_id"`
}

// ReserveHandler claims a slot for the authenticated requester. The slot id
// comes from the body so a client can retry the same POST safely: a retry
// after a win fails with slot_already_reserved, never a double booking.
func ReserveHandler(svc reserver) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := auth.IdentityFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, codeForbidden, "missing identity")
			return
		}

		var req reserveRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if req.SlotID == "" {
			writeError(w, http.StatusBadRequest, codeInvalidID, "slot_id is required")
			return
		}

		res, err := svc.Reserve(r.Context(), app.ReserveInput{
			RequesterID: identity.UserID,
			SlotID:      req.SlotID,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toReservationResponse(res))
	})
}
