package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Akash9874/Medbook/internal/domain"
)

const (
	codeMethodNotAllowed     = "method_not_allowed"
	codeNotFound             = "not_found"
	codeInvalidRequestBody   = "invalid_request_body"
	codeInvalidID            = "invalid_id"
	codeInvalidInterval      = "invalid_interval"
	codeInvalidStatus        = "invalid_status"
	codeInvalidDay           = "invalid_day"
	codeProviderNameRequired = "provider_name_required"
	codeProviderNotFound     = "provider_not_found"
	codeSlotUnavailable      = "slot_unavailable"
	codeSlotContended        = "slot_contended"
	codeSlotAlreadyReserved  = "slot_already_reserved"
	codeSlotAlreadyExists    = "slot_already_exists"
	codeInvalidState         = "invalid_state"
	codeReservationExpired   = "reservation_expired"
	codeForbidden            = "forbidden"
	codeInternalError        = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeDomainError maps the service error taxonomy onto stable HTTP codes.
// Every contention outcome is a distinct 409 so clients can tell a lost
// race from a stale hold.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrSlotUnavailable):
		writeError(w, http.StatusConflict, codeSlotUnavailable, "slot is not available")
	case errors.Is(err, domain.ErrSlotContended):
		writeError(w, http.StatusConflict, codeSlotContended, "slot is being reserved by another request")
	case errors.Is(err, domain.ErrSlotAlreadyReserved):
		writeError(w, http.StatusConflict, codeSlotAlreadyReserved, "slot already has an active reservation")
	case errors.Is(err, domain.ErrReservationExpired):
		writeError(w, http.StatusConflict, codeReservationExpired, "reservation expired")
	case errors.Is(err, domain.ErrInvalidState):
		writeError(w, http.StatusConflict, codeInvalidState, err.Error())
	case errors.Is(err, domain.ErrSlotExists):
		writeError(w, http.StatusConflict, codeSlotAlreadyExists, "slot already exists")
	case errors.Is(err, domain.ErrSlotNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, "slot not found")
	case errors.Is(err, domain.ErrReservationNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, "reservation not found")
	case errors.Is(err, domain.ErrProviderNotFound):
		writeError(w, http.StatusNotFound, codeProviderNotFound, "provider not found")
	case errors.Is(err, domain.ErrProviderNameRequired):
		writeError(w, http.StatusBadRequest, codeProviderNameRequired, "provider name is required")
	case errors.Is(err, domain.ErrInvalidInterval):
		writeError(w, http.StatusBadRequest, codeInvalidInterval, "invalid slot interval")
	case errors.Is(err, domain.ErrInvalidID):
		writeError(w, http.StatusBadRequest, codeInvalidID, "invalid id")
	default:
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}
