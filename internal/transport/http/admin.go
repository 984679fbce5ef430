package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Akash9874/Medbook/internal/app"
	"github.com/Akash9874/Medbook/internal/domain"
)

type adminService interface {
	CreateProvider(ctx context.Context, in app.CreateProviderInput) (domain.Provider, error)
	ListProviders(ctx context.Context) ([]domain.Provider, error)
	CreateSlot(ctx context.Context, in app.CreateSlotInput) (domain.Slot, error)
	CreateSlots(ctx context.Context, in app.CreateSlotsInput) ([]domain.Slot, error)
	DeleteSlot(ctx context.Context, slotID string) error
	ListSlots(ctx context.Context, in app.ListSlotsInput) ([]domain.Slot, error)
}

type providerScheduleReader interface {
	ListByProvider(ctx context.Context, providerID string, day time.Time) ([]domain.Reservation, error)
}

type sweepTrigger interface {
	SweepExpired(ctx context.Context) (int, error)
}

const dayLayout = "2006-01-02"

type createProviderRequest struct {
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
}

func CreateProviderHandler(svc adminService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req createProviderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		provider, err := svc.CreateProvider(r.Context(), app.CreateProviderInput{
			Name:      req.Name,
			Specialty: req.Specialty,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toProviderResponse(provider))
	})
}

func ListProvidersHandler(svc adminService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		providers, err := svc.ListProviders(r.Context())
		if err != nil {
			writeDomainError(w, err)
			return
		}
		out := make([]providerResponse, 0, len(providers))
		for _, p := range providers {
			out = append(out, toProviderResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	})
}

type createSlotRequest struct {
	ProviderID string    `json:"provider_id"`
	StartsAt   time.Time `json:"starts_at"`
	EndsAt     time.Time `json:"ends_at"`
}

func CreateSlotHandler(svc adminService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req createSlotRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		slot, err := svc.CreateSlot(r.Context(), app.CreateSlotInput{
			ProviderID: req.ProviderID,
			StartsAt:   req.StartsAt,
			EndsAt:     req.EndsAt,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toSlotResponse(slot))
	})
}

type bulkCreateSlotsRequest struct {
	ProviderID        string `json:"provider_id"`
	Day               string `json:"day"`
	From              string `json:"from"`
	To                string `json:"to"`
	SlotLengthMinutes int    `json:"slot_length_minutes"`
}

// BulkCreateSlotsHandler expands a day template into consecutive slots.
// Collisions with existing slots are skipped, so re-posting a template
// after editing working hours only fills the gaps.
func BulkCreateSlotsHandler(svc adminService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req bulkCreateSlotsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		day, err := time.Parse(dayLayout, req.Day)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidDay, "day must be YYYY-MM-DD")
			return
		}
		from, err := parseTimeOfDay(req.From)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidInterval, "from must be HH:MM")
			return
		}
		to, err := parseTimeOfDay(req.To)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidInterval, "to must be HH:MM")
			return
		}

		slots, err := svc.CreateSlots(r.Context(), app.CreateSlotsInput{
			ProviderID: req.ProviderID,
			Day:        day,
			From:       from,
			To:         to,
			SlotLength: time.Duration(req.SlotLengthMinutes) * time.Minute,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toSlotResponses(slots))
	})
}

func DeleteSlotHandler(svc adminService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeleteSlot(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

func ListSlotsHandler(svc adminService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		day, err := time.Parse(dayLayout, r.URL.Query().Get("day"))
		if err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidDay, "day must be YYYY-MM-DD")
			return
		}

		slots, err := svc.ListSlots(r.Context(), app.ListSlotsInput{
			ProviderID:    r.URL.Query().Get("provider_id"),
			Day:           day,
			OnlyAvailable: r.URL.Query().Get("available") == "true",
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSlotResponses(slots))
	})
}

// ProviderReservationsHandler is the provider's schedule for one day,
// regardless of who booked.
func ProviderReservationsHandler(svc providerScheduleReader) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		day, err := time.Parse(dayLayout, r.URL.Query().Get("day"))
		if err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidDay, "day must be YYYY-MM-DD")
			return
		}

		out, err := svc.ListByProvider(r.Context(), chi.URLParam(r, "providerID"), day)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toReservationResponses(out))
	})
}

// SweepHandler triggers one sweep pass outside the background schedule.
func SweepHandler(svc sweepTrigger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		swept, err := svc.SweepExpired(r.Context())
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]int{"swept": swept})
	})
}

func parseTimeOfDay(s string) (time.Duration, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, err
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}
