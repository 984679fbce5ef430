package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Akash9874/Medbook/internal/auth"
)

// RouterConfig collects everything the public API surface needs. RateLimit
// is optional; a nil middleware means unlimited.
type RouterConfig struct {
	Booking      reserver
	Reservations interface {
		confirmer
		canceller
	}
	Queries interface {
		reservationReader
		providerScheduleReader
	}
	Admin       adminService
	Sweep       sweepTrigger
	JWTSecret   string
	CORSOrigins []string
	Logger      *zap.Logger
	RateLimit   func(http.Handler) http.Handler
}

// NewRouter assembles the API. Reservation routes require any valid token;
// the /admin subtree requires the admin role.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(cfg.Logger))
	r.Use(middleware.Recoverer)
	if cfg.RateLimit != nil {
		r.Use(cfg.RateLimit)
	}

	r.NotFound(NotFoundHandler().ServeHTTP)
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
	})

	r.Get("/health", HealthHandler)

	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(cfg.JWTSecret))

		r.Post("/reservations", ReserveHandler(cfg.Booking).ServeHTTP)
		r.Get("/reservations", ListReservationsHandler(cfg.Queries).ServeHTTP)
		r.Get("/reservations/{id}", GetReservationHandler(cfg.Queries).ServeHTTP)
		r.Post("/reservations/{id}/confirm", ConfirmHandler(cfg.Reservations).ServeHTTP)
		r.Post("/reservations/{id}/cancel", CancelHandler(cfg.Reservations).ServeHTTP)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(auth.Middleware(cfg.JWTSecret, auth.RoleAdmin))

		r.Post("/providers", CreateProviderHandler(cfg.Admin).ServeHTTP)
		r.Get("/providers", ListProvidersHandler(cfg.Admin).ServeHTTP)
		r.Get("/providers/{providerID}/reservations", ProviderReservationsHandler(cfg.Queries).ServeHTTP)
		r.Post("/slots", CreateSlotHandler(cfg.Admin).ServeHTTP)
		r.Post("/slots/bulk", BulkCreateSlotsHandler(cfg.Admin).ServeHTTP)
		r.Get("/slots", ListSlotsHandler(cfg.Admin).ServeHTTP)
		r.Delete("/slots/{id}", DeleteSlotHandler(cfg.Admin).ServeHTTP)
		r.Post("/sweep", SweepHandler(cfg.Sweep).ServeHTTP)
	})

	return CORS(cfg.CORSOrigins, r)
}
