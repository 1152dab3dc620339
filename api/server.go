/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the chi router, middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID: unique ID per request for tracing
  2. Logger:    request logging
  3. Recoverer: panic recovery (500 instead of crash)
  4. CORS:      cross-origin requests for the calendar frontend

ROUTE GROUPS:
  /api/days/*     Day records and editor operations
  /api/stats/*    Week/month/year aggregates
  /api/rest/*     Compensatory-rest balances and eligibility
  /api/leave/*    Quota rollover and remaining balances
  /api/quotas     Quota configuration
  /api/prefs      Display preferences
  /api/backup     Snapshot export/import, reset
  /api/insights   Generated monthly commentary

SEE ALSO:
  - handlers.go: handler implementations
  - cmd/server/main.go: server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Route("/days", func(r chi.Router) {
			r.Post("/bulk", h.BulkApply)
			r.Route("/{date}", func(r chi.Router) {
				r.Get("/", h.GetDay)
				r.Put("/", h.PutDay)
				r.Post("/shift/{shift}", h.ToggleShift)
				r.Post("/leave", h.SetLeave)
				r.Post("/holiday", h.ToggleHoliday)
				r.Put("/holiday", h.SetHolidayName)
				r.Put("/note", h.SetNote)
			})
		})

		r.Route("/stats", func(r chi.Router) {
			r.Get("/week", h.WeekStats)
			r.Get("/month", h.MonthStats)
			r.Get("/year", h.YearStats)
		})

		r.Route("/rest", func(r chi.Router) {
			r.Get("/eligibility", h.RestEligibility)
			r.Get("/weeks", h.RestWeeks)
		})

		r.Get("/leave/summary", h.LeaveSummary)

		r.Get("/quotas", h.GetQuotas)
		r.Put("/quotas", h.PutQuotas)
		r.Get("/prefs", h.GetPrefs)
		r.Put("/prefs", h.PutPrefs)

		r.Get("/backup", h.Backup)
		r.Post("/restore", h.Restore)
		r.Post("/reset", h.Reset)

		r.Get("/insights", h.MonthlyInsights)
	})

	return r
}
