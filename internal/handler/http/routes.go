package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(middleware.Compress(5, "application/json"))

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/sync/health", h.health)
		r.Post("/api/device/token", h.issueDeviceToken)
	})

	// routes protected by a device token
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/sync/batch", h.pushBatch)
		r.Get("/sync/pull", h.pull)

		r.Put("/api/resources/{id}", h.upsertResource)
		r.Delete("/api/resources/{id}", h.deleteResource)
		r.Put("/api/timeslots/{id}", h.upsertTimeSlot)
		r.Delete("/api/timeslots/{id}", h.deleteTimeSlot)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
