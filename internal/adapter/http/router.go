package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bluerhyno/internal/observability/metrics"
	"bluerhyno/internal/ports"
	"bluerhyno/internal/usecase/quoting"
)

// NewRouter wires the public quoting API.
func NewRouter(svc *quoting.Service, photos ports.PhotoStore) chi.Router {
	quotes := NewQuoteHandler(svc, photos)
	customers := NewCustomerHandler(svc)
	projects := NewProjectHandler(svc)
	jobStatus := NewJobStatusHandler(svc)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/quotes", func(r chi.Router) {
			r.Post("/", quotes.Create)
			r.Get("/", quotes.List)
			r.Get("/{id}", quotes.Get)
			r.Put("/{id}", quotes.UpdatePricing)
			r.Delete("/{id}", quotes.Delete)
			r.Post("/{id}/approve", quotes.Approve)
			r.Post("/{id}/reject", quotes.Reject)
			r.Post("/{id}/complete", quotes.Complete)
		})

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", customers.List)
			r.Get("/{id}", customers.Get)
			r.Put("/{id}", customers.Update)
			r.Delete("/{id}", customers.Delete)
		})

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", projects.List)
			r.Get("/{id}", projects.Get)
			r.Put("/{id}", projects.Update)
		})

		r.Post("/job-status", jobStatus.Lookup)
	})

	return r
}
