// Package serverhttp exposes the import pipeline over a small JSON API:
// one endpoint each for parse, dry-run and apply, mirroring the phases of
// an import session.
package serverhttp

import (
	"github.com/go-chi/chi/v5"

	"presyohan/pricelist/internal/container"
	"presyohan/pricelist/internal/middleware"
)

// NewRouter builds the chi router with the standard middleware chain.
func NewRouter(c *container.Container) *chi.Mux {
	r := chi.NewRouter()

	// Order matters: request id first so the recover and logging
	// middlewares see it in the request context.
	r.Use(middleware.RequestID())
	r.Use(middleware.Recover(c.Logger()))
	r.Use(middleware.Logging(c.Logger()))

	h := &handlers{container: c, logger: c.Logger()}

	r.Get("/healthz", h.health)
	r.Route("/api/v1/import", func(r chi.Router) {
		r.Post("/parse", h.parse)
		r.Post("/dryrun", h.dryRun)
		r.Post("/apply", h.apply)
	})

	return r
}
