package web

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/codeGROOVE-dev/worldclock/pkg/catalog"
	"github.com/codeGROOVE-dev/worldclock/pkg/geo"
	"github.com/codeGROOVE-dev/worldclock/pkg/state"
)

func addRoutes(r chi.Router, logger *slog.Logger, store *state.Store, cat *catalog.Catalog, assist *geo.Assist) {
	r.Get("/healthz", handleHealth())

	r.Route("/api", func(r chi.Router) {
		r.Get("/state", handleGetState(store))
		r.Put("/settings", handleSettings(store))
		r.Post("/reset", handleReset(store))

		r.Post("/zones", handleAddZone(store))
		r.Delete("/zones/{zone}", handleRemoveZone(store))

		r.Get("/clocks", handleClocks(store))
		r.Get("/clocks/events", handleClockEvents(logger, store))

		r.Get("/catalog", handleCatalog(cat))

		if assist != nil {
			r.Get("/locate", handleLocate(logger, assist))
		}
	})
}
