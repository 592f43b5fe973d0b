package web

import (
	"net/http"
	"strings"

	"github.com/codeGROOVE-dev/worldclock/pkg/catalog"
)

func handleCatalog(cat *catalog.Catalog) http.HandlerFunc {
	type response struct {
		Zones []string `json:"zones"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		zones := cat.Zones(r.Context())

		if filter := strings.ToLower(r.URL.Query().Get("q")); filter != "" {
			filtered := zones[:0:0]
			for _, z := range zones {
				if strings.Contains(strings.ToLower(z), filter) {
					filtered = append(filtered, z)
				}
			}
			zones = filtered
		}

		writeJSON(w, http.StatusOK, response{Zones: zones})
	}
}
