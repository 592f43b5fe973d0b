package web

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/codeGROOVE-dev/worldclock/pkg/geo"
)

// handleLocate resolves coordinates to a suggestion. It never adds the
// zone itself; the client confirms via POST /api/zones.
func handleLocate(logger *slog.Logger, assist *geo.Assist) http.HandlerFunc {
	type response struct {
		Suggestion geo.Suggestion `json:"suggestion"`
		Phase      string         `json:"phase"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		lat, err1 := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
		lon, err2 := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
		if err1 != nil || err2 != nil || lat < -90 || lat > 90 || lon < -180 || lon > 180 {
			writeError(w, http.StatusBadRequest, "lat and lon query parameters required")
			return
		}

		s, err := assist.Resolve(r.Context(), lat, lon)
		if err != nil {
			logger.Warn("location lookup failed", "lat", lat, "lon", lon, "error", err)
			if errors.Is(err, geo.ErrLocationLookupFailed) {
				writeError(w, http.StatusBadGateway, "could not resolve a timezone for this location")
				return
			}
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		writeJSON(w, http.StatusOK, response{Suggestion: s, Phase: assist.Phase().String()})
	}
}
