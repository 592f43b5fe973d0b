package web

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/codeGROOVE-dev/worldclock/pkg/state"
)

func handleGetState(store *state.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, store.Snapshot())
	}
}

func handleSettings(store *state.Store) http.HandlerFunc {
	type request struct {
		Analog *bool `json:"analog"`
		Hour12 *bool `json:"hour12"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid body")
			return
		}
		if req.Analog != nil {
			store.SetAnalog(*req.Analog)
		}
		if req.Hour12 != nil {
			store.SetHour12(*req.Hour12)
		}
		writeJSON(w, http.StatusOK, store.Snapshot())
	}
}

func handleReset(store *state.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		store.ResetDefaults()
		writeJSON(w, http.StatusOK, store.Snapshot())
	}
}

func handleAddZone(store *state.Store) http.HandlerFunc {
	type request struct {
		Zone string `json:"zone"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := readJSON(r, &req); err != nil || req.Zone == "" {
			writeError(w, http.StatusBadRequest, "invalid body")
			return
		}

		switch err := store.AddZone(req.Zone); {
		case errors.Is(err, state.ErrDuplicateZone):
			writeError(w, http.StatusConflict, err.Error())
		case errors.Is(err, state.ErrInvalidZone):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		case err != nil:
			writeError(w, http.StatusInternalServerError, err.Error())
		default:
			writeJSON(w, http.StatusCreated, store.Snapshot())
		}
	}
}

func handleRemoveZone(store *state.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		zone, err := url.PathUnescape(chi.URLParam(r, "zone"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid zone")
			return
		}
		// Removing an absent zone is a no-op, same as the store.
		store.RemoveZone(zone)
		w.WriteHeader(http.StatusNoContent)
	}
}
