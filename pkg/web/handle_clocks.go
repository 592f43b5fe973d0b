package web

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/codeGROOVE-dev/worldclock/pkg/clock"
	"github.com/codeGROOVE-dev/worldclock/pkg/project"
	"github.com/codeGROOVE-dev/worldclock/pkg/state"
)

// clockView is one rendered card: the digital fields plus the raw
// projection for clients drawing their own analog dial.
type clockView struct {
	Zone             string  `json:"zone"`
	Time             string  `json:"time,omitempty"`
	Date             string  `json:"date,omitempty"`
	Offset           string  `json:"offset,omitempty"`
	Hour             int     `json:"hour"`
	Minute           int     `json:"minute"`
	Second           int     `json:"second"`
	IsPM             bool    `json:"isPM"`
	UTCOffsetMinutes int     `json:"utcOffsetMinutes"`
	HourAngle        float64 `json:"hourAngleDeg"`
	MinuteAngle      float64 `json:"minuteAngleDeg"`
	SecondAngle      float64 `json:"secondAngleDeg"`
	Error            string  `json:"error,omitempty"`
}

type clocksResponse struct {
	Instant time.Time   `json:"instant"`
	Analog  bool        `json:"analog"`
	Hour12  bool        `json:"hour12"`
	Clocks  []clockView `json:"clocks"`
}

// snapshotClocks projects every selected zone at the given instant. A
// zone the platform rejects yields an error card, never a failed
// response.
func snapshotClocks(st state.State, now time.Time) clocksResponse {
	resp := clocksResponse{
		Instant: now.UTC(),
		Analog:  st.Analog,
		Hour12:  st.Hour12,
		Clocks:  make([]clockView, 0, len(st.Zones)),
	}

	for _, zone := range st.Zones {
		view := clockView{Zone: zone}
		p, err := project.Project(now, zone)
		if err != nil {
			view.Error = "unsupported timezone"
			resp.Clocks = append(resp.Clocks, view)
			continue
		}
		local, err := project.In(now, zone)
		if err != nil {
			view.Error = "unsupported timezone"
			resp.Clocks = append(resp.Clocks, view)
			continue
		}

		view.Time = project.FormatTime(local, st.Hour12)
		view.Date = project.FormatDate(local)
		view.Offset = project.FormatOffset(p.UTCOffsetMinutes)
		view.Hour = p.Hour
		view.Minute = p.Minute
		view.Second = p.Second
		view.IsPM = p.IsPM
		view.UTCOffsetMinutes = p.UTCOffsetMinutes
		view.HourAngle = p.HourAngle
		view.MinuteAngle = p.MinuteAngle
		view.SecondAngle = p.SecondAngle
		resp.Clocks = append(resp.Clocks, view)
	}
	return resp
}

func handleClocks(store *state.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, snapshotClocks(store.Snapshot(), time.Now()))
	}
}

// handleClockEvents streams one snapshot per second-aligned tick as
// SSE until the client disconnects.
func handleClockEvents(logger *slog.Logger, store *state.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			writeError(w, http.StatusInternalServerError, "streaming unsupported")
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)
		flusher.Flush()

		events := make(chan []byte, 4)
		var tk clock.Ticker
		tk.Start(r.Context(), func(now time.Time) {
			data, err := json.Marshal(snapshotClocks(store.Snapshot(), now))
			if err != nil {
				logger.Error("marshaling snapshot", "error", err)
				return
			}
			select {
			case events <- data:
			default:
				// Drop the tick if the client is slow.
			}
		})
		defer tk.Stop()

		for {
			select {
			case <-r.Context().Done():
				return
			case data := <-events:
				if _, err := w.Write([]byte("data: ")); err != nil {
					return
				}
				if _, err := w.Write(data); err != nil {
					return
				}
				if _, err := w.Write([]byte("\n\n")); err != nil {
					return
				}
				flusher.Flush()
			}
		}
	}
}
