package geo

import (
	"context"
	"sync"
)

// Phase is the assist interaction state.
type Phase int

const (
	Idle Phase = iota
	Resolving
	Suggested
	Failed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Resolving:
		return "resolving"
	case Suggested:
		return "suggested"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Suggestion is one resolved location, held until the user accepts or
// dismisses it.
type Suggestion struct {
	PlaceName string  `json:"placeName,omitempty"`
	ZoneID    string  `json:"zoneId"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
}

// Assist drives the Idle -> Resolving -> {Suggested|Failed}
// interaction. In-flight resolves are never cancelled by a newer one;
// whichever finishes last wins.
type Assist struct {
	client  *Client
	mu      sync.Mutex
	phase   Phase
	current *Suggestion
}

// NewAssist creates an Assist on top of the lookup client.
func NewAssist(client *Client) *Assist {
	return &Assist{client: client}
}

// Resolve runs both lookups for the coordinates. The zone lookup is
// mandatory; a missing place name is not an error.
func (a *Assist) Resolve(ctx context.Context, lat, lon float64) (Suggestion, error) {
	a.mu.Lock()
	a.phase = Resolving
	a.mu.Unlock()

	zone, err := a.client.ZoneForCoordinates(ctx, lat, lon)
	if err != nil {
		a.mu.Lock()
		a.phase = Failed
		a.current = nil
		a.mu.Unlock()
		return Suggestion{}, err
	}

	name, err := a.client.ReverseGeocode(ctx, lat, lon)
	if err != nil {
		a.client.logger.Debug("reverse geocode unavailable", "lat", lat, "lon", lon, "error", err)
		name = ""
	}

	s := Suggestion{Lat: lat, Lon: lon, PlaceName: name, ZoneID: zone}

	a.mu.Lock()
	a.phase = Suggested
	a.current = &s
	a.mu.Unlock()
	return s, nil
}

// Phase returns the current interaction state.
func (a *Assist) Phase() Phase {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.phase
}

// Suggestion returns the pending suggestion, if any.
func (a *Assist) Suggestion() *Suggestion {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current
}

// Dismiss discards the pending suggestion and returns to Idle.
func (a *Assist) Dismiss() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.phase = Idle
	a.current = nil
}
