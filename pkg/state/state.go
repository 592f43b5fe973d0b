// Package state holds the selected zones and display flags, persisted
// as a single JSON record. All mutation funnels through the Store's
// named operations; every mutation writes the whole record back
// synchronously.
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/codeGROOVE-dev/worldclock/pkg/project"
)

var (
	// ErrDuplicateZone is returned when a zone is already selected.
	ErrDuplicateZone = errors.New("zone already added")
	// ErrInvalidZone is returned when the platform rejects a zone
	// identifier at insertion time.
	ErrInvalidZone = errors.New("invalid timezone")
)

// State is the persisted record: the ordered zone selection plus the
// two display flags.
type State struct {
	Zones  []string `json:"zones"`
	Analog bool     `json:"analog"`
	Hour12 bool     `json:"hour12"`
}

// DefaultZones returns the startup zone set: the platform-local zone
// followed by four well-known ones. The local zone falls back to UTC
// when the platform does not name it.
func DefaultZones() []string {
	local := localZoneName()
	defaults := []string{local, "UTC", "America/New_York", "Europe/London", "Asia/Tokyo"}

	// The local zone may already be one of the fixed four.
	out := defaults[:0:0]
	for _, z := range defaults {
		if !slices.Contains(out, z) {
			out = append(out, z)
		}
	}
	return out
}

func localZoneName() string {
	name := time.Local.String()
	if name == "" || name == "Local" || !project.Validate(name) {
		return "UTC"
	}
	return name
}

// Store owns the state record and its backing file.
type Store struct {
	logger *slog.Logger
	onSave func(State)
	path   string
	mu     sync.Mutex
	state  State
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the Store's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// OnChange registers a callback invoked with a snapshot after every
// successful mutation. The callback runs outside the Store's lock and
// may call back into the Store. The renderer uses it to rebuild cards
// when the zone list changes and to re-derive the display when a flag
// flips.
func (s *Store) OnChange(fn func(State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onSave = fn
}

// Open creates a Store backed by the given file and loads the
// persisted record. Missing or malformed data silently yields the
// defaults: Open never fails because of state-file contents.
func Open(path string, opts ...Option) *Store {
	s := &Store{path: path, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	s.state = s.load()
	return s
}

// DefaultPath returns the per-user state file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving config dir: %w", err)
	}
	return filepath.Join(dir, "worldclock", "state.json"), nil
}

func (s *Store) load() State {
	defaults := State{Zones: DefaultZones()}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("state file unreadable, using defaults", "path", s.path, "error", err)
		}
		return defaults
	}

	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		s.logger.Warn("state file malformed, using defaults", "path", s.path, "error", err)
		return defaults
	}
	if st.Zones == nil {
		s.logger.Warn("state record missing zones, using defaults", "path", s.path)
		return defaults
	}
	return st
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() State {
	return State{
		Zones:  slices.Clone(s.state.Zones),
		Analog: s.state.Analog,
		Hour12: s.state.Hour12,
	}
}

// AddZone validates the identifier against the platform timezone
// database and appends it at the end of the selection.
func (s *Store) AddZone(zone string) error {
	s.mu.Lock()
	if slices.Contains(s.state.Zones, zone) {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrDuplicateZone, zone)
	}
	if !project.Validate(zone) {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrInvalidZone, zone)
	}
	s.state.Zones = append(s.state.Zones, zone)
	s.persistLocked()
	s.mu.Unlock()
	s.notify()
	return nil
}

// RemoveZone drops the zone from the selection. Removing an absent
// zone is a no-op.
func (s *Store) RemoveZone(zone string) {
	s.mu.Lock()
	i := slices.Index(s.state.Zones, zone)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.state.Zones = slices.Delete(s.state.Zones, i, i+1)
	s.persistLocked()
	s.mu.Unlock()
	s.notify()
}

// ResetDefaults replaces the selection with the default zone set and
// clears both display flags.
func (s *Store) ResetDefaults() {
	s.mu.Lock()
	s.state = State{Zones: DefaultZones()}
	s.persistLocked()
	s.mu.Unlock()
	s.notify()
}

// SetAnalog toggles the analog-dial flag.
func (s *Store) SetAnalog(on bool) {
	s.mu.Lock()
	s.state.Analog = on
	s.persistLocked()
	s.mu.Unlock()
	s.notify()
}

// SetHour12 toggles the 12-hour display flag.
func (s *Store) SetHour12(on bool) {
	s.mu.Lock()
	s.state.Hour12 = on
	s.persistLocked()
	s.mu.Unlock()
	s.notify()
}

// persistLocked writes the whole record. A failed write keeps the
// in-memory state authoritative; the next mutation retries.
func (s *Store) persistLocked() {
	data, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		s.logger.Error("marshaling state", "error", err)
		return
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		s.logger.Error("creating state directory", "path", s.path, "error", err)
		return
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		s.logger.Error("writing state file", "path", tmp, "error", err)
		return
	}
	if err := os.Rename(tmp, s.path); err != nil {
		s.logger.Error("replacing state file", "path", s.path, "error", err)
		return
	}
}

// notify runs the change hook outside the lock so the hook is free to
// call back into the Store.
func (s *Store) notify() {
	s.mu.Lock()
	fn := s.onSave
	snap := s.snapshotLocked()
	s.mu.Unlock()
	if fn == nil {
		return
	}
	fn(snap)
}
