// Package project derives per-zone display values from an absolute
// instant: wall-clock fields, the UTC offset label, and the analog
// hand angles. All values are recomputed on every tick and never
// stored.
package project

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrUnsupportedZone is returned when the platform's timezone database
// rejects a zone identifier. Callers render a placeholder instead of
// aborting the refresh pass.
var ErrUnsupportedZone = errors.New("unsupported timezone")

// Projection holds the derived display values for one zone at one
// instant.
type Projection struct {
	Hour             int // 0-23
	Minute           int
	Second           int
	IsPM             bool
	UTCOffsetMinutes int // negative for zones ahead of UTC
	HourAngle        float64
	MinuteAngle      float64
	SecondAngle      float64
}

var (
	locMu    sync.Mutex
	locCache = make(map[string]*time.Location)
)

// loadLocation wraps time.LoadLocation with a small cache so the tick
// loop does not hit the zoneinfo database once per zone per second.
func loadLocation(zone string) (*time.Location, error) {
	locMu.Lock()
	defer locMu.Unlock()
	if loc, ok := locCache[zone]; ok {
		return loc, nil
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, err
	}
	locCache[zone] = loc
	return loc, nil
}

// Validate reports whether the zone identifier is accepted by the
// platform's timezone database.
func Validate(zone string) bool {
	_, err := loadLocation(zone)
	return err == nil
}

// Project computes the Projection for a zone at the given instant.
func Project(instant time.Time, zone string) (Projection, error) {
	loc, err := loadLocation(zone)
	if err != nil {
		return Projection{}, fmt.Errorf("%w: %s", ErrUnsupportedZone, zone)
	}

	t := instant.In(loc)
	hour, minute, second := t.Clock()

	// The platform gives us a real offset table, so the offset does
	// not depend on the process's own local zone. Sign convention:
	// zones ahead of UTC are negative.
	_, offsetSec := t.Zone()

	secondRatio := float64(second) / 60
	minuteRatio := (float64(minute) + secondRatio) / 60
	hourRatio := (float64(hour%12) + minuteRatio) / 12

	return Projection{
		Hour:             hour,
		Minute:           minute,
		Second:           second,
		IsPM:             hour >= 12,
		UTCOffsetMinutes: -offsetSec / 60,
		HourAngle:        hourRatio * 360,
		MinuteAngle:      minuteRatio * 360,
		SecondAngle:      secondRatio * 360,
	}, nil
}

// normalizeHour converts a 12-hour clock value plus day period to a
// 24-hour value: PM hours below 12 gain 12, 12 AM becomes 0. The
// pipeline is 24-hour throughout; this pins the conversion any future
// 12-hour input would need.
func normalizeHour(hour12 int, pm bool) int {
	if pm && hour12 < 12 {
		return hour12 + 12
	}
	if !pm && hour12 == 12 {
		return 0
	}
	return hour12
}

// In returns the instant decomposed in the given zone, for callers
// that need full date formatting.
func In(instant time.Time, zone string) (time.Time, error) {
	loc, err := loadLocation(zone)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s", ErrUnsupportedZone, zone)
	}
	return instant.In(loc), nil
}
