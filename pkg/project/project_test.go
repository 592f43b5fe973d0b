package project

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestProjectTokyoNewYear(t *testing.T) {
	instant := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	p, err := Project(instant, "Asia/Tokyo")
	if err != nil {
		t.Fatalf("Project: %v", err)
	}

	if p.Hour != 9 || p.Minute != 0 || p.Second != 0 {
		t.Errorf("clock = %02d:%02d:%02d, want 09:00:00", p.Hour, p.Minute, p.Second)
	}
	if p.IsPM {
		t.Errorf("IsPM = true for hour %d", p.Hour)
	}
	if p.UTCOffsetMinutes != -540 {
		t.Errorf("UTCOffsetMinutes = %d, want -540", p.UTCOffsetMinutes)
	}
	if got := FormatOffset(p.UTCOffsetMinutes); got != "UTC-09" {
		t.Errorf("FormatOffset = %q, want UTC-09", got)
	}

	local, err := In(instant, "Asia/Tokyo")
	if err != nil {
		t.Fatalf("In: %v", err)
	}
	if got := FormatTime(local, false); got != "09:00:00" {
		t.Errorf("FormatTime = %q, want 09:00:00", got)
	}
	if got := FormatDate(local); got != "Mon, Jan 01" {
		t.Errorf("FormatDate = %q, want Mon, Jan 01", got)
	}
}

func TestProjectUTCOffsetAlwaysZero(t *testing.T) {
	instants := []time.Time{
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 7, 4, 12, 30, 45, 0, time.UTC),
		time.Date(1999, 12, 31, 23, 59, 59, 0, time.UTC),
	}
	for _, instant := range instants {
		p, err := Project(instant, "UTC")
		if err != nil {
			t.Fatalf("Project(UTC) at %v: %v", instant, err)
		}
		if p.UTCOffsetMinutes != 0 {
			t.Errorf("UTCOffsetMinutes at %v = %d, want 0", instant, p.UTCOffsetMinutes)
		}
		if got := FormatOffset(p.UTCOffsetMinutes); got != "UTC+00" {
			t.Errorf("FormatOffset at %v = %q, want UTC+00", instant, got)
		}
	}
}

func TestProjectAngles(t *testing.T) {
	tests := []struct {
		name       string
		hour       int
		minute     int
		second     int
		wantHour   float64
		wantMinute float64
		wantSecond float64
	}{
		{"midnight", 0, 0, 0, 0, 0, 0},
		{"quarter past three", 15, 15, 0, 97.5, 90, 0},
		{"half past six", 18, 30, 0, 195, 180, 0},
		{"thirty seconds", 0, 0, 30, 0.25, 3, 180},
		{"last second", 23, 59, 59, 359.9916667, 359.9, 354},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			instant := time.Date(2024, 6, 1, tt.hour, tt.minute, tt.second, 0, time.UTC)
			p, err := Project(instant, "UTC")
			if err != nil {
				t.Fatalf("Project: %v", err)
			}
			if math.Abs(p.HourAngle-tt.wantHour) > 0.001 {
				t.Errorf("HourAngle = %v, want %v", p.HourAngle, tt.wantHour)
			}
			if math.Abs(p.MinuteAngle-tt.wantMinute) > 0.001 {
				t.Errorf("MinuteAngle = %v, want %v", p.MinuteAngle, tt.wantMinute)
			}
			if math.Abs(p.SecondAngle-tt.wantSecond) > 0.001 {
				t.Errorf("SecondAngle = %v, want %v", p.SecondAngle, tt.wantSecond)
			}
		})
	}
}

func TestProjectAnglesInRange(t *testing.T) {
	// Sweep a full day in 7s steps; every angle stays in [0, 360).
	start := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	for off := 0; off < 24*3600; off += 7 {
		p, err := Project(start.Add(time.Duration(off)*time.Second), "UTC")
		if err != nil {
			t.Fatalf("Project: %v", err)
		}
		for _, angle := range []float64{p.HourAngle, p.MinuteAngle, p.SecondAngle} {
			if angle < 0 || angle >= 360 {
				t.Fatalf("angle %v out of range at +%ds", angle, off)
			}
		}
	}
}

func TestSecondAngleWrapsAtMinuteBoundary(t *testing.T) {
	base := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	prev := -1.0
	for s := 0; s < 60; s++ {
		p, err := Project(base.Add(time.Duration(s)*time.Second), "UTC")
		if err != nil {
			t.Fatalf("Project: %v", err)
		}
		if p.SecondAngle <= prev {
			t.Fatalf("SecondAngle not increasing at second %d: %v <= %v", s, p.SecondAngle, prev)
		}
		prev = p.SecondAngle
	}

	p, err := Project(base.Add(60*time.Second), "UTC")
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	if p.SecondAngle != 0 {
		t.Errorf("SecondAngle after wrap = %v, want 0", p.SecondAngle)
	}
}

func TestNormalizeHour(t *testing.T) {
	tests := []struct {
		name   string
		hour12 int
		pm     bool
		want   int
	}{
		{"noon", 12, true, 12},
		{"midnight", 12, false, 0},
		{"one am", 1, false, 1},
		{"one pm", 1, true, 13},
		{"eleven pm", 11, true, 23},
		{"eleven am", 11, false, 11},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeHour(tt.hour12, tt.pm); got != tt.want {
				t.Errorf("normalizeHour(%d, %v) = %d, want %d", tt.hour12, tt.pm, got, tt.want)
			}
		})
	}
}

func TestProjectUnsupportedZone(t *testing.T) {
	_, err := Project(time.Now(), "Not/AZone")
	if !errors.Is(err, ErrUnsupportedZone) {
		t.Errorf("err = %v, want ErrUnsupportedZone", err)
	}
}

func TestValidate(t *testing.T) {
	if !Validate("Europe/London") {
		t.Error("Validate(Europe/London) = false, want true")
	}
	if Validate("Not/AZone") {
		t.Error("Validate(Not/AZone) = true, want false")
	}
}

func TestFormatOffset(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "UTC+00"},
		{-540, "UTC-09"},
		{300, "UTC+05"},
		{-330, "UTC-05"}, // fractional-hour zones truncate
		{-600, "UTC-10"},
		{720, "UTC+12"},
	}
	for _, tt := range tests {
		if got := FormatOffset(tt.minutes); got != tt.want {
			t.Errorf("FormatOffset(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}

func TestFormatTimeHour12(t *testing.T) {
	local := time.Date(2024, 1, 1, 21, 5, 9, 0, time.UTC)
	if got := FormatTime(local, false); got != "21:05:09" {
		t.Errorf("24h = %q", got)
	}
	if got := FormatTime(local, true); got != "09:05:09 PM" {
		t.Errorf("12h = %q", got)
	}
}
