package clock

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/codeGROOVE-dev/worldclock/pkg/project"
	"github.com/codeGROOVE-dev/worldclock/pkg/state"
)

func TestAlignDelay(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want time.Duration
	}{
		{"on the boundary", time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), time.Second},
		{"mid second", time.Date(2024, 1, 1, 12, 0, 0, 250e6, time.UTC), 750 * time.Millisecond},
		{"just before boundary", time.Date(2024, 1, 1, 12, 0, 0, 999e6, time.UTC), time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AlignDelay(tt.now); got != tt.want {
				t.Errorf("AlignDelay = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTickerRearmCancelsPendingStream(t *testing.T) {
	var first, second atomic.Int32
	var tk Ticker

	tk.Start(context.Background(), func(time.Time) { first.Add(1) })
	tk.Start(context.Background(), func(time.Time) { second.Add(1) })
	defer tk.Stop()

	time.Sleep(2200 * time.Millisecond)

	if got := first.Load(); got != 0 {
		t.Errorf("first stream ticked %d times after rearm", got)
	}
	if got := second.Load(); got < 1 {
		t.Error("second stream never ticked")
	}
}

func TestTickerStop(t *testing.T) {
	var ticks atomic.Int32
	var tk Ticker

	tk.Start(context.Background(), func(time.Time) { ticks.Add(1) })
	tk.Stop()
	n := ticks.Load()

	time.Sleep(1500 * time.Millisecond)
	if got := ticks.Load(); got != n {
		t.Errorf("ticks after Stop: %d -> %d", n, got)
	}
}

func TestRendererTick(t *testing.T) {
	var out strings.Builder
	r := NewRenderer(&out, nil)
	r.Rebuild(state.State{Zones: []string{"UTC", "Asia/Tokyo"}})

	r.Tick(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	got := out.String()
	for _, want := range []string{"UTC", "Asia/Tokyo", "09:00:00", "UTC-09", "Mon, Jan 01"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestRendererPlaceholderForBadZone(t *testing.T) {
	var out strings.Builder
	r := NewRenderer(&out, nil)
	r.Rebuild(state.State{Zones: []string{"Not/AZone", "UTC"}})

	r.Tick(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	got := out.String()
	if !strings.Contains(got, "unavailable") {
		t.Error("no placeholder for unsupported zone")
	}
	if !strings.Contains(got, "00:00:00") {
		t.Error("bad zone aborted the refresh pass")
	}
}

func TestRendererHour12(t *testing.T) {
	var out strings.Builder
	r := NewRenderer(&out, nil)
	r.Rebuild(state.State{Zones: []string{"UTC"}, Hour12: true})

	r.Tick(time.Date(2024, 1, 1, 21, 5, 0, 0, time.UTC))

	if !strings.Contains(out.String(), "09:05:00 PM") {
		t.Errorf("12-hour display missing:\n%s", out.String())
	}
}

func TestRendererAnalogDial(t *testing.T) {
	var out strings.Builder
	r := NewRenderer(&out, nil)
	r.Rebuild(state.State{Zones: []string{"UTC"}, Analog: true})

	r.Tick(time.Date(2024, 1, 1, 3, 0, 0, 0, time.UTC))

	got := out.String()
	if !strings.Contains(got, "o") || !strings.Contains(got, "H") {
		t.Errorf("analog dial not rendered:\n%s", got)
	}
}

func TestRenderDialHandsStayInside(t *testing.T) {
	for hour := 0; hour < 24; hour += 3 {
		p, err := project.Project(time.Date(2024, 1, 1, hour, 17, 42, 0, time.UTC), "UTC")
		if err != nil {
			t.Fatal(err)
		}
		lines := renderDial(p)
		if len(lines) != dialRadius*2+1 {
			t.Fatalf("dial height = %d", len(lines))
		}
		for _, line := range lines {
			if len(line) != dialRadius*4+1 {
				t.Fatalf("dial width = %d", len(line))
			}
		}
	}
}
