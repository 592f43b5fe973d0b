// Package clock maintains one visual card per selected zone and
// refreshes them on a second-aligned tick. Cards are rebuilt wholesale
// when the selection changes; a tick only recomputes the projected
// values.
package clock

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"

	"github.com/codeGROOVE-dev/worldclock/pkg/project"
	"github.com/codeGROOVE-dev/worldclock/pkg/state"
)

// Card is the per-zone display unit, keyed by zone id.
type Card struct {
	Zone string
}

// Renderer draws all cards to a terminal.
type Renderer struct {
	out    io.Writer
	logger *slog.Logger

	mu     sync.Mutex
	cards  []Card
	analog bool
	hour12 bool

	nameColor   *color.Color
	timeColor   *color.Color
	detailColor *color.Color
	errColor    *color.Color
}

// NewRenderer creates a Renderer writing to out.
func NewRenderer(out io.Writer, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{
		out:         out,
		logger:      logger,
		nameColor:   color.New(color.FgCyan, color.Bold),
		timeColor:   color.New(color.FgWhite, color.Bold),
		detailColor: color.New(color.FgHiBlack),
		errColor:    color.New(color.FgRed),
	}
}

// Rebuild replaces every card from a state snapshot. Called whenever
// the zone list or a display flag changes.
func (r *Renderer) Rebuild(st state.State) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cards = r.cards[:0]
	for _, zone := range st.Zones {
		r.cards = append(r.cards, Card{Zone: zone})
	}
	r.analog = st.Analog
	r.hour12 = st.Hour12
}

// Tick repaints every card at the given instant. A zone the platform
// no longer accepts renders as a placeholder; it never aborts the
// pass.
func (r *Renderer) Tick(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var b strings.Builder
	b.WriteString("\033[2J\033[H") // clear screen, cursor home

	for _, card := range r.cards {
		r.renderCard(&b, card, now)
	}
	b.WriteString(r.detailColor.Sprint("\nCtrl+C to exit\n"))

	if _, err := io.WriteString(r.out, b.String()); err != nil {
		r.logger.Debug("terminal write failed", "error", err)
	}
}

func (r *Renderer) renderCard(b *strings.Builder, card Card, now time.Time) {
	p, err := project.Project(now, card.Zone)
	if err != nil {
		fmt.Fprintf(b, "  %s  %s\n", r.nameColor.Sprintf("%-24s", card.Zone), r.errColor.Sprint("unavailable"))
		r.logger.Warn("projection failed", "zone", card.Zone, "error", err)
		return
	}

	local, err := project.In(now, card.Zone)
	if err != nil {
		return
	}

	fmt.Fprintf(b, "  %s  %s  %s\n",
		r.nameColor.Sprintf("%-24s", card.Zone),
		r.timeColor.Sprint(project.FormatTime(local, r.hour12)),
		r.detailColor.Sprintf("%s  %s", project.FormatDate(local), project.FormatOffset(p.UTCOffsetMinutes)),
	)

	if r.analog {
		for _, line := range renderDial(p) {
			fmt.Fprintf(b, "      %s\n", line)
		}
	}
}
