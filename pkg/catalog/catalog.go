// Package catalog supplies the zone identifiers offered as suggestions
// when adding a clock. Three sources are tried in order, one attempt
// each: the platform's zoneinfo database, a remote JSON document, and
// a built-in list. Catalog failure degrades suggestions only; it is
// never consulted on the render path.
package catalog

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"slices"
	"strings"
)

// ErrCatalogUnavailable is the remote tier's failure signal. The
// caller falls through to the built-in list, so Zones itself never
// fails.
var ErrCatalogUnavailable = errors.New("timezone catalog unavailable")

// DefaultURL is the remote catalog document fetched when the platform
// zoneinfo database is not readable.
const DefaultURL = "https://raw.githubusercontent.com/dmfilipenko/timezones.json/master/timezones.json"

// zoneinfoDirs mirrors the lookup order of the Go runtime's zoneinfo
// loader.
var zoneinfoDirs = []string{
	"/usr/share/zoneinfo",
	"/usr/share/lib/zoneinfo",
	"/usr/lib/locale/TZ",
}

// topLevelZones are the slash-free zoneinfo files worth suggesting.
// The remaining top-level entries (EST5EDT, posixrules, Factory) are
// legacy compatibility names.
var topLevelZones = map[string]bool{
	"UTC": true,
	"GMT": true,
	"EST": true,
	"MST": true,
	"HST": true,
	"CET": true,
	"EET": true,
	"MET": true,
	"WET": true,
}

// Fetcher fetches a URL body; satisfied by httpcache.Client.
type Fetcher interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Catalog resolves the suggestion list.
type Catalog struct {
	fetcher Fetcher
	logger  *slog.Logger
	url     string
	dirs    []string
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithURL overrides the remote catalog URL.
func WithURL(url string) Option {
	return func(c *Catalog) { c.url = url }
}

// WithZoneinfoDirs overrides the platform zoneinfo search path.
func WithZoneinfoDirs(dirs []string) Option {
	return func(c *Catalog) { c.dirs = dirs }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Catalog) { c.logger = logger }
}

// New creates a Catalog. The fetcher may be nil, which disables the
// remote tier.
func New(fetcher Fetcher, opts ...Option) *Catalog {
	c := &Catalog{
		fetcher: fetcher,
		logger:  slog.Default(),
		url:     DefaultURL,
		dirs:    zoneinfoDirs,
	}
	if zi := os.Getenv("ZONEINFO"); zi != "" {
		c.dirs = append([]string{zi}, c.dirs...)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Zones returns the deduplicated suggestion list. It always returns a
// non-empty slice: every tier failing still leaves the built-in list.
func (c *Catalog) Zones(ctx context.Context) []string {
	if zones := c.fromZoneinfo(); len(zones) > 0 {
		c.logger.Debug("catalog from platform zoneinfo", "count", len(zones))
		return zones
	}

	if c.fetcher != nil {
		zones, err := c.fromRemote(ctx)
		if err != nil {
			c.logger.Warn("remote catalog unavailable", "url", c.url, "error", err)
		} else if len(zones) > 0 {
			c.logger.Debug("catalog from remote document", "count", len(zones))
			return zones
		}
	}

	c.logger.Debug("catalog from built-in list")
	return slices.Clone(staticZones)
}

// fromZoneinfo walks the platform zoneinfo tree collecting
// Area/Location identifiers.
func (c *Catalog) fromZoneinfo() []string {
	for _, dir := range c.dirs {
		if _, err := os.Stat(dir); err != nil {
			continue
		}
		var zones []string
		collectZones(dir, "", &zones)
		if len(zones) > 0 {
			slices.Sort(zones)
			return dedupe(zones)
		}
	}
	return nil
}

func collectZones(root, prefix string, out *[]string) {
	entries, err := os.ReadDir(strings.TrimSuffix(root+"/"+prefix, "/"))
	if err != nil {
		return
	}
	for _, e := range entries {
		name := e.Name()
		// Skip tzdata metadata and the posix/right duplicate trees.
		// Real zone names start with an uppercase letter.
		if name == "" || name[0] < 'A' || name[0] > 'Z' || strings.Contains(name, ".") {
			continue
		}
		full := prefix + name
		if e.IsDir() {
			collectZones(root, full+"/", out)
			continue
		}
		if strings.Contains(full, "/") || topLevelZones[full] {
			*out = append(*out, full)
		}
	}
}

func dedupe(zones []string) []string {
	out := zones[:0:0]
	seen := make(map[string]struct{}, len(zones))
	for _, z := range zones {
		if _, ok := seen[z]; ok {
			continue
		}
		seen[z] = struct{}{}
		out = append(out, z)
	}
	return out
}
