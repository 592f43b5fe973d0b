// Package main implements the worldclock CLI: a live terminal world
// clock plus subcommands for managing the selected zones.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/codeGROOVE-dev/worldclock/pkg/catalog"
	"github.com/codeGROOVE-dev/worldclock/pkg/clock"
	"github.com/codeGROOVE-dev/worldclock/pkg/geo"
	"github.com/codeGROOVE-dev/worldclock/pkg/httpcache"
	"github.com/codeGROOVE-dev/worldclock/pkg/project"
	"github.com/codeGROOVE-dev/worldclock/pkg/state"
)

var (
	stateFile = flag.String("state", "", "State file path (or set WORLDCLOCK_STATE)")
	analog    = flag.Bool("analog", false, "Show analog dials in watch mode")
	hour12    = flag.Bool("hour12", false, "Use 12-hour time display")
	verbose   = flag.Bool("verbose", false, "Enable verbose logging")
	version   = flag.Bool("version", false, "Show version")
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: %s [flags] [command]

Commands:
  watch                 Live clock display (default)
  add <zone>            Add a timezone
  remove <zone>         Remove a timezone
  list                  Show selected timezones
  zones [filter]        Show the timezone catalog
  reset                 Restore the default selection
  locate <lat> <lon>    Suggest a timezone for coordinates

Flags:
`, os.Args[0])
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()

	if *version {
		fmt.Println("worldclock v1.0.0")
		return
	}

	level := slog.LevelError
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if *stateFile == "" {
		*stateFile = os.Getenv("WORLDCLOCK_STATE")
	}
	if *stateFile == "" {
		path, err := state.DefaultPath()
		if err != nil {
			logger.Error("resolving state path", "error", err)
			os.Exit(1)
		}
		*stateFile = path
	}

	store := state.Open(*stateFile, state.WithLogger(logger))

	cmd := "watch"
	if flag.NArg() > 0 {
		cmd = flag.Arg(0)
	}

	// Flag defaults must not clobber persisted preferences, so only the
	// flags present on the command line become overrides.
	var analogFlag, hour12Flag *bool
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "analog":
			analogFlag = analog
		case "hour12":
			hour12Flag = hour12
		}
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, logger, store, cmd, flag.Args(), analogFlag, hour12Flag); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, store *state.Store, cmd string, args []string, analogFlag, hour12Flag *bool) error {
	switch cmd {
	case "watch":
		return watch(ctx, logger, store, analogFlag, hour12Flag)
	case "add":
		if len(args) != 2 {
			return fmt.Errorf("usage: add <zone>")
		}
		if err := store.AddZone(args[1]); err != nil {
			return err
		}
		fmt.Println("Added", args[1])
		return nil
	case "remove":
		if len(args) != 2 {
			return fmt.Errorf("usage: remove <zone>")
		}
		store.RemoveZone(args[1])
		fmt.Println("Removed", args[1])
		return nil
	case "list":
		return list(store)
	case "zones":
		filter := ""
		if len(args) > 1 {
			filter = args[1]
		}
		return listCatalog(ctx, logger, filter)
	case "reset":
		store.ResetDefaults()
		fmt.Println("Restored default timezones")
		return nil
	case "locate":
		if len(args) != 3 {
			return fmt.Errorf("usage: locate <lat> <lon>")
		}
		return locate(ctx, logger, store, args[1], args[2])
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func watch(ctx context.Context, logger *slog.Logger, store *state.Store, analogFlag, hour12Flag *bool) error {
	renderer := clock.NewRenderer(os.Stdout, logger)
	store.OnChange(renderer.Rebuild)

	applyDisplayFlags(store, analogFlag, hour12Flag)
	renderer.Rebuild(store.Snapshot())

	var tk clock.Ticker
	tk.Start(ctx, renderer.Tick)
	defer tk.Stop()

	renderer.Tick(time.Now())
	<-ctx.Done()
	fmt.Println()
	return nil
}

// applyDisplayFlags persists the display toggles that were given on the
// command line. Nil means the flag was absent, so the stored preference
// stands.
func applyDisplayFlags(store *state.Store, analogFlag, hour12Flag *bool) {
	if analogFlag != nil {
		store.SetAnalog(*analogFlag)
	}
	if hour12Flag != nil {
		store.SetHour12(*hour12Flag)
	}
}

func list(store *state.Store) error {
	st := store.Snapshot()
	now := time.Now()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Zone", "Time", "Date", "Offset"})
	table.SetBorder(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)

	for _, zone := range st.Zones {
		p, err := project.Project(now, zone)
		if err != nil {
			table.Append([]string{zone, "unavailable", "", ""})
			continue
		}
		local, _ := project.In(now, zone)
		table.Append([]string{
			zone,
			project.FormatTime(local, st.Hour12),
			project.FormatDate(local),
			project.FormatOffset(p.UTCOffsetMinutes),
		})
	}
	table.Render()
	return nil
}

func listCatalog(ctx context.Context, logger *slog.Logger, filter string) error {
	fetcher := httpcache.New(time.Hour, nil, logger)
	cat := catalog.New(fetcher, catalog.WithLogger(logger))

	zones := cat.Zones(ctx)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Zone"})
	table.SetBorder(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)

	shown := 0
	for _, z := range zones {
		if filter != "" && !strings.Contains(strings.ToLower(z), strings.ToLower(filter)) {
			continue
		}
		table.Append([]string{z})
		shown++
	}
	if shown == 0 {
		fmt.Println("No matching timezones")
		return nil
	}
	table.Render()
	return nil
}

func locate(ctx context.Context, logger *slog.Logger, store *state.Store, latArg, lonArg string) error {
	lat, err := strconv.ParseFloat(latArg, 64)
	if err != nil {
		return fmt.Errorf("invalid latitude %q", latArg)
	}
	lon, err := strconv.ParseFloat(lonArg, 64)
	if err != nil {
		return fmt.Errorf("invalid longitude %q", lonArg)
	}

	lookupCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	fetcher := httpcache.New(time.Hour, nil, logger)
	assist := geo.NewAssist(geo.NewClient(fetcher, geo.WithLogger(logger)))

	s, err := assist.Resolve(lookupCtx, lat, lon)
	if err != nil {
		return err
	}

	if s.PlaceName != "" {
		fmt.Printf("%s: %s\n", s.PlaceName, s.ZoneID)
	} else {
		fmt.Println(s.ZoneID)
	}

	fmt.Print("Add this timezone? [y/N] ")
	reader := bufio.NewReader(os.Stdin)
	answer, _ := reader.ReadString('\n')
	if strings.TrimSpace(strings.ToLower(answer)) != "y" {
		assist.Dismiss()
		fmt.Println("Not added")
		return nil
	}

	if err := store.AddZone(s.ZoneID); err != nil {
		return err
	}
	fmt.Println("Added", s.ZoneID)
	return nil
}
