package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/FlameInTheDark/uwuweather/internal/place"
	"github.com/FlameInTheDark/uwuweather/internal/report"
	"github.com/FlameInTheDark/uwuweather/internal/session"
	"github.com/FlameInTheDark/uwuweather/internal/units"
)

var stdout io.Writer = os.Stdout

func argsQuery(c *cli.Command) string {
	return strings.Join(c.Args().Slice(), " ")
}

func showAction(ctx context.Context, c *cli.Command) error {
	d, err := load(c)
	if err != nil {
		return err
	}
	defer d.Close()
	s := d.session(d.cfg.StateFile)

	var rep *report.Report
	if c.IsSet("lat") || c.IsSet("lon") {
		loc, err := myLocation(c.String("lat"), c.String("lon"))
		if err != nil {
			return err
		}
		rep, err = s.Load(ctx, loc)
		if err != nil {
			return err
		}
	} else {
		rep, err = s.Boot(ctx, argsQuery(c))
		if err != nil {
			return err
		}
	}
	_, err = rep.WriteTo(stdout)
	return err
}

// myLocation parses user supplied coordinates.
func myLocation(lat, lon string) (place.Location, error) {
	la, err := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if err != nil || la < -90 || la > 90 {
		return place.Location{}, fmt.Errorf("invalid latitude %q", lat)
	}
	lo, err := strconv.ParseFloat(strings.TrimSpace(lon), 64)
	if err != nil || lo < -180 || lo > 180 {
		return place.Location{}, fmt.Errorf("invalid longitude %q", lon)
	}
	return place.Location{Label: place.MyLocationLabel, Lat: la, Lon: lo}, nil
}

func searchAction(ctx context.Context, c *cli.Command) error {
	query := argsQuery(c)
	if place.ParseQuery(query).IsEmpty() {
		return errors.New("search needs a place name, e.g. \"Springfield, Illinois, US\"")
	}
	d, err := load(c)
	if err != nil {
		return err
	}
	defer d.Close()

	candidates, rep, err := d.session(d.cfg.StateFile).Search(ctx, query)
	if errors.Is(err, session.ErrNoMatch) {
		fmt.Fprintln(stdout, "No matching location found. Try a different spelling.")
		return nil
	}
	if len(candidates) > 0 {
		writeCandidates(stdout, candidates)
	}
	if err != nil {
		return err
	}
	_, err = rep.WriteTo(stdout)
	return err
}

func writeCandidates(w io.Writer, candidates []place.Candidate) {
	fmt.Fprintln(w, "Matches:")
	for i, c := range candidates {
		fmt.Fprintf(w, "%2d. %s %s (%.4f, %.4f)\n", i+1, report.Marker(c.Location()), c.Label, c.Lat, c.Lon)
	}
	fmt.Fprintln(w)
}

func unitsAction(ctx context.Context, c *cli.Command) error {
	d, err := load(c)
	if err != nil {
		return err
	}
	defer d.Close()
	s := d.session(d.cfg.StateFile)

	arg := strings.ToLower(c.Args().First())
	var u units.System
	switch arg {
	case "":
		u = s.Units()
		fmt.Fprintf(stdout, "Units: %s (%s, %s)\n", u, u.TemperatureGlyph(), u.WindGlyph())
		return nil
	case "toggle":
		u, _, err = s.ToggleUnits(ctx)
	default:
		var ok bool
		if u, ok = units.Parse(arg); !ok {
			return fmt.Errorf("unknown unit system %q, want metric, imperial or toggle", arg)
		}
		_, err = s.SetUnits(ctx, u)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Units set to %s (%s, %s)\n", u, u.TemperatureGlyph(), u.WindGlyph())
	return nil
}

func saveAction(ctx context.Context, c *cli.Command) error {
	d, err := load(c)
	if err != nil {
		return err
	}
	defer d.Close()
	s := d.session(d.cfg.StateFile)

	query := argsQuery(c)
	if !place.ParseQuery(query).IsEmpty() {
		_, _, err = s.Search(ctx, query)
		if errors.Is(err, session.ErrNoMatch) {
			fmt.Fprintln(stdout, "No matching location found. Try a different spelling.")
			return nil
		}
		if err != nil {
			return err
		}
	}

	active, _ := s.Current().Get()
	added, err := s.SaveCurrent()
	if errors.Is(err, session.ErrNoActiveLocation) {
		fmt.Fprintln(stdout, "Load a location first.")
		return nil
	}
	if err != nil {
		return err
	}
	if added {
		fmt.Fprintf(stdout, "Saved %s\n", active.Label)
	} else {
		fmt.Fprintf(stdout, "%s is already saved\n", active.Label)
	}
	return nil
}

func savedAction(_ context.Context, c *cli.Command) error {
	d, err := load(c)
	if err != nil {
		return err
	}
	defer d.Close()

	writeSaved(stdout, d.session(d.cfg.StateFile).Saved())
	return nil
}

func writeSaved(w io.Writer, saved []place.Location) {
	if len(saved) == 0 {
		fmt.Fprintln(w, "No saved places.")
		return
	}
	for i, loc := range saved {
		fmt.Fprintf(w, "%2d. %s %s (%.4f, %.4f)\n", i+1, report.Marker(loc), loc.Label, loc.Lat, loc.Lon)
	}
}

func forgetAction(_ context.Context, c *cli.Command) error {
	n, err := strconv.Atoi(c.Args().First())
	if err != nil {
		return fmt.Errorf("forget needs the number shown by `saved`: %w", err)
	}
	d, err := load(c)
	if err != nil {
		return err
	}
	defer d.Close()

	removed, err := d.session(d.cfg.StateFile).RemoveSaved(n - 1)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Removed %s\n", removed.Label)
	return nil
}
