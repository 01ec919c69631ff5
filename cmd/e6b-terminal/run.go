package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ngmaloney/e6b-terminal/internal/aircraft"
	"github.com/ngmaloney/e6b-terminal/internal/airspeed"
	"github.com/ngmaloney/e6b-terminal/internal/conversion"
	"github.com/ngmaloney/e6b-terminal/internal/fuel"
	"github.com/ngmaloney/e6b-terminal/internal/models"
	"github.com/ngmaloney/e6b-terminal/internal/runways"
)

// options holds the command line flags
type options struct {
	airport string
	profile string
	dbPath  string

	wind     string
	heading  int // -1 when unset
	course   int // -1 when unset
	tas      float64
	distance float64
	mph      bool
	statute  bool
	night    bool
	nearby   float64

	importShp string
	exportShp string

	saveProfile  string
	gph          float64
	fuelType     string
	usable       float64
	maxCrosswind float64
}

// oneShot reports whether the flags ask for printed output instead of the TUI
func (o options) oneShot() bool {
	return o.wind != "" || o.nearby > 0 || o.importShp != "" || o.exportShp != "" || o.saveProfile != ""
}

// run performs every non-interactive action the flags ask for
func run(o options, out io.Writer) error {
	svc := aircraft.NewService(aircraft.NewRepository(o.dbPath))
	if o.night {
		svc.SetReserve(fuel.NightReserve)
	}

	if o.saveProfile != "" {
		if err := saveProfile(svc, o, out); err != nil {
			return err
		}
	}
	if o.importShp != "" {
		if err := importShapefile(o, out); err != nil {
			return err
		}
	}
	if o.exportShp != "" {
		if err := exportShapefile(o, out); err != nil {
			return err
		}
	}
	if o.nearby > 0 {
		if err := listNearby(o, out); err != nil {
			return err
		}
	}
	if o.wind != "" {
		return resolveWind(svc, o, out)
	}
	return nil
}

// ensureReference provisions the airport tables on first use
func ensureReference(dbPath string) error {
	needed, err := runways.NeedsProvisioning(dbPath)
	if err != nil {
		return fmt.Errorf("checking database: %w", err)
	}
	if !needed {
		return nil
	}
	log.Println("Airport database not found, downloading from OurAirports...")
	return runways.ProvisionDatabase(dbPath, nil)
}

func saveProfile(svc *aircraft.Service, o options, out io.Writer) error {
	ft, err := fuel.ParseType(o.fuelType)
	if err != nil {
		return err
	}
	p := &models.AircraftProfile{
		Name:          o.saveProfile,
		CruiseTAS:     o.speed(o.tas),
		FuelBurnGPH:   o.gph,
		FuelType:      ft.String(),
		UsableFuelGal: o.usable,
		MaxCrosswind:  o.maxCrosswind,
	}
	if err := svc.SaveProfile(p); err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}
	fmt.Fprintf(out, "Saved profile %s (#%d)\n", p.Name, p.ID)
	return nil
}

func importShapefile(o options, out io.Writer) error {
	rws, err := runways.ImportShapefile(o.importShp)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(o.dbPath), 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	db, err := runways.GetDB(o.dbPath)
	if err != nil {
		return err
	}
	n, err := runways.ImportIntoDB(db, rws)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Imported %d runways from %s\n", n, o.importShp)
	return nil
}

func exportShapefile(o options, out io.Writer) error {
	if o.airport == "" {
		return errors.New("-export-shp requires -airport")
	}
	if err := ensureReference(o.dbPath); err != nil {
		return err
	}
	airport, err := runways.GetAirport(o.dbPath, o.airport)
	if err != nil {
		return err
	}
	rws, err := runways.GetRunways(o.dbPath, airport.Ident)
	if err != nil {
		return err
	}
	n, err := runways.ExportShapefile(o.exportShp, rws)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Exported %d of %d %s runways to %s\n", n, len(rws), airport.Ident, o.exportShp)
	return nil
}

func listNearby(o options, out io.Writer) error {
	if o.airport == "" {
		return errors.New("-nearby requires -airport")
	}
	if err := ensureReference(o.dbPath); err != nil {
		return err
	}
	origin, err := runways.GetAirport(o.dbPath, o.airport)
	if err != nil {
		return err
	}
	radius := o.nearby
	if o.statute {
		radius = conversion.StatuteToNautical(radius)
	}
	airports, err := runways.FindNearbyAirports(o.dbPath, origin.Latitude, origin.Longitude, radius)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%d airports within %.1f NM of %s\n", len(airports), radius, origin.Ident)
	for _, a := range airports {
		fmt.Fprintf(out, "%-8s %6.1f NM  %s, %s\n", a.Ident, a.Distance, a.Name, a.Municipality)
	}
	return nil
}

// resolveWind prints the wind against a runway heading, a course, or
// every runway at an airport.
func resolveWind(svc *aircraft.Service, o options, out io.Writer) error {
	wind, err := airspeed.ParseVector(o.wind)
	if err != nil {
		return err
	}
	// METAR groups carry their own KT unit
	if !strings.HasSuffix(strings.ToUpper(strings.TrimSpace(o.wind)), "KT") {
		wind.Speed = o.speed(wind.Speed)
	}

	var profile models.AircraftProfile
	if o.profile != "" {
		p, err := svc.GetProfile(o.profile)
		if err != nil {
			return err
		}
		profile = *p
	}

	if o.heading < 0 && o.course < 0 {
		if o.airport == "" {
			return errors.New("-wind needs -heading, -course or -airport")
		}
		return printRunwayWinds(o, wind, profile, out)
	}

	if o.heading >= 0 {
		wc := airspeed.Decompose(wind, o.heading)
		fmt.Fprintf(out, "Runway %03d: %s\n", o.heading, wc)
		if !aircraft.CheckCrosswind(profile, wc) {
			fmt.Fprintf(out, "Crosswind exceeds %s's %.0f kt limit\n", profile.Name, profile.MaxCrosswind)
		}
	}

	if o.course >= 0 {
		if o.tas > 0 {
			profile.CruiseTAS = o.speed(o.tas)
		}
		distance := o.distance
		if o.statute {
			distance = conversion.StatuteToNautical(distance)
		}
		plan, err := svc.PlanLeg(profile, o.course, distance, wind)
		if err != nil {
			return err
		}
		printPlan(plan, out)
	}
	return nil
}

func printRunwayWinds(o options, wind airspeed.PolarVector, profile models.AircraftProfile, out io.Writer) error {
	if err := ensureReference(o.dbPath); err != nil {
		return err
	}
	airport, err := runways.GetAirport(o.dbPath, o.airport)
	if err != nil {
		return err
	}
	rws, err := runways.GetRunways(o.dbPath, airport.Ident)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s %s, wind %s\n", airport.Ident, airport.Name, wind)
	analysis := runways.AnalyzeWind(rws, wind, profile.MaxCrosswind)
	for _, rw := range analysis {
		var flags []string
		if rw.ExceedsCrosswind {
			flags = append(flags, "over crosswind limit")
		}
		if rw.Tailwind {
			flags = append(flags, "tailwind")
		}
		line := fmt.Sprintf("%-4s %03d  %s", rw.End.Ident, rw.End.Heading(), rw.Components)
		if len(flags) > 0 {
			line += " (" + strings.Join(flags, ", ") + ")"
		}
		fmt.Fprintln(out, line)
	}
	if best, ok := runways.BestRunway(analysis); ok {
		fmt.Fprintf(out, "Best: runway %s\n", best.End.Ident)
	} else if len(analysis) > 0 {
		fmt.Fprintln(out, "No runway within limits")
	}
	return nil
}

func printPlan(plan *aircraft.LegPlan, out io.Writer) {
	fmt.Fprintf(out, "Course %03d at %.0f kt: heading %03d (%+d), groundspeed %.2f kt\n",
		plan.CourseDeg, plan.Profile.CruiseTAS, plan.HeadingDeg, plan.Correction, plan.GroundSpeed)
	if plan.DistanceNM <= 0 {
		return
	}
	d := plan.ETE.Round(time.Minute)
	fmt.Fprintf(out, "ETE %dh%02dm for %.1f NM\n", int(d.Hours()), int(d.Minutes())%60, plan.DistanceNM)
	if plan.Profile.FuelBurnGPH <= 0 {
		return
	}
	fmt.Fprintf(out, "Fuel %.1f gal (%.0f lb), reserve %.1f gal\n", plan.FuelGal, plan.FuelLb, plan.ReserveGal)
	if plan.Profile.UsableFuelGal > 0 && !plan.Sufficient {
		fmt.Fprintf(out, "Usable fuel %.1f gal does not cover the leg and reserve\n", plan.Profile.UsableFuelGal)
	}
}

// speed converts a flag speed to knots
func (o options) speed(v float64) float64 {
	if o.mph {
		return conversion.MphToKnots(v)
	}
	return v
}
