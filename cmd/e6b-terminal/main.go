package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ngmaloney/e6b-terminal/internal/database"
	"github.com/ngmaloney/e6b-terminal/internal/ui"
)

func main() {
	opts := options{}

	flag.StringVar(&opts.airport, "airport", "", "Airport identifier to load directly (ICAO, IATA or local, e.g. KBOS)")
	flag.StringVar(&opts.profile, "profile", "", "Name of a saved aircraft profile to use")
	flag.StringVar(&opts.dbPath, "db", database.DBPath(), "Path to the SQLite database")

	flag.StringVar(&opts.wind, "wind", "", "Wind as DIR@SPEED or METAR style (e.g. 270@15, 27015G25KT); prints results and exits")
	flag.IntVar(&opts.heading, "heading", -1, "Runway heading to resolve -wind against, degrees true")
	flag.IntVar(&opts.course, "course", -1, "Course to plan a leg on with -wind, degrees true")
	flag.Float64Var(&opts.tas, "tas", 0, "True airspeed for -course, overrides the profile's cruise TAS")
	flag.Float64Var(&opts.distance, "distance", 0, "Leg distance for -course")
	flag.BoolVar(&opts.mph, "mph", false, "Read -wind (unless METAR style) and -tas speeds as statute miles per hour")
	flag.BoolVar(&opts.statute, "sm", false, "Read -distance and -nearby as statute miles")
	flag.BoolVar(&opts.night, "night", false, "Plan -course legs with the night VFR fuel reserve")
	flag.Float64Var(&opts.nearby, "nearby", 0, "List airports within this many NM of -airport and exit")

	flag.StringVar(&opts.importShp, "import-shp", "", "Import runways from a polyline shapefile and exit")
	flag.StringVar(&opts.exportShp, "export-shp", "", "Export -airport's runways to a polyline shapefile and exit")

	flag.StringVar(&opts.saveProfile, "save-profile", "", "Save an aircraft profile with this name and exit (uses -tas, -gph, -fuel, -usable, -max-xwind)")
	flag.Float64Var(&opts.gph, "gph", 0, "Fuel burn in gallons per hour for -save-profile")
	flag.StringVar(&opts.fuelType, "fuel", "100LL", "Fuel type for -save-profile (100LL, JET-A, MOGAS)")
	flag.Float64Var(&opts.usable, "usable", 0, "Usable fuel in gallons for -save-profile")
	flag.Float64Var(&opts.maxCrosswind, "max-xwind", 0, "Maximum demonstrated crosswind in knots for -save-profile")
	flag.Parse()

	if opts.oneShot() {
		if err := run(opts, os.Stdout); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	m := ui.NewModel(ui.Options{
		DBPath:  opts.dbPath,
		Airport: opts.airport,
		Profile: opts.profile,
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running application: %v\n", err)
		os.Exit(1)
	}
}
