package runways

import (
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/ngmaloney/e6b-terminal/internal/models"
)

// Centerline shapefile attribute names
const (
	fieldAirport = "AIRPORT"
	fieldLeIdent = "LE_IDENT"
	fieldHeIdent = "HE_IDENT"
	fieldLeHdg   = "LE_HDG"
	fieldHeHdg   = "HE_HDG"
	fieldLength  = "LENGTH_FT"
)

// ExportShapefile writes runways as two-point PolyLine centerlines from
// the low end threshold to the high end threshold. Runways without both
// threshold positions are skipped. It returns the number written.
func ExportShapefile(path string, runways []models.Runway) (int, error) {
	shape, err := shp.Create(path, shp.POLYLINE)
	if err != nil {
		return 0, fmt.Errorf("creating shapefile: %w", err)
	}
	defer shape.Close()

	fields := []shp.Field{
		shp.StringField(fieldAirport, 10),
		shp.StringField(fieldLeIdent, 6),
		shp.StringField(fieldHeIdent, 6),
		shp.FloatField(fieldLeHdg, 7, 2),
		shp.FloatField(fieldHeHdg, 7, 2),
		shp.NumberField(fieldLength, 6),
	}
	if err := shape.SetFields(fields); err != nil {
		return 0, fmt.Errorf("setting fields: %w", err)
	}

	count := 0
	for _, rw := range runways {
		if !rw.Low.HasPosition() || !rw.High.HasPosition() {
			continue
		}

		line := shp.NewPolyLine([][]shp.Point{{
			{X: rw.Low.Longitude, Y: rw.Low.Latitude},
			{X: rw.High.Longitude, Y: rw.High.Latitude},
		}})
		n := int(shape.Write(line))

		for i, v := range []interface{}{
			rw.AirportIdent,
			rw.Low.Ident,
			rw.High.Ident,
			rw.Low.HeadingTrue,
			rw.High.HeadingTrue,
			rw.LengthFt,
		} {
			if err := shape.WriteAttribute(n, i, v); err != nil {
				return count, fmt.Errorf("writing %s attribute %d: %w", rw.Name(), i, err)
			}
		}
		count++
	}

	return count, nil
}

// ImportShapefile reads runway centerlines. Attributes are matched by
// field name; the first and last vertex of each line become the low and
// high thresholds. Headings missing from the attributes are computed
// from the geometry.
func ImportShapefile(path string) ([]models.Runway, error) {
	shape, err := shp.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening shapefile: %w", err)
	}
	defer shape.Close()

	index := make(map[string]int)
	for i, f := range shape.Fields() {
		name := strings.ToUpper(strings.TrimRight(string(f.Name[:]), "\x00"))
		index[name] = i
	}
	if _, ok := index[fieldAirport]; !ok {
		return nil, fmt.Errorf("shapefile has no %s field", fieldAirport)
	}

	var runways []models.Runway
	for shape.Next() {
		n, p := shape.Shape()

		line, ok := p.(*shp.PolyLine)
		if !ok || len(line.Points) < 2 {
			log.Printf("Skipping shape %d: not a runway centerline", n)
			continue
		}

		attr := func(field string) string {
			i, ok := index[field]
			if !ok {
				return ""
			}
			return strings.Trim(shape.ReadAttribute(n, i), " \x00")
		}

		first, last := line.Points[0], line.Points[len(line.Points)-1]
		rw := models.Runway{
			AirportIdent: strings.ToUpper(attr(fieldAirport)),
			LengthFt:     parseInt(attr(fieldLength)),
			Low: models.RunwayEnd{
				Ident:       strings.ToUpper(attr(fieldLeIdent)),
				HeadingTrue: parseFloat(attr(fieldLeHdg)),
				Latitude:    first.Y,
				Longitude:   first.X,
			},
			High: models.RunwayEnd{
				Ident:       strings.ToUpper(attr(fieldHeIdent)),
				HeadingTrue: parseFloat(attr(fieldHeHdg)),
				Latitude:    last.Y,
				Longitude:   last.X,
			},
		}
		if rw.AirportIdent == "" || rw.Low.Ident == "" {
			log.Printf("Skipping shape %d: missing airport or runway ident", n)
			continue
		}

		// Centerlines carry both thresholds, so no designator is consulted
		resolveHeadings(&rw, func() float64 { return 0 })
		runways = append(runways, rw)
	}

	return runways, nil
}

// ImportIntoDB stores imported runways, replacing rows with the same
// airport and end idents.
func ImportIntoDB(db *sql.DB, runways []models.Runway) (int, error) {
	if err := EnsureSchema(db); err != nil {
		return 0, err
	}
	return insertRunways(db, runways, nil)
}
