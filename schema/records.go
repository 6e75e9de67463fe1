package schema

import(
	"fmt"
	"strconv"
	"strings"

	"github.com/skypies/routedb"
)

// An Issue flags a field in a row that couldn't be turned into what its record wants.
// The row is still kept; the field is left at its zero value.
type Issue struct {
	Table   routedb.TableKind
	Row     int
	Field   string
	Value   string
	Reason  string
}

func (i Issue)String() string {
	return fmt.Sprintf("%s[%d] %s='%s': %s", i.Table, i.Row, i.Field, i.Value, i.Reason)
}

// {{{ rowReader

type rowReader struct {
	kind     routedb.TableKind
	t       *routedb.Table
	issues []Issue
}

// str returns the field, trimmed, with the null marker read as empty.
func (rr *rowReader)str(row int, col string) string {
	v := strings.TrimSpace(rr.t.Get(row, col))
	if v == routedb.NullField { return "" }
	return v
}

func (rr *rowReader)flag(row int, col, val, reason string) {
	rr.issues = append(rr.issues, Issue{Table:rr.kind, Row:row, Field:col, Value:val, Reason:reason})
}

// required flags the field if it is empty
func (rr *rowReader)required(row int, col string) string {
	v := rr.str(row, col)
	if v == "" { rr.flag(row, col, rr.t.Get(row, col), "required field is empty") }
	return v
}

// integer returns 0 for an empty field
func (rr *rowReader)integer(row int, col string) int {
	v := rr.str(row, col)
	if v == "" { return 0 }
	i,err := strconv.Atoi(v)
	if err != nil {
		// IDs sometimes come through as floats ("340.0")
		if f,ferr := strconv.ParseFloat(v, 64); ferr == nil && f == float64(int(f)) { return int(f) }
		rr.flag(row, col, v, "not an integer")
	}
	return i
}

func (rr *rowReader)number(row int, col string) float64 {
	v := rr.str(row, col)
	if v == "" { return 0 }
	f,err := strconv.ParseFloat(v, 64)
	if err != nil { rr.flag(row, col, v, "not a number") }
	return f
}

func (rr *rowReader)yes(row int, col string) bool {
	return strings.EqualFold(rr.str(row, col), "Y")
}

// }}}

// {{{ Airports

// Airports turns a projected airports table into records. An airport with a missing or
// unusable position is kept, but has HasLatlong false, and is flagged.
func Airports(t *routedb.Table) ([]routedb.Airport, []Issue) {
	rr := rowReader{kind:routedb.Airports, t:t}
	out := make([]routedb.Airport, t.Len())

	for i := range out {
		a := routedb.Airport{
			Row: i,
			ID: rr.integer(i, "Airport ID"),
			Name: rr.str(i, "Name"),
			City: rr.str(i, "City"),
			Country: rr.str(i, "Country"),
			IATA: rr.str(i, "IATA"),
			ICAO: rr.str(i, "ICAO"),
			AltitudeFeet: rr.number(i, "Altitude"),
			TimezoneHours: rr.number(i, "Timezone"),
			DST: rr.str(i, "DST"),
			TzDatabaseZone: rr.str(i, "Tz database time zone"),
			Type: rr.str(i, "Type"),
			Source: rr.str(i, "Source"),
		}

		latStr, longStr := rr.str(i, "Latitude"), rr.str(i, "Longitude")
		if latStr == "" || longStr == "" {
			rr.flag(i, "Latitude/Longitude", latStr+","+longStr, "position missing")
		} else if pos,err := routedb.ParseLatlong(latStr, longStr); err != nil {
			rr.flag(i, "Latitude/Longitude", latStr+","+longStr, err.Error())
		} else {
			a.Latlong = pos
			a.HasLatlong = true
		}

		out[i] = a
	}

	return out, rr.issues
}

// }}}
// {{{ Routes

// Routes turns a projected routes table into records, one per row, in row order. Rows
// without a source or destination airport are flagged, but kept.
func Routes(t *routedb.Table) ([]routedb.Route, []Issue) {
	rr := rowReader{kind:routedb.Routes, t:t}
	out := make([]routedb.Route, t.Len())

	for i := range out {
		out[i] = routedb.Route{
			Row: i,
			Airline: rr.str(i, "Airline"),
			AirlineID: rr.integer(i, "Airline ID"),
			SourceAirport: rr.required(i, "Source airport"),
			SourceAirportID: rr.integer(i, "Source airport ID"),
			DestinationAirport: rr.required(i, "Destination airport"),
			DestinationAirportID: rr.integer(i, "Destination airport ID"),
			Codeshare: rr.yes(i, "Codeshare"),
			Stops: rr.integer(i, "Stops"),
			Equipment: rr.str(i, "Equipment"),
		}
	}

	return out, rr.issues
}

// }}}
// {{{ Airlines, Airplanes

func Airlines(t *routedb.Table) ([]routedb.Airline, []Issue) {
	rr := rowReader{kind:routedb.Airlines, t:t}
	out := make([]routedb.Airline, t.Len())

	for i := range out {
		out[i] = routedb.Airline{
			ID: rr.integer(i, "Airline ID"),
			Name: rr.required(i, "Name"),
			Alias: rr.str(i, "Alias"),
			IATA: rr.str(i, "IATA"),
			ICAO: rr.str(i, "ICAO"),
			Callsign: rr.str(i, "Callsign"),
			Country: rr.str(i, "Country"),
			Active: rr.yes(i, "Active"),
		}
	}

	return out, rr.issues
}

func Airplanes(t *routedb.Table) ([]routedb.Airplane, []Issue) {
	rr := rowReader{kind:routedb.Airplanes, t:t}
	out := make([]routedb.Airplane, t.Len())

	for i := range out {
		out[i] = routedb.Airplane{
			Name: rr.required(i, "Name"),
			IATACode: rr.str(i, "IATA code"),
			ICAOCode: rr.str(i, "ICAO code"),
		}
	}

	return out, rr.issues
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
