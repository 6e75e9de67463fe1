// Package schema restricts the raw tables to the columns we know about, and turns their
// rows into typed routedb records.
package schema

import(
	"fmt"

	"github.com/skypies/routedb"
)

// AllowedColumns lists, in order, the columns kept for each kind of table. Anything else
// in the raw table is dropped.
var AllowedColumns = map[routedb.TableKind][]string{
	routedb.Airlines: {
		"Airline ID", "Name", "Alias", "IATA", "ICAO", "Callsign", "Country", "Active",
	},
	routedb.Airplanes: {
		"Name", "IATA code", "ICAO code",
	},
	routedb.Airports: {
		"Airport ID", "Name", "City", "Country", "IATA", "ICAO", "Latitude", "Longitude",
		"Altitude", "Timezone", "DST", "Tz database time zone", "Type", "Source",
	},
	routedb.Routes: {
		"Airline", "Airline ID", "Source airport", "Source airport ID", "Destination airport",
		"Destination airport ID", "Codeshare", "Stops", "Equipment",
	},
}

// Tables holds the four projected tables. None of them are nil.
type Tables struct {
	Airlines  *routedb.Table
	Airplanes *routedb.Table
	Airports  *routedb.Table
	Routes    *routedb.Table
}

func (t Tables)String() string {
	return fmt.Sprintf("airlines:%d airplanes:%d airports:%d routes:%d",
		t.Airlines.Len(), t.Airplanes.Len(), t.Airports.Len(), t.Routes.Len())
}

// {{{ Project

// Project returns a new table with just the allowed columns for kind, in allow-list
// order; values are copied untouched. A nil raw table projects to an empty table with
// the allowed headers. A raw table that lacks an allowed column is a FormatError.
// Projecting a projected table returns an equal table.
func Project(kind routedb.TableKind, raw *routedb.Table) (*routedb.Table, error) {
	allowed,exists := AllowedColumns[kind]
	if !exists {
		return nil, routedb.ValidationError{Field:"table kind", Value:string(kind), Reason:"not known"}
	}

	headers := append([]string{}, allowed...)
	out := routedb.NewTable(kind.Key(), headers)
	if raw == nil { return out, nil }

	cols := make([]int, len(allowed))
	for i,name := range allowed {
		if cols[i] = raw.Column(name); cols[i] < 0 {
			return nil, routedb.FormatError{Source:raw.Name, Err:fmt.Errorf("column '%s' missing", name)}
		}
	}

	out.Rows = make([][]string, len(raw.Rows))
	for i,rawRow := range raw.Rows {
		row := make([]string, len(cols))
		for j,col := range cols {
			if col < len(rawRow) { row[j] = rawRow[col] }
		}
		out.Rows[i] = row
	}

	return out, nil
}

// }}}
// {{{ ProjectAll

// ProjectAll projects the four known tables out of an extraction result. Other tables
// are ignored.
func ProjectAll(raw map[string]*routedb.Table) (Tables, error) {
	projected := map[routedb.TableKind]*routedb.Table{}
	for _,kind := range routedb.AllTableKinds {
		t,err := Project(kind, raw[kind.Key()])
		if err != nil { return Tables{}, err }
		projected[kind] = t
	}

	return Tables{
		Airlines:  projected[routedb.Airlines],
		Airplanes: projected[routedb.Airplanes],
		Airports:  projected[routedb.Airports],
		Routes:    projected[routedb.Routes],
	}, nil
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
