package schema

// go test -v github.com/skypies/routedb/schema

import(
	"bytes"
	"errors"
	"testing"

	"github.com/skypies/routedb"
	"github.com/skypies/routedb/routedbtest"
	"github.com/skypies/routedb/zipdata"
)

func fixtureTables(t *testing.T) map[string]*routedb.Table {
	data,err := routedbtest.ZipBytes(routedbtest.Entries())
	if err != nil { t.Fatal(err) }
	tables,err := zipdata.ExtractFrom("fixture.zip", bytes.NewReader(data), int64(len(data)))
	if err != nil { t.Fatal(err) }
	return tables
}

func TestProject(t *testing.T) {
	raw := fixtureTables(t)

	for _,kind := range routedb.AllTableKinds {
		p,err := Project(kind, raw[kind.Key()])
		if err != nil { t.Fatalf("%s: %v", kind, err) }

		if len(p.Headers) != len(AllowedColumns[kind]) {
			t.Errorf("%s: expected %d columns, got %v", kind, len(AllowedColumns[kind]), p.Headers)
		}
		for i,h := range AllowedColumns[kind] {
			if p.Headers[i] != h { t.Errorf("%s: column %d is %q, not %q", kind, i, p.Headers[i], h) }
		}
		if p.Len() != raw[kind.Key()].Len() {
			t.Errorf("%s: row count changed: %d -> %d", kind, raw[kind.Key()].Len(), p.Len())
		}
		if p.HasColumn("") || p.HasColumn("Notes") {
			t.Errorf("%s: unlisted column survived: %v", kind, p.Headers)
		}

		// Projection is idempotent
		again,err := Project(kind, p)
		if err != nil { t.Fatal(err) }
		if !again.Equal(p) { t.Errorf("%s: projecting twice changed the table", kind) }

		// ... and deterministic
		other,_ := Project(kind, raw[kind.Key()])
		if !other.Equal(p) { t.Errorf("%s: projection not deterministic", kind) }
	}

	p,_ := Project(routedb.Airports, raw["airports_df"])
	if v := p.Get(0, "Latitude"); v != "50.033333" {
		t.Errorf("values should be copied untouched; got %q", v)
	}
}

func TestProjectAbsentTable(t *testing.T) {
	tables,err := ProjectAll(map[string]*routedb.Table{})
	if err != nil { t.Fatal(err) }

	for _,tbl := range []*routedb.Table{tables.Airlines, tables.Airplanes, tables.Airports, tables.Routes} {
		if tbl == nil || tbl.Len() != 0 || len(tbl.Headers) == 0 {
			t.Errorf("absent table should be empty with headers: %v", tbl)
		}
	}
}

func TestProjectMissingColumn(t *testing.T) {
	raw := routedb.NewTable("airplanes_df", []string{"Name", "IATA code"})
	_,err := Project(routedb.Airplanes, raw)

	var ferr routedb.FormatError
	if !errors.As(err, &ferr) {
		t.Errorf("expected FormatError, got %v", err)
	}
}

func TestProjectUnknownKind(t *testing.T) {
	if _,err := Project(routedb.TableKind("countries"), nil); err == nil {
		t.Errorf("unknown kind accepted")
	}
}

func TestTypedRecords(t *testing.T) {
	tables,err := ProjectAll(fixtureTables(t))
	if err != nil { t.Fatal(err) }

	airports,issues := Airports(tables.Airports)
	if len(issues) != 0 { t.Errorf("unexpected issues: %v", issues) }
	if len(airports) != 8 { t.Fatalf("expected 8 airports, got %d", len(airports)) }

	fra := airports[0]
	if fra.IATA != "FRA" || !fra.HasLatlong || fra.Lat != 50.033333 || fra.Long != 8.570556 {
		t.Errorf("FRA: %+v", fra)
	}
	if fra.AltitudeFeet != 364 || fra.TzDatabaseZone != "Europe/Berlin" || fra.ID != 340 {
		t.Errorf("FRA details: %+v", fra)
	}
	if hbf := airports[7]; hbf.IATA != "" || hbf.ICAO != "" {
		t.Errorf("null marker should read as empty: %+v", hbf)
	}

	routes,issues := Routes(tables.Routes)
	if len(issues) != 0 { t.Errorf("unexpected issues: %v", issues) }
	if len(routes) != 10 { t.Fatalf("expected 10 routes, got %d", len(routes)) }
	if r := routes[3]; !r.Codeshare || r.Airline != "KL" || r.SourceAirportID != 580 {
		t.Errorf("route 3: %+v", r)
	}
	if r := routes[7]; r.DestinationAirportID != 0 || r.DestinationAirport != "ZZZ" {
		t.Errorf("route 7: %+v", r)
	}
	if codes := routes[6].EquipmentCodes(); len(codes) != 0 {
		t.Errorf("empty equipment gave codes: %v", codes)
	}
	if codes := routes[0].EquipmentCodes(); len(codes) != 2 || codes[1] != "319" {
		t.Errorf("route 0 equipment: %v", codes)
	}

	airlines,_ := Airlines(tables.Airlines)
	if len(airlines) != 4 || !airlines[0].Active || airlines[0].Alias != "" {
		t.Errorf("airlines: %v", airlines)
	}
	airplanes,_ := Airplanes(tables.Airplanes)
	if len(airplanes) != 7 || airplanes[6].ICAOCode != "" || airplanes[3].IATACode != "73H" {
		t.Errorf("airplanes: %v", airplanes)
	}
}

func TestTypedRecordIssues(t *testing.T) {
	airportsRaw := routedb.NewTable("airports_df", AllowedColumns[routedb.Airports])
	airportsRaw.Rows = [][]string{
		{"1", "Nowhere", "X", "Y", "NOW", "XNOW", "north", "8.5", "0", "1", "E", "", "airport", ""},
		{"2", "Faraway", "X", "Y", "FAR", "XFAR", "95.0", "8.5", "0", "1", "E", "", "airport", ""},
		{"3", "Unknown", "X", "Y", "UNK", "XUNK", `\N`, `\N`, "0", "1", "E", "", "airport", ""},
	}
	airports,issues := Airports(airportsRaw)
	if len(airports) != 3 || len(issues) != 3 {
		t.Fatalf("expected 3 airports and 3 issues; got %d, %v", len(airports), issues)
	}
	for _,a := range airports {
		if a.HasLatlong { t.Errorf("%s should have no position", a.IATA) }
	}

	routesRaw := routedb.NewTable("routes_df", AllowedColumns[routedb.Routes])
	routesRaw.Rows = [][]string{
		{"LH", "3320", "", "", "FRA", "340", "", "zero", "320"},
	}
	routes,issues := Routes(routesRaw)
	if len(routes) != 1 || len(issues) != 2 {
		t.Errorf("expected 1 route with 2 issues; got %v, %v", routes, issues)
	}
}
