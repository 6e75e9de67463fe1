package zipdata

import(
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/skypies/routedb"
	"github.com/skypies/routedb/routedbtest"
)

func TestTableKey(t *testing.T) {
	tests := map[string]string{
		"airports.csv":          "airports_df",
		"data/routes.csv":       "routes_df",
		"nested/dir/x.y.csv":    "x.y_df",
	}
	for in,expected := range tests {
		if actual := TableKey(in); actual != expected {
			t.Errorf("%q: expected %q, got %q", in, expected, actual)
		}
	}

	for _,name := range []string{"README.txt", "__MACOSX/airports.csv", "data/._airports.csv", "x.csv.gz"} {
		if IsTabular(name) { t.Errorf("%q should not be tabular", name) }
	}
}

func TestExtract(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flight_data.zip")
	if err := routedbtest.WriteArchive(path, routedbtest.Entries()); err != nil { t.Fatal(err) }

	tables,err := Extract(path)
	if err != nil { t.Fatal(err) }

	if len(tables) != 4 {
		t.Errorf("expected 4 tables, got %d: %v", len(tables), tables)
	}
	for _,k := range []string{"airlines_df", "airplanes_df", "airports_df", "routes_df"} {
		if _,exists := tables[k]; !exists { t.Errorf("table %s missing", k) }
	}

	routes := tables["routes_df"]
	if routes.Len() != 10 {
		t.Errorf("expected 10 routes, got %d", routes.Len())
	}
	if routes.Headers[0] != "" || routes.Headers[1] != "Airline" {
		t.Errorf("headers not as in the file: %v", routes.Headers)
	}
	if v := routes.Get(7, "Destination airport ID"); v != `\N` {
		t.Errorf("null marker should be kept as-is; got %q", v)
	}
	if v := routes.Get(6, "Equipment"); v != "" {
		t.Errorf("empty equipment: got %q", v)
	}
}

func TestExtractMissingArchive(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.zip")
	_,err := Extract(missing)

	var nf routedb.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if nf.Value != missing { t.Errorf("error should name the path: %v", err) }
}

func TestExtractBadEntry(t *testing.T) {
	entries := routedbtest.Entries()
	entries["routes.csv"] = ",Airline,Stops\n0,LH,0\n1,KL\n"

	data,err := routedbtest.ZipBytes(entries)
	if err != nil { t.Fatal(err) }

	tables,err := ExtractFrom("broken.zip", bytes.NewReader(data), int64(len(data)))
	var ferr routedb.FormatError
	if !errors.As(err, &ferr) {
		t.Fatalf("expected FormatError, got %v", err)
	}
	if tables != nil { t.Errorf("partial result returned: %v", tables) }
	if !strings.Contains(ferr.Source, "routes.csv") {
		t.Errorf("error should name the entry: %v", err)
	}
}

func TestExtractEmptyEntry(t *testing.T) {
	data,_ := routedbtest.ZipBytes(map[string]string{"airlines.csv": ""})
	_,err := ExtractFrom("empty.zip", bytes.NewReader(data), int64(len(data)))
	var ferr routedb.FormatError
	if !errors.As(err, &ferr) {
		t.Errorf("expected FormatError for an empty csv, got %v", err)
	}
}

func TestExtractNotAZip(t *testing.T) {
	_,err := ExtractFrom("junk.zip", strings.NewReader("definitely not a zip"), 20)
	var ferr routedb.FormatError
	if !errors.As(err, &ferr) {
		t.Errorf("expected FormatError, got %v", err)
	}
}

func TestRowReader(t *testing.T) {
	rr := NewRowReader(strings.NewReader("\ufeffName,IATA\nFrankfurt,FRA\n"))
	headers,err := rr.Headers()
	if err != nil { t.Fatal(err) }
	if headers[0] != "Name" { t.Errorf("BOM not stripped: %q", headers[0]) }

	row,err := rr.Read()
	if err != nil || row[1] != "FRA" || rr.Line() != 2 {
		t.Errorf("row: %v, %v, line %d", row, err, rr.Line())
	}
	if _,err := rr.Read(); err != io.EOF {
		t.Errorf("expected EOF, got %v", err)
	}
}
