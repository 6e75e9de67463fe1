package zipdata

import(
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// {{{ notes

/* The flight data comes as a zip of CSV files, one per table.

Each file has a header row, and every row must have as many values as the
header. The first header is often blank (a saved row index). e.g.

,Airport ID,Name,City,Country,IATA,ICAO,Latitude,Longitude,...
0,1,Goroka Airport,Goroka,Papua New Guinea,GKA,AYGA,-6.081689834590001,145.391998291,...

Values are kept as strings; nothing here knows what they mean.
 */

// }}}

type RowReader struct {
	csvreader  *csv.Reader
	headers   []string
	line        int
}

func NewRowReader(ioreader io.Reader) *RowReader {
	rdr := RowReader{
		csvreader: csv.NewReader(ioreader),
	}
	rdr.csvreader.ReuseRecord = false
	return &rdr
}

// {{{ rdr.Headers

// Headers reads the header row, if it hasn't been read yet. A UTF-8 byte order mark on
// the first header is dropped.
func (r *RowReader)Headers() ([]string, error) {
	if r.headers != nil { return r.headers, nil }

	vals,err := r.csvreader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("no header row")
	} else if err != nil {
		return nil, err
	}
	r.line = 1

	if len(vals) > 0 { vals[0] = strings.TrimPrefix(vals[0], "\ufeff") }
	r.headers = vals
	return r.headers, nil
}

// }}}
// {{{ rdr.Read

// Read returns the next row, or io.EOF.
func (r *RowReader)Read() ([]string, error) {
	if _,err := r.Headers(); err != nil { return nil, err }

	vals,err := r.csvreader.Read()
	if err != nil { return nil, err }
	r.line++

	if len(r.headers) != len(vals) {
		return nil, fmt.Errorf("header/val mismatch (%d/%d)", len(r.headers), len(vals))
	}

	return vals, nil
}

// Line is the line number of the row most recently read (the header is line 1).
func (r *RowReader)Line() int { return r.line }

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
