// Package zipdata reads every CSV file out of a zip archive into a routedb.Table.
package zipdata

import(
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"

	"github.com/skypies/routedb"
)

const(
	TabularSuffix = ".csv"
	KeySuffix     = "_df"
)

// TableKey maps an archive entry name to the key its table is stored under:
// "data/airports.csv" -> "airports_df".
func TableKey(entryName string) string {
	return strings.TrimSuffix(path.Base(entryName), TabularSuffix) + KeySuffix
}

// IsTabular is true for entries that should be read as tables. Resource-fork droppings
// from macOS zip tools (__MACOSX/, ._foo.csv) are not tables.
func IsTabular(entryName string) bool {
	if !strings.HasSuffix(entryName, TabularSuffix) { return false }
	if strings.HasPrefix(entryName, "__MACOSX/") || strings.HasPrefix(path.Base(entryName), "._") {
		return false
	}
	return true
}

// {{{ Extract

// Extract opens the archive and reads each tabular entry into a table, keyed by
// TableKey. A missing archive is a routedb.NotFoundError; an entry that can't be read
// as CSV is a routedb.FormatError, and no tables are returned.
func Extract(archivePath string) (map[string]*routedb.Table, error) {
	rc,err := zip.OpenReader(archivePath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, routedb.NotFoundError{Kind:"archive", Value:archivePath}
	} else if err != nil {
		return nil, routedb.FormatError{Source:archivePath, Err:err}
	}
	defer rc.Close()

	return extractFiles(filepath.Base(archivePath), rc.File)
}

// ExtractFrom is Extract, for an archive that is already in memory (or otherwise
// seekable).
func ExtractFrom(name string, r io.ReaderAt, size int64) (map[string]*routedb.Table, error) {
	zr,err := zip.NewReader(r, size)
	if err != nil { return nil, routedb.FormatError{Source:name, Err:err} }
	return extractFiles(name, zr.File)
}

func extractFiles(archiveName string, files []*zip.File) (map[string]*routedb.Table, error) {
	tables := map[string]*routedb.Table{}
	from := map[string]string{}

	for _,f := range files {
		if f.FileInfo().IsDir() || !IsTabular(f.Name) { continue }

		key := TableKey(f.Name)
		src := archiveName + ":" + f.Name
		if prev,exists := from[key]; exists {
			return nil, routedb.FormatError{Source:src, Err:fmt.Errorf("table %s already read from %s", key, prev)}
		}

		t,err := readEntry(f, key, src)
		if err != nil { return nil, err }

		tables[key] = t
		from[key] = f.Name
	}

	return tables, nil
}

// }}}
// {{{ readEntry

func readEntry(f *zip.File, key, src string) (*routedb.Table, error) {
	rdr,err := f.Open()
	if err != nil { return nil, routedb.FormatError{Source:src, Err:err} }
	defer rdr.Close()

	rowReader := NewRowReader(rdr)
	headers,err := rowReader.Headers()
	if err != nil { return nil, routedb.FormatError{Source:src, Line:1, Err:err} }

	t := routedb.NewTable(key, headers)
	for {
		row,err := rowReader.Read()
		if err == io.EOF { break }
		if err != nil {
			return nil, routedb.FormatError{Source:src, Line:rowReader.Line()+1, Err:err}
		}
		t.Rows = append(t.Rows, row)
	}

	return t, nil
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
