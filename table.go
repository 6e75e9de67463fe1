package routedb

import "fmt"

// A Table is a named grid of strings, as extracted from one CSV file. Rows are addressed by
// position; cells by header name. Nothing here knows what the columns mean.
type Table struct {
	Name      string
	Headers []string
	Rows    [][]string
}

func NewTable(name string, headers []string) *Table {
	return &Table{Name:name, Headers:headers, Rows:[][]string{}}
}

func (t *Table)String() string {
	return fmt.Sprintf("%s: %d cols, %d rows %v", t.Name, len(t.Headers), len(t.Rows), t.Headers)
}

func (t *Table)Len() int { if t == nil { return 0 }; return len(t.Rows) }

// Column returns the position of the named column, or -1.
func (t *Table)Column(name string) int {
	for i,h := range t.Headers {
		if h == name { return i }
	}
	return -1
}

func (t *Table)HasColumn(name string) bool { return t.Column(name) >= 0 }

// Get returns the cell, or "" if the column is unknown or the row is short.
func (t *Table)Get(row int, col string) string {
	i := t.Column(col)
	if i < 0 || row < 0 || row >= len(t.Rows) || i >= len(t.Rows[row]) { return "" }
	return t.Rows[row][i]
}

// Record returns the row as a map, from header to value.
func (t *Table)Record(row int) map[string]string {
	m := map[string]string{}
	for i,h := range t.Headers {
		if i < len(t.Rows[row]) { m[h] = t.Rows[row][i] }
	}
	return m
}

func (t1 *Table)Equal(t2 *Table) bool {
	if t1.Name != t2.Name || len(t1.Headers) != len(t2.Headers) || len(t1.Rows) != len(t2.Rows) {
		return false
	}
	for i := range t1.Headers {
		if t1.Headers[i] != t2.Headers[i] { return false }
	}
	for i := range t1.Rows {
		if len(t1.Rows[i]) != len(t2.Rows[i]) { return false }
		for j := range t1.Rows[i] {
			if t1.Rows[i][j] != t2.Rows[i][j] { return false }
		}
	}
	return true
}
