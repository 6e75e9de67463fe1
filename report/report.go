// Package report turns query results into tables, CSV and PDF.
package report

import(
	"fmt"
	"sort"
	"strings"

	"github.com/skypies/util/histogram"

	"github.com/skypies/routedb/dataset"
)

// A Summary is a named bag of counters and values, a table of rows, and a histogram of
// route distances.
type Summary struct {
	Name        string

	HeadersText []string
	RowsText    [][]string

	I           map[string]int
	F           map[string]float64
	S           map[string]string
	H           histogram.Histogram
	Distances   []float64 // exactly what went into H
}

func BlankSummary(name string) Summary {
	return Summary{
		Name: name,
		I: map[string]int{},
		F: map[string]float64{},
		S: map[string]string{},
		RowsText: [][]string{},
		HeadersText: []string{},
		Distances: []float64{},
		H: histogram.Histogram{ValMin:0, ValMax:dataset.HistogramMaxKM, NumBuckets:dataset.HistogramBuckets},
	}
}

func (s *Summary)SetHeaders(headers []string) {
	if len(s.HeadersText) == 0 { s.HeadersText = headers }
}
func (s *Summary)AddRow(text []string) { s.RowsText = append(s.RowsText, text) }

// {{{ FromCountryReport

var legHeaders = []string{"Airline", "Source", "Destination", "Domestic", "Distance (km)", "Haul"}

// FromCountryReport lists the legs of the report, and adds up its numbers. The histogram
// and Distances both hold exactly the legs' distances.
func FromCountryReport(cr dataset.CountryReport) Summary {
	scope := "all flights"
	if cr.Internal { scope = "domestic flights" }
	s := BlankSummary(fmt.Sprintf("%s, %s", cr.Country, scope))

	s.S["[A] Country"] = cr.Country
	s.S["[A] Scope"] = scope
	s.F["[B] Threshold (km)"] = cr.Summary.ThresholdKM
	s.F["[B] Train/plane emissions ratio"] = cr.TrainPlaneRatio
	s.I["[C] Short haul legs"] = cr.Summary.ShortCount
	s.F["[C] Short haul distance (km)"] = cr.Summary.ShortKM
	s.I["[D] Long haul legs"] = cr.Summary.LongCount
	s.F["[D] Long haul distance (km)"] = cr.Summary.LongKM
	if cr.HasRatio {
		s.F["[E] Emissions left after switching short haul to train"] = cr.EmissionsRatio
	} else {
		s.S["[E] Emissions left after switching short haul to train"] = "n/a (no distance)"
	}

	s.SetHeaders(legHeaders)
	for _,l := range cr.Legs {
		haul := "long"
		if l.DistanceKM < cr.Summary.ThresholdKM { haul = "short" }
		s.AddRow([]string{
			l.Airline,
			l.Source.IATA,
			l.Destination.IATA,
			fmt.Sprintf("%v", l.Domestic),
			fmt.Sprintf("%.1f", l.DistanceKM),
			haul,
		})
		s.Distances = append(s.Distances, l.DistanceKM)
		s.H.Add(histogram.ScalarVal(l.DistanceKM))
	}

	return s
}

// }}}
// {{{ s.MetadataTable

// MetadataTable flattens the counters and values into sorted key/value pairs.
func (s *Summary)MetadataTable() [][]string {
	all := map[string]string{}

	for k,v := range s.I { all[k] = fmt.Sprintf("%d", v) }
	for k,v := range s.F { all[k] = fmt.Sprintf("%.3f", v) }
	for k,v := range s.S { all[k] = v }

	if stats,valid := s.H.Stats(); valid {
		all["[Z] distances, N"] = fmt.Sprintf("%d", stats.N)
		all["[Z] distances, Mean"] = fmt.Sprintf("%.0f", stats.Mean)
		all["[Z] distances, Stddev"] = fmt.Sprintf("%.0f", stats.Stddev)
		all["[Z] distances, 50%ile"] = fmt.Sprintf("%v", stats.Percentile50)
		all["[Z] distances, 90%ile"] = fmt.Sprintf("%v", stats.Percentile90)
	}

	keys := []string{}
	for k,_ := range all { keys = append(keys, k) }
	sort.Strings(keys)

	out := [][]string{}
	for _,k := range keys {
		out = append(out, []string{k, all[k]})
	}

	return out
}

// }}}
// {{{ s.String

func (s Summary)String() string {
	str := fmt.Sprintf("==== %s ====\n", s.Name)
	for _,kv := range s.MetadataTable() {
		str += fmt.Sprintf("%-60.60s %s\n", kv[0], kv[1])
	}
	if len(s.RowsText) > 0 {
		str += "\n" + strings.Join(s.HeadersText, " | ") + "\n"
		for _,row := range s.RowsText {
			str += strings.Join(row, " | ") + "\n"
		}
	}
	return str
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
