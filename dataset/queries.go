package dataset

import(
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/skypies/routedb"
)

// A Leg is a route whose endpoints both resolve to airports with positions.
type Leg struct {
	routedb.EnrichedRoute
	Source       routedb.Airport
	Destination  routedb.Airport
	Domestic     bool // both airports are in the same country
}

func (l Leg)String() string {
	kind := "intl"
	if l.Domestic { kind = "dom" }
	return fmt.Sprintf("%s-%s [%s] %.1fkm", l.Source.IATA, l.Destination.IATA, kind, l.DistanceKM)
}

// {{{ ds.Countries, ds.Airport, ds.AirportsIn

// Countries lists every country that has an airport, sorted.
func (ds *Dataset)Countries() []string {
	seen := map[string]bool{}
	for _,a := range ds.airports {
		if a.Country != "" { seen[a.Country] = true }
	}
	out := []string{}
	for c,_ := range seen { out = append(out, c) }
	sort.Strings(out)
	return out
}

func (ds *Dataset)countryErr(country string) error {
	return routedb.NotFoundError{Kind:"country", Value:country, Known:ds.Countries()}
}
func (ds *Dataset)airportErr(code string) error {
	return routedb.NotFoundError{Kind:"airport code", Value:code, Known:ds.index.Codes()}
}

// Airport looks up an airport by IATA code. If the code is on more than one row, the
// row the index kept is returned.
func (ds *Dataset)Airport(code string) (routedb.Airport, error) {
	a,exists := ds.index.Lookup(strings.ToUpper(strings.TrimSpace(code)))
	if !exists { return routedb.Airport{}, ds.airportErr(code) }
	return a, nil
}

// AirportsIn returns every airport row for the country, in table order; this includes
// rows with no IATA code or no position.
func (ds *Dataset)AirportsIn(country string) ([]routedb.Airport, error) {
	out := []routedb.Airport{}
	for _,a := range ds.airports {
		if a.Country == country { out = append(out, a) }
	}
	if len(out) == 0 { return nil, ds.countryErr(country) }
	return out, nil
}

// }}}
// {{{ ds.Airline, ds.AirlineOf

// Airline finds the airline with the IATA or ICAO designator. Active airlines are
// preferred over defunct ones that once used the same code.
func (ds *Dataset)Airline(code string) (routedb.Airline, error) {
	ac := routedb.NewAirlineCode(code)
	var found *routedb.Airline
	for i,a := range ds.airlines {
		if !ac.Matches(a) { continue }
		if a.Active { return a, nil }
		if found == nil { found = &ds.airlines[i] }
	}
	if found != nil { return *found, nil }

	known := []string{}
	for _,a := range ds.airlines {
		if a.Active && a.IATA != "" { known = append(known, a.IATA) }
	}
	return routedb.Airline{}, routedb.NotFoundError{Kind:"airline", Value:code, Known:known}
}

// AirlineOf finds the airline flying the route, by ID if the route has one, and by code if
// not.
func (ds *Dataset)AirlineOf(r routedb.Route) (routedb.Airline, bool) {
	if r.AirlineID != 0 {
		for _,a := range ds.airlines {
			if a.ID == r.AirlineID { return a, true }
		}
	}
	a,err := ds.Airline(r.Airline)
	return a, err == nil
}

// }}}
// {{{ ds.RoutesFrom

// RoutesFrom returns every route departing the airport, matched or not.
func (ds *Dataset)RoutesFrom(code string) ([]routedb.EnrichedRoute, error) {
	a,err := ds.Airport(code)
	if err != nil { return nil, err }

	out := []routedb.EnrichedRoute{}
	for _,er := range ds.routes {
		if er.SourceAirport == a.IATA { out = append(out, copyRoute(er)) }
	}
	return out, nil
}

// }}}
// {{{ ds.FlightsFromAirport, ds.FlightsFromCountry

func (ds *Dataset)leg(er routedb.EnrichedRoute) (Leg, bool) {
	if !er.HasDistance { return Leg{}, false }
	src,ok1 := ds.index.Lookup(er.SourceAirport)
	dst,ok2 := ds.index.Lookup(er.DestinationAirport)
	if !ok1 || !ok2 { return Leg{}, false }

	return Leg{
		EnrichedRoute: copyRoute(er),
		Source: src,
		Destination: dst,
		Domestic: src.Country == dst.Country,
	}, true
}

// FlightsFromAirport returns the legs departing the airport. Routes to unknown airports,
// or airports with no position, are left out. If internal is set, only domestic legs
// are returned.
func (ds *Dataset)FlightsFromAirport(code string, internal bool) ([]Leg, error) {
	a,err := ds.Airport(code)
	if err != nil { return nil, err }

	legs := []Leg{}
	for _,er := range ds.routes {
		if er.SourceAirport != a.IATA { continue }
		if l,ok := ds.leg(er); ok && (l.Domestic || !internal) {
			legs = append(legs, l)
		}
	}
	return legs, nil
}

// FlightsFromCountry returns the legs departing any airport in the country, in routes
// table order.
func (ds *Dataset)FlightsFromCountry(country string, internal bool) ([]Leg, error) {
	if _,err := ds.AirportsIn(country); err != nil { return nil, err }

	legs := []Leg{}
	for _,er := range ds.routes {
		l,ok := ds.leg(er)
		if !ok || l.Source.Country != country { continue }
		if internal && !l.Domestic { continue }
		legs = append(legs, l)
	}
	return legs, nil
}

// }}}
// {{{ ds.ShortHaul, ds.LongHaul

func checkThreshold(thresholdKM float64) error {
	if math.IsNaN(thresholdKM) || math.IsInf(thresholdKM,0) || thresholdKM <= 0 {
		return routedb.ValidationError{Field:"threshold", Value:fmt.Sprintf("%v", thresholdKM),
			Reason:"must be a positive number of kilometres"}
	}
	return nil
}

func (ds *Dataset)haul(thresholdKM float64, short bool) ([]routedb.EnrichedRoute, error) {
	if err := checkThreshold(thresholdKM); err != nil { return nil, err }
	out := []routedb.EnrichedRoute{}
	for _,er := range ds.routes {
		if !er.HasDistance { continue }
		if (er.DistanceKM < thresholdKM) == short { out = append(out, copyRoute(er)) }
	}
	return out, nil
}

// ShortHaul returns the measured routes shorter than the threshold.
func (ds *Dataset)ShortHaul(thresholdKM float64) ([]routedb.EnrichedRoute, error) {
	return ds.haul(thresholdKM, true)
}

// LongHaul returns the measured routes at least as long as the threshold.
func (ds *Dataset)LongHaul(thresholdKM float64) ([]routedb.EnrichedRoute, error) {
	return ds.haul(thresholdKM, false)
}

// }}}
// {{{ HaulSummary, Classify, ClassifyLegs

type HaulSummary struct {
	ThresholdKM float64
	ShortCount  int
	ShortKM     float64
	LongCount   int
	LongKM      float64
}

func (hs HaulSummary)String() string {
	return fmt.Sprintf("short(<%.0fkm): %d routes, %.1fkm; long: %d routes, %.1fkm",
		hs.ThresholdKM, hs.ShortCount, hs.ShortKM, hs.LongCount, hs.LongKM)
}

func (hs HaulSummary)TotalKM() float64 { return hs.ShortKM + hs.LongKM }
func (hs HaulSummary)Count() int { return hs.ShortCount + hs.LongCount }

func (hs *HaulSummary)add(er routedb.EnrichedRoute) {
	if !er.HasDistance { return }
	if er.DistanceKM < hs.ThresholdKM {
		hs.ShortCount++
		hs.ShortKM += er.DistanceKM
	} else {
		hs.LongCount++
		hs.LongKM += er.DistanceKM
	}
}

// Classify sums the measured routes into short and long haul buckets, in order.
func Classify(routes []routedb.EnrichedRoute, thresholdKM float64) HaulSummary {
	hs := HaulSummary{ThresholdKM:thresholdKM}
	for _,er := range routes { hs.add(er) }
	return hs
}

func ClassifyLegs(legs []Leg, thresholdKM float64) HaulSummary {
	hs := HaulSummary{ThresholdKM:thresholdKM}
	for _,l := range legs { hs.add(l.EnrichedRoute) }
	return hs
}

// EmissionsRatio is the share of flight emissions left if every short haul flight were
// replaced by a train emitting trainPlaneRatio as much. When every kilometre is short
// haul it is trainPlaneRatio exactly, and when every kilometre is long haul it is 1.
func (hs HaulSummary)EmissionsRatio(trainPlaneRatio float64) (float64, error) {
	if math.IsNaN(trainPlaneRatio) || trainPlaneRatio < 0 {
		return 0, routedb.ValidationError{Field:"train/plane ratio",
			Value:fmt.Sprintf("%v", trainPlaneRatio), Reason:"must be a non-negative number"}
	}

	switch {
	case hs.TotalKM() == 0: return 0, routedb.ErrNoDistance
	case hs.LongKM == 0:    return trainPlaneRatio, nil
	case hs.ShortKM == 0:   return 1.0, nil
	}
	return (trainPlaneRatio*hs.ShortKM + hs.LongKM) / hs.TotalKM(), nil
}

// }}}
// {{{ CountryReport

type CountryReport struct {
	Country         string
	Internal        bool
	TrainPlaneRatio float64

	Legs            []Leg
	Summary         HaulSummary

	EmissionsRatio  float64
	HasRatio        bool // false if no leg had any distance
}

func (cr CountryReport)String() string {
	scope := "all"
	if cr.Internal { scope = "domestic" }
	str := fmt.Sprintf("%s (%s): %d legs; %s", cr.Country, scope, len(cr.Legs), cr.Summary)
	if cr.HasRatio {
		str += fmt.Sprintf("; emissions ratio %.3f", cr.EmissionsRatio)
	}
	return str
}

// CountryReport classifies the legs departing the country, and works out how much of
// their emissions would be left if short haul legs went by train.
func (ds *Dataset)CountryReport(country string, thresholdKM float64, internal bool, trainPlaneRatio float64) (CountryReport, error) {
	cr := CountryReport{Country:country, Internal:internal, TrainPlaneRatio:trainPlaneRatio}
	if err := checkThreshold(thresholdKM); err != nil { return cr, err }

	legs,err := ds.FlightsFromCountry(country, internal)
	if err != nil { return cr, err }
	cr.Legs = legs
	cr.Summary = ClassifyLegs(legs, thresholdKM)

	ratio,err := cr.Summary.EmissionsRatio(trainPlaneRatio)
	if err == routedb.ErrNoDistance {
		return cr, nil
	} else if err != nil {
		return cr, err
	}
	cr.EmissionsRatio,cr.HasRatio = ratio, true

	return cr, nil
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
