package dataset

import(
	"fmt"
	"sort"
	"strings"

	"github.com/skypies/routedb"
)

// Routes with an empty equipment string are counted under this name.
const UnknownModel = "Unknown"

// {{{ ds.Aircrafts, ds.ValidateAircraft, ds.AirportNames, ds.ValidateAirportName

func uniqueNonEmpty(in []string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _,s := range in {
		if s == "" || seen[s] { continue }
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// Aircrafts lists the aircraft model names, in table order.
func (ds *Dataset)Aircrafts() []string {
	names := []string{}
	for _,a := range ds.airplanes { names = append(names, a.Name) }
	return uniqueNonEmpty(names)
}

func (ds *Dataset)ValidateAircraft(name string) error {
	for _,a := range ds.airplanes {
		if a.Name == name { return nil }
	}
	return routedb.NotFoundError{Kind:"aircraft", Value:name, Known:ds.Aircrafts()}
}

// AirportNames lists the airport names, in table order.
func (ds *Dataset)AirportNames() []string {
	names := []string{}
	for _,a := range ds.airports { names = append(names, a.Name) }
	return uniqueNonEmpty(names)
}

func (ds *Dataset)ValidateAirportName(name string) error {
	for _,a := range ds.airports {
		if a.Name == name { return nil }
	}
	return routedb.NotFoundError{Kind:"airport name", Value:name, Known:ds.AirportNames()}
}

// }}}

// {{{ ModelCount, ModelRanking

type ModelCount struct {
	Name   string
	Routes int
}

type ModelRanking struct {
	Countries      []string // empty means all
	Models         []ModelCount
	Unknown        int      // routes with no equipment listed
	UnmatchedCodes int      // equipment codes with no airplane
}

func (mr ModelRanking)String() string {
	scope := "all countries"
	if len(mr.Countries) > 0 { scope = strings.Join(mr.Countries, ", ") }

	str := fmt.Sprintf("Top %d aircraft models (%s):-\n", len(mr.Models), scope)
	for i,mc := range mr.Models {
		str += fmt.Sprintf(" %2d: %-40.40s %6d\n", i+1, mc.Name, mc.Routes)
	}
	if mr.Unknown > 0 {
		str += fmt.Sprintf("     %-40.40s %6d\n", UnknownModel, mr.Unknown)
	}
	return str
}

// }}}
// {{{ ds.TopModels

// TopModels ranks aircraft models by how many routes list them. If countries are given,
// only routes starting or ending at one of their airports count. Every unknown country
// is named in the error.
func (ds *Dataset)TopModels(countries []string, n int) (ModelRanking, error) {
	mr := ModelRanking{Countries:countries}
	if n <= 0 {
		return mr, routedb.ValidationError{Field:"n", Value:fmt.Sprintf("%d",n), Reason:"must be positive"}
	}

	var codes map[string]bool
	if len(countries) > 0 {
		codes = map[string]bool{}
		bad := []string{}
		for _,c := range countries {
			airports,err := ds.AirportsIn(c)
			if err != nil { bad = append(bad, c); continue }
			for _,a := range airports {
				if a.IATA != "" { codes[a.IATA] = true }
			}
		}
		if len(bad) > 0 {
			return mr, routedb.NotFoundError{Kind:"country", Value:strings.Join(bad,", "), Known:ds.Countries()}
		}
	}

	byCode := map[string]int{}
	for _,er := range ds.routes {
		if codes != nil && !codes[er.SourceAirport] && !codes[er.DestinationAirport] { continue }
		equip := er.EquipmentCodes()
		if len(equip) == 0 { mr.Unknown++; continue }
		for _,code := range equip { byCode[code]++ }
	}

	byName := map[string]int{}
	matched := map[string]bool{}
	for _,a := range ds.airplanes {
		if count,exists := byCode[a.IATACode]; exists && a.IATACode != "" {
			byName[a.Name] += count
			matched[a.IATACode] = true
		}
	}
	for code,_ := range byCode {
		if !matched[code] { mr.UnmatchedCodes++ }
	}

	for name,count := range byName {
		mr.Models = append(mr.Models, ModelCount{Name:name, Routes:count})
	}
	sort.Slice(mr.Models, func(i,j int) bool {
		if mr.Models[i].Routes != mr.Models[j].Routes { return mr.Models[i].Routes > mr.Models[j].Routes }
		return mr.Models[i].Name < mr.Models[j].Name
	})
	if len(mr.Models) > n { mr.Models = mr.Models[:n] }

	return mr, nil
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
