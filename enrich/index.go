package enrich

import(
	"fmt"
	"sort"
	"strings"

	"github.com/skypies/geo"

	"github.com/skypies/routedb"
)

// What to do when more than one airport row has the same IATA code.
type DuplicatePolicy int
const(
	FirstWins        DuplicatePolicy = iota // the lowest row wins; duplicates are recorded
	RejectDuplicates                        // building the index fails
)

func (p DuplicatePolicy)String() string {
	switch p {
	case FirstWins:        return "first"
	case RejectDuplicates: return "reject"
	}
	return fmt.Sprintf("DuplicatePolicy(%d)", int(p))
}

func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "first": return FirstWins, nil
	case "reject":    return RejectDuplicates, nil
	}
	return FirstWins, routedb.ValidationError{Field:"duplicate policy", Value:s, Reason:"want 'first' or 'reject'"}
}

// An Index finds airports by IATA code. Airports with no code are not indexed.
type Index struct {
	Policy       DuplicatePolicy
	Duplicates   map[string][]int // code -> every airport row using it, for codes used more than once

	airports   []routedb.Airport
	byCode       map[string]int   // code -> position in airports
}

// {{{ NewIndex

func NewIndex(airports []routedb.Airport, policy DuplicatePolicy) (*Index, error) {
	ix := Index{
		Policy: policy,
		Duplicates: map[string][]int{},
		airports: airports,
		byCode: map[string]int{},
	}

	for i,a := range airports {
		if a.IATA == "" { continue }
		if first,exists := ix.byCode[a.IATA]; exists {
			if len(ix.Duplicates[a.IATA]) == 0 {
				ix.Duplicates[a.IATA] = []int{airports[first].Row}
			}
			ix.Duplicates[a.IATA] = append(ix.Duplicates[a.IATA], a.Row)
			continue
		}
		ix.byCode[a.IATA] = i
	}

	if policy == RejectDuplicates && len(ix.Duplicates) > 0 {
		codes := ix.DuplicateCodes()
		return nil, routedb.DuplicateKeyError{Code:codes[0], Rows:ix.Duplicates[codes[0]]}
	}

	return &ix, nil
}

// }}}
// {{{ ix.Lookup, ix.Position

func (ix *Index)Len() int { return len(ix.byCode) }

// Lookup returns the airport for the code. Codes are matched exactly (they are upper-cased
// when the records are built).
func (ix *Index)Lookup(code string) (routedb.Airport, bool) {
	if code == "" { return routedb.Airport{}, false }
	i,exists := ix.byCode[code]
	if !exists { return routedb.Airport{}, false }
	return ix.airports[i], true
}

// Position returns a fresh copy of the airport's position, or nil if the airport is not
// known, or has no position.
func (ix *Index)Position(code string) *geo.Latlong {
	a,exists := ix.Lookup(code)
	if !exists || !a.HasLatlong { return nil }
	pos := a.Latlong
	return &pos
}

// }}}
// {{{ ix.Codes, ix.DuplicateCodes

func (ix *Index)Codes() []string {
	codes := []string{}
	for k,_ := range ix.byCode { codes = append(codes, k) }
	sort.Strings(codes)
	return codes
}

func (ix *Index)DuplicateCodes() []string {
	codes := []string{}
	for k,_ := range ix.Duplicates { codes = append(codes, k) }
	sort.Strings(codes)
	return codes
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
