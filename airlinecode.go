package routedb

import(
	"regexp"
	"strings"
)

/* Airline codes, as used in the routes table

1. Most routes carry the two character IATA designator: LH, U2, 9W
2. Some carry the three letter ICAO designator instead: DLH, EZY
3. A few carry junk: empty, \N, or something with punctuation in it

IATA designators can contain digits (but are never two digits); ICAO ones are always
letters.

*/

type AirlineCodeType int
const(
	JunkAirlineCode AirlineCodeType = iota
	IATAAirlineCode
	ICAOAirlineCode
)

func (t AirlineCodeType)String() string {
	switch t {
	case IATAAirlineCode: return "IATA"
	case ICAOAirlineCode: return "ICAO"
	}
	return "junk"
}

type AirlineCode struct {
	Raw  string
	Code string // normalized; upper case, no whitespace
	AirlineCodeType
}

func (c AirlineCode)String() string {
	if c.AirlineCodeType == JunkAirlineCode { return c.Raw }
	return c.Code
}

var(
	iataAirlineRegexp = regexp.MustCompile("^([A-Z0-9][A-Z]|[A-Z][0-9])$")
	icaoAirlineRegexp = regexp.MustCompile("^([A-Z]{3})$")
)

func NewAirlineCode(code string) (ret AirlineCode) {
	ret.Raw = code
	ret.Code = strings.ToUpper(strings.TrimSpace(code))

	if iataAirlineRegexp.MatchString(ret.Code) {
		ret.AirlineCodeType = IATAAirlineCode
	} else if icaoAirlineRegexp.MatchString(ret.Code) {
		ret.AirlineCodeType = ICAOAirlineCode
	} else {
		ret.AirlineCodeType = JunkAirlineCode
	}
	return
}

// Matches is true if the code is the airline's IATA or ICAO designator, whichever kind
// the code is.
func (c AirlineCode)Matches(a Airline) bool {
	switch c.AirlineCodeType {
	case IATAAirlineCode: return a.IATA == c.Code
	case ICAOAirlineCode: return a.ICAO == c.Code
	}
	return false
}
