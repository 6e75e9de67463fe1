package routedb

import(
	"fmt"

	"github.com/skypies/geo"
)

// An Airport is one row of the airports table. IATA is the join key against routes; it
// may be empty, and it is not guaranteed to be unique.
type Airport struct {
	Row             int    // position in the airports table
	ID              int
	Name            string
	City            string
	Country         string
	IATA            string // 3 chars, or empty
	ICAO            string // 4 chars, or empty

	geo.Latlong            // embedded; only meaningful if HasLatlong
	HasLatlong      bool

	AltitudeFeet    float64
	TimezoneHours   float64
	DST             string // E, A, S, O, Z, N or U
	TzDatabaseZone  string // e.g. "America/Los_Angeles"
	Type            string // "airport", "station", ...
	Source          string // "OurAirports", ...
}

func (a Airport)String() string {
	pos := "(no position)"
	if a.HasLatlong { pos = fmt.Sprintf("(%.5f,%.5f)", a.Lat, a.Long) }
	return fmt.Sprintf("[%3.3s] %s, %s, %s %s", a.IATA, a.Name, a.City, a.Country, pos)
}

// Position returns the airport's position, if it has one.
func (a Airport)Position() (geo.Latlong, bool) { return a.Latlong, a.HasLatlong }
