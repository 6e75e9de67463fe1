package routedb

import(
	"fmt"
	"strings"

	"github.com/skypies/geo"
)

// A Route is one row of the routes table: an airline flying from one airport to another,
// with some set of aircraft models.
type Route struct {
	Row                   int    // position in the routes table
	Airline               string // IATA or ICAO airline code
	AirlineID             int
	SourceAirport         string // IATA code
	SourceAirportID       int
	DestinationAirport    string // IATA code
	DestinationAirportID  int
	Codeshare             bool
	Stops                 int
	Equipment             string // space separated airplane IATA codes, e.g. "320 738"
}

func (r Route)String() string {
	return fmt.Sprintf("%s %s-%s [%s]", r.Airline, r.SourceAirport, r.DestinationAirport, r.Equipment)
}

// EquipmentCodes splits the Equipment field. Empty and whitespace-only entries yield no
// codes at all.
func (r Route)EquipmentCodes() []string { return strings.Fields(r.Equipment) }

// An EnrichedRoute is a route with the positions of both its airports, if they could be
// found, and the distance between them.
type EnrichedRoute struct {
	Route // embedded

	SourceLatlong       *geo.Latlong // nil if the source airport didn't match
	DestinationLatlong  *geo.Latlong // nil if the destination airport didn't match

	DistanceKM          float64 // Only meaningful if HasDistance
	HasDistance         bool
}

func (er EnrichedRoute)String() string {
	dist := "?"
	if er.HasDistance { dist = fmt.Sprintf("%.0fKM", er.DistanceKM) }
	return fmt.Sprintf("%s %s", er.Route, dist)
}

// Matched is true if both ends of the route have a position.
func (er EnrichedRoute)Matched() bool {
	return er.SourceLatlong != nil && er.DestinationLatlong != nil
}
