// This package contains all the types for the route database: the typed
// records for the four OpenFlights tables, the enriched route, the error
// taxonomy and the distance function. No cloud or network imports.
package routedb

const(
	// Where the flight data archive lives, unless told otherwise
	DefaultArchiveURL  = "https://gitlab.com/adpro1/adpro2024/-/raw/main/Files/flight_data.zip?inline=false"
	DefaultArchivePath = "downloads/flight_data.zip"

	// Routes shorter than this are short-haul; the rest are long-haul.
	DefaultHaulThresholdKM = 1000.0

	// CO2 per passenger-km of rail, relative to a plane
	DefaultTrainPlaneRatio = 3.0 / 25.0

	// The OpenFlights files use this for a null field
	NullField = `\N`
)

// The four kinds of table we know how to project
type TableKind string

const(
	Airlines  TableKind = "airlines"
	Airplanes TableKind = "airplanes"
	Airports  TableKind = "airports"
	Routes    TableKind = "routes"
)

var AllTableKinds = []TableKind{Airlines, Airplanes, Airports, Routes}

// Key is the name a table of this kind gets when extracted from the archive.
func (k TableKind)Key() string { return string(k) + "_df" }
