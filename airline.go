package routedb

import "fmt"

// An Airline is one row of the airlines table.
type Airline struct {
	ID        int
	Name      string
	Alias     string
	IATA      string // 2 chars
	ICAO      string // 3 chars
	Callsign  string
	Country   string
	Active    bool
}

func (a Airline)String() string {
	return fmt.Sprintf("[%2.2s/%3.3s] %s (%s)", a.IATA, a.ICAO, a.Name, a.Country)
}
