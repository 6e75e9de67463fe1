package routedb

import "fmt"

// An Airplane is an aircraft model, e.g. "Boeing 737-800". The IATA code is what routes
// list in their Equipment field.
type Airplane struct {
	Name      string
	IATACode  string // 3 chars, e.g. "738"
	ICAOCode  string // 4 chars, e.g. "B738"
}

func (ap Airplane)String() string {
	return fmt.Sprintf("[%3.3s/%4.4s] %s", ap.IATACode, ap.ICAOCode, ap.Name)
}
