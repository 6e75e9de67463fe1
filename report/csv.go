package report

import(
	"encoding/csv"
	"fmt"
	"io"

	"github.com/skypies/routedb"
)

var routeHeaders = []string{
	"Airline", "Airline ID", "Source airport", "Source airport ID", "Destination airport",
	"Destination airport ID", "Codeshare", "Stops", "Equipment",
	"Source latitude", "Source longitude", "Destination latitude", "Destination longitude",
	"Distance (km)",
}

func optFloat(f *float64) string {
	if f == nil { return "" }
	return fmt.Sprintf("%.6f", *f)
}

// IDs are never zero in the data; zero means it was missing
func idStr(id int) string {
	if id == 0 { return "" }
	return fmt.Sprintf("%d", id)
}

// WriteRoutesCSV writes the enriched routes table. Positions and distances that aren't
// known are left empty.
func WriteRoutesCSV(w io.Writer, routes []routedb.EnrichedRoute) error {
	csvWriter := csv.NewWriter(w)
	if err := csvWriter.Write(routeHeaders); err != nil { return err }

	for _,er := range routes {
		var sLat,sLong,dLat,dLong,dist *float64
		if er.SourceLatlong != nil { sLat,sLong = &er.SourceLatlong.Lat, &er.SourceLatlong.Long }
		if er.DestinationLatlong != nil { dLat,dLong = &er.DestinationLatlong.Lat, &er.DestinationLatlong.Long }
		if er.HasDistance { dist = &er.DistanceKM }

		codeshare := ""
		if er.Codeshare { codeshare = "Y" }

		row := []string{
			er.Airline, idStr(er.AirlineID), er.SourceAirport, idStr(er.SourceAirportID),
			er.DestinationAirport, idStr(er.DestinationAirportID), codeshare,
			fmt.Sprintf("%d", er.Stops), er.Equipment,
			optFloat(sLat), optFloat(sLong), optFloat(dLat), optFloat(dLong),
			optFloat(dist),
		}
		if err := csvWriter.Write(row); err != nil { return err }
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

// WriteCSV writes the summary's rows.
func WriteCSV(w io.Writer, s Summary) error {
	csvWriter := csv.NewWriter(w)
	csvWriter.Write(s.HeadersText)
	for _,row := range s.RowsText {
		csvWriter.Write(row)
	}
	csvWriter.Flush()
	return csvWriter.Error()
}
