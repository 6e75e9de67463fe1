// Package routedbtest has a small, real-looking flight data archive for tests to use.
package routedbtest

import(
	"bytes"
	"os"
	"path/filepath"
	"sort"

	"github.com/klauspost/compress/zip"
)

// Each file carries a leading unnamed index column, the way the published archive does,
// plus a column that no allow-list keeps.
var(
	AirlinesCSV = `,Airline ID,Name,Alias,IATA,ICAO,Callsign,Country,Active,Notes
0,3320,Lufthansa,\N,LH,DLH,LUFTHANSA,Germany,Y,x
1,3090,KLM Royal Dutch Airlines,\N,KL,KLM,KLM,Netherlands,Y,x
2,1355,British Airways,\N,BA,BAW,SPEEDBIRD,United Kingdom,Y,x
3,5209,United Airlines,\N,UA,UAL,UNITED,United States,Y,x
`

	AirplanesCSV = `,Name,IATA code,ICAO code
0,Airbus A319,319,A319
1,Airbus A320,320,A320
2,Airbus A321,321,A321
3,Boeing 737-800 (winglets),73H,B738
4,Boeing 747-400,744,B744
5,Airbus A380-800,388,A388
6,Boeing 777,777,\N
`

	AirportsCSV = `,Airport ID,Name,City,Country,IATA,ICAO,Latitude,Longitude,Altitude,Timezone,DST,Tz database time zone,Type,Source
0,340,Frankfurt am Main Airport,Frankfurt,Germany,FRA,EDDF,50.033333,8.570556,364,1,E,Europe/Berlin,airport,OurAirports
1,345,Düsseldorf Airport,Duesseldorf,Germany,DUS,EDDL,51.289501,6.76678,147,1,E,Europe/Berlin,airport,OurAirports
2,346,Munich Airport,Munich,Germany,MUC,EDDM,48.353802,11.7861,1487,1,E,Europe/Berlin,airport,OurAirports
3,580,Amsterdam Airport Schiphol,Amsterdam,Netherlands,AMS,EHAM,52.308601,4.76389,-11,1,E,Europe/Amsterdam,airport,OurAirports
4,507,London Heathrow Airport,London,United Kingdom,LHR,EGLL,51.4706,-0.461941,83,0,E,Europe/London,airport,OurAirports
5,3731,San Diego International Airport,San Diego,United States,SAN,KSAN,32.7336006165,-117.190002441,17,-8,A,America/Los_Angeles,airport,OurAirports
6,3797,John F Kennedy International Airport,New York,United States,JFK,KJFK,40.63980103,-73.77890015,13,-5,A,America/New_York,airport,OurAirports
7,8931,Berlin Hauptbahnhof,Berlin,Germany,\N,\N,52.525,13.369,0,1,E,Europe/Berlin,station,User
`

	RoutesCSV = `,Airline,Airline ID,Source airport,Source airport ID,Destination airport,Destination airport ID,Codeshare,Stops,Equipment
0,LH,3320,FRA,340,DUS,345,,0,320 319
1,LH,3320,FRA,340,MUC,346,,0,320 321
2,LH,3320,DUS,345,MUC,346,,0,319
3,KL,3090,AMS,580,FRA,340,Y,0,73H
4,BA,1355,LHR,507,AMS,580,,0,320
5,LH,3320,FRA,340,JFK,3797,,0,744 388
6,LH,3320,DUS,345,SAN,3731,,0,
7,LH,3320,MUC,346,ZZZ,\N,,0,320
8,UA,5209,JFK,3797,FRA,340,,0,777
9,BA,1355,LHR,507,JFK,3797,Y,0,777 744
`
)

// Distances (km) of the fixture routes, by row; -1 for the one that can't be matched.
var RouteDistancesKM = []float64{
	188.927, 299.172, 485.975, 366.688, 370.565, 6191.381, 9192.072, -1, 6191.381, 5541.383,
}

// Entries is the fixture archive's contents, by entry name.
func Entries() map[string]string {
	return map[string]string{
		"airlines.csv":  AirlinesCSV,
		"airplanes.csv": AirplanesCSV,
		"airports.csv":  AirportsCSV,
		"routes.csv":    RoutesCSV,
		"README.txt":    "OpenFlights extract\n",
	}
}

// ZipBytes builds a zip archive holding the entries, in name order.
func ZipBytes(entries map[string]string) ([]byte, error) {
	names := []string{}
	for k,_ := range entries { names = append(names, k) }
	sort.Strings(names)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _,name := range names {
		w,err := zw.Create(name)
		if err != nil { return nil, err }
		if _,err := w.Write([]byte(entries[name])); err != nil { return nil, err }
	}
	if err := zw.Close(); err != nil { return nil, err }

	return buf.Bytes(), nil
}

// WriteArchive writes a zip of the entries to path, creating directories as needed.
func WriteArchive(path string, entries map[string]string) error {
	data,err := ZipBytes(entries)
	if err != nil { return err }
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil { return err }
	return os.WriteFile(path, data, 0644)
}
