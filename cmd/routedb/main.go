// routedb builds the route database from the flight data archive, and answers questions
// about it.
//
//   routedb -country=Germany -internal -pdf=germany.pdf -geojson=germany.json
//   routedb -airport=FRA
//   routedb -top=5 -countries=Germany,Netherlands
//   routedb -aircraft="Boeing 747-400"
package main

import(
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/skypies/routedb/config"
	"github.com/skypies/routedb/dataset"
	"github.com/skypies/routedb/logger"
	"github.com/skypies/routedb/lookup"
	"github.com/skypies/routedb/mapshapes"
	"github.com/skypies/routedb/report"
)

var(
	fVerbosity int
	fConfig string
	fEnvFile string

	fCountry string
	fAirport string
	fInternal bool
	fThresholdKM float64
	fRatio float64

	fTop int
	fCountries string

	fAircraftInfo string
	fAirportInfo string

	fCSV string
	fPDF string
	fGeoJSON string
)

func init() {
	flag.IntVar(&fVerbosity, "v", 0, "verbosity level")
	flag.StringVar(&fConfig, "config", "", "YAML config file")
	flag.StringVar(&fEnvFile, "env", ".env", "env file to load, if it exists")
	flag.StringVar(&fCountry, "country", "", "report on flights departing this country")
	flag.StringVar(&fAirport, "airport", "", "list flights departing this airport (IATA code)")
	flag.BoolVar(&fInternal, "internal", false, "domestic flights only")
	flag.Float64Var(&fThresholdKM, "threshold", 0, "short/long haul threshold in km (default from config)")
	flag.Float64Var(&fRatio, "ratio", 0, "train/plane emissions ratio (default from config)")
	flag.IntVar(&fTop, "top", 0, "list the N most used aircraft models")
	flag.StringVar(&fCountries, "countries", "", "comma separated countries for -top")
	flag.StringVar(&fAircraftInfo, "aircraft", "", "describe this aircraft model")
	flag.StringVar(&fAirportInfo, "airportinfo", "", "describe this airport (full name)")
	flag.StringVar(&fCSV, "csv", "", "write all enriched routes to this CSV file")
	flag.StringVar(&fPDF, "pdf", "", "write the -country report to this PDF file")
	flag.StringVar(&fGeoJSON, "geojson", "", "write the -country or -airport map to this GeoJSON file")
	flag.Parse()
}

func writeFile(path string, f func(*os.File) error) {
	out,err := os.Create(path)
	if err != nil { log.Fatal(err) }
	if err := f(out); err != nil { log.Fatalf("%s: %v", path, err) }
	if err := out.Close(); err != nil { log.Fatal(err) }
	fmt.Printf("wrote %s\n", path)
}

func writeShapes(ms *mapshapes.MapShapes) {
	data,err := ms.GeoJSON()
	if err != nil { log.Fatal(err) }
	writeFile(fGeoJSON, func(f *os.File) error { _,err := f.Write(data); return err })
}

func main() {
	logger.Setup()
	ctx,cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	c,err := config.Load(fConfig, fEnvFile)
	if err != nil { log.Fatal(err) }
	if fThresholdKM == 0 {
		if fThresholdKM,err = c.Float("haul.threshold_km"); err != nil { log.Fatal(err) }
	}
	if fRatio == 0 {
		if fRatio,err = c.Float("haul.train_plane_ratio"); err != nil { log.Fatal(err) }
	}

	opt,err := dataset.OptionsFromConfig(c)
	if err != nil { log.Fatal(err) }
	ds,err := dataset.Build(ctx, opt)
	if err != nil { log.Fatal(err) }
	fmt.Printf("%s\n", ds)

	if fVerbosity > 0 {
		h := ds.DistanceHistogram()
		fmt.Printf("Route distances (km):-\n%s\n", h.String())
		fmt.Printf("All routes: %s\n", dataset.Classify(ds.Routes(), fThresholdKM))
		for _,issue := range ds.Issues() {
			fmt.Printf("  issue: %s\n", issue)
		}
	}

	if fCSV != "" {
		writeFile(fCSV, func(f *os.File) error { return report.WriteRoutesCSV(f, ds.Routes()) })
	}

	if fCountry != "" {
		cr,err := ds.CountryReport(fCountry, fThresholdKM, fInternal, fRatio)
		if err != nil { log.Fatal(err) }
		h := ds.DistanceHistogram()
		s := report.FromCountryReport(cr)
		fmt.Printf("%s\n", cr)
		if fVerbosity > 0 {
			fmt.Print(s)
			fmt.Printf("All routes, for comparison:-\n%s\n", h.String())
		}
		if fPDF != "" {
			writeFile(fPDF, func(f *os.File) error { return report.WritePDF(f, s) })
		}
		if fGeoJSON != "" {
			ms := mapshapes.RouteLines(cr.Legs, fThresholdKM)
			airports,err := ds.AirportsIn(fCountry)
			if err != nil { log.Fatal(err) }
			ms.Add(mapshapes.AirportPoints(airports))
			writeShapes(ms)
		}
	}

	if fAirport != "" {
		legs,err := ds.FlightsFromAirport(fAirport, fInternal)
		if err != nil { log.Fatal(err) }
		for i,l := range legs {
			airline := l.Airline
			if a,ok := ds.AirlineOf(l.Route); ok { airline = a.Name }
			fmt.Printf("[%3d] %s  %s\n", i, l, airline)
		}
		if fGeoJSON != "" && fCountry == "" {
			writeShapes(mapshapes.AirportRoutes(legs))
		}
	}

	if fTop > 0 {
		countries := []string{}
		for _,s := range strings.Split(fCountries, ",") {
			if s = strings.TrimSpace(s); s != "" { countries = append(countries, s) }
		}
		mr,err := ds.TopModels(countries, fTop)
		if err != nil { log.Fatal(err) }
		fmt.Print(mr)
	}

	if fAircraftInfo != "" || fAirportInfo != "" {
		chat,err := lookup.ChatFromConfig(c)
		if err != nil { log.Fatal(err) }
		l,err := lookup.WithCache(c, chat)
		if err != nil { log.Fatal(err) }

		if fAircraftInfo != "" {
			md,err := lookup.AircraftInfo(ctx, ds, l, fAircraftInfo)
			if err != nil { log.Fatal(err) }
			fmt.Printf("%s\n", md)
		}
		if fAirportInfo != "" {
			md,err := lookup.AirportInfo(ctx, ds, l, fAirportInfo)
			if err != nil { log.Fatal(err) }
			fmt.Printf("%s\n", md)
		}
	}
}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
