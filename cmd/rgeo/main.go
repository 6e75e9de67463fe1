// rgeo prints the great circle distance between two positions.
//
//   rgeo 50.033333,8.570556 40.63980103,-73.77890015
package main

import(
	"flag"
	"fmt"
	"log"

	"github.com/skypies/geo"

	"github.com/skypies/routedb"
)

var(
	fVerbosity int
)

func init() {
	flag.IntVar(&fVerbosity, "v", 0, "verbosity level")
	flag.Parse()
}

func main() {
	if len(flag.Args()) != 2 {
		log.Fatal("usage: rgeo 123.123,123.123 123.123,123.123\n")
	}

	from := geo.NewLatlong(flag.Arg(0))
	to := geo.NewLatlong(flag.Arg(1))

	dist,err := routedb.DistKM(from, to)
	if err != nil { log.Fatal(err) }

	fmt.Printf(">>>> %s\n  << (%.7f, %.7f)\n", flag.Arg(0), from.Lat, from.Long)
	fmt.Printf(">>>> %s\n  << (%.7f, %.7f)\n", flag.Arg(1), to.Lat, to.Long)
	fmt.Printf("  << haversine: %.3f km\n", dist)
	if fVerbosity > 0 {
		fmt.Printf("  << geo.DistKM: %.3f km (R differs)\n", from.DistKM(to))
	}
}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
