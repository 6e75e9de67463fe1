// Package enrich joins the routes against the airports, once for each end of the route,
// and works out how far each route is.
package enrich

import(
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/skypies/routedb"
)

type Options struct {
	Workers    int // how many goroutines compute distances; <1 means 1
	ChunkSize  int // routes per unit of work; <1 means 2048
}

// {{{ Enrich

// Enrich returns one EnrichedRoute per route, in the same order. This is a left outer join:
// a route whose airports can't be found is kept, with nil positions and no distance.
// Routes with both positions get a distance; rows are independent, so that part is
// spread over the workers.
func Enrich(ctx context.Context, routes []routedb.Route, ix *Index, opts Options) ([]routedb.EnrichedRoute, error) {
	out := make([]routedb.EnrichedRoute, len(routes))
	for i,r := range routes {
		out[i] = routedb.EnrichedRoute{
			Route: r,
			SourceLatlong: ix.Position(r.SourceAirport),
			DestinationLatlong: ix.Position(r.DestinationAirport),
		}
	}

	workers, chunk := opts.Workers, opts.ChunkSize
	if workers < 1 { workers = 1 }
	if chunk < 1 { chunk = 2048 }

	g,gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for start := 0; start < len(out); start += chunk {
		end := start + chunk
		if end > len(out) { end = len(out) }

		// Each goroutine owns out[start:end]; nothing else writes there.
		g.Go(func() error {
			if err := gctx.Err(); err != nil { return err }
			return measure(out[start:end])
		})
	}

	if err := g.Wait(); err != nil { return nil, err }
	return out, nil
}

// }}}
// {{{ measure

func measure(routes []routedb.EnrichedRoute) error {
	for i := range routes {
		er := &routes[i]
		if !er.Matched() { continue }

		d,err := routedb.DistKM(*er.SourceLatlong, *er.DestinationLatlong)
		if err != nil {
			return fmt.Errorf("route %d (%s): %w", er.Row, er.Route, err)
		}
		er.DistanceKM = d
		er.HasDistance = true
	}
	return nil
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
