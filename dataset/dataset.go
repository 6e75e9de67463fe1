// Package dataset builds the route database: it fetches the archive, extracts and projects
// the tables, and enriches the routes. The resulting Dataset never changes, so any number
// of goroutines can query it at once.
package dataset

import(
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/skypies/routedb"
	"github.com/skypies/routedb/config"
	"github.com/skypies/routedb/enrich"
	"github.com/skypies/routedb/fetch"
	"github.com/skypies/routedb/logger"
	"github.com/skypies/routedb/schema"
	"github.com/skypies/routedb/zipdata"
)

type Options struct {
	URL          string // where to fetch the archive from
	Path         string // where the archive lives locally
	FetchTimeout time.Duration // 0 means none

	Fetcher      fetch.Fetcher
	Duplicates   enrich.DuplicatePolicy
	Workers      int
	Logger      *slog.Logger
}

func DefaultOptions() Options {
	return Options{
		URL: routedb.DefaultArchiveURL,
		Path: routedb.DefaultArchivePath,
		Duplicates: enrich.FirstWins,
		Workers: 4,
	}
}

// {{{ OptionsFromConfig

func OptionsFromConfig(c *config.Config) (Options, error) {
	opt := DefaultOptions()
	opt.URL = c.Get("archive.url")
	opt.Path = c.Get("archive.path")

	var err error
	if opt.FetchTimeout,err = c.Duration("archive.timeout"); err != nil { return opt, err }
	if opt.Workers,err = c.Int("enrich.workers"); err != nil { return opt, err }
	if opt.Duplicates,err = enrich.ParseDuplicatePolicy(c.Get("enrich.duplicates")); err != nil {
		return opt, err
	}

	return opt, nil
}

// }}}

// A Dataset owns every table. Accessors hand out copies.
type Dataset struct {
	source     string

	airlines  []routedb.Airline
	airplanes []routedb.Airplane
	airports  []routedb.Airport
	routes    []routedb.EnrichedRoute
	issues    []schema.Issue

	index     *enrich.Index
}

func (ds *Dataset)String() string {
	return fmt.Sprintf("dataset{%s: %d airlines, %d airplanes, %d airports, %d routes (%d measured), %d issues}",
		ds.source, len(ds.airlines), len(ds.airplanes), len(ds.airports), len(ds.routes),
		ds.MeasuredRouteCount(), len(ds.issues))
}

// {{{ Build

// Build runs the whole pipeline: fetch (unless the archive is already there), extract,
// project, type, join, measure. Any failure fails the whole thing.
func Build(ctx context.Context, opt Options) (*Dataset, error) {
	l := logger.Or(opt.Logger)
	if opt.Fetcher.Logger == nil { opt.Fetcher.Logger = l }

	fetchCtx := ctx
	if opt.FetchTimeout > 0 {
		var cancel context.CancelFunc
		fetchCtx,cancel = context.WithTimeout(ctx, opt.FetchTimeout)
		defer cancel()
	}

	res,err := opt.Fetcher.EnsureLocal(fetchCtx, opt.URL, opt.Path)
	if err != nil { return nil, err }

	tStart := time.Now()
	raw,err := zipdata.Extract(res.Path)
	if err != nil { return nil, err }
	l.Debug("archive extracted", "path", res.Path, "tables", len(raw), "took", time.Since(tStart))

	ds,err := FromTables(ctx, raw, opt)
	if err != nil { return nil, err }
	ds.source = res.Path

	return ds, nil
}

// }}}
// {{{ FromTables

// FromTables builds a dataset from tables that have already been extracted.
func FromTables(ctx context.Context, raw map[string]*routedb.Table, opt Options) (*Dataset, error) {
	l := logger.Or(opt.Logger)

	tables,err := schema.ProjectAll(raw)
	if err != nil { return nil, err }

	ds := Dataset{source:"tables"}
	issues := [][]schema.Issue{}
	var is []schema.Issue

	ds.airlines,is = schema.Airlines(tables.Airlines);   issues = append(issues, is)
	ds.airplanes,is = schema.Airplanes(tables.Airplanes); issues = append(issues, is)
	ds.airports,is = schema.Airports(tables.Airports);   issues = append(issues, is)
	routes,is := schema.Routes(tables.Routes);           issues = append(issues, is)
	for _,set := range issues { ds.issues = append(ds.issues, set...) }

	if ds.index,err = enrich.NewIndex(ds.airports, opt.Duplicates); err != nil {
		return nil, err
	}
	if n := len(ds.index.Duplicates); n > 0 {
		l.Warn("duplicate airport codes; first row wins", "codes", n, "examples", firstN(ds.index.DuplicateCodes(), 5))
	}

	if ds.routes,err = enrich.Enrich(ctx, routes, ds.index, enrich.Options{Workers:opt.Workers}); err != nil {
		return nil, err
	}

	if len(ds.issues) > 0 {
		l.Warn("rows flagged during typing", "issues", len(ds.issues), "first", ds.issues[0].String())
	}
	l.Info("dataset built", "tables", tables.String(), "measured", ds.MeasuredRouteCount())

	return &ds, nil
}

func firstN(s []string, n int) []string {
	if len(s) < n { return s }
	return s[:n]
}

// }}}

// {{{ ds.Airlines, ds.Airplanes, ds.Airports, ds.Routes, ds.Issues

func (ds *Dataset)Source() string { return ds.source }

func (ds *Dataset)Airlines() []routedb.Airline   { return append([]routedb.Airline{}, ds.airlines...) }
func (ds *Dataset)Airplanes() []routedb.Airplane { return append([]routedb.Airplane{}, ds.airplanes...) }
func (ds *Dataset)Airports() []routedb.Airport   { return append([]routedb.Airport{}, ds.airports...) }
func (ds *Dataset)Issues() []schema.Issue        { return append([]schema.Issue{}, ds.issues...) }

// Routes returns every enriched route, in the order of the routes table.
func (ds *Dataset)Routes() []routedb.EnrichedRoute {
	out := make([]routedb.EnrichedRoute, len(ds.routes))
	for i,er := range ds.routes { out[i] = copyRoute(er) }
	return out
}

// DuplicateAirportCodes lists the IATA codes used by more than one airport row.
func (ds *Dataset)DuplicateAirportCodes() []string { return ds.index.DuplicateCodes() }

func (ds *Dataset)MeasuredRouteCount() int {
	n := 0
	for _,er := range ds.routes {
		if er.HasDistance { n++ }
	}
	return n
}

// copyRoute makes sure the caller can't reach our positions through the pointers
func copyRoute(er routedb.EnrichedRoute) routedb.EnrichedRoute {
	if er.SourceLatlong != nil {
		pos := *er.SourceLatlong
		er.SourceLatlong = &pos
	}
	if er.DestinationLatlong != nil {
		pos := *er.DestinationLatlong
		er.DestinationLatlong = &pos
	}
	return er
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
