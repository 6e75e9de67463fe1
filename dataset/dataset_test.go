package dataset

import(
	"context"
	"errors"
	"math"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skypies/routedb"
	"github.com/skypies/routedb/enrich"
	"github.com/skypies/routedb/logger"
	"github.com/skypies/routedb/routedbtest"
)

func testOptions(path string) Options {
	opt := DefaultOptions()
	opt.URL = "http://127.0.0.1:1/never-fetched.zip"
	opt.Path = path
	opt.Logger = logger.Discard()
	opt.Fetcher.Logger = logger.Discard()
	return opt
}

func fixture(t *testing.T) *Dataset {
	path := filepath.Join(t.TempDir(), "downloads", "flight_data.zip")
	require.NoError(t, routedbtest.WriteArchive(path, routedbtest.Entries()))

	ds,err := Build(context.Background(), testOptions(path))
	require.NoError(t, err)
	return ds
}

func TestBuild(t *testing.T) {
	ds := fixture(t)

	assert.Len(t, ds.Airlines(), 4)
	assert.Len(t, ds.Airplanes(), 7)
	assert.Len(t, ds.Airports(), 8)
	assert.Len(t, ds.Routes(), 10)
	assert.Equal(t, 9, ds.MeasuredRouteCount())
	assert.Empty(t, ds.DuplicateAirportCodes())
	assert.Contains(t, ds.Source(), "flight_data.zip")

	for i,er := range ds.Routes() {
		if exp := routedbtest.RouteDistancesKM[i]; exp >= 0 {
			assert.InDelta(t, exp, er.DistanceKM, 0.01, "row %d", i)
		}
	}
}

func TestBuildMissingArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flight_data.zip")
	_,err := Build(context.Background(), testOptions(path))
	require.Error(t, err)

	var te routedb.TransportError
	assert.True(t, errors.As(err, &te), "expected a TransportError, got %T: %v", err, err)
}

func TestBuildRejectDuplicates(t *testing.T) {
	entries := routedbtest.Entries()
	entries["airports.csv"] += "8,9999,Frankfurt Two,Frankfurt,Germany,FRA,EDDX,50.0,8.5,0,1,E,Europe/Berlin,airport,User\n"
	path := filepath.Join(t.TempDir(), "flight_data.zip")
	require.NoError(t, routedbtest.WriteArchive(path, entries))

	opt := testOptions(path)
	ds,err := Build(context.Background(), opt)
	require.NoError(t, err)
	assert.Equal(t, []string{"FRA"}, ds.DuplicateAirportCodes())
	a,err := ds.Airport("FRA")
	require.NoError(t, err)
	assert.Equal(t, "Frankfurt am Main Airport", a.Name)

	opt.Duplicates = enrich.RejectDuplicates
	_,err = Build(context.Background(), opt)
	var dke routedb.DuplicateKeyError
	require.True(t, errors.As(err, &dke))
	assert.Equal(t, "FRA", dke.Code)
}

func TestAccessorsCopy(t *testing.T) {
	ds := fixture(t)

	routes := ds.Routes()
	routes[0].DistanceKM = -5
	routes[0].SourceLatlong.Lat = 0
	airports := ds.Airports()
	airports[0].Name = "Mutated"

	again := ds.Routes()
	assert.InDelta(t, 188.927, again[0].DistanceKM, 0.01)
	assert.InDelta(t, 50.033333, again[0].SourceLatlong.Lat, 1e-9)
	assert.Equal(t, "Frankfurt am Main Airport", ds.Airports()[0].Name)
}

func TestAirportLookups(t *testing.T) {
	ds := fixture(t)

	a,err := ds.Airport("muc")
	require.NoError(t, err)
	assert.Equal(t, "Munich Airport", a.Name)

	_,err = ds.Airport("XYZ")
	var nfe routedb.NotFoundError
	require.True(t, errors.As(err, &nfe))
	assert.Equal(t, "XYZ", nfe.Value)
	assert.Contains(t, nfe.Known, "FRA")
	assert.Contains(t, err.Error(), "XYZ")

	german,err := ds.AirportsIn("Germany")
	require.NoError(t, err)
	assert.Len(t, german, 4, "includes the station with no IATA code")

	_,err = ds.AirportsIn("Atlantis")
	require.True(t, errors.As(err, &nfe))
	assert.Equal(t, "country", nfe.Kind)
	assert.Equal(t, []string{"Germany", "Netherlands", "United Kingdom", "United States"}, nfe.Known)
}

func TestAirline(t *testing.T) {
	ds := fixture(t)

	a,err := ds.Airline("DLH")
	require.NoError(t, err)
	assert.Equal(t, "Lufthansa", a.Name)
	a,err = ds.Airline("kl")
	require.NoError(t, err)
	assert.Equal(t, 3090, a.ID)

	_,err = ds.Airline("ZZ")
	var nfe routedb.NotFoundError
	require.True(t, errors.As(err, &nfe))
	assert.Equal(t, "airline", nfe.Kind)

	routes := ds.Routes()
	a,ok := ds.AirlineOf(routes[8].Route)
	require.True(t, ok)
	assert.Equal(t, "United Airlines", a.Name)

	_,ok = ds.AirlineOf(routedb.Route{Airline:"XX"})
	assert.False(t, ok)
}

func TestRoutesFrom(t *testing.T) {
	ds := fixture(t)

	routes,err := ds.RoutesFrom("MUC")
	require.NoError(t, err)
	require.Len(t, routes, 1)
	assert.Equal(t, "ZZZ", routes[0].DestinationAirport)
	assert.False(t, routes[0].HasDistance)

	_,err = ds.RoutesFrom("ZZZ")
	assert.Error(t, err)
}

func TestFlightsFromAirport(t *testing.T) {
	ds := fixture(t)

	legs,err := ds.FlightsFromAirport("FRA", false)
	require.NoError(t, err)
	require.Len(t, legs, 3)
	assert.Equal(t, "DUS", legs[0].Destination.IATA)
	assert.True(t, legs[0].Domestic)
	assert.Equal(t, "JFK", legs[2].Destination.IATA)
	assert.False(t, legs[2].Domestic)

	legs,err = ds.FlightsFromAirport("FRA", true)
	require.NoError(t, err)
	assert.Len(t, legs, 2)

	legs,err = ds.FlightsFromAirport("MUC", false)
	require.NoError(t, err)
	assert.Empty(t, legs, "the only route goes to an unknown airport")

	_,err = ds.FlightsFromAirport("QQQ", false)
	var nfe routedb.NotFoundError
	assert.True(t, errors.As(err, &nfe))
}

func TestFlightsFromCountry(t *testing.T) {
	ds := fixture(t)

	legs,err := ds.FlightsFromCountry("Germany", false)
	require.NoError(t, err)
	assert.Len(t, legs, 5)

	legs,err = ds.FlightsFromCountry("Germany", true)
	require.NoError(t, err)
	assert.Len(t, legs, 3)

	_,err = ds.FlightsFromCountry("Narnia", false)
	assert.Error(t, err)
}

func TestHaul(t *testing.T) {
	ds := fixture(t)

	short,err := ds.ShortHaul(1000)
	require.NoError(t, err)
	long,err := ds.LongHaul(1000)
	require.NoError(t, err)
	assert.Len(t, short, 5)
	assert.Len(t, long, 4)
	assert.Equal(t, ds.MeasuredRouteCount(), len(short)+len(long))

	hs := Classify(ds.Routes(), 1000)
	assert.Equal(t, len(short), hs.ShortCount)
	assert.Equal(t, len(long), hs.LongCount)
	assert.Equal(t, ds.MeasuredRouteCount(), hs.Count(), "unmeasured routes are not counted")

	// The boundary belongs to long haul
	shortest := ds.Routes()[0].DistanceKM
	long,err = ds.LongHaul(shortest)
	require.NoError(t, err)
	short,err = ds.ShortHaul(shortest)
	require.NoError(t, err)
	assert.Len(t, short, 0)
	assert.Len(t, long, 9)

	for _,bad := range []float64{0, -10, math.NaN(), math.Inf(1)} {
		_,err := ds.ShortHaul(bad)
		var ve routedb.ValidationError
		assert.True(t, errors.As(err, &ve), "threshold %v", bad)
	}
}

func TestEmissionsRatio(t *testing.T) {
	tests := []struct{
		Name     string
		Summary  HaulSummary
		Ratio    float64
		Expected float64
		Err      error
	}{
		{"all short", HaulSummary{ShortCount:2, ShortKM:700}, 0.12, 0.12, nil},
		{"all long",  HaulSummary{LongCount:1, LongKM:7000}, 0.12, 1.0, nil},
		{"mixed",     HaulSummary{ShortKM:1000, LongKM:3000}, 0.2, 0.8, nil},
		{"none",      HaulSummary{}, 0.12, 0, routedb.ErrNoDistance},
	}

	for _,test := range tests {
		actual,err := test.Summary.EmissionsRatio(test.Ratio)
		if test.Err != nil {
			assert.ErrorIs(t, err, test.Err, test.Name)
			continue
		}
		require.NoError(t, err, test.Name)
		assert.InDelta(t, test.Expected, actual, 1e-12, test.Name)
	}

	// exactness
	r,_ := HaulSummary{ShortKM:974.074}.EmissionsRatio(routedb.DefaultTrainPlaneRatio)
	assert.Equal(t, routedb.DefaultTrainPlaneRatio, r)
	r,_ = HaulSummary{LongKM:15383.453}.EmissionsRatio(routedb.DefaultTrainPlaneRatio)
	assert.Equal(t, 1.0, r)

	_,err := HaulSummary{ShortKM:1}.EmissionsRatio(-1)
	var ve routedb.ValidationError
	assert.True(t, errors.As(err, &ve))
}

func TestCountryReport(t *testing.T) {
	ds := fixture(t)

	cr,err := ds.CountryReport("Germany", 1000, false, routedb.DefaultTrainPlaneRatio)
	require.NoError(t, err)
	assert.Equal(t, 3, cr.Summary.ShortCount)
	assert.InDelta(t, 974.074, cr.Summary.ShortKM, 0.05)
	assert.Equal(t, 2, cr.Summary.LongCount)
	assert.InDelta(t, 15383.453, cr.Summary.LongKM, 0.05)
	require.True(t, cr.HasRatio)
	expected := (routedb.DefaultTrainPlaneRatio*974.074 + 15383.453) / (974.074 + 15383.453)
	assert.InDelta(t, expected, cr.EmissionsRatio, 1e-5)

	cr,err = ds.CountryReport("Germany", 1000, true, routedb.DefaultTrainPlaneRatio)
	require.NoError(t, err)
	assert.Equal(t, 0, cr.Summary.LongCount)
	assert.Equal(t, routedb.DefaultTrainPlaneRatio, cr.EmissionsRatio)

	// Heathrow's routes all leave the country, so there is nothing domestic
	cr,err = ds.CountryReport("United Kingdom", 1000, true, routedb.DefaultTrainPlaneRatio)
	require.NoError(t, err)
	assert.False(t, cr.HasRatio)
	assert.Empty(t, cr.Legs)

	_,err = ds.CountryReport("Atlantis", 1000, false, routedb.DefaultTrainPlaneRatio)
	assert.Error(t, err)
}

func TestTopModels(t *testing.T) {
	ds := fixture(t)

	mr,err := ds.TopModels([]string{"Germany"}, 3)
	require.NoError(t, err)
	assert.Equal(t, []ModelCount{
		{"Airbus A320", 3},
		{"Airbus A319", 2},
		{"Airbus A321", 1},
	}, mr.Models)
	assert.Equal(t, 1, mr.Unknown)
	assert.Equal(t, 0, mr.UnmatchedCodes)

	mr,err = ds.TopModels(nil, 1)
	require.NoError(t, err)
	assert.Equal(t, []ModelCount{{"Airbus A320", 4}}, mr.Models)

	_,err = ds.TopModels([]string{"Germany", "Atlantis", "Narnia"}, 3)
	var nfe routedb.NotFoundError
	require.True(t, errors.As(err, &nfe))
	assert.Equal(t, "Atlantis, Narnia", nfe.Value)

	_,err = ds.TopModels(nil, 0)
	assert.Error(t, err)
}

func TestNames(t *testing.T) {
	ds := fixture(t)

	assert.Len(t, ds.Aircrafts(), 7)
	assert.NoError(t, ds.ValidateAircraft("Boeing 747-400"))
	err := ds.ValidateAircraft("Concorde")
	var nfe routedb.NotFoundError
	require.True(t, errors.As(err, &nfe))
	assert.Equal(t, "aircraft", nfe.Kind)
	assert.Contains(t, nfe.Known, "Airbus A380-800")

	assert.Len(t, ds.AirportNames(), 8)
	assert.NoError(t, ds.ValidateAirportName("Munich Airport"))
	assert.Error(t, ds.ValidateAirportName("Tempelhof"))
}

func TestDistanceHistogram(t *testing.T) {
	ds := fixture(t)

	assert.Len(t, ds.Distances(), 9)
	h := ds.DistanceHistogram()
	stats,valid := h.Stats()
	require.True(t, valid)
	assert.Equal(t, 9, int(stats.N))
}

func TestConcurrentQueries(t *testing.T) {
	ds := fixture(t)

	var wg sync.WaitGroup
	for i:=0; i<8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cr,err := ds.CountryReport("Germany", 1000, false, routedb.DefaultTrainPlaneRatio)
			assert.NoError(t, err)
			assert.Equal(t, 5, cr.Summary.Count())
		}()
	}
	wg.Wait()
}
