// Package mapshapes turns airports and legs into the points and lines a map would draw.
package mapshapes

import(
	"fmt"

	pgeo "github.com/paulmach/go.geo"
	"github.com/paulmach/go.geojson"
	"github.com/skypies/geo"

	"github.com/skypies/routedb"
	"github.com/skypies/routedb/dataset"
)

const(
	Blue = "#0000ff"
	Red  = "#ff0000"
)

// MapShapes is a single thing that contains all the things we want to render on a map
type MapShapes struct {
	Lines  []MapLine
	Points []MapPoint
}

// {{{ NewMapShapes

func NewMapShapes() *MapShapes {
	return &MapShapes{
		Lines: []MapLine{},
		Points: []MapPoint{},
	}
}

// }}}
// {{{ ms.Add [Line,Point]

func (ms1 *MapShapes)Add(ms2 *MapShapes) {
	ms1.Lines  = append(ms1.Lines,  ms2.Lines...)
	ms1.Points = append(ms1.Points, ms2.Points...)
}

func (ms1 *MapShapes)AddLine(ml MapLine) { ms1.Lines = append(ms1.Lines, ml) }
func (ms1 *MapShapes)AddPoint(mp MapPoint) { ms1.Points = append(ms1.Points, mp) }

// }}}

// {{{ MapPoint{}

type MapPoint struct {
	Pos   geo.Latlong `json:"pos"`
	Color string      `json:"color"`
	Text  string      `json:"text"`
}

// }}}
// {{{ MapLine{}

type MapLine struct {
	Start geo.Latlong `json:"s"`
	End   geo.Latlong `json:"e"`

	Color      string  `json:"color"`    // A hex color value (e.g. "#ff8822")
	Opacity    float64 `json:"opacity"`
	Text       string  `json:"text"`
	DistanceKM float64 `json:"km"`
}

func (ml MapLine)String() string {
	return fmt.Sprintf("(%.4f,%.4f)->(%.4f,%.4f) %s %.1fkm", ml.Start.Lat, ml.Start.Long,
		ml.End.Lat, ml.End.Long, ml.Color, ml.DistanceKM)
}

// }}}

// {{{ AirportPoints

// AirportPoints has a point for each airport that has a position.
func AirportPoints(airports []routedb.Airport) *MapShapes {
	ms := NewMapShapes()
	for _,a := range airports {
		if pos,ok := a.Position(); ok {
			ms.AddPoint(MapPoint{Pos:pos, Color:Blue, Text:airportText(a)})
		}
	}
	return ms
}

func airportText(a routedb.Airport) string {
	if a.IATA == "" { return a.Name }
	return fmt.Sprintf("%s (%s)", a.Name, a.IATA)
}

// }}}
// {{{ RouteLines

// RouteLines draws each leg blue if it is short haul, red if long haul.
func RouteLines(legs []dataset.Leg, thresholdKM float64) *MapShapes {
	ms := NewMapShapes()
	for _,l := range legs {
		color := Red
		if l.DistanceKM < thresholdKM { color = Blue }
		ms.AddLine(legLine(l, color))
	}
	return ms
}

// }}}
// {{{ AirportRoutes

// AirportRoutes draws each leg blue if it is domestic, red if international, and marks
// every airport the legs touch.
func AirportRoutes(legs []dataset.Leg) *MapShapes {
	ms := NewMapShapes()
	seen := map[string]bool{}
	mark := func(a routedb.Airport, color string) {
		if seen[a.IATA] { return }
		seen[a.IATA] = true
		ms.AddPoint(MapPoint{Pos:a.Latlong, Color:color, Text:airportText(a)})
	}

	for _,l := range legs {
		color := Red
		if l.Domestic { color = Blue }
		ms.AddLine(legLine(l, color))
		mark(l.Source, Blue)
		mark(l.Destination, color)
	}
	return ms
}

func legLine(l dataset.Leg, color string) MapLine {
	return MapLine{
		Start: l.Source.Latlong,
		End: l.Destination.Latlong,
		Color: color,
		Opacity: 0.6,
		Text: fmt.Sprintf("%s: %s to %s", l.Airline, l.Source.IATA, l.Destination.IATA),
		DistanceKM: l.DistanceKM,
	}
}

// }}}

// {{{ ms.positions, ms.Center, ms.Bound

func (ms *MapShapes)positions() []geo.Latlong {
	out := []geo.Latlong{}
	for _,mp := range ms.Points { out = append(out, mp.Pos) }
	for _,ml := range ms.Lines { out = append(out, ml.Start, ml.End) }
	return out
}

// Center is the mean of every position on the map; false if there are none.
func (ms *MapShapes)Center() (geo.Latlong, bool) {
	pos := ms.positions()
	if len(pos) == 0 { return geo.Latlong{}, false }

	sum := geo.Latlong{}
	for _,p := range pos {
		sum.Lat += p.Lat
		sum.Long += p.Long
	}
	n := float64(len(pos))
	return geo.Latlong{Lat:sum.Lat/n, Long:sum.Long/n}, true
}

// Bound is the smallest lat/long box holding everything on the map. Points are X=long,
// Y=lat.
func (ms *MapShapes)Bound() (*pgeo.Bound, bool) {
	pos := ms.positions()
	if len(pos) == 0 { return nil, false }

	first := pgeo.NewPoint(pos[0].Long, pos[0].Lat)
	b := pgeo.NewBoundFromPoints(first, first)
	for _,p := range pos[1:] {
		b.Extend(pgeo.NewPoint(p.Long, p.Lat))
	}
	return b, true
}

// }}}
// {{{ ms.ToGeoJSON, ms.GeoJSON

// ToGeoJSON renders the shapes as a FeatureCollection. Coordinates are [long,lat], as
// GeoJSON wants them.
func (ms *MapShapes)ToGeoJSON() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for _,mp := range ms.Points {
		f := geojson.NewPointFeature([]float64{mp.Pos.Long, mp.Pos.Lat})
		f.SetProperty("color", mp.Color)
		f.SetProperty("text", mp.Text)
		fc.AddFeature(f)
	}

	for _,ml := range ms.Lines {
		f := geojson.NewLineStringFeature([][]float64{
			{ml.Start.Long, ml.Start.Lat},
			{ml.End.Long, ml.End.Lat},
		})
		f.SetProperty("color", ml.Color)
		f.SetProperty("opacity", ml.Opacity)
		f.SetProperty("text", ml.Text)
		f.SetProperty("distance_km", ml.DistanceKM)
		fc.AddFeature(f)
	}

	return fc
}

func (ms *MapShapes)GeoJSON() ([]byte, error) {
	return ms.ToGeoJSON().MarshalJSON()
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
