package routedb

import(
	"fmt"
	"math"
	"strconv"

	"github.com/skypies/geo"
)

// Mean radius of the earth, as used by all the distance computations here.
const EarthRadiusKM = 6373.0

// HaversineKM returns the great-circle distance between two points, given in degrees.
// It is exactly zero when both points are the same, and never NaN for valid positions.
func HaversineKM(lat1, long1, lat2, long2 float64) float64 {
	rlat1, rlong1 := lat1 * math.Pi / 180.0, long1 * math.Pi / 180.0
	rlat2, rlong2 := lat2 * math.Pi / 180.0, long2 * math.Pi / 180.0

	dlat  := rlat2 - rlat1
	dlong := rlong2 - rlong1

	sinLat, sinLong := math.Sin(dlat / 2), math.Sin(dlong / 2)
	a := sinLat*sinLat + math.Cos(rlat1)*math.Cos(rlat2)*sinLong*sinLong

	// Rounding can leave a just outside [0,1] for antipodal points
	a = math.Max(0, math.Min(1, a))
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKM * c
}

// DistKM is HaversineKM over two validated positions.
func DistKM(from, to geo.Latlong) (float64, error) {
	if err := ValidateLatlong("from", from); err != nil { return 0, err }
	if err := ValidateLatlong("to", to); err != nil { return 0, err }

	return HaversineKM(from.Lat, from.Long, to.Lat, to.Long), nil
}

// DistKMFromStrings parses the four values and returns the distance between them. Any
// value that is not a number is a ValidationError; nothing gets coerced.
func DistKMFromStrings(lat1, long1, lat2, long2 string) (float64, error) {
	vals := []float64{}
	for i,s := range []string{lat1, long1, lat2, long2} {
		f,err := ParseDegrees([]string{"lat1","long1","lat2","long2"}[i], s)
		if err != nil { return 0, err }
		vals = append(vals, f)
	}

	return DistKM(geo.Latlong{Lat:vals[0], Long:vals[1]}, geo.Latlong{Lat:vals[2], Long:vals[3]})
}

// {{{ ParseDegrees, ParseLatlong, ValidateLatlong

// ParseDegrees parses a single angle; it must be a finite number.
func ParseDegrees(field, s string) (float64, error) {
	f,err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ValidationError{Field:field, Value:s, Reason:"not a number"}
	} else if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, ValidationError{Field:field, Value:s, Reason:"not a finite number"}
	}
	return f, nil
}

// ParseLatlong builds a validated position from the two strings.
func ParseLatlong(latStr, longStr string) (geo.Latlong, error) {
	lat,err := ParseDegrees("latitude", latStr)
	if err != nil { return geo.Latlong{}, err }
	long,err := ParseDegrees("longitude", longStr)
	if err != nil { return geo.Latlong{}, err }

	pos := geo.Latlong{Lat:lat, Long:long}
	return pos, ValidateLatlong("position", pos)
}

func ValidateLatlong(field string, pos geo.Latlong) error {
	str := fmt.Sprintf("%v,%v", pos.Lat, pos.Long)
	switch {
	case math.IsNaN(pos.Lat) || math.IsNaN(pos.Long):
		return ValidationError{Field:field, Value:str, Reason:"not a number"}
	case pos.Lat < -90 || pos.Lat > 90:
		return ValidationError{Field:field, Value:str, Reason:"latitude outside [-90,90]"}
	case pos.Long < -180 || pos.Long > 180:
		return ValidationError{Field:field, Value:str, Reason:"longitude outside [-180,180]"}
	}
	return nil
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
