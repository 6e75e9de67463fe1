package routedb

// RouteForBigQuery is a flattened represenation of an EnrichedRoute, designed for import
// into BigQuery, for analysis. Unmatched positions are left null.
type RouteForBigQuery struct {
	Airline            string
	AirlineID          int
	Orig,Dest          string // airport codes
	OrigID,DestID      int
	Codeshare          bool
	Stops              int
	Equip            []string // e.g. 320, 738

	OrigLat,OrigLong   *float64
	DestLat,DestLong   *float64
	DistanceKM         *float64
}

func (er EnrichedRoute)ForBigQuery() *RouteForBigQuery {
	rbq := RouteForBigQuery{
		Airline: er.Airline,
		AirlineID: er.AirlineID,
		Orig: er.SourceAirport,
		Dest: er.DestinationAirport,
		OrigID: er.SourceAirportID,
		DestID: er.DestinationAirportID,
		Codeshare: er.Codeshare,
		Stops: er.Stops,
		Equip: er.EquipmentCodes(),
	}

	if pos := er.SourceLatlong; pos != nil {
		lat,long := pos.Lat, pos.Long
		rbq.OrigLat, rbq.OrigLong = &lat, &long
	}
	if pos := er.DestinationLatlong; pos != nil {
		lat,long := pos.Lat, pos.Long
		rbq.DestLat, rbq.DestLong = &lat, &long
	}
	if er.HasDistance {
		d := er.DistanceKM
		rbq.DistanceKM = &d
	}

	return &rbq
}
