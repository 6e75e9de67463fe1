package dataset

import(
	"github.com/skypies/util/histogram"
)

// Half the circumference of the earth, rounded up; no great circle route is longer.
const(
	HistogramMaxKM   = 20100
	HistogramBuckets = 67
)

// Distances returns the distance of every measured route, in routes table order.
func (ds *Dataset)Distances() []float64 {
	out := []float64{}
	for _,er := range ds.routes {
		if er.HasDistance { out = append(out, er.DistanceKM) }
	}
	return out
}

// DistanceHistogram buckets the measured route distances into 300km bins.
func (ds *Dataset)DistanceHistogram() histogram.Histogram {
	h := histogram.Histogram{ValMin:0, ValMax:HistogramMaxKM, NumBuckets:HistogramBuckets}
	for _,d := range ds.Distances() {
		h.Add(histogram.ScalarVal(d))
	}
	return h
}
