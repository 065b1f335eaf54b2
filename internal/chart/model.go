package chart

// ChannelCount is the number of channels a multi-series point carries.
const ChannelCount = 3

// Sample is a single numeric value that can be missing (null on the wire).
type Sample struct {
	Value   float64
	Missing bool // Easier than using float64 nil pointers.
}

// Value returns a present sample.
func Value(v float64) Sample { return Sample{Value: v} }

// Null returns a missing sample.
func Null() Sample { return Sample{Missing: true} }

// DataPoint is one row of a chart entry, it can be a SinglePoint or a MultiPoint.
type DataPoint interface {
	Timestamp() float64
	isDataPoint()
}

// SinglePoint is a data point of a single series chart.
type SinglePoint struct {
	TS    float64
	Value Sample
}

func (p SinglePoint) Timestamp() float64 { return p.TS }
func (SinglePoint) isDataPoint()         {}

// MultiPoint is a data point of a multi series chart, it has one sample per channel.
type MultiPoint struct {
	TS       float64
	Channels [ChannelCount]Sample
}

func (p MultiPoint) Timestamp() float64 { return p.TS }
func (MultiPoint) isDataPoint()         {}

// Entry is one titled chart dataset.
type Entry struct {
	Title string
	Data  []DataPoint
}

// IsMultiPoint returns true if the data point is multi series.
func IsMultiPoint(p DataPoint) bool {
	_, ok := p.(MultiPoint)
	return ok
}

// IsMultiChart returns true if the entry is a multi series chart. Entries are
// homogeneous so only the first point is checked.
func IsMultiChart(e Entry) bool {
	if len(e.Data) == 0 {
		return false
	}

	return IsMultiPoint(e.Data[0])
}

// Kind returns a human friendly name of the entry type.
func (e Entry) Kind() string {
	if IsMultiChart(e) {
		return "multi"
	}
	return "single"
}

// SeriesPoint is a point of a single derived series.
type SeriesPoint struct {
	TS    float64
	Value Sample
}

// Series returns the series of the entry, one for single charts and one per
// channel for multi charts.
func (e Entry) Series() [][]SeriesPoint {
	if !IsMultiChart(e) {
		s := make([]SeriesPoint, 0, len(e.Data))
		for _, dp := range e.Data {
			sp, ok := dp.(SinglePoint)
			if !ok {
				s = append(s, SeriesPoint{TS: dp.Timestamp(), Value: Null()})
				continue
			}
			s = append(s, SeriesPoint{TS: sp.TS, Value: sp.Value})
		}
		return [][]SeriesPoint{s}
	}

	series := make([][]SeriesPoint, ChannelCount)
	for i := range series {
		series[i] = make([]SeriesPoint, 0, len(e.Data))
	}
	for _, dp := range e.Data {
		mp, ok := dp.(MultiPoint)
		for i := range series {
			v := Null()
			if ok {
				v = mp.Channels[i]
			}
			series[i] = append(series[i], SeriesPoint{TS: dp.Timestamp(), Value: v})
		}
	}

	return series
}
