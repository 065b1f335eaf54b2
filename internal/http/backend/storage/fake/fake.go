package fake

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/slok/tsplot/internal/chart"
	"github.com/slok/tsplot/internal/http/backend/storage"
)

const (
	fakePoints = 180
	fakeStep   = time.Minute
)

// Repository is a chart source with generated data, used to try the UI
// without a real data source. The data is generated once and doesn't change.
type Repository struct {
	entries []chart.Entry
}

var _ storage.ChartGetter = &Repository{}

// NewRepository returns a fake repository with data ending at now. Same seed
// generates the same data.
func NewRepository(now time.Time, seed int64) *Repository {
	r := &Repository{}
	r.genFakeData(now, rand.New(rand.NewSource(seed)))

	return r
}

func (r *Repository) genFakeData(now time.Time, rnd *rand.Rand) {
	end := now.Truncate(fakeStep)
	start := end.Add(-fakeStep * (fakePoints - 1))
	tsAt := func(i int) float64 { return float64(start.Add(fakeStep * time.Duration(i)).UnixMilli()) }

	// Requests with a scrape outage and an isolated sample inside it.
	requests := chart.Entry{Title: "Requests per second"}
	for i := 0; i < fakePoints; i++ {
		v := chart.Value(1200 + 400*math.Sin(float64(i)/15) + rnd.Float64()*150)
		if i >= 60 && i < 75 && i != 67 {
			v = chart.Null()
		}
		requests.Data = append(requests.Data, chart.SinglePoint{TS: tsAt(i), Value: v})
	}

	// Latency percentiles, p90 has gaps of its own.
	latency := chart.Entry{Title: "Latency p50/p90/p99 (seconds)"}
	for i := 0; i < fakePoints; i++ {
		base := 0.05 + 0.02*math.Sin(float64(i)/20)
		p90 := chart.Value(base*2 + rnd.Float64()*0.03)
		if i%45 > 40 {
			p90 = chart.Null()
		}
		latency.Data = append(latency.Data, chart.MultiPoint{TS: tsAt(i), Channels: [chart.ChannelCount]chart.Sample{
			chart.Value(base + rnd.Float64()*0.01),
			p90,
			chart.Value(base*5 + rnd.Float64()*0.2),
		}})
	}

	// A chart whose series never reported.
	noData := chart.Entry{Title: "Queue depth (no data)"}
	for i := 0; i < fakePoints; i += 10 {
		noData.Data = append(noData.Data, chart.SinglePoint{TS: tsAt(i), Value: chart.Null()})
	}

	r.entries = []chart.Entry{
		requests,
		latency,
		noData,
		{Title: "Empty chart", Data: []chart.DataPoint{}},
	}
}

func (r *Repository) ListChartEntries(_ context.Context) ([]chart.Entry, error) {
	entries := make([]chart.Entry, len(r.entries))
	copy(entries, r.entries)
	return entries, nil
}
