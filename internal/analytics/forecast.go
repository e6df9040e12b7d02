package analytics

import (
	"fmt"
	"math"
	"math/rand"
	"sync"

	"marketplace-analytics/internal/model"
)

const (
	// ForecastPeriods is the number of projected periods.
	ForecastPeriods = 3
	// ConfidenceBand is the symmetric relative width of the bounds.
	ConfidenceBand = 0.10

	ModelTrend   = "trend"
	ModelSampled = "sampled"
)

// Forecaster projects the next ForecastPeriods values of a series whose most
// recent value is last.
type Forecaster interface {
	Forecast(history []float64) ForecastResult
}

// ForecastResult carries the projection before it is attached to a report.
type ForecastResult struct {
	Model    string
	Forecast []float64
}

// NewForecaster returns the forecaster registered under name. src seeds the
// sampled model and is ignored by the trend model.
func NewForecaster(name string, src rand.Source) (Forecaster, error) {
	switch name {
	case "", ModelTrend:
		return TrendForecaster{}, nil
	case ModelSampled:
		return NewSampledForecaster(src), nil
	default:
		return nil, fmt.Errorf("unknown forecast model %q", name)
	}
}

// TrendForecaster fits an ordinary least-squares line through the history
// and extends it. Projections below zero are clamped to zero.
type TrendForecaster struct{}

func (TrendForecaster) Forecast(history []float64) ForecastResult {
	out := make([]float64, ForecastPeriods)
	n := len(history)
	switch n {
	case 0:
	case 1:
		for i := range out {
			out[i] = math.Max(history[0], 0)
		}
	default:
		var meanX, meanY float64
		for i, y := range history {
			meanX += float64(i)
			meanY += y
		}
		meanX /= float64(n)
		meanY /= float64(n)

		var num, den float64
		for i, y := range history {
			dx := float64(i) - meanX
			num += dx * (y - meanY)
			den += dx * dx
		}
		slope := num / den
		intercept := meanY - slope*meanX
		for k := range out {
			x := float64(n + k)
			out[k] = math.Max(intercept+slope*x, 0)
		}
	}
	return ForecastResult{Model: ModelTrend, Forecast: out}
}

// SampledForecaster compounds the last value by a growth factor drawn from
// [1.0, 1.10). It is a placeholder model and must not be read as a
// prediction.
type SampledForecaster struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSampledForecaster builds a SampledForecaster over src.
func NewSampledForecaster(src rand.Source) *SampledForecaster {
	if src == nil {
		src = rand.NewSource(1)
	}
	return &SampledForecaster{rng: rand.New(src)}
}

func (f *SampledForecaster) Forecast(history []float64) ForecastResult {
	out := make([]float64, ForecastPeriods)
	if len(history) == 0 {
		return ForecastResult{Model: ModelSampled, Forecast: out}
	}
	f.mu.Lock()
	growth := 1.0 + f.rng.Float64()*0.10
	f.mu.Unlock()

	last := history[len(history)-1]
	for k := range out {
		out[k] = last * math.Pow(growth, float64(k+1))
	}
	return ForecastResult{Model: ModelSampled, Forecast: out}
}

// Bounds returns the lower and upper confidence bounds of a projection.
func Bounds(forecast []float64) (lower, upper []float64) {
	lower = make([]float64, len(forecast))
	upper = make([]float64, len(forecast))
	for i, v := range forecast {
		lower[i] = Round(v*(1-ConfidenceBand), 2)
		upper[i] = Round(v*(1+ConfidenceBand), 2)
	}
	return lower, upper
}

// Project runs f over history and returns the rounded series with bounds.
func Project(f Forecaster, history []float64) model.ForecastSeries {
	res := f.Forecast(history)
	forecast := make([]float64, len(res.Forecast))
	for i, v := range res.Forecast {
		forecast[i] = Round(v, 2)
	}
	lower, upper := Bounds(forecast)
	hist := append([]float64{}, history...)
	return model.ForecastSeries{
		Model:      res.Model,
		Historical: hist,
		Forecast:   forecast,
		Lower:      lower,
		Upper:      upper,
	}
}
