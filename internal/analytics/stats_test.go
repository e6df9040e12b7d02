package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRound(t *testing.T) {
	require.Equal(t, 1.01, Round(1.005, 2))
	require.Equal(t, 33.3, Round(33.333, 1))
	require.Equal(t, 0.0, Round(math.NaN(), 2))
	require.Equal(t, 0.0, Round(math.Inf(1), 2))
}

func TestPercentAndGrowth(t *testing.T) {
	require.Equal(t, 33.3, Percent(1, 3))
	require.Equal(t, 0.0, Percent(5, 0))

	require.Equal(t, 50.0, Growth(150, 100))
	require.Equal(t, -25.0, Growth(75, 100))
	require.Equal(t, 100.0, Growth(10, 0))
	require.Equal(t, 0.0, Growth(0, 0))
}

func TestMoney(t *testing.T) {
	require.Equal(t, 0.3, Money(0.1, 0.2))
	require.Equal(t, 0.0, Money())
}

func TestMedian(t *testing.T) {
	in := []float64{5, 1, 3}
	require.Equal(t, 3.0, Median(in))
	require.Equal(t, []float64{5, 1, 3}, in)
	require.Equal(t, 2.5, Median([]float64{4, 1, 2, 3}))
	require.Equal(t, 0.0, Median(nil))
}

func TestPearson(t *testing.T) {
	require.Equal(t, 1.0, Pearson([]float64{1, 2, 3}, []float64{2, 4, 6}))
	require.Equal(t, -1.0, Pearson([]float64{1, 2, 3}, []float64{3, 2, 1}))
	require.Equal(t, 0.0, Pearson([]float64{1, 1, 1}, []float64{1, 2, 3}))
	require.Equal(t, 0.0, Pearson([]float64{1}, []float64{1}))
	require.Equal(t, 0.0, Pearson([]float64{1, 2}, []float64{1}))
}
