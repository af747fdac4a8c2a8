package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMeanStd(t *testing.T) {
	x := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	assert.InDelta(t, 5.0, Mean(x), 1e-12)
	assert.InDelta(t, 2.0, Std(x), 1e-12)
	assert.True(t, math.IsNaN(Mean(nil)))
	assert.True(t, math.IsNaN(Std(nil)))
	assert.Equal(t, 47.0, Sum(x))

	lo, hi := MinMax(x)
	assert.Equal(t, 2.0, lo)
	assert.Equal(t, 9.0, hi)
	lo, _ = MinMax(nil)
	assert.True(t, math.IsNaN(lo))
}

func TestPercentileLinear(t *testing.T) {
	x := []float64{30000, 50000, 75000, 100000, 400000}
	assert.Equal(t, 50000.0, Percentile(x, 25))
	assert.Equal(t, 100000.0, Percentile(x, 75))
	assert.Equal(t, 75000.0, Percentile(x, 50))

	assert.InDelta(t, 2.5, Percentile([]float64{4, 1, 3, 2}, 50), 1e-12)
	assert.Equal(t, 1.0, Percentile([]float64{4, 1, 3, 2}, 0))
	assert.Equal(t, 4.0, Percentile([]float64{4, 1, 3, 2}, 100))
	assert.True(t, math.IsNaN(Percentile(nil, 50)))
}

func TestFinite(t *testing.T) {
	x := []float64{1, math.NaN(), math.Inf(1), 2}
	assert.Equal(t, []float64{1, 2}, Finite(x))
}

func TestIQRFences(t *testing.T) {
	x := []float64{100, 500, 1000, 2000, 12000, math.NaN()}
	f := IQRFences(x, 1.5)
	assert.Equal(t, 500-1.5*1500, f.Lower)
	assert.Equal(t, 2000+1.5*1500, f.Upper)

	flags := FenceFlags(x, f)
	assert.Equal(t, []bool{false, false, false, false, true, false}, flags)
}

func TestZScoreFlags(t *testing.T) {
	x := make([]float64, 0, 31)
	for range 30 {
		x = append(x, 10)
	}
	x = append(x, 1000)
	flags := ZScoreFlags(x, 3)
	assert.True(t, flags[30])
	assert.False(t, flags[0])

	constant := ZScoreFlags([]float64{5, 5, 5}, 3)
	assert.Equal(t, []bool{false, false, false}, constant)

	withMissing := ZScoreFlags(append(x, math.NaN()), 3)
	assert.False(t, withMissing[31])
}

func TestPercentileFences(t *testing.T) {
	x := make([]float64, 101)
	for i := range x {
		x[i] = float64(i)
	}
	f := PercentileFences(x, 1, 99)
	assert.Equal(t, 1.0, f.Lower)
	assert.Equal(t, 99.0, f.Upper)
	assert.True(t, f.Outside(0))
	assert.False(t, f.Outside(math.NaN()))
}

func TestQuantileEdges(t *testing.T) {
	edges := QuantileEdges([]float64{1, 2, 3, 4, 5}, 4)
	assert.Equal(t, []float64{1, 2, 3, 4, 5}, edges)

	collapsed := QuantileEdges([]float64{1, 1, 1, 1, 2}, 4)
	assert.Equal(t, []float64{1, 2}, collapsed)

	assert.Nil(t, QuantileEdges([]float64{math.NaN()}, 4))
}

func TestEqualWidthEdges(t *testing.T) {
	edges := EqualWidthEdges([]float64{0, 10}, 5)
	assert.Len(t, edges, 6)
	assert.InDelta(t, -0.01, edges[0], 1e-12)
	assert.InDelta(t, 2, edges[1], 1e-12)
	assert.Equal(t, 10.0, edges[5])

	flat := EqualWidthEdges([]float64{4, 4}, 2)
	assert.Less(t, flat[0], 4.0)
	assert.Greater(t, flat[2], 4.0)
}
