package plot

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistogramWritesImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "income.png")
	values := []float64{30000, 50000, 75000, math.NaN(), 100000, 400000}

	require.NoError(t, Histogram("income", values, path, HistogramOptions{Bins: 5}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestHistogramConstantColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flat.svg")
	assert.NoError(t, Histogram("flat", []float64{3, 3, 3}, path, HistogramOptions{}))
}

func TestHistogramNoValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.png")
	assert.Error(t, Histogram("empty", []float64{math.NaN()}, path, HistogramOptions{}))
}
