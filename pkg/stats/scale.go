package stats

import (
	"math"
	"sort"
)

// ZScores standardizes x to zero mean and unit (population) variance using
// only its finite values. Missing inputs stay NaN; with zero variance every
// score is NaN.
func ZScores(x []float64) []float64 {
	vals := Finite(x)
	mean, std := Mean(vals), Std(vals)
	out := make([]float64, len(x))
	for i, v := range x {
		if std == 0 || math.IsNaN(v) {
			out[i] = math.NaN()
			continue
		}
		out[i] = (v - mean) / std
	}
	return out
}

// QuantileEdges returns the q+1 edges that split the finite values of x into
// q equal-population groups. Repeated edges are collapsed, so fewer than q+1
// may come back.
func QuantileEdges(x []float64, q int) []float64 {
	vals := Finite(x)
	if len(vals) == 0 || q < 1 {
		return nil
	}
	sort.Float64s(vals)
	edges := make([]float64, 0, q+1)
	for i := 0; i <= q; i++ {
		e := sortedPercentile(vals, 100*float64(i)/float64(q))
		if len(edges) > 0 && e == edges[len(edges)-1] {
			continue
		}
		edges = append(edges, e)
	}
	return edges
}

// EqualWidthEdges splits the observed range of x into n equal intervals.
// The lowest edge is pushed down by 0.1% of the range so the minimum falls
// inside the first interval. A constant column widens by 0.1% of its value.
func EqualWidthEdges(x []float64, n int) []float64 {
	vals := Finite(x)
	if len(vals) == 0 || n < 1 {
		return nil
	}
	lo, hi := MinMax(vals)
	if lo == hi {
		adj := 0.001 * math.Abs(lo)
		if adj == 0 {
			adj = 0.001
		}
		lo, hi = lo-adj, hi+adj
		return linspace(lo, hi, n)
	}
	edges := linspace(lo, hi, n)
	edges[0] -= (hi - lo) * 0.001
	return edges
}

func linspace(lo, hi float64, n int) []float64 {
	edges := make([]float64, n+1)
	step := (hi - lo) / float64(n)
	for i := range edges {
		edges[i] = lo + step*float64(i)
	}
	edges[n] = hi
	return edges
}
