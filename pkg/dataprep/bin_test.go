package dataprep

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marczieee/featurepipe/pkg/data"
)

// binnedCustomers derives and bins the fixture, returning a lookup for text columns.
func binnedCustomers(t *testing.T) (in, out *data.Table, col func(string) []string) {
	t.Helper()
	d, err := NewDeriver(DefaultDeriveRules())
	require.NoError(t, err)
	in, err = d.Apply(loadCustomers(t))
	require.NoError(t, err)
	out, err = NewBinner(DefaultBinOptions()).Apply(in)
	require.NoError(t, err)
	return in, out, func(name string) []string { return text(t, out, name) }
}

func TestBinStaticTables(t *testing.T) {
	in, out, col := binnedCustomers(t)
	assert.Equal(t, in.Len(), out.Len())

	assert.Equal(t, []string{"18-25", "26-35", "36-50", "51-65", "65+"}, col("age_group"))
	assert.Equal(t, []string{"Low", "Lower-Middle", "Middle", "Upper-Middle", "High"}, col("income_bracket"))
	assert.Equal(t, []string{"Very Low", "Low", "Medium", "High", "Very High"}, col("purchase_category"))
	assert.Equal(t, []string{"Excellent", "Fair", "Poor", "Excellent", "Poor"}, col("rating_category"))
	assert.Equal(t, []string{"No Discount", "Low Discount", "No Discount", "Medium Discount", "No Discount"}, col("discount_tier"))
}

func TestBinQuantileAndEqualWidth(t *testing.T) {
	_, _, col := binnedCustomers(t)

	assert.Equal(t, []string{"Q1", "Q1", "Q2", "Q3", "Q4"}, col("price_quartile"))
	assert.Equal(t, []string{
		"(0.327, 0.864]", "(0.864, 1.398]", "(0.864, 1.398]", "(1.932, 2.466]", "(2.466, 3.000]",
	}, col("spending_ratio_bin"))
}

func TestBinLabelsFromLabelSet(t *testing.T) {
	_, _, col := binnedCustomers(t)
	for _, s := range DefaultBinOptions().Static {
		for _, label := range col(s.Output) {
			if label != "" {
				assert.Contains(t, s.Labels, label, s.Output)
			}
		}
	}
}

func TestCutEdges(t *testing.T) {
	bounds := []float64{0, 10, 20}
	labels := []string{"low", "high"}
	got := Cut([]float64{0, 10, 10.5, 20, 25, -1, math.NaN()}, bounds, labels)
	assert.Equal(t, []string{"low", "low", "high", "high", "", "", ""}, got)
}

func TestCutInfiniteUpperBound(t *testing.T) {
	got := Cut([]float64{1e12}, []float64{0, 100, math.Inf(1)}, []string{"a", "b"})
	assert.Equal(t, []string{"b"}, got)
}

func TestQuantileBinsCollapseDuplicateEdges(t *testing.T) {
	tbl := parseTable(t, "final_price\n1\n1\n1\n2\n5\n")
	out, err := NewBinner(BinOptions{Quantile: DefaultBinOptions().Quantile}).Apply(tbl)
	require.NoError(t, err)
	assert.Equal(t, []string{"Q1", "Q1", "Q1", "Q1", "Q2"}, text(t, out, "price_quartile"))
}

func TestQuantileBinsSingleDistinctValue(t *testing.T) {
	tests := map[string]struct {
		csv  string
		want []string
	}{
		"constant": {"final_price\n10\n10\n10\n", []string{"Q1", "Q1", "Q1"}},
		"one row":  {"final_price\n42\n", []string{"Q1"}},
		"missing":  {"final_price\n10\n\n10\n", []string{"Q1", "", "Q1"}},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			out, err := NewBinner(BinOptions{Quantile: DefaultBinOptions().Quantile}).Apply(parseTable(t, tt.csv))
			require.NoError(t, err)
			assert.Equal(t, tt.want, text(t, out, "price_quartile"))
		})
	}
}

func TestEqualWidthKeepsColumnWithoutValues(t *testing.T) {
	tbl := data.NewTable(2)
	require.NoError(t, tbl.AddNumeric("income_purchase_ratio", []float64{math.NaN(), math.NaN()}))
	out, err := NewBinner(BinOptions{EqualWidth: DefaultBinOptions().EqualWidth}).Apply(tbl)
	require.NoError(t, err)
	assert.Equal(t, []string{"", ""}, text(t, out, "spending_ratio_bin"))
}

func TestBinSkipsAbsentColumns(t *testing.T) {
	tbl := parseTable(t, "other\n1\n2\n")
	out, err := NewBinner(DefaultBinOptions()).Apply(tbl)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Width())
}

func TestBinSpecValidate(t *testing.T) {
	for _, s := range DefaultBinOptions().Static {
		assert.NoError(t, s.Validate(), s.Output)
	}
	bad := []BinSpec{
		{Column: "a", Output: "b", Boundaries: []float64{0, 1}, Labels: []string{"x", "y"}},
		{Column: "a", Output: "b", Boundaries: []float64{1, 0}, Labels: []string{"x"}},
		{Column: "a", Output: "b", Boundaries: []float64{0, 0}, Labels: []string{"x"}},
		{Output: "b", Boundaries: []float64{0, 1}, Labels: []string{"x"}},
	}
	for i, s := range bad {
		assert.Error(t, s.Validate(), "case %d", i)
	}
}
