package dataprep

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marczieee/featurepipe/pkg/data"
)

const customersCSV = `customer_id,age,gender,education,income,purchase_amount,purchase_date,product_category,rating,discount_percent,shipping_cost
1,22,Male,Bachelor,30000,100.0,2024-01-15,Electronics,4.5,10.0,5.0
2,35,Female,Master,50000,500.0,2024-06-20,Clothing,3.0,25.0,10.0
3,45,Male,PhD,75000,1000.0,2024-03-10,Food,2.0,5.0,15.0
4,55,Other,High School,100000,2000.0,2023-12-01,Books,5.0,40.0,20.0
5,70,Female,Bachelor,400000,12000.0,2024-11-25,Home,1.5,0.0,25.0
`

var fixedNow = FixedClock{T: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}

func loadCustomers(t *testing.T) *data.Table {
	t.Helper()
	tbl, err := data.ParseCSV(strings.NewReader(customersCSV))
	require.NoError(t, err)
	return tbl
}

func parseTable(t *testing.T, csv string) *data.Table {
	t.Helper()
	tbl, err := data.ParseCSV(strings.NewReader(csv))
	require.NoError(t, err)
	return tbl
}

func numeric(t *testing.T, tbl *data.Table, name string) []float64 {
	t.Helper()
	v, ok := tbl.Numeric(name)
	require.True(t, ok, "numeric column %s", name)
	return v
}

func text(t *testing.T, tbl *data.Table, name string) []string {
	t.Helper()
	v, ok := tbl.Text(name)
	require.True(t, ok, "text column %s", name)
	return v
}

func assertFlags(t *testing.T, values []float64) {
	t.Helper()
	for i, v := range values {
		assert.True(t, v == 0 || v == 1, "row %d: %v is not a flag", i, v)
	}
}

// assertUnchanged compares every formatted cell of two tables.
func assertUnchanged(t *testing.T, want, got *data.Table) {
	t.Helper()
	require.Equal(t, want.Names(), got.Names())
	for _, c := range want.Columns() {
		g, _ := got.Column(c.Name)
		assert.Equal(t, c.Kind, g.Kind, c.Name)
		for i := range want.Len() {
			assert.Equal(t, c.Format(i), g.Format(i), "%s row %d", c.Name, i)
		}
	}
}

func isNaN(v float64) bool { return math.IsNaN(v) }

func nan() float64 { return math.NaN() }
