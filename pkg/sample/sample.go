// Package sample generates synthetic customer purchase tables with injected outliers.
package sample

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/marczieee/featurepipe/pkg/data"
	"github.com/marczieee/featurepipe/pkg/dataprep"
)

var (
	genders    = []string{"Male", "Female", "Other"}
	educations = []string{"High School", "Bachelor", "Master", "PhD"}
	categories = []string{"Electronics", "Clothing", "Food", "Books", "Home"}
)

type Options struct {
	Rows      int
	Seed      int64
	Anomalies int
	// Purchase dates fall within the year before Now.
	Now time.Time
}

func DefaultOptions() Options {
	return Options{Rows: 1000, Seed: 42, Anomalies: 50}
}

// Generate builds a table with the columns the default pipeline consumes.
// The same options always give the same table.
func Generate(opts Options) (*data.Table, error) {
	if opts.Rows < 1 {
		return nil, fmt.Errorf("rows must be positive, got %d", opts.Rows)
	}
	if opts.Anomalies < 0 || opts.Anomalies > opts.Rows {
		return nil, fmt.Errorf("anomalies must be between 0 and %d, got %d", opts.Rows, opts.Anomalies)
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	ref := opts.Now.UTC().Truncate(time.Second)
	rng := rand.New(rand.NewSource(opts.Seed))
	n := opts.Rows

	id := make([]float64, n)
	age := make([]float64, n)
	gender := make([]string, n)
	education := make([]string, n)
	income := make([]float64, n)
	purchase := make([]float64, n)
	date := make([]time.Time, n)
	category := make([]string, n)
	rating := make([]float64, n)
	discount := make([]float64, n)
	shipping := make([]float64, n)

	for i := range n {
		id[i] = float64(i + 1)
		age[i] = float64(intIn(rng, 18, 80))
		gender[i] = pick(rng, genders)
		education[i] = pick(rng, educations)
		income[i] = float64(intIn(rng, 20000, 150000))
		purchase[i] = uniform(rng, 10, 5000, 2)
		date[i] = ref.AddDate(0, 0, -intIn(rng, 0, 365))
		category[i] = pick(rng, categories)
		rating[i] = uniform(rng, 1, 5, 1)
		discount[i] = uniform(rng, 0, 50, 2)
		shipping[i] = uniform(rng, 0, 50, 2)
	}

	for _, i := range rng.Perm(n)[:opts.Anomalies] {
		income[i] = float64(intIn(rng, 200000, 500000))
		purchase[i] = uniform(rng, 8000, 15000, 2)
	}

	t := data.NewTable(n)
	for _, err := range []error{
		t.AddInteger("customer_id", id),
		t.AddInteger("age", age),
		t.AddText("gender", gender),
		t.AddText("education", education),
		t.AddInteger("income", income),
		t.AddNumeric("purchase_amount", purchase),
		t.AddTime("purchase_date", date),
		t.AddText("product_category", category),
		t.AddNumeric("rating", rating),
		t.AddNumeric("discount_percent", discount),
		t.AddNumeric("shipping_cost", shipping),
	} {
		if err != nil {
			return nil, err
		}
	}
	return t, nil
}

// intIn draws from [lo, hi).
func intIn(rng *rand.Rand, lo, hi int) int {
	return lo + rng.Intn(hi-lo)
}

func uniform(rng *rand.Rand, lo, hi float64, places int32) float64 {
	return dataprep.RoundTo(lo+rng.Float64()*(hi-lo), places)
}

func pick(rng *rand.Rand, from []string) string {
	return from[rng.Intn(len(from))]
}
