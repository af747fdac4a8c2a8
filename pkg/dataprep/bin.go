package dataprep

import (
	"fmt"
	"math"
	"sort"

	log "github.com/sirupsen/logrus"

	"github.com/marczieee/featurepipe/pkg/data"
	"github.com/marczieee/featurepipe/pkg/stats"
)

// BinSpec assigns Labels[i] to values in (Boundaries[i], Boundaries[i+1]].
// The first interval also includes Boundaries[0].
type BinSpec struct {
	Column     string    `yaml:"column" validate:"required"`
	Output     string    `yaml:"output" validate:"required"`
	Boundaries []float64 `yaml:"boundaries" validate:"min=2"`
	Labels     []string  `yaml:"labels" validate:"min=1,dive,required"`
}

func (s BinSpec) Validate() error {
	if err := checkStruct(s); err != nil {
		return fmt.Errorf("bin %s: %w", s.Output, err)
	}
	if len(s.Boundaries) != len(s.Labels)+1 {
		return fmt.Errorf("bin %s: %d boundaries for %d labels", s.Output, len(s.Boundaries), len(s.Labels))
	}
	if !sort.Float64sAreSorted(s.Boundaries) {
		return fmt.Errorf("bin %s: boundaries must be ascending", s.Output)
	}
	for i := 1; i < len(s.Boundaries); i++ {
		if s.Boundaries[i] == s.Boundaries[i-1] {
			return fmt.Errorf("bin %s: repeated boundary %v", s.Output, s.Boundaries[i])
		}
	}
	return nil
}

// QuantileBinSpec splits Column into len(Labels) equal-population groups.
type QuantileBinSpec struct {
	Column string   `yaml:"column" validate:"required"`
	Output string   `yaml:"output" validate:"required"`
	Labels []string `yaml:"labels" validate:"min=1,dive,required"`
}

// EqualWidthBinSpec splits the observed range of Column into Bins intervals.
type EqualWidthBinSpec struct {
	Column string `yaml:"column" validate:"required"`
	Output string `yaml:"output" validate:"required"`
	Bins   int    `yaml:"bins" validate:"min=1"`
}

type BinOptions struct {
	Static     []BinSpec           `yaml:"static" validate:"dive"`
	Quantile   []QuantileBinSpec   `yaml:"quantile" validate:"dive"`
	EqualWidth []EqualWidthBinSpec `yaml:"equal_width" validate:"dive"`
}

func DefaultBinOptions() BinOptions {
	inf := math.Inf(1)
	return BinOptions{
		Static: []BinSpec{
			{
				Column: "age", Output: "age_group",
				Boundaries: []float64{0, 25, 35, 50, 65, 100},
				Labels:     []string{"18-25", "26-35", "36-50", "51-65", "65+"},
			},
			{
				Column: "income", Output: "income_bracket",
				Boundaries: []float64{0, 30000, 50000, 75000, 100000, inf},
				Labels:     []string{"Low", "Lower-Middle", "Middle", "Upper-Middle", "High"},
			},
			{
				Column: "purchase_amount", Output: "purchase_category",
				Boundaries: []float64{0, 100, 500, 1000, 2000, inf},
				Labels:     []string{"Very Low", "Low", "Medium", "High", "Very High"},
			},
			{
				Column: "rating", Output: "rating_category",
				Boundaries: []float64{0, 2, 3, 4, 5},
				Labels:     []string{"Poor", "Fair", "Good", "Excellent"},
			},
			{
				Column: "discount_percent", Output: "discount_tier",
				Boundaries: []float64{0, 10, 25, 40, 100},
				Labels:     []string{"No Discount", "Low Discount", "Medium Discount", "High Discount"},
			},
		},
		Quantile: []QuantileBinSpec{
			{Column: "final_price", Output: "price_quartile", Labels: []string{"Q1", "Q2", "Q3", "Q4"}},
		},
		EqualWidth: []EqualWidthBinSpec{
			{Column: "income_purchase_ratio", Output: "spending_ratio_bin", Bins: 5},
		},
	}
}

func (o BinOptions) Validate() error {
	if err := checkStruct(o); err != nil {
		return fmt.Errorf("bins: %w", err)
	}
	for _, s := range o.Static {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Binner discretizes numeric columns into labelled ranges.
type Binner struct {
	opts BinOptions
}

func NewBinner(opts BinOptions) *Binner { return &Binner{opts: opts} }

func (b *Binner) Name() string { return "bin_numeric_ranges" }

func (b *Binner) Apply(t *data.Table) (*data.Table, error) {
	out := t.Clone()

	for _, s := range b.opts.Static {
		vals, ok := t.Numeric(s.Column)
		if !ok {
			continue
		}
		if err := out.AddText(s.Output, Cut(vals, s.Boundaries, s.Labels)); err != nil {
			return nil, err
		}
		log.Infof("created %s %v", s.Output, s.Labels)
	}

	for _, q := range b.opts.Quantile {
		vals, ok := out.Numeric(q.Column)
		if !ok {
			continue
		}
		var labels []string
		edges := stats.QuantileEdges(vals, len(q.Labels))
		if len(edges) < 2 {
			// a single distinct value falls in the first group
			labels = fill(vals, q.Labels[0])
		} else {
			labels = Cut(vals, edges, q.Labels[:len(edges)-1])
		}
		if err := out.AddText(q.Output, labels); err != nil {
			return nil, err
		}
		log.Infof("created %s (quantile-based)", q.Output)
	}

	for _, w := range b.opts.EqualWidth {
		vals, ok := out.Numeric(w.Column)
		if !ok {
			continue
		}
		labels := make([]string, len(vals))
		if edges := stats.EqualWidthEdges(vals, w.Bins); edges != nil {
			labels = Cut(vals, edges, IntervalLabels(edges))
		}
		if err := out.AddText(w.Output, labels); err != nil {
			return nil, err
		}
		log.Infof("created %s (equal-width, %d bins)", w.Output, w.Bins)
	}
	return out, nil
}

// Cut labels each value by the interval it falls in. NaN and values outside
// every interval get the empty (missing) label.
func Cut(values, boundaries []float64, labels []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = assign(v, boundaries, labels)
	}
	return out
}

func assign(v float64, boundaries []float64, labels []string) string {
	if math.IsNaN(v) || len(boundaries) < 2 {
		return ""
	}
	if v == boundaries[0] {
		return labels[0]
	}
	// first k with v <= boundaries[k]
	k := sort.SearchFloat64s(boundaries, v)
	if k == 0 || k == len(boundaries) {
		return ""
	}
	return labels[k-1]
}

func fill(values []float64, label string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out[i] = label
		}
	}
	return out
}

// IntervalLabels renders edges as "(lo, hi]" strings.
func IntervalLabels(edges []float64) []string {
	labels := make([]string, len(edges)-1)
	for i := range labels {
		labels[i] = fmt.Sprintf("(%.3f, %.3f]", edges[i], edges[i+1])
	}
	return labels
}
