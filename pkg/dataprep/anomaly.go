package dataprep

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/marczieee/featurepipe/pkg/data"
	"github.com/marczieee/featurepipe/pkg/stats"
)

// MaxExtraColumns caps how many candidates beyond the priority list are checked.
const MaxExtraColumns = 6

type AnomalyOptions struct {
	Priority        []string `yaml:"priority" validate:"dive,required"`
	MaxExtra        int      `yaml:"max_extra" validate:"min=0"`
	ZThreshold      float64  `yaml:"z_threshold" validate:"gt=0"`
	IQRMultiplier   float64  `yaml:"iqr_multiplier" validate:"gt=0"`
	Percentile      bool     `yaml:"percentile"`
	PercentileLower float64  `yaml:"percentile_lower"`
	PercentileUpper float64  `yaml:"percentile_upper"`
}

func DefaultAnomalyOptions() AnomalyOptions {
	return AnomalyOptions{
		Priority:        []string{"income", "purchase_amount", "final_price", "age"},
		MaxExtra:        MaxExtraColumns,
		ZThreshold:      3,
		IQRMultiplier:   1.5,
		PercentileLower: 1,
		PercentileUpper: 99,
	}
}

func (o AnomalyOptions) Validate() error {
	if err := checkStruct(o); err != nil {
		return fmt.Errorf("anomaly: %w", err)
	}
	if o.Percentile && !(0 <= o.PercentileLower && o.PercentileLower < o.PercentileUpper && o.PercentileUpper <= 100) {
		return fmt.Errorf("anomaly percentiles must satisfy 0 <= lower < upper <= 100, got %v/%v",
			o.PercentileLower, o.PercentileUpper)
	}
	return nil
}

// AnomalyFlagger marks statistical outliers per column and scores each row.
type AnomalyFlagger struct {
	opts    AnomalyOptions
	nominal []string
}

// NewAnomalyFlagger needs the nominal feature names so their one-hot
// indicators are not mistaken for measurements.
func NewAnomalyFlagger(opts AnomalyOptions, nominal []string) *AnomalyFlagger {
	return &AnomalyFlagger{opts: opts, nominal: nominal}
}

func (a *AnomalyFlagger) Name() string { return "flag_anomalies_column" }

func (a *AnomalyFlagger) Apply(t *data.Table) (*data.Table, error) {
	out := t.Clone()
	cols := a.Candidates(t)
	log.Infof("checking %d columns for anomalies: %v", len(cols), columnNames(cols))

	for _, c := range cols {
		z := stats.ZScoreFlags(c.Floats, a.opts.ZThreshold)
		iqr := stats.FenceFlags(c.Floats, stats.IQRFences(c.Floats, a.opts.IQRMultiplier))
		either := make([]bool, len(z))
		for i := range z {
			either[i] = z[i] || iqr[i]
		}

		zc, ic, ec := indicator(z), indicator(iqr), indicator(either)
		for _, col := range []struct {
			suffix string
			values []float64
		}{
			{"_anomaly_zscore", zc},
			{"_anomaly_iqr", ic},
			{"_is_anomaly", ec},
		} {
			if err := out.AddInteger(c.Name+col.suffix, col.values); err != nil {
				return nil, err
			}
		}
		if a.opts.Percentile {
			pct := stats.FenceFlags(c.Floats, stats.PercentileFences(c.Floats, a.opts.PercentileLower, a.opts.PercentileUpper))
			if err := out.AddInteger(c.Name+"_anomaly_pct", indicator(pct)); err != nil {
				return nil, err
			}
		}
		log.Infof("%s: %d z-score, %d IQR, %d combined anomalies",
			c.Name, int(stats.Sum(zc)), int(stats.Sum(ic)), int(stats.Sum(ec)))
	}

	score := make([]float64, out.Len())
	for _, c := range Select(out, NameHasSuffix("_is_anomaly")) {
		for i, v := range c.Floats {
			score[i] += v
		}
	}
	hasAny := make([]float64, len(score))
	rows := 0
	for i, s := range score {
		if s > 0 {
			hasAny[i] = 1
			rows++
		}
	}
	if err := out.AddInteger("anomaly_score", score); err != nil {
		return nil, err
	}
	if err := out.AddInteger("has_any_anomaly", hasAny); err != nil {
		return nil, err
	}

	if out.Len() > 0 {
		log.Infof("%d of %d rows have at least one anomaly (%.2f%%)",
			rows, out.Len(), 100*float64(rows)/float64(out.Len()))
	}
	return out, nil
}

// Candidates returns the columns checked for anomalies: the priority columns
// that exist, then up to MaxExtra other eligible columns in table order.
func (a *AnomalyFlagger) Candidates(t *data.Table) []*data.Column {
	prefixes := make([]string, len(a.nominal))
	for i, n := range a.nominal {
		prefixes[i] = n + "_"
	}
	eligible := AllOf(
		OfKind(data.Numeric),
		Not(NameContains("id")),
		Not(NameHasSuffix("_encoded", "_freq")),
		Not(NameHasPrefix(prefixes...)),
		Not(NameHasSuffix("_anomaly_zscore", "_anomaly_iqr", "_anomaly_pct", "_is_anomaly")),
		Not(NameIn("anomaly_score", "has_any_anomaly")),
	)

	var out []*data.Column
	chosen := make(map[string]bool)
	for _, name := range a.opts.Priority {
		c, ok := t.Column(name)
		if !ok || !eligible(c) || chosen[name] {
			continue
		}
		out = append(out, c)
		chosen[name] = true
	}
	extra := 0
	for _, c := range Select(t, eligible) {
		if extra >= a.opts.MaxExtra {
			break
		}
		if chosen[c.Name] {
			continue
		}
		out = append(out, c)
		chosen[c.Name] = true
		extra++
	}
	return out
}

func indicator(flags []bool) []float64 {
	out := make([]float64, len(flags))
	for i, f := range flags {
		out[i] = flag(f)
	}
	return out
}
