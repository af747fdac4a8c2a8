package dataprep

import (
	"math"
	"sort"

	log "github.com/sirupsen/logrus"

	"github.com/marczieee/featurepipe/pkg/data"
)

// OrdinalFeature maps the categories of Column to their rank in Order.
type OrdinalFeature struct {
	Column string   `yaml:"column" validate:"required"`
	Order  []string `yaml:"order" validate:"min=1,dive,required"`
}

// EncodeOptions lists which text columns get ordinal and one-hot encodings.
// Every other categorical column is frequency encoded.
type EncodeOptions struct {
	Ordinal         []OrdinalFeature `yaml:"ordinal" validate:"dive"`
	Nominal         []string         `yaml:"nominal" validate:"dive,required"`
	FrequencyPlaces int32            `yaml:"frequency_places" validate:"min=0"`
}

func DefaultEncodeOptions() EncodeOptions {
	return EncodeOptions{
		Ordinal: []OrdinalFeature{
			{Column: "education", Order: []string{"High School", "Bachelor", "Master", "PhD"}},
		},
		Nominal:         []string{"gender", "product_category"},
		FrequencyPlaces: 4,
	}
}

// Encoder turns categorical text columns into numeric encodings.
type Encoder struct {
	opts   EncodeOptions
	parser *TimeParser
}

func NewEncoder(opts EncodeOptions, parser *TimeParser) *Encoder {
	return &Encoder{opts: opts, parser: parser}
}

func (e *Encoder) Name() string { return "encode_categorical_features" }

func (e *Encoder) Apply(t *data.Table) (*data.Table, error) {
	out := t.Clone()

	categorical := Select(t, AllOf(OfKind(data.Text), Not(e.isDatetime)))
	log.Infof("found %d categorical columns: %v", len(categorical), columnNames(categorical))

	ordinal := make(map[string]OrdinalFeature, len(e.opts.Ordinal))
	for _, f := range e.opts.Ordinal {
		ordinal[f.Column] = f
	}
	nominal := NameIn(e.opts.Nominal...)

	for _, c := range categorical {
		if f, ok := ordinal[c.Name]; ok {
			if err := out.AddInteger(c.Name+"_encoded", OrdinalEncode(c.Strings, f.Order)); err != nil {
				return nil, err
			}
			log.Infof("label encoded %s -> %s_encoded", c.Name, c.Name)
		}
	}

	for _, c := range categorical {
		if !nominal(c) {
			continue
		}
		indicators, categories := OneHotEncode(c.Strings)
		for i, cat := range categories {
			if err := out.AddInteger(c.Name+"_"+cat, indicators[i]); err != nil {
				return nil, err
			}
		}
		log.Infof("one-hot encoded %s (%d categories)", c.Name, len(categories))
	}

	for _, c := range categorical {
		if _, ok := ordinal[c.Name]; ok || nominal(c) {
			continue
		}
		freq := FrequencyEncode(c.Strings)
		for i, v := range freq {
			freq[i] = RoundTo(v, e.opts.FrequencyPlaces)
		}
		if err := out.AddNumeric(c.Name+"_freq", freq); err != nil {
			return nil, err
		}
		log.Infof("frequency encoded %s -> %s_freq", c.Name, c.Name)
	}
	return out, nil
}

func (e *Encoder) isDatetime(c *data.Column) bool {
	_, ok := e.parser.ParseColumn(c.Strings)
	return ok
}

// OrdinalEncode maps each value to its index in order. Unknown and missing
// values become NaN.
func OrdinalEncode(values []string, order []string) []float64 {
	rank := make(map[string]int, len(order))
	for i, v := range order {
		rank[v] = i
	}
	out := make([]float64, len(values))
	for i, v := range values {
		r, ok := rank[v]
		if !ok {
			out[i] = math.NaN()
			continue
		}
		out[i] = float64(r)
	}
	return out
}

// OneHotEncode builds one 0/1 indicator per distinct non-missing value.
// Categories are returned sorted; indicators[k] belongs to categories[k].
func OneHotEncode(values []string) (indicators [][]float64, categories []string) {
	index := map[string]int{}
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := index[v]; !ok {
			index[v] = 0
			categories = append(categories, v)
		}
	}
	sort.Strings(categories)
	for k, cat := range categories {
		index[cat] = k
	}

	indicators = make([][]float64, len(categories))
	for k := range indicators {
		indicators[k] = make([]float64, len(values))
	}
	for i, v := range values {
		if v == "" {
			continue
		}
		indicators[index[v]][i] = 1
	}
	return indicators, categories
}

// FrequencyEncode replaces each value with its share among the non-missing values.
func FrequencyEncode(values []string) []float64 {
	counts := map[string]float64{}
	total := 0.0
	for _, v := range values {
		if v == "" {
			continue
		}
		counts[v]++
		total++
	}
	out := make([]float64, len(values))
	for i, v := range values {
		if v == "" {
			out[i] = math.NaN()
			continue
		}
		out[i] = counts[v] / total
	}
	return out
}
