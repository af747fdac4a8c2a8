package dataprep

import (
	"github.com/marczieee/featurepipe/pkg/pipeline"
)

// Options configures all five stages.
type Options struct {
	Derive  []DeriveRule   `yaml:"derive" validate:"dive"`
	Encode  EncodeOptions  `yaml:"encode"`
	Bins    BinOptions     `yaml:"bins"`
	Time    TimeOptions    `yaml:"time"`
	Anomaly AnomalyOptions `yaml:"anomaly"`
}

func DefaultOptions() Options {
	return Options{
		Derive:  DefaultDeriveRules(),
		Encode:  DefaultEncodeOptions(),
		Bins:    DefaultBinOptions(),
		Time:    DefaultTimeOptions(),
		Anomaly: DefaultAnomalyOptions(),
	}
}

// Validate reports the first configuration problem found.
func (o Options) Validate() error {
	if err := checkStruct(o); err != nil {
		return err
	}
	if _, err := NewDeriver(o.Derive); err != nil {
		return err
	}
	if err := o.Bins.Validate(); err != nil {
		return err
	}
	return o.Anomaly.Validate()
}

// Build returns the stages in pipeline order.
func Build(o Options, clock Clock) ([]pipeline.Stage, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	deriver, err := NewDeriver(o.Derive)
	if err != nil {
		return nil, err
	}
	parser := NewTimeParser(o.Time.Layouts)
	return []pipeline.Stage{
		deriver,
		NewEncoder(o.Encode, parser),
		NewBinner(o.Bins),
		NewTimeExtractor(o.Time, parser, clock),
		NewAnomalyFlagger(o.Anomaly, o.Encode.Nominal),
	}, nil
}
