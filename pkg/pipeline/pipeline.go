package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/marczieee/featurepipe/pkg/data"
)

// Stage is one step of the pipeline. Apply must return a new table and leave its input untouched.
type Stage interface {
	Name() string
	Apply(t *data.Table) (*data.Table, error)
}

// StageReport records what a single stage did.
type StageReport struct {
	Name       string
	Duration   time.Duration
	NewColumns []string
	Output     string
}

// Report summarises one pipeline run.
type Report struct {
	RunID    string
	Started  time.Time
	Duration time.Duration
	Before   Schema
	After    Schema
	Rows     int
	Stages   []StageReport
}

// NewFeatures is the number of columns the run added.
func (r *Report) NewFeatures() int { return len(r.After.Added(r.Before)) }

// Pipeline chains stages.
type Pipeline struct {
	steps []Stage
	// IntermediateDir, when set, receives stepN_<stage>.csv after each stage.
	IntermediateDir string
}

func New(steps ...Stage) *Pipeline {
	return &Pipeline{steps: steps}
}

// Run threads t through every stage in order. The context is checked
// between stages only.
func (p *Pipeline) Run(ctx context.Context, t *data.Table) (*data.Table, *Report, error) {
	r := &Report{
		RunID:   uuid.NewString(),
		Started: time.Now(),
		Before:  SchemaOf(t),
		Rows:    t.Len(),
	}
	logger := log.WithField("run_id", r.RunID)
	logger.Infof("pipeline started: %d rows, %d columns", t.Len(), t.Width())

	current := t
	for i, step := range p.steps {
		if err := ctx.Err(); err != nil {
			return nil, r, fmt.Errorf("before %s: %w", step.Name(), err)
		}
		logger.Infof("step %d: %s", i+1, step.Name())

		start := time.Now()
		next, err := step.Apply(current)
		if err != nil {
			return nil, r, fmt.Errorf("%s: %w", step.Name(), err)
		}
		if next.Len() != current.Len() {
			return nil, r, fmt.Errorf("%s changed row count from %d to %d", step.Name(), current.Len(), next.Len())
		}

		sr := StageReport{
			Name:       step.Name(),
			Duration:   time.Since(start),
			NewColumns: SchemaOf(next).Added(SchemaOf(current)),
		}
		if p.IntermediateDir != "" {
			sr.Output = filepath.Join(p.IntermediateDir, fmt.Sprintf("step%d_%s.csv", i+1, step.Name()))
			if err := data.WriteCSV(sr.Output, next); err != nil {
				return nil, r, err
			}
			logger.Debugf("saved %s", sr.Output)
		}
		logger.WithField("took", sr.Duration).Debugf("%s added %d columns", sr.Name, len(sr.NewColumns))
		r.Stages = append(r.Stages, sr)
		current = next
	}

	r.After = SchemaOf(current)
	r.Duration = time.Since(r.Started)
	logger.Infof("pipeline finished: %d columns (%d new) in %s", current.Width(), r.NewFeatures(), r.Duration)
	return current, r, nil
}
