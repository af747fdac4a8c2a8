package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 5, cfg.Output.Preview)
	assert.Len(t, cfg.Pipeline.Derive, 7)
}

func TestParseOverlaysDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
pipeline:
  time:
    recent_days: 7
  anomaly:
    z_threshold: 2.5
output:
  preview: 0
`))
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Pipeline.Time.RecentDays)
	assert.Equal(t, []string{"date", "time"}, cfg.Pipeline.Time.NameMarkers)
	assert.Equal(t, 2.5, cfg.Pipeline.Anomaly.ZThreshold)
	assert.Equal(t, 1.5, cfg.Pipeline.Anomaly.IQRMultiplier)
	assert.Equal(t, 0, cfg.Output.Preview)
	assert.Len(t, cfg.Pipeline.Bins.Static, 5)
}

func TestParseInfiniteBoundary(t *testing.T) {
	cfg, err := Parse([]byte(`
pipeline:
  bins:
    static:
      - column: income
        output: income_band
        boundaries: [0, 50000, .inf]
        labels: [low, high]
`))
	require.NoError(t, err)
	require.Len(t, cfg.Pipeline.Bins.Static, 1)
	assert.True(t, math.IsInf(cfg.Pipeline.Bins.Static[0].Boundaries[2], 1))
}

func TestParseEmpty(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParseRejects(t *testing.T) {
	tests := map[string]string{
		"unknown key":  "pipeline:\n  colour: red\n",
		"bad yaml":     "pipeline: [",
		"bad rule":     "pipeline:\n  derive:\n    - name: x\n      expression: \"(a\"\n",
		"bad preview":  "output:\n  preview: -2\n",
		"bad boundary": "pipeline:\n  bins:\n    static:\n      - {column: a, output: b, boundaries: [2, 1], labels: [x]}\n",
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(raw))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "featurepipe.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output:\n  intermediate_dir: steps\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "steps", cfg.Output.IntermediateDir)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestMarshalRoundTrip(t *testing.T) {
	raw, err := Default().Marshal()
	require.NoError(t, err)
	cfg, err := Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, Default().Pipeline.Encode, cfg.Pipeline.Encode)
	assert.Equal(t, Default().Pipeline.Derive, cfg.Pipeline.Derive)
}
