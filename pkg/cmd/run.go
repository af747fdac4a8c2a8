package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/marczieee/featurepipe/pkg/config"
	"github.com/marczieee/featurepipe/pkg/data"
	"github.com/marczieee/featurepipe/pkg/dataprep"
	"github.com/marczieee/featurepipe/pkg/pipeline"
)

// previewColumns are shown after a run when present.
var previewColumns = []string{
	"customer_id", "age", "age_group", "income", "income_bracket",
	"purchase_amount", "final_price", "rating_category",
	"education_encoded", "has_any_anomaly",
}

var runCmd = &cobra.Command{
	Use:   "run [flags]",
	Short: "run the feature engineering pipeline over a CSV file.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Default()
		if path := GetString(cmd, "config"); path != "" {
			var err error
			if cfg, err = config.Load(path); err != nil {
				return err
			}
		}
		if cmd.Flags().Changed("intermediate-dir") {
			cfg.Output.IntermediateDir = GetString(cmd, "intermediate-dir")
		}
		if cmd.Flags().Changed("preview") {
			cfg.Output.Preview = GetInt(cmd, "preview")
		}
		clock, err := clockFor(GetString(cmd, "now"))
		if err != nil {
			return err
		}
		return runPipeline(cmd.Context(), cmd.OutOrStdout(), GetString(cmd, "input"), GetString(cmd, "output"), cfg, clock)
	},
}

func runPipeline(ctx context.Context, w io.Writer, input, output string, cfg *config.Config, clock dataprep.Clock) error {
	if ctx == nil {
		ctx = context.Background()
	}
	stages, err := dataprep.Build(cfg.Pipeline, clock)
	if err != nil {
		return err
	}
	t, err := data.ReadCSV(input)
	if err != nil {
		return err
	}
	log.Infof("loaded %s: %d rows, %d columns", input, t.Len(), t.Width())

	p := pipeline.New(stages...)
	p.IntermediateDir = cfg.Output.IntermediateDir
	out, report, err := p.Run(ctx, t)
	if err != nil {
		return err
	}
	if err := data.WriteCSV(output, out); err != nil {
		return err
	}
	log.Infof("final output saved: %s", output)

	PrintSummary(w, report)
	if cfg.Output.Preview > 0 {
		Preview(w, out, cfg.Output.Preview, terminalWidth())
	}
	return nil
}

// PrintSummary writes the run totals.
func PrintSummary(w io.Writer, r *pipeline.Report) {
	fmt.Fprintf(w, "Run %s\n", r.RunID)
	fmt.Fprintf(w, "  Original columns:     %d\n", len(r.Before.FeatureNames))
	fmt.Fprintf(w, "  Final columns:        %d\n", len(r.After.FeatureNames))
	fmt.Fprintf(w, "  New features created: %d\n", r.NewFeatures())
	fmt.Fprintf(w, "  Total rows:           %d\n", r.Rows)
	fmt.Fprintf(w, "  Duration:             %.2f seconds\n", r.Duration.Seconds())
	for i, s := range r.Stages {
		fmt.Fprintf(w, "  %d. %-32s +%d columns\n", i+1, s.Name, len(s.NewColumns))
	}
}

// Preview prints the first n rows of the key columns, dropping columns
// that would overflow width.
func Preview(w io.Writer, t *data.Table, n, width int) {
	var cols []*data.Column
	for _, name := range previewColumns {
		if c, ok := t.Column(name); ok {
			cols = append(cols, c)
		}
	}
	n = min(n, t.Len())
	if len(cols) == 0 || n == 0 {
		return
	}

	widths := make([]int, len(cols))
	used := 0
	keep := 0
	for j, c := range cols {
		widths[j] = len(c.Name)
		for i := range n {
			widths[j] = max(widths[j], len(c.Format(i)))
		}
		if keep > 0 && used+widths[j]+2 > width {
			break
		}
		used += widths[j] + 2
		keep++
	}
	cols = cols[:keep]

	var sb strings.Builder
	for j, c := range cols {
		fmt.Fprintf(&sb, "%-*s  ", widths[j], c.Name)
	}
	fmt.Fprintln(w, strings.TrimRight(sb.String(), " "))
	for i := range n {
		sb.Reset()
		for j, c := range cols {
			fmt.Fprintf(&sb, "%-*s  ", widths[j], c.Format(i))
		}
		fmt.Fprintln(w, strings.TrimRight(sb.String(), " "))
	}
}

func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			return w
		}
	}
	return 160
}

func init() {
	runCmd.Flags().StringP("input", "i", "", "input CSV file")
	runCmd.Flags().StringP("output", "o", "", "output CSV file")
	runCmd.Flags().String("config", "", "YAML configuration file")
	runCmd.Flags().String("intermediate-dir", "", "write each stage's output to this directory")
	runCmd.Flags().String("now", "", "reference time for date features (default: current time)")
	runCmd.Flags().Int("preview", 5, "number of rows to preview after the run")
	_ = runCmd.MarkFlagRequired("input")
	_ = runCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(runCmd)
}
