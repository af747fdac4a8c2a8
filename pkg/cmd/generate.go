package cmd

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/marczieee/featurepipe/pkg/data"
	"github.com/marczieee/featurepipe/pkg/sample"
)

var generateCmd = &cobra.Command{
	Use:   "generate [flags]",
	Short: "generate a synthetic customer purchase CSV with injected outliers.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ref, err := nowFor(GetString(cmd, "now"))
		if err != nil {
			return err
		}
		opts := sample.Options{
			Rows:      GetInt(cmd, "rows"),
			Seed:      GetInt64(cmd, "seed"),
			Anomalies: GetInt(cmd, "anomalies"),
			Now:       ref,
		}
		t, err := sample.Generate(opts)
		if err != nil {
			return err
		}
		output := GetString(cmd, "output")
		if err := data.WriteCSV(output, t); err != nil {
			return err
		}
		log.Infof("sample data generated: %s (%d rows, %d columns)", output, t.Len(), t.Width())
		return nil
	},
}

func init() {
	def := sample.DefaultOptions()
	generateCmd.Flags().StringP("output", "o", "", "output CSV file")
	generateCmd.Flags().Int("rows", def.Rows, "number of rows")
	generateCmd.Flags().Int64("seed", def.Seed, "random seed")
	generateCmd.Flags().Int("anomalies", def.Anomalies, "number of rows with injected outliers")
	generateCmd.Flags().String("now", "", "reference time for purchase dates (default: current time)")
	_ = generateCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(generateCmd)
}
