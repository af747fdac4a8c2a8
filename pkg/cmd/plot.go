package cmd

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/marczieee/featurepipe/pkg/data"
	"github.com/marczieee/featurepipe/pkg/plot"
)

var plotCmd = &cobra.Command{
	Use:   "plot [flags]",
	Short: "plot the histogram of a numeric column with its IQR fences.",
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := data.ReadCSV(GetString(cmd, "input"))
		if err != nil {
			return err
		}
		column := GetString(cmd, "column")
		values, ok := t.Numeric(column)
		if !ok {
			return fmt.Errorf("no numeric column %q", column)
		}
		output := GetString(cmd, "output")
		if err := plot.Histogram(column, values, output, plot.HistogramOptions{Bins: GetInt(cmd, "bins")}); err != nil {
			return err
		}
		log.Infof("saved histogram of %s to %s", column, output)
		return nil
	},
}

func init() {
	plotCmd.Flags().StringP("input", "i", "", "input CSV file")
	plotCmd.Flags().StringP("column", "c", "", "numeric column to plot")
	plotCmd.Flags().StringP("output", "o", "", "image file (.png, .svg, .pdf)")
	plotCmd.Flags().Int("bins", 20, "number of histogram bins")
	for _, f := range []string{"input", "column", "output"} {
		_ = plotCmd.MarkFlagRequired(f)
	}
	rootCmd.AddCommand(plotCmd)
}
