package cmd

import (
	"fmt"
	"os"
	"runtime/debug"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version is set at link time; "go install" builds fall back to the module version.
var Version string

var rootCmd = &cobra.Command{
	Use:   "featurepipe",
	Short: "A feature engineering pipeline for tabular customer data.",
	Long: `Derive, encode, bin, decompose timestamps and flag anomalies
in a CSV table, writing an enriched CSV.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		if !GetFlag(cmd, "version") {
			_ = cmd.Help()
			return
		}
		fmt.Print("featurepipe ")
		if Version != "" {
			fmt.Print(Version)
		} else if info, ok := debug.ReadBuildInfo(); ok {
			fmt.Print(info.Main.Version)
		} else {
			fmt.Print("(unknown version)")
		}
		fmt.Println()
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().Bool("version", false, "Report version of this executable")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
}
