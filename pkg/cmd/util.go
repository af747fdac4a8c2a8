package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/marczieee/featurepipe/pkg/dataprep"
)

// GetFlag reads a boolean flag, exiting on a programming error.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	return r
}

func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	return r
}

func GetInt(cmd *cobra.Command, flag string) int {
	r, err := cmd.Flags().GetInt(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	return r
}

func GetInt64(cmd *cobra.Command, flag string) int64 {
	r, err := cmd.Flags().GetInt64(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	return r
}

// clockFor returns a fixed clock when value is a timestamp and the system clock when empty.
func clockFor(value string) (dataprep.Clock, error) {
	if value == "" {
		return dataprep.SystemClock{}, nil
	}
	t, err := dataprep.NewTimeParser(nil).Parse(value)
	if err != nil {
		return nil, fmt.Errorf("invalid --now %q: %w", value, err)
	}
	return dataprep.FixedClock{T: t}, nil
}

func nowFor(value string) (time.Time, error) {
	c, err := clockFor(value)
	if err != nil {
		return time.Time{}, err
	}
	return c.Now(), nil
}
