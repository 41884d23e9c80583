package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ArowuTest/rsu-vesting/internal/logging"
)

var logLevel string

// rootCmd is the base command for the rsucalc CLI
var rootCmd = &cobra.Command{
	Use:   "rsucalc",
	Short: "RSU vesting calculator",
	Long: `rsucalc computes the daily vested value of restricted stock unit awards,
sums several awards into one total and renders the result as a chart.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(logLevel, "console")
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug|info|warn|error)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
