package main

import (
	"github.com/spf13/cobra"

	"github.com/ArowuTest/rsu-vesting/internal/metrics"
	"github.com/ArowuTest/rsu-vesting/internal/models"
	"github.com/ArowuTest/rsu-vesting/internal/repositories/memory"
	"github.com/ArowuTest/rsu-vesting/internal/services"
)

// scheduleCmd prints the vesting schedule of one award
var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Print the vesting schedule of a single award",
	Long: `Print the release days of one award, or the value on every day with --daily.

Examples:
  rsucalc schedule --grant 2022-03-15 --total 20000 --duration 4 --cliff 1
  rsucalc schedule --grant 2022-03-15 --total 20000 --variant quarterly16 --format json
  rsucalc schedule --grant 2022-03-15 --total 20000 --daily --format csv`,
	RunE: runSchedule,
}

// Schedule command flags
var (
	scheduleReq    models.AwardRequest
	scheduleFormat string
	scheduleDaily  bool
)

func init() {
	rootCmd.AddCommand(scheduleCmd)

	scheduleCmd.Flags().StringVar(&scheduleReq.Name, "name", "award", "Award name")
	scheduleCmd.Flags().StringVar(&scheduleReq.GrantDate, "grant", "", "Grant date (YYYY-MM-DD)")
	scheduleCmd.Flags().Float64Var(&scheduleReq.TotalValue, "total", 0, "Total award value")
	scheduleCmd.Flags().IntVar(&scheduleReq.DurationYears, "duration", 5, "Vesting duration in years")
	scheduleCmd.Flags().IntVar(&scheduleReq.CliffYears, "cliff", 0, "Cliff in years")
	scheduleCmd.Flags().StringVar(&scheduleReq.Variant, "variant", "parameterized", "Schedule variant (parameterized|quarterly16)")
	scheduleCmd.Flags().StringVar(&scheduleFormat, "format", formatTable, "Output format (table|json|csv)")
	scheduleCmd.Flags().BoolVar(&scheduleDaily, "daily", false, "Print every day instead of release days only")
	_ = scheduleCmd.MarkFlagRequired("grant")
}

func runSchedule(cmd *cobra.Command, args []string) error {
	if err := validateFormat(scheduleFormat); err != nil {
		return err
	}

	svc := services.NewAwardService(memory.NewAwardRepository(0), metrics.NewRegistry())
	_, series, err := svc.Preview(&scheduleReq)
	if err != nil {
		return err
	}

	return writeSeries(cmd.OutOrStdout(), series, scheduleFormat, scheduleDaily)
}
