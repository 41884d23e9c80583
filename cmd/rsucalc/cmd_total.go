package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ArowuTest/rsu-vesting/internal/metrics"
	"github.com/ArowuTest/rsu-vesting/internal/repositories/memory"
	"github.com/ArowuTest/rsu-vesting/internal/services"
	"github.com/ArowuTest/rsu-vesting/internal/utils"
)

// cliSession scopes the awards loaded from one CSV file
const cliSession = "cli"

// totalCmd prints the combined schedule of every award in a CSV file
var totalCmd = &cobra.Command{
	Use:   "total",
	Short: "Print the combined vesting schedule of several awards",
	Long: `Load awards from a CSV file and print the sum of their schedules.

The CSV needs a header row with name, grant_date and total_value columns and
may add duration_years, cliff_years and variant.

Examples:
  rsucalc total --awards awards.csv
  rsucalc total --awards awards.csv --daily --format csv`,
	RunE: runTotal,
}

// Total command flags
var (
	totalAwardsFile string
	totalFormat     string
	totalDaily      bool
)

func init() {
	rootCmd.AddCommand(totalCmd)

	totalCmd.Flags().StringVar(&totalAwardsFile, "awards", "", "Awards CSV file")
	totalCmd.Flags().StringVar(&totalFormat, "format", formatTable, "Output format (table|json|csv)")
	totalCmd.Flags().BoolVar(&totalDaily, "daily", false, "Print every day instead of release days only")
	_ = totalCmd.MarkFlagRequired("awards")
}

func runTotal(cmd *cobra.Command, args []string) error {
	if err := validateFormat(totalFormat); err != nil {
		return err
	}

	ctx := commandContext(cmd)
	svc, err := loadAwards(ctx, totalAwardsFile)
	if err != nil {
		return err
	}

	total, err := svc.Total(ctx, cliSession)
	if err != nil {
		return err
	}
	return writeSeries(cmd.OutOrStdout(), total, totalFormat, totalDaily)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// loadAwards submits every award of the CSV file to an in-memory service.
// Later rows replace earlier rows with the same name.
func loadAwards(ctx context.Context, path string) (services.AwardService, error) {
	reqs, err := utils.ReadAwardsFile(path)
	if err != nil {
		return nil, err
	}
	if len(reqs) == 0 {
		return nil, fmt.Errorf("%s contains no awards", path)
	}

	svc := services.NewAwardService(memory.NewAwardRepository(0), metrics.NewRegistry())
	for _, req := range reqs {
		if _, err := svc.Submit(ctx, cliSession, req); err != nil {
			return nil, fmt.Errorf("award %q: %w", req.Name, err)
		}
	}
	log.Debug().Int("awards", len(reqs)).Str("file", path).Msg("Loaded awards")
	return svc, nil
}
