package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ArowuTest/rsu-vesting/internal/chart"
)

// chartCmd renders the awards of a CSV file as an image
var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Render the vesting chart of several awards",
	Long: `Load awards from a CSV file and draw one line per award, plus the total
when there is more than one award. The image format follows the extension of
--out (.svg or .png).

Examples:
  rsucalc chart --awards awards.csv --out rsus.svg
  rsucalc chart --awards awards.csv --out rsus.png`,
	RunE: runChart,
}

// Chart command flags
var (
	chartAwardsFile string
	chartOut        string
)

func init() {
	rootCmd.AddCommand(chartCmd)

	chartCmd.Flags().StringVar(&chartAwardsFile, "awards", "", "Awards CSV file")
	chartCmd.Flags().StringVar(&chartOut, "out", "rsus.svg", "Output image (.svg or .png)")
	_ = chartCmd.MarkFlagRequired("awards")
}

func chartFormat(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg":
		return chart.FormatSVG, nil
	case ".png":
		return chart.FormatPNG, nil
	default:
		return "", fmt.Errorf("output %q must end in .svg or .png", path)
	}
}

func runChart(cmd *cobra.Command, args []string) error {
	format, err := chartFormat(chartOut)
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	svc, err := loadAwards(ctx, chartAwardsFile)
	if err != nil {
		return err
	}
	data, err := svc.Chart(ctx, cliSession)
	if err != nil {
		return err
	}

	f, err := os.Create(chartOut)
	if err != nil {
		return fmt.Errorf("create %s: %w", chartOut, err)
	}
	if err := chart.Render(f, data, format); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	log.Info().Str("file", chartOut).Int("lines", len(data.Series)).Msg("Chart written")
	fmt.Fprintf(cmd.OutOrStdout(), "Chart written to %s\n", chartOut)
	return nil
}
