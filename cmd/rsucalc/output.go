package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/ArowuTest/rsu-vesting/internal/vesting"
)

// Output formats
const (
	formatTable = "table"
	formatJSON  = "json"
	formatCSV   = "csv"
)

func validateFormat(format string) error {
	switch format {
	case formatTable, formatJSON, formatCSV:
		return nil
	default:
		return fmt.Errorf("unsupported format %q (table|json|csv)", format)
	}
}

// writeSeries prints the release days of s, or every day when daily is set.
func writeSeries(w io.Writer, s vesting.Series, format string, daily bool) error {
	if daily {
		return writePoints(w, s, format)
	}
	releases := vesting.Releases(s)
	if releases == nil {
		releases = []vesting.Release{}
	}
	return writeReleases(w, releases, format)
}

func writeReleases(w io.Writer, releases []vesting.Release, format string) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(releases)
	case formatCSV:
		cw := csv.NewWriter(w)
		_ = cw.Write([]string{"date", "amount", "cumulative"})
		for _, r := range releases {
			_ = cw.Write([]string{r.Date.Format(vesting.DateLayout), formatAmount(r.Amount), formatAmount(r.Cumulative)})
		}
		cw.Flush()
		return cw.Error()
	default:
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintln(tw, "DATE\tAMOUNT\tCUMULATIVE\t")
		for _, r := range releases {
			fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t\n", r.Date.Format(vesting.DateLayout), r.Amount, r.Cumulative)
		}
		return tw.Flush()
	}
}

func writePoints(w io.Writer, s vesting.Series, format string) error {
	switch format {
	case formatJSON:
		if s == nil {
			s = vesting.Series{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	case formatCSV:
		cw := csv.NewWriter(w)
		_ = cw.Write([]string{"date", "value"})
		for _, p := range s {
			_ = cw.Write([]string{p.Date.Format(vesting.DateLayout), formatAmount(p.Value)})
		}
		cw.Flush()
		return cw.Error()
	default:
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintln(tw, "DATE\tVALUE\t")
		for _, p := range s {
			fmt.Fprintf(tw, "%s\t%.2f\t\n", p.Date.Format(vesting.DateLayout), p.Value)
		}
		return tw.Flush()
	}
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
