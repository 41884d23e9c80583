package models

import "github.com/ArowuTest/rsu-vesting/internal/vesting"

// TotalSeriesName labels the aggregate line.
const TotalSeriesName = "Total"

// NamedSeries is one line of the chart.
type NamedSeries struct {
	Name   string         `json:"name"`
	Total  bool           `json:"total,omitempty"`
	Points vesting.Series `json:"points"`
}

// ChartData holds every line to draw, awards first and the total last.
type ChartData struct {
	Series []NamedSeries `json:"series"`
}
