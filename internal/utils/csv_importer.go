package utils

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ArowuTest/rsu-vesting/internal/models"
	"github.com/ArowuTest/rsu-vesting/internal/vesting"
)

// Accepted header spellings per column
var (
	nameColumns     = []string{"name", "award", "award name"}
	grantColumns    = []string{"grant_date", "grant date", "grantDate", "date"}
	totalColumns    = []string{"total_value", "total value", "totalValue", "value", "total"}
	durationColumns = []string{"duration_years", "duration", "durationYears", "vesting years"}
	cliffColumns    = []string{"cliff_years", "cliff", "cliffYears"}
	variantColumns  = []string{"variant", "schedule"}
)

// ReadAwardsFile reads award requests from a CSV file. See ReadAwards.
func ReadAwardsFile(filePath string) ([]*models.AwardRequest, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return ReadAwards(file)
}

// ReadAwards parses award requests from CSV with a header row. Name, grant
// date and total value are required columns; duration, cliff and variant are
// optional and default to 5, 0 and the default variant. The first malformed
// row aborts the import.
func ReadAwards(r io.Reader) ([]*models.AwardRequest, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	nameIdx := findColumnIndex(header, nameColumns)
	grantIdx := findColumnIndex(header, grantColumns)
	totalIdx := findColumnIndex(header, totalColumns)
	durationIdx := findColumnIndex(header, durationColumns)
	cliffIdx := findColumnIndex(header, cliffColumns)
	variantIdx := findColumnIndex(header, variantColumns)

	switch {
	case nameIdx == -1:
		return nil, errors.New("name column not found in CSV")
	case grantIdx == -1:
		return nil, errors.New("grant date column not found in CSV")
	case totalIdx == -1:
		return nil, errors.New("total value column not found in CSV")
	}

	var awards []*models.AwardRequest
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		if isBlank(row) {
			continue
		}

		req := &models.AwardRequest{
			Name:          field(row, nameIdx),
			DurationYears: 5,
			Variant:       field(row, variantIdx),
		}
		if req.GrantDate, err = normalizeDate(field(row, grantIdx)); err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		if req.TotalValue, err = strconv.ParseFloat(field(row, totalIdx), 64); err != nil {
			return nil, fmt.Errorf("row %d: invalid total value %q", line, field(row, totalIdx))
		}
		if v := field(row, durationIdx); v != "" {
			if req.DurationYears, err = strconv.Atoi(v); err != nil {
				return nil, fmt.Errorf("row %d: invalid duration %q", line, v)
			}
		}
		if v := field(row, cliffIdx); v != "" {
			if req.CliffYears, err = strconv.Atoi(v); err != nil {
				return nil, fmt.Errorf("row %d: invalid cliff %q", line, v)
			}
		}
		awards = append(awards, req)
	}

	return awards, nil
}

// findColumnIndex finds the index of a column in the header
func findColumnIndex(header []string, possibleNames []string) int {
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		for _, name := range possibleNames {
			if strings.ToLower(name) == h {
				return i
			}
		}
	}
	return -1
}

func field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// normalizeDate accepts a few unambiguous date spellings and returns YYYY-MM-DD
func normalizeDate(dateStr string) (string, error) {
	formats := []string{
		vesting.DateLayout,
		"2006/01/02",
		"Jan 2, 2006",
		"2 Jan 2006",
		"2006-01-02 15:04:05",
	}

	for _, format := range formats {
		date, err := time.Parse(format, dateStr)
		if err == nil {
			return date.Format(vesting.DateLayout), nil
		}
	}

	return "", fmt.Errorf("unable to parse date %q", dateStr)
}
