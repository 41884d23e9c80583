package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadAwards(t *testing.T) {
	in := `name,grant_date,total_value,duration_years,cliff_years,variant
initial,2022-03-15,20000,4,1,
refresh,2023/01/01,8000,,,quarterly16

top-up,"Jun 30, 2024",1500.5,3,0,parameterized
`
	awards, err := ReadAwards(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, awards, 3)

	assert.Equal(t, "initial", awards[0].Name)
	assert.Equal(t, "2022-03-15", awards[0].GrantDate)
	assert.Equal(t, 20000.0, awards[0].TotalValue)
	assert.Equal(t, 4, awards[0].DurationYears)
	assert.Equal(t, 1, awards[0].CliffYears)
	assert.Empty(t, awards[0].Variant)

	assert.Equal(t, "2023-01-01", awards[1].GrantDate)
	assert.Equal(t, 5, awards[1].DurationYears)
	assert.Equal(t, 0, awards[1].CliffYears)
	assert.Equal(t, "quarterly16", awards[1].Variant)

	assert.Equal(t, "2024-06-30", awards[2].GrantDate)
	assert.Equal(t, 1500.5, awards[2].TotalValue)
}

func TestReadAwards_AlternativeHeaders(t *testing.T) {
	in := "Award Name,Grant Date,Value,Cliff\nrsu,2022-03-15,100,2\n"

	awards, err := ReadAwards(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, awards, 1)
	assert.Equal(t, "rsu", awards[0].Name)
	assert.Equal(t, 2, awards[0].CliffYears)
	assert.Equal(t, 5, awards[0].DurationYears)
}

func TestReadAwards_Errors(t *testing.T) {
	cases := map[string]string{
		"missing total column": "name,grant_date\nx,2022-03-15\n",
		"missing name column":  "grant_date,total_value\n2022-03-15,1\n",
		"bad date":             "name,grant_date,total_value\nx,15/03/2022,1\n",
		"bad total":            "name,grant_date,total_value\nx,2022-03-15,lots\n",
		"bad duration":         "name,grant_date,total_value,duration\nx,2022-03-15,1,four\n",
		"empty input":          "",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ReadAwards(strings.NewReader(in))
			assert.Error(t, err)
		})
	}
}

func TestReadAwards_RowNumberInError(t *testing.T) {
	in := "name,grant_date,total_value\na,2022-03-15,1\nb,nope,1\n"
	_, err := ReadAwards(strings.NewReader(in))
	assert.ErrorContains(t, err, "row 3")
}
