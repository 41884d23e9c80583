package vesting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustSeries(t *testing.T, grant string, total float64, cliff int) Series {
	t.Helper()
	s, err := ForParams(Params{GrantDate: date(t, grant), TotalValue: total, CliffYears: cliff, DurationYears: 4})
	require.NoError(t, err)
	return s
}

func TestAggregate_Empty(t *testing.T) {
	assert.Empty(t, Aggregate())
	assert.Empty(t, Aggregate(nil, Series{}))
}

func TestAggregate_DisjointGrants(t *testing.T) {
	a := mustSeries(t, "2022-01-10", 1000, 0)
	b := mustSeries(t, "2023-05-20", 1000, 1)

	total := Aggregate(a, b)
	require.Len(t, total, len(a))
	assert.Equal(t, a[0].Date, total[0].Date)

	for _, p := range total {
		require.Equal(t, a.ValueAt(p.Date)+b.ValueAt(p.Date), p.Value, "mismatch on %s", p.Date.Format(DateLayout))
	}
	assert.Equal(t, 2000.0, total.Final())
}

func TestAggregate_SortedUnion(t *testing.T) {
	a := Series{{Date: date(t, "2024-01-03"), Value: 3}}
	b := Series{{Date: date(t, "2024-01-01"), Value: 1}, {Date: date(t, "2024-01-03"), Value: 2}}

	got := Aggregate(a, b)
	assert.Equal(t, Series{
		{Date: date(t, "2024-01-01"), Value: 1},
		{Date: date(t, "2024-01-03"), Value: 5},
	}, got)
}

func TestAggregate_Commutative(t *testing.T) {
	a := mustSeries(t, "2021-03-01", 1600, 1)
	b := mustSeries(t, "2022-07-31", 3200, 0)

	assert.Equal(t, Aggregate(a, b), Aggregate(b, a))
}

func TestAggregate_Associative(t *testing.T) {
	a := mustSeries(t, "2021-03-01", 1600, 1)
	b := mustSeries(t, "2022-07-31", 3200, 0)
	c := mustSeries(t, "2020-12-15", 800, 2)

	assert.Equal(t, Aggregate(a, b, c), Aggregate(a, Aggregate(b, c)))
	assert.Equal(t, Aggregate(a, b, c), Aggregate(Aggregate(a, b), c))
}

func TestAggregate_DoesNotMutateInputs(t *testing.T) {
	a := mustSeries(t, "2022-01-10", 1000, 0)
	before := append(Series(nil), a...)

	Aggregate(a, a)
	assert.Equal(t, before, a)
}
