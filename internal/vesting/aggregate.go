package vesting

import (
	"sort"
)

// Aggregate sums series by date over the union of their dates. A series with
// no point on a date contributes 0 there. No input yields an empty series.
func Aggregate(series ...Series) Series {
	dates := make(map[int64]Point)
	for _, s := range series {
		for _, p := range s {
			k := dayKey(p.Date)
			acc, ok := dates[k]
			if !ok {
				acc.Date = Day(p.Date)
			}
			acc.Value += p.Value
			dates[k] = acc
		}
	}

	keys := make([]int64, 0, len(dates))
	for k := range dates {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	out := make(Series, 0, len(keys))
	for _, k := range keys {
		out = append(out, dates[k])
	}
	return out
}
