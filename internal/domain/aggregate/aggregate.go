// Package aggregate computes the summary statistics shown alongside the
// year histogram.
package aggregate

import (
	"github.com/okian/medalhist/internal/domain/grouping"
	"github.com/okian/medalhist/internal/domain/model"
)

// DefaultExampleCount is how many example records a bin detail shows.
const DefaultExampleCount = 3

// MeanRecordsPerActiveYear returns total records divided by the number of
// distinct years. It returns ErrNoYears for an empty group.
func MeanRecordsPerActiveYear(g *grouping.YearGroup) (float64, error) {
	if g.Len() == 0 {
		return 0, ErrNoYears
	}
	return float64(g.Total()) / float64(g.Len()), nil
}

// ModeSport returns the most frequent sport in records. Ties keep the sport
// that reached the winning count first in a left-to-right scan. It reports
// false for an empty input.
func ModeSport(records []model.Record) (model.SportCount, bool) {
	if len(records) == 0 {
		return model.SportCount{}, false
	}
	counts := make(map[string]int)
	var best model.SportCount
	for _, r := range records {
		counts[r.Sport]++
		if c := counts[r.Sport]; c > best.Count {
			best = model.SportCount{Sport: r.Sport, Count: c}
		}
	}
	return best, true
}

// Examples returns up to n leading records in input order. n <= 0 means
// DefaultExampleCount.
func Examples(records []model.Record, n int) []model.Record {
	if n <= 0 {
		n = DefaultExampleCount
	}
	if len(records) < n {
		n = len(records)
	}
	return append([]model.Record(nil), records[:n]...)
}

// MaxBinCount returns the largest bin size, or 0 when there are no bins.
func MaxBinCount(bins []model.Bin) int {
	highest := 0
	for _, b := range bins {
		if b.Len() > highest {
			highest = b.Len()
		}
	}
	return highest
}
