// Package grouping partitions records by games year.
package grouping

import (
	"github.com/google/btree"

	"github.com/okian/medalhist/internal/domain/model"
)

// btreeDegree is small on purpose; a dataset spans a few dozen years.
const btreeDegree = 8

type yearEntry struct {
	year    int
	records []model.Record
}

func lessYear(a, b yearEntry) bool { return a.year < b.year }

// YearGroup maps each year to the records of that year, in input order.
// A YearGroup is immutable once returned by ByYear.
type YearGroup struct {
	index *btree.BTreeG[yearEntry]
	total int
}

// ByYear folds records into a YearGroup in a single pass.
func ByYear(records []model.Record) *YearGroup {
	idx := btree.NewG(btreeDegree, lessYear)
	for _, r := range records {
		e, ok := idx.Get(yearEntry{year: r.Year})
		if !ok {
			e = yearEntry{year: r.Year}
		}
		e.records = append(e.records, r)
		idx.ReplaceOrInsert(e)
	}
	return &YearGroup{index: idx, total: len(records)}
}

// Len returns the number of distinct years.
func (g *YearGroup) Len() int {
	if g == nil || g.index == nil {
		return 0
	}
	return g.index.Len()
}

// Total returns the number of records across all years.
func (g *YearGroup) Total() int {
	if g == nil {
		return 0
	}
	return g.total
}

// Years returns the distinct years in ascending order.
func (g *YearGroup) Years() []int {
	years := make([]int, 0, g.Len())
	g.Ascend(func(year int, _ []model.Record) bool {
		years = append(years, year)
		return true
	})
	return years
}

// Records returns a copy of the records for year, or nil if the year is absent.
func (g *YearGroup) Records(year int) []model.Record {
	if g.Len() == 0 {
		return nil
	}
	e, ok := g.index.Get(yearEntry{year: year})
	if !ok {
		return nil
	}
	return append([]model.Record(nil), e.records...)
}

// Has reports whether year has at least one record.
func (g *YearGroup) Has(year int) bool {
	if g.Len() == 0 {
		return false
	}
	return g.index.Has(yearEntry{year: year})
}

// Ascend calls fn for each year in ascending order until fn returns false.
// The slice passed to fn must not be modified.
func (g *YearGroup) Ascend(fn func(year int, records []model.Record) bool) {
	if g.Len() == 0 {
		return
	}
	g.index.Ascend(func(e yearEntry) bool {
		return fn(e.year, e.records)
	})
}

// Counts returns the number of records per year.
func (g *YearGroup) Counts() map[int]int {
	counts := make(map[int]int, g.Len())
	g.Ascend(func(year int, records []model.Record) bool {
		counts[year] = len(records)
		return true
	})
	return counts
}
