package binning

import (
	"sort"

	"github.com/okian/medalhist/internal/domain/model"
)

// Compute partitions records into ordered, contiguous bins covering d.
//
// Bins are half-open [X0, X1) except the last, which is closed. A year that
// sits exactly on an internal edge belongs to the higher bin. Records whose
// year falls outside d are left out; pass Nice(Extent(records)) to keep all.
// An inverted domain yields no bins.
func Compute(records []model.Record, d model.Domain, count int) []model.Bin {
	if d.Hi < d.Lo {
		return nil
	}
	edges := Thresholds(d, count)
	bins := make([]model.Bin, len(edges)+1)
	for i := range bins {
		bins[i].X0 = d.Lo
		if i > 0 {
			bins[i].X0 = edges[i-1]
		}
		bins[i].X1 = d.Hi
		if i < len(edges) {
			bins[i].X1 = edges[i]
		}
	}
	bins[len(bins)-1].Last = true

	for _, r := range records {
		y := float64(r.Year)
		if y < d.Lo || y > d.Hi {
			continue
		}
		i := sort.Search(len(edges), func(j int) bool { return edges[j] > y })
		bins[i].Records = append(bins[i].Records, r)
	}
	return bins
}

// ForRecords bins records over their nice-extended extent. It returns nil
// when records is empty.
func ForRecords(records []model.Record, niceCount, thresholdCount int) (model.Domain, []model.Bin) {
	ext, ok := Extent(records)
	if !ok {
		return model.Domain{}, nil
	}
	d := Nice(ext, niceCount)
	if d.Lo > ext.Lo || d.Hi < ext.Hi {
		// rounding lost precision; never drop records
		d = ext
	}
	return d, Compute(records, d, thresholdCount)
}
