// Package binning partitions records into fixed-width year histogram bins.
//
// Bin edges come from a "nice" linear scale: the year extent is widened
// to round boundaries and split on 1, 2 or 5 × 10^k increments.
package binning

import (
	"math"

	"github.com/okian/medalhist/internal/domain/model"
)

// Defaults for scale and threshold computation.
const (
	DefaultNiceCount      = 10
	DefaultThresholdCount = 20
	maxNiceIterations     = 10

	// maxExactIndex is 2^53, past which consecutive float64 tick indices collide.
	maxExactIndex = 1 << 53
	maxTickSteps  = 1 << 20
)

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

// Extent returns the smallest domain containing every record's year.
// It reports false for an empty input.
func Extent(records []model.Record) (model.Domain, bool) {
	if len(records) == 0 {
		return model.Domain{}, false
	}
	lo, hi := records[0].Year, records[0].Year
	for _, r := range records[1:] {
		if r.Year < lo {
			lo = r.Year
		}
		if r.Year > hi {
			hi = r.Year
		}
	}
	return model.Domain{Lo: float64(lo), Hi: float64(hi)}, true
}

// tickIncrement returns the tick spacing for roughly count ticks over
// [start, stop]. Positive values are the step itself; negative values are
// -1/step, which keeps sub-unit steps exact when dividing.
func tickIncrement(start, stop float64, count int) float64 {
	if count <= 0 || !(stop > start) {
		return 0
	}
	step := (stop - start) / float64(count)
	if math.IsInf(step, 0) || math.IsNaN(step) {
		return 0
	}
	power := math.Floor(math.Log10(step))
	e := step / math.Pow(10, power)
	factor := 1.0
	switch {
	case e >= e10:
		factor = 10
	case e >= e5:
		factor = 5
	case e >= e2:
		factor = 2
	}
	if power >= 0 {
		return factor * math.Pow(10, power)
	}
	return -math.Pow(10, -power) / factor
}

// Nice widens d so both ends land on multiples of the tick increment for
// count ticks. The domain is returned unchanged when it is empty or inverted.
func Nice(d model.Domain, count int) model.Domain {
	if count <= 0 {
		count = DefaultNiceCount
	}
	start, stop := d.Lo, d.Hi
	var prestep float64
	for i := 0; i < maxNiceIterations; i++ {
		step := tickIncrement(start, stop, count)
		if step == prestep {
			break
		}
		switch {
		case step > 0:
			start = math.Floor(start/step) * step
			stop = math.Ceil(stop/step) * step
		case step < 0:
			start = math.Ceil(start*step) / step
			stop = math.Floor(stop*step) / step
		}
		prestep = step
	}
	return model.Domain{Lo: start, Hi: stop}
}

// Thresholds returns the internal bin edges for about count bins over d,
// strictly between d.Lo and d.Hi, ascending. A domain whose tick indices
// exceed the exact float64 integer range yields no edges.
func Thresholds(d model.Domain, count int) []float64 {
	if count <= 0 {
		count = DefaultThresholdCount
	}
	inc := tickIncrement(d.Lo, d.Hi, count)
	var i0, i1 float64
	var at func(i float64) float64
	switch {
	case inc > 0:
		i0, i1 = math.Ceil(d.Lo/inc), math.Floor(d.Hi/inc)
		at = func(i float64) float64 { return i * inc }
	case inc < 0:
		r := -inc
		i0, i1 = math.Ceil(d.Lo*r), math.Floor(d.Hi*r)
		at = func(i float64) float64 { return i / r }
	default:
		return nil
	}
	if math.Abs(i0) > maxExactIndex || math.Abs(i1) > maxExactIndex {
		return nil
	}
	steps := i1 - i0 + 1
	if !(steps > 0) || steps > maxTickSteps {
		return nil
	}

	n := int(steps)
	ticks := make([]float64, 0, n)
	for k := 0; k < n; k++ {
		t := at(i0 + float64(k))
		if t <= d.Lo || t >= d.Hi {
			continue
		}
		if len(ticks) > 0 && t <= ticks[len(ticks)-1] {
			continue
		}
		ticks = append(ticks, t)
	}
	return ticks
}
