// Package model contains domain models passed between layers.
package model

import "fmt"

// NoMedal is the medal value the athlete-events dataset uses for "no medal".
const NoMedal = "NA"

// Record is one athlete-event entry. Records are never mutated after loading.
type Record struct {
	Team  string // competing team, e.g. "United States"
	Medal string // "Gold", "Silver", "Bronze" or NoMedal
	Year  int    // games year
	Sport string // sport category, e.g. "Swimming"
	Name  string // athlete name (optional column)
	Event string // event name (optional column)
}

// Summary renders the record as a short example line for bin details.
func (r Record) Summary() string {
	if r.Name == "" {
		return fmt.Sprintf("%s (%d)", r.Sport, r.Year)
	}
	if r.Event == "" {
		return fmt.Sprintf("%s (%s, %d)", r.Name, r.Sport, r.Year)
	}
	return fmt.Sprintf("%s (%s, %d)", r.Name, r.Event, r.Year)
}

// Domain is a closed year interval [Lo, Hi].
type Domain struct {
	Lo float64
	Hi float64
}

// Width returns Hi - Lo.
func (d Domain) Width() float64 { return d.Hi - d.Lo }

// Bin is a contiguous year range [X0, X1) and the records falling in it.
// The last bin of a histogram is closed on the upper end.
type Bin struct {
	X0      float64
	X1      float64
	Last    bool
	Records []Record
}

// Len returns the number of records in the bin.
func (b Bin) Len() int { return len(b.Records) }

// Contains reports whether year falls inside the bin.
func (b Bin) Contains(year float64) bool {
	if year < b.X0 {
		return false
	}
	if b.Last {
		return year <= b.X1
	}
	return year < b.X1
}

// SportCount pairs a sport with its number of occurrences.
type SportCount struct {
	Sport string
	Count int
}
