// Package types contains the read shapes returned to API clients.
package types

// Summary describes the current histogram snapshot.
type Summary struct {
	SnapshotID    string   `json:"snapshot_id"`
	Country       string   `json:"country"`
	TotalRecords  int      `json:"total_records"`
	DistinctYears int      `json:"distinct_years"`
	MeanPerYear   *float64 `json:"mean_per_year"`
	DomainLo      float64  `json:"domain_lo"`
	DomainHi      float64  `json:"domain_hi"`
	BinCount      int      `json:"bin_count"`
	MaxBinCount   int      `json:"max_bin_count"`
	ComputedAt    string   `json:"computed_at"`
}

// SportCount is a sport and its number of occurrences.
type SportCount struct {
	Sport string `json:"sport"`
	Count int    `json:"count"`
}

// Bin is one histogram bar.
type Bin struct {
	Index     int         `json:"index"`
	X0        float64     `json:"x0"`
	X1        float64     `json:"x1"`
	Count     int         `json:"count"`
	ModeSport *SportCount `json:"mode_sport,omitempty"`
}

// Histogram is every bar of one snapshot together with its summary.
type Histogram struct {
	Summary Summary
	Bins    []Bin
}

// BinDetail is a bar plus the hover details for it.
type BinDetail struct {
	Bin
	Range    string   `json:"range"`
	Examples []string `json:"examples"`
}

// YearCount is the number of medal records in one year.
type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// Record is the wire form of a medal record.
type Record struct {
	Team  string `json:"team"`
	Medal string `json:"medal"`
	Year  int    `json:"year"`
	Sport string `json:"sport"`
	Name  string `json:"name,omitempty"`
	Event string `json:"event,omitempty"`
}

// YearDetail lists the records of a single year.
type YearDetail struct {
	Year      int         `json:"year"`
	Count     int         `json:"count"`
	ModeSport *SportCount `json:"mode_sport,omitempty"`
	Records   []Record    `json:"records"`
}
