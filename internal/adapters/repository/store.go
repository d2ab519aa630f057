// Package repository loads athlete event records from tabular sources.
package repository

import (
	"context"

	"github.com/okian/medalhist/internal/domain/model"
)

// Source yields every record of a dataset in file order.
type Source interface {
	// Load reads the whole dataset. Any returned error is fatal for the
	// caller's pipeline; partial results are never returned.
	Load(ctx context.Context) ([]model.Record, error)
}

// LoadStats describes the last completed load.
type LoadStats struct {
	Rows    int // data rows read, header excluded
	Skipped int // malformed rows dropped under RowPolicySkip
}

// RowPolicy decides what happens to a row whose Year cannot be parsed.
type RowPolicy int

const (
	// RowPolicySkip drops malformed rows and counts them.
	RowPolicySkip RowPolicy = iota
	// RowPolicyFail aborts the load on the first malformed row.
	RowPolicyFail
)

// ParseRowPolicy maps a config string to a RowPolicy.
func ParseRowPolicy(s string) (RowPolicy, error) {
	switch s {
	case "", "skip":
		return RowPolicySkip, nil
	case "fail":
		return RowPolicyFail, nil
	}
	return RowPolicySkip, ErrUnknownPolicy
}

func (p RowPolicy) String() string {
	if p == RowPolicyFail {
		return "fail"
	}
	return "skip"
}
