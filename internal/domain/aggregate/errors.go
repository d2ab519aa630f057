package aggregate

import "errors"

// Sentinel kinds for aggregate errors.
var (
	ErrNoYears = errors.New("no active years")
)
