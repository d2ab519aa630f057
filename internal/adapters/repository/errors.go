package repository

import "errors"

// Sentinel kinds for dataset errors.
var (
	ErrLoad          = errors.New("dataset load failed")
	ErrMissingColumn = errors.New("required column missing")
	ErrMalformedRow  = errors.New("malformed row")
	ErrUnknownPolicy = errors.New("unknown row policy")
)
