package service

import "errors"

var (
	ErrNotReady     = errors.New("snapshot not ready")
	ErrNoSource     = errors.New("no dataset source configured")
	ErrBinNotFound  = errors.New("bin not found")
	ErrYearNotFound = errors.New("year not found")
)
