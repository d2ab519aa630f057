package repository

import "github.com/okian/medalhist/pkg/logger"

// Option applies a configuration option to the CSVSource.
type Option func(*CSVSource)

// WithRowPolicy sets how malformed rows are handled.
func WithRowPolicy(p RowPolicy) Option {
	return func(s *CSVSource) {
		s.policy = p
	}
}

// WithComma sets the field delimiter. Zero keeps the default ','.
func WithComma(r rune) Option {
	return func(s *CSVSource) {
		if r != 0 {
			s.comma = r
		}
	}
}

// WithLogger sets the logger used to report skipped rows.
func WithLogger(l logger.Logger) Option {
	return func(s *CSVSource) {
		if l != nil {
			s.logger = l
		}
	}
}
