package repository

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/okian/medalhist/internal/domain/model"
	"github.com/okian/medalhist/pkg/logger"
	"github.com/okian/medalhist/pkg/metrics"
)

// Column names of the athlete events dataset.
const (
	ColumnTeam  = "Team"
	ColumnMedal = "Medal"
	ColumnYear  = "Year"
	ColumnSport = "Sport"
	ColumnName  = "Name"
	ColumnEvent = "Event"
)

const (
	utf8BOM = "\ufeff"

	// ctxCheckEvery bounds how many rows are read between cancellation checks.
	ctxCheckEvery = 1024

	// maxSkipLogs caps per-row warnings; the total is logged at the end.
	maxSkipLogs = 10
)

var requiredColumns = []string{ColumnTeam, ColumnMedal, ColumnYear, ColumnSport}

// Opener returns a fresh stream positioned at the start of the dataset.
type Opener func() (io.ReadCloser, error)

// FileOpener opens path on every call.
func FileOpener(path string) Opener {
	return func() (io.ReadCloser, error) {
		return os.Open(path) //nolint:gosec // path comes from operator config
	}
}

// CSVSource reads records from a headed CSV stream.
type CSVSource struct {
	open   Opener
	policy RowPolicy
	comma  rune
	logger logger.Logger

	mu   sync.Mutex
	last LoadStats
}

// NewCSVSource creates a source reading from open.
func NewCSVSource(open Opener, opts ...Option) *CSVSource {
	s := &CSVSource{
		open:   open,
		policy: RowPolicySkip,
		comma:  ',',
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewCSVFile creates a source reading the CSV file at path.
func NewCSVFile(path string, opts ...Option) *CSVSource {
	return NewCSVSource(FileOpener(path), opts...)
}

// LastStats returns the stats of the last successful load.
func (s *CSVSource) LastStats() LoadStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// columns maps the dataset columns to their index in a row.
type columns struct {
	team, medal, year, sport int
	name, event              int // -1 when absent
	width                    int // minimum row length for required columns
}

func resolveColumns(header []string) (columns, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, utf8BOM))
		if _, dup := idx[h]; !dup {
			idx[h] = i
		}
	}
	var missing []string
	for _, c := range requiredColumns {
		if _, ok := idx[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return columns{}, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}

	lookup := func(name string) int {
		if i, ok := idx[name]; ok {
			return i
		}
		return -1
	}
	c := columns{
		team:  idx[ColumnTeam],
		medal: idx[ColumnMedal],
		year:  idx[ColumnYear],
		sport: idx[ColumnSport],
		name:  lookup(ColumnName),
		event: lookup(ColumnEvent),
	}
	c.width = 1 + max(c.team, c.medal, c.year, c.sport)
	return c, nil
}

func optional(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// Years outside [MinYear, MaxYear] are rejected as malformed.
const (
	MinYear = 1
	MaxYear = 9999
)

// ParseYear accepts integer strings and integral floats such as "1900.0"
// within [MinYear, MaxYear].
func ParseYear(s string) (int, error) {
	s = strings.TrimSpace(s)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("year %q is not numeric", s)
	}
	if math.IsInf(f, 0) || math.IsNaN(f) || f != math.Trunc(f) {
		return 0, fmt.Errorf("year %q is not a whole number", s)
	}
	if f < MinYear || f > MaxYear {
		return 0, fmt.Errorf("year %q is outside %d..%d", s, MinYear, MaxYear)
	}
	return int(f), nil
}

func (c columns) parse(row []string) (model.Record, error) {
	if len(row) < c.width {
		return model.Record{}, fmt.Errorf("row has %d fields, need %d", len(row), c.width)
	}
	year, err := ParseYear(row[c.year])
	if err != nil {
		return model.Record{}, err
	}
	return model.Record{
		Team:  row[c.team],
		Medal: row[c.medal],
		Year:  year,
		Sport: row[c.sport],
		Name:  optional(row, c.name),
		Event: optional(row, c.event),
	}, nil
}

// Load reads and parses the whole dataset.
func (s *CSVSource) Load(ctx context.Context) ([]model.Record, error) {
	start := time.Now()
	records, stats, err := s.load(ctx)
	if err != nil {
		metrics.RecordDatasetLoadError()
		metrics.RecordErrorByComponent("repository", "load")
		return nil, err
	}
	metrics.RecordDatasetLoad(stats.Rows, stats.Skipped, float64(time.Since(start).Milliseconds()))

	s.mu.Lock()
	s.last = stats
	s.mu.Unlock()

	if s.logger != nil {
		s.logger.Info(ctx, "dataset loaded",
			logger.Int("rows", stats.Rows),
			logger.Int("records", len(records)),
			logger.Int("skipped", stats.Skipped),
			logger.Duration("took", time.Since(start)),
		)
	}
	return records, nil
}

func (s *CSVSource) load(ctx context.Context) ([]model.Record, LoadStats, error) {
	var stats LoadStats
	if s.open == nil {
		return nil, stats, fmt.Errorf("%w: no opener configured", ErrLoad)
	}
	rc, err := s.open()
	if err != nil {
		return nil, stats, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	defer func() { _ = rc.Close() }()

	r := csv.NewReader(bufio.NewReader(rc))
	r.Comma = s.comma
	r.FieldsPerRecord = -1 // row width is checked per record
	r.ReuseRecord = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, stats, fmt.Errorf("%w: empty input, no header row", ErrLoad)
		}
		return nil, stats, fmt.Errorf("%w: header: %w", ErrLoad, err)
	}
	cols, err := resolveColumns(header)
	if err != nil {
		return nil, stats, err
	}

	var records []model.Record
	for {
		if stats.Rows%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, stats, fmt.Errorf("%w: %w", ErrLoad, err)
			}
		}

		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		stats.Rows++

		var rowErr error
		var parseErr *csv.ParseError
		switch {
		case errors.As(err, &parseErr):
			rowErr = parseErr.Err
		case err != nil:
			return nil, stats, fmt.Errorf("%w: %w", ErrLoad, err)
		default:
			var rec model.Record
			rec, rowErr = cols.parse(row)
			if rowErr == nil {
				records = append(records, rec)
				continue
			}
		}

		var line int
		if parseErr != nil {
			line = parseErr.Line
		} else {
			line, _ = r.FieldPos(0)
		}
		if s.policy == RowPolicyFail {
			return nil, stats, fmt.Errorf("%w: line %d: %w", ErrMalformedRow, line, rowErr)
		}
		stats.Skipped++
		metrics.RecordErrorByComponent("repository", "malformed_row")
		if s.logger != nil && stats.Skipped <= maxSkipLogs {
			s.logger.Warn(ctx, "skipping malformed row", logger.Int("line", line), logger.Error(rowErr))
		}
	}
	return records, stats, nil
}
