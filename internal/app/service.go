// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/okian/medalhist/internal/adapters/repository"
	"github.com/okian/medalhist/internal/domain/aggregate"
	"github.com/okian/medalhist/internal/domain/binning"
	"github.com/okian/medalhist/internal/domain/filter"
	"github.com/okian/medalhist/internal/domain/grouping"
	"github.com/okian/medalhist/internal/domain/model"
	"github.com/okian/medalhist/internal/domain/types"
	"github.com/okian/medalhist/pkg/logger"
	"github.com/okian/medalhist/pkg/metrics"
)

const (
	// DefaultCountry is the team the histogram is built for.
	DefaultCountry = "United States"
)

// Snapshot is an immutable result of one pipeline run over the dataset.
type Snapshot struct {
	ID         string
	ComputedAt time.Time

	Loaded   int // records returned by the source
	Filtered []model.Record
	Years    *grouping.YearGroup

	Domain model.Domain
	Bins   []model.Bin
	Modes  []model.SportCount // per bin, zero value for an empty bin

	Mean        float64
	MeanDefined bool
}

// Service implements the API dependencies for the medal histogram.
type Service struct {
	mu sync.Mutex // serializes Start, Stop and Reload

	source repository.Source

	// Configuration
	country        string
	medalSentinel  string
	thresholdCount int
	niceCount      int
	exampleCount   int

	// State
	snapshot atomic.Pointer[Snapshot]
	started  atomic.Bool
	reloads  atomic.Int64
	failures atomic.Int64

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSource sets the dataset the service reads.
func WithSource(src repository.Source) Option {
	return func(s *Service) {
		s.source = src
	}
}

// WithCountry sets the team whose medals are counted.
func WithCountry(country string) Option {
	return func(s *Service) {
		if country != "" {
			s.country = country
		}
	}
}

// WithMedalSentinel sets the medal value that means "no medal".
func WithMedalSentinel(sentinel string) Option {
	return func(s *Service) {
		if sentinel != "" {
			s.medalSentinel = sentinel
		}
	}
}

// WithThresholds sets the requested number of bin thresholds.
func WithThresholds(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.thresholdCount = count
		}
	}
}

// WithNiceCount sets the tick count used to round the year domain.
func WithNiceCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.niceCount = count
		}
	}
}

// WithExampleCount sets how many example records a bin detail lists.
func WithExampleCount(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.exampleCount = n
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		country:        DefaultCountry,
		medalSentinel:  model.NoMedal,
		thresholdCount: binning.DefaultThresholdCount,
		niceCount:      binning.DefaultNiceCount,
		exampleCount:   aggregate.DefaultExampleCount,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) log() logger.Logger {
	if s.logger == nil {
		s.logger = logger.Get()
	}
	return s.logger
}

// Start loads the dataset and computes the first snapshot. A load error is
// returned and leaves the service stopped.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started.Load() {
		return nil
	}
	s.log().Info(ctx, "starting medal histogram service...",
		logger.String("country", s.country),
		logger.Int("thresholds", s.thresholdCount),
	)

	snap, err := s.compute(ctx)
	if err != nil {
		metrics.RecordErrorByComponent("service", "start")
		return err
	}
	s.snapshot.Store(snap)
	s.started.Store(true)

	s.log().Info(ctx, "medal histogram service started",
		logger.String("snapshot", snap.ID),
		logger.Int("records", len(snap.Filtered)),
		logger.Int("years", snap.Years.Len()),
		logger.Int("bins", len(snap.Bins)),
	)
	return nil
}

// Stop releases the current snapshot.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started.Load() {
		return
	}
	s.snapshot.Store(nil)
	s.started.Store(false)
	s.log().Info(context.Background(), "medal histogram service stopped")
}

// Reload re-reads the dataset and swaps in a new snapshot, returning its
// summary. On failure the previous snapshot keeps serving.
func (s *Service) Reload(ctx context.Context) (types.Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started.Load() {
		return types.Summary{}, ErrNotReady
	}
	snap, err := s.compute(ctx)
	if err != nil {
		s.failures.Add(1)
		metrics.RecordReload("error")
		s.log().Warn(ctx, "reload failed, keeping previous snapshot", logger.Error(err))
		return types.Summary{}, fmt.Errorf("reload: %w", err)
	}
	prev := s.snapshot.Swap(snap)
	s.reloads.Add(1)
	metrics.RecordReload("ok")

	fields := []logger.Field{
		logger.String("snapshot", snap.ID),
		logger.Int("records", len(snap.Filtered)),
	}
	if prev != nil {
		fields = append(fields, logger.String("previous", prev.ID))
	}
	s.log().Info(ctx, "snapshot reloaded", fields...)
	return s.summarize(snap), nil
}

func (s *Service) compute(ctx context.Context) (*Snapshot, error) {
	if s.source == nil {
		return nil, ErrNoSource
	}
	start := time.Now()
	rows, err := s.source.Load(ctx)
	if err != nil {
		return nil, err
	}
	snap := Build(rows, Params{
		Country:        s.country,
		MedalSentinel:  s.medalSentinel,
		NiceCount:      s.niceCount,
		ThresholdCount: s.thresholdCount,
	})

	stats := metrics.SnapshotStats{
		FilteredRecords: len(snap.Filtered),
		DistinctYears:   snap.Years.Len(),
		Bins:            len(snap.Bins),
		MaxBinRecords:   aggregate.MaxBinCount(snap.Bins),
	}
	if snap.MeanDefined {
		stats.MeanPerYear = snap.Mean
	}
	metrics.RecordSnapshot(stats, float64(time.Since(start).Milliseconds()), snap.ComputedAt)
	return snap, nil
}

// Params controls a pipeline run.
type Params struct {
	Country        string
	MedalSentinel  string
	NiceCount      int
	ThresholdCount int
}

// Build runs filter, grouping, binning and aggregation over rows.
func Build(rows []model.Record, p Params) *Snapshot {
	filtered := filter.Records(rows, p.Country, p.MedalSentinel)
	years := grouping.ByYear(filtered)
	domain, bins := binning.ForRecords(filtered, p.NiceCount, p.ThresholdCount)

	snap := &Snapshot{
		ID:         uuid.NewString(),
		ComputedAt: time.Now().UTC(),
		Loaded:     len(rows),
		Filtered:   filtered,
		Years:      years,
		Domain:     domain,
		Bins:       bins,
		Modes:      make([]model.SportCount, len(bins)),
	}
	if mean, err := aggregate.MeanRecordsPerActiveYear(years); err == nil {
		snap.Mean = mean
		snap.MeanDefined = true
	}
	for i, b := range bins {
		if m, ok := aggregate.ModeSport(b.Records); ok {
			snap.Modes[i] = m
		}
	}
	return snap
}

// Snapshot returns the current snapshot or ErrNotReady.
func (s *Service) Snapshot(_ context.Context) (*Snapshot, error) {
	snap := s.snapshot.Load()
	if snap == nil {
		return nil, ErrNotReady
	}
	return snap, nil
}

// Summary returns the headline numbers of the current snapshot.
func (s *Service) Summary(ctx context.Context) (types.Summary, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return types.Summary{}, err
	}
	return s.summarize(snap), nil
}

func (s *Service) summarize(snap *Snapshot) types.Summary {
	out := types.Summary{
		SnapshotID:    snap.ID,
		Country:       s.country,
		TotalRecords:  len(snap.Filtered),
		DistinctYears: snap.Years.Len(),
		DomainLo:      snap.Domain.Lo,
		DomainHi:      snap.Domain.Hi,
		BinCount:      len(snap.Bins),
		MaxBinCount:   aggregate.MaxBinCount(snap.Bins),
		ComputedAt:    snap.ComputedAt.Format(time.RFC3339),
	}
	if snap.MeanDefined {
		mean := snap.Mean
		out.MeanPerYear = &mean
	}
	return out
}

// Histogram returns every bin of the current snapshot with the summary of
// that same snapshot.
func (s *Service) Histogram(ctx context.Context) (types.Histogram, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return types.Histogram{}, err
	}
	out := types.Histogram{
		Summary: s.summarize(snap),
		Bins:    make([]types.Bin, len(snap.Bins)),
	}
	for i := range snap.Bins {
		out.Bins[i] = binView(snap, i)
	}
	return out, nil
}

// Bin returns bin i with its hover details.
func (s *Service) Bin(ctx context.Context, i int) (types.BinDetail, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return types.BinDetail{}, err
	}
	if i < 0 || i >= len(snap.Bins) {
		return types.BinDetail{}, fmt.Errorf("%w: %d", ErrBinNotFound, i)
	}
	b := snap.Bins[i]
	examples := aggregate.Examples(b.Records, s.exampleCount)
	lines := make([]string, len(examples))
	for j, r := range examples {
		lines[j] = r.Summary()
	}
	return types.BinDetail{
		Bin:      binView(snap, i),
		Range:    formatYear(b.X0) + " to " + formatYear(b.X1),
		Examples: lines,
	}, nil
}

// Years returns the record count of every active year, ascending.
func (s *Service) Years(ctx context.Context) ([]types.YearCount, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]types.YearCount, 0, snap.Years.Len())
	snap.Years.Ascend(func(year int, records []model.Record) bool {
		out = append(out, types.YearCount{Year: year, Count: len(records)})
		return true
	})
	return out, nil
}

// Year returns the records of a single year.
func (s *Service) Year(ctx context.Context, year int) (types.YearDetail, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return types.YearDetail{}, err
	}
	records := snap.Years.Records(year)
	if records == nil {
		return types.YearDetail{}, fmt.Errorf("%w: %d", ErrYearNotFound, year)
	}
	out := types.YearDetail{
		Year:    year,
		Count:   len(records),
		Records: make([]types.Record, len(records)),
	}
	if m, ok := aggregate.ModeSport(records); ok {
		out.ModeSport = &types.SportCount{Sport: m.Sport, Count: m.Count}
	}
	for i, r := range records {
		out.Records[i] = recordView(r)
	}
	return out, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	stats := map[string]interface{}{
		"started":        s.started.Load(),
		"country":        s.country,
		"thresholds":     s.thresholdCount,
		"niceCount":      s.niceCount,
		"reloads":        s.reloads.Load(),
		"reloadFailures": s.failures.Load(),
	}
	if snap := s.snapshot.Load(); snap != nil {
		stats["snapshotId"] = snap.ID
		stats["computedAt"] = snap.ComputedAt.Format(time.RFC3339)
		stats["loadedRecords"] = snap.Loaded
		stats["filteredRecords"] = len(snap.Filtered)
		stats["distinctYears"] = snap.Years.Len()
		stats["bins"] = len(snap.Bins)
	}
	if ls, ok := s.source.(interface{ LastStats() repository.LoadStats }); ok {
		last := ls.LastStats()
		stats["rowsRead"] = last.Rows
		stats["rowsSkipped"] = last.Skipped
	}
	return stats
}

func binView(snap *Snapshot, i int) types.Bin {
	b := snap.Bins[i]
	out := types.Bin{Index: i, X0: b.X0, X1: b.X1, Count: b.Len()}
	if m := snap.Modes[i]; m.Count > 0 {
		out.ModeSport = &types.SportCount{Sport: m.Sport, Count: m.Count}
	}
	return out
}

func recordView(r model.Record) types.Record {
	return types.Record{
		Team:  r.Team,
		Medal: r.Medal,
		Year:  r.Year,
		Sport: r.Sport,
		Name:  r.Name,
		Event: r.Event,
	}
}

func formatYear(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
