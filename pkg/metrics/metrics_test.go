package metrics

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsOptions(t *testing.T) {
	Convey("Given metrics options", t, func() {
		Convey("When applied to a manager", func() {
			registry := prometheus.NewRegistry()
			m := NewManager(
				WithNamespace("test"),
				WithSubsystem("hist"),
				WithMetricPrefix("pre"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithCustomLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then fields should reflect them", func() {
				So(m.namespace, ShouldEqual, "test")
				So(m.subsystem, ShouldEqual, "hist")
				So(m.histogramBuckets, ShouldResemble, []float64{0.1, 0.5, 1.0})
				So(m.customLabels["env"], ShouldEqual, "test")
			})

			Convey("And metric names should carry the prefix and const labels", func() {
				m.binCount.Set(7)
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				found := false
				for _, f := range families {
					if f.GetName() == "test_hist_pre_bins" {
						found = true
						So(f.GetMetric()[0].GetLabel()[0].GetName(), ShouldEqual, "env")
						So(f.GetMetric()[0].GetGauge().GetValue(), ShouldEqual, 7)
					}
				}
				So(found, ShouldBeTrue)
			})
		})

		Convey("When empty values are passed", func() {
			m := NewManager(
				WithNamespace(""),
				WithSubsystem(""),
				WithHistogramBuckets(nil),
				WithPrometheusRegistry(prometheus.NewRegistry()),
			)

			Convey("Then defaults should be kept", func() {
				So(m.namespace, ShouldEqual, "medalhist")
				So(m.subsystem, ShouldEqual, "histogram")
				So(m.histogramBuckets, ShouldResemble, prometheus.DefBuckets)
			})
		})
	})
}

func TestManagerGatherer(t *testing.T) {
	Convey("Given an enabled manager on a custom registry", t, func() {
		registry := prometheus.NewRegistry()
		m := NewManager(WithPrometheusRegistry(registry))

		g, err := m.Gatherer()
		So(err, ShouldBeNil)
		So(g, ShouldEqual, registry)
	})

	Convey("Given a disabled manager", t, func() {
		registry := prometheus.NewRegistry()
		m := NewManager(WithPrometheusRegistry(registry), WithMetricsEnabled(false))

		Convey("Then nothing should be registered on the configured registry", func() {
			families, err := registry.Gather()
			So(err, ShouldBeNil)
			So(families, ShouldBeEmpty)
		})

		Convey("And Gatherer should report it is disabled", func() {
			_, err := m.Gatherer()
			So(errors.Is(err, ErrDisabled), ShouldBeTrue)
		})

		Convey("And recording should still be safe", func() {
			So(func() { m.binCount.Set(1) }, ShouldNotPanic)
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When recording a dataset load", func() {
			before := testutil.ToFloat64(globalManager.datasetRowsRead)
			skippedBefore := testutil.ToFloat64(globalManager.datasetRowsSkipped)
			RecordDatasetLoad(100, 2, 12.5)

			Convey("Then rows and skips should be counted", func() {
				So(testutil.ToFloat64(globalManager.datasetRowsRead)-before, ShouldEqual, 100)
				So(testutil.ToFloat64(globalManager.datasetRowsSkipped)-skippedBefore, ShouldEqual, 2)
			})
		})

		Convey("When recording a snapshot", func() {
			at := time.Unix(1_700_000_000, 0)
			RecordSnapshot(SnapshotStats{
				FilteredRecords: 5637,
				DistinctYears:   28,
				Bins:            26,
				MaxBinRecords:   600,
				MeanPerYear:     201.3,
			}, 3.2, at)

			Convey("Then gauges should hold the snapshot values", func() {
				So(testutil.ToFloat64(globalManager.filteredRecords), ShouldEqual, 5637)
				So(testutil.ToFloat64(globalManager.distinctYears), ShouldEqual, 28)
				So(testutil.ToFloat64(globalManager.binCount), ShouldEqual, 26)
				So(testutil.ToFloat64(globalManager.meanPerYear), ShouldEqual, 201.3)
				So(testutil.ToFloat64(globalManager.snapshotLastUnix), ShouldEqual, 1_700_000_000)
			})
		})

		Convey("When recording reloads and errors", func() {
			So(func() {
				RecordReload("ok")
				RecordReload("error")
				RecordDatasetLoadError()
				RecordErrorByComponent("repository", "malformed_row")
				RecordErrorByType("client_error", "medium")
				RecordErrorByEndpoint("histogram", "GET", "not_found")
				RecordErrorLatency("http", "not_found", 1.5)
			}, ShouldNotPanic)
			So(testutil.ToFloat64(globalManager.reloads.WithLabelValues("ok")), ShouldBeGreaterThanOrEqualTo, 1)
		})

		Convey("When recording HTTP and system metrics", func() {
			So(func() {
				RecordHTTPRequest("summary", "GET", "200")
				RecordHTTPRequestDuration("summary", "GET", "200", 4)
				UpdateSystemMemoryUsage(1 << 20)
				UpdateSystemGoroutineCount(12)
				RecordSystemGCPauseTime(0.4)
			}, ShouldNotPanic)
		})

		Convey("Then the exported registry should expose them", func() {
			families, err := GetRegistry().Gather()
			So(err, ShouldBeNil)
			names := make([]string, 0, len(families))
			for _, f := range families {
				names = append(names, f.GetName())
			}
			So(strings.Join(names, ","), ShouldContainSubstring, "medalhist_histogram_bins")
		})
	})
}
