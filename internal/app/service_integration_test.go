package service_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/okian/medalhist/internal/adapters/repository"
	service "github.com/okian/medalhist/internal/app"
	"github.com/okian/medalhist/internal/sampledata"
	"github.com/okian/medalhist/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func writeDataset(t *testing.T, opts ...sampledata.Option) (string, sampledata.Stats) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "athlete_events.csv")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	stats, err := sampledata.New(opts...).Write(context.Background(), f)
	if err != nil {
		t.Fatal(err)
	}
	return path, stats
}

func TestServiceIntegration(t *testing.T) {
	Convey("Given a service over a generated CSV file", t, func() {
		path, gen := writeDataset(t, sampledata.WithRows(3000), sampledata.WithSeed(7), sampledata.WithMalformedEvery(100))
		src := repository.NewCSVFile(path, repository.WithLogger(logger.Get()))
		svc := service.New(service.WithSource(src))
		defer svc.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		Convey("When starting the service", func() {
			err := svc.Start(ctx)

			Convey("Then it should start successfully", func() {
				So(err, ShouldBeNil)
				So(svc.GetStats()["rowsRead"], ShouldEqual, gen.Rows)
				So(svc.GetStats()["rowsSkipped"], ShouldEqual, gen.Malformed)
			})

			Convey("And the summary should match the generated US medals", func() {
				sum, err := svc.Summary(ctx)
				So(err, ShouldBeNil)
				So(sum.TotalRecords, ShouldEqual, gen.USMedals)
				So(sum.DistinctYears, ShouldEqual, len(gen.PerYear))
				So(*sum.MeanPerYear, ShouldAlmostEqual, float64(gen.USMedals)/float64(len(gen.PerYear)))
			})

			Convey("And the histogram should conserve every record", func() {
				hist, err := svc.Histogram(ctx)
				So(err, ShouldBeNil)
				bins := hist.Bins
				total := 0
				for i, b := range bins {
					total += b.Count
					if i > 0 {
						So(b.X0, ShouldEqual, bins[i-1].X1)
					}
				}
				So(total, ShouldEqual, gen.USMedals)
			})

			Convey("And per-year counts should match", func() {
				years, err := svc.Years(ctx)
				So(err, ShouldBeNil)
				for _, y := range years {
					So(y.Count, ShouldEqual, gen.PerYear[y.Year])
				}
			})
		})
	})

	Convey("Given a strict row policy over a file with malformed rows", t, func() {
		path, _ := writeDataset(t, sampledata.WithRows(200), sampledata.WithMalformedEvery(20))
		src := repository.NewCSVFile(path, repository.WithRowPolicy(repository.RowPolicyFail))
		svc := service.New(service.WithSource(src))

		Convey("Then Start should fail", func() {
			err := svc.Start(context.Background())
			So(errors.Is(err, repository.ErrMalformedRow), ShouldBeTrue)
		})
	})

	Convey("Given a file that disappears before a reload", t, func() {
		path, _ := writeDataset(t, sampledata.WithRows(300))
		svc := service.New(service.WithSource(repository.NewCSVFile(path)))
		So(svc.Start(context.Background()), ShouldBeNil)
		defer svc.Stop()
		before, _ := svc.Summary(context.Background())

		So(os.Remove(path), ShouldBeNil)
		_, err := svc.Reload(context.Background())

		Convey("Then the reload should fail and the old snapshot stay", func() {
			So(errors.Is(err, repository.ErrLoad), ShouldBeTrue)
			after, err := svc.Summary(context.Background())
			So(err, ShouldBeNil)
			So(after.SnapshotID, ShouldEqual, before.SnapshotID)
		})
	})
}
