package aggregate_test

import (
	"errors"
	"testing"

	"github.com/okian/medalhist/internal/domain/aggregate"
	"github.com/okian/medalhist/internal/domain/grouping"
	"github.com/okian/medalhist/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func sports(names ...string) []model.Record {
	out := make([]model.Record, len(names))
	for i, n := range names {
		out[i] = model.Record{Sport: n, Year: 1900 + i}
	}
	return out
}

func TestMeanRecordsPerActiveYear(t *testing.T) {
	Convey("Given 3 records in 1900 and 5 in 1904", t, func() {
		var records []model.Record
		for i := 0; i < 3; i++ {
			records = append(records, model.Record{Year: 1900})
		}
		for i := 0; i < 5; i++ {
			records = append(records, model.Record{Year: 1904})
		}

		Convey("Then the mean per active year should be 4", func() {
			mean, err := aggregate.MeanRecordsPerActiveYear(grouping.ByYear(records))
			So(err, ShouldBeNil)
			So(mean, ShouldEqual, 4.0)
		})
	})

	Convey("Given an empty year group", t, func() {
		mean, err := aggregate.MeanRecordsPerActiveYear(grouping.ByYear(nil))

		Convey("Then it should fail explicitly", func() {
			So(errors.Is(err, aggregate.ErrNoYears), ShouldBeTrue)
			So(mean, ShouldEqual, 0)
		})
	})
}

func TestModeSport(t *testing.T) {
	Convey("Given swimming twice and athletics once", t, func() {
		mode, ok := aggregate.ModeSport(sports("Swimming", "Athletics", "Swimming"))

		Convey("Then swimming should win with 2", func() {
			So(ok, ShouldBeTrue)
			So(mode, ShouldResemble, model.SportCount{Sport: "Swimming", Count: 2})
		})
	})

	Convey("Given no records", t, func() {
		_, ok := aggregate.ModeSport(nil)
		So(ok, ShouldBeFalse)
	})

	Convey("Given a tie", t, func() {
		Convey("When the first sport reaches the count first", func() {
			mode, _ := aggregate.ModeSport(sports("Rowing", "Boxing", "Rowing", "Boxing"))
			So(mode, ShouldResemble, model.SportCount{Sport: "Rowing", Count: 2})
		})

		Convey("When a later sport reaches the count first", func() {
			mode, _ := aggregate.ModeSport(sports("Rowing", "Boxing", "Boxing", "Rowing"))
			So(mode, ShouldResemble, model.SportCount{Sport: "Boxing", Count: 2})
		})

		Convey("When all sports are distinct", func() {
			mode, _ := aggregate.ModeSport(sports("Golf", "Tennis", "Polo"))
			So(mode, ShouldResemble, model.SportCount{Sport: "Golf", Count: 1})
		})
	})
}

func TestExamples(t *testing.T) {
	Convey("Given five records", t, func() {
		records := sports("a", "b", "c", "d", "e")

		Convey("Then the default should take the first three", func() {
			ex := aggregate.Examples(records, 0)
			So(len(ex), ShouldEqual, 3)
			So(ex[2].Sport, ShouldEqual, "c")
		})

		Convey("And a larger n should be capped", func() {
			So(len(aggregate.Examples(records, 10)), ShouldEqual, 5)
		})
	})

	Convey("Given no records", t, func() {
		So(aggregate.Examples(nil, 3), ShouldBeEmpty)
	})
}

func TestMaxBinCount(t *testing.T) {
	Convey("Given bins of different sizes", t, func() {
		bins := []model.Bin{
			{Records: sports("a")},
			{Records: sports("a", "b", "c")},
			{},
		}
		So(aggregate.MaxBinCount(bins), ShouldEqual, 3)
		So(aggregate.MaxBinCount(nil), ShouldEqual, 0)
	})
}
