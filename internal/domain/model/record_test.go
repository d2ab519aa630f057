package model_test

import (
	"testing"

	model "github.com/okian/medalhist/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestRecordSummary(t *testing.T) {
	convey.Convey("Given a Record", t, func() {
		convey.Convey("When name and event are present", func() {
			r := model.Record{Name: "Michael Phelps", Event: "Swimming Men's 200 metres Butterfly", Sport: "Swimming", Year: 2008}

			convey.Convey("Then the summary should mention both", func() {
				convey.So(r.Summary(), convey.ShouldEqual, "Michael Phelps (Swimming Men's 200 metres Butterfly, 2008)")
			})
		})

		convey.Convey("When only the name is present", func() {
			r := model.Record{Name: "Jesse Owens", Sport: "Athletics", Year: 1936}

			convey.Convey("Then the sport should stand in for the event", func() {
				convey.So(r.Summary(), convey.ShouldEqual, "Jesse Owens (Athletics, 1936)")
			})
		})

		convey.Convey("When the name is missing", func() {
			r := model.Record{Sport: "Rowing", Year: 1900}

			convey.Convey("Then the summary should fall back to sport and year", func() {
				convey.So(r.Summary(), convey.ShouldEqual, "Rowing (1900)")
			})
		})
	})
}

func TestBinContains(t *testing.T) {
	convey.Convey("Given a half-open bin", t, func() {
		b := model.Bin{X0: 1900, X1: 1905}

		convey.So(b.Contains(1899), convey.ShouldBeFalse)
		convey.So(b.Contains(1900), convey.ShouldBeTrue)
		convey.So(b.Contains(1904.9), convey.ShouldBeTrue)
		convey.So(b.Contains(1905), convey.ShouldBeFalse)

		convey.Convey("When the bin is the last one", func() {
			b.Last = true

			convey.Convey("Then the upper edge should be included", func() {
				convey.So(b.Contains(1905), convey.ShouldBeTrue)
				convey.So(b.Contains(1905.1), convey.ShouldBeFalse)
			})
		})
	})

	convey.Convey("Given a bin with records", t, func() {
		b := model.Bin{Records: []model.Record{{Year: 1900}, {Year: 1901}}}
		convey.So(b.Len(), convey.ShouldEqual, 2)
	})
}

func TestDomainWidth(t *testing.T) {
	convey.Convey("Given a domain", t, func() {
		d := model.Domain{Lo: 1890, Hi: 2020}
		convey.So(d.Width(), convey.ShouldEqual, 130)
	})
}
