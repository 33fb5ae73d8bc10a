package logger_test

import (
	"context"
	"testing"

	"github.com/okian/ascent/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLogger(t *testing.T) {
	Convey("Given an initialized global logger", t, func() {
		So(logger.Init(), ShouldBeNil)

		Convey("When fetching the global instance", func() {
			l := logger.Get()

			Convey("Then it accepts all levels without panicking", func() {
				ctx := context.Background()
				So(func() {
					l.Debug(ctx, "debug", logger.String("k", "v"))
					l.Info(ctx, "info", logger.Int("n", 1))
					l.Warn(ctx, "warn", logger.Float64("f", 1.5))
					l.Error(ctx, "error", logger.Bool("b", true))
				}, ShouldNotPanic)
			})
		})

		Convey("When deriving a named logger", func() {
			named := logger.Named("game")

			Convey("Then it is usable", func() {
				So(named, ShouldNotBeNil)
				So(func() { named.Info(context.Background(), "hello") }, ShouldNotPanic)
			})
		})

		Convey("When setting levels by string", func() {
			Convey("Then known levels are accepted", func() {
				for _, lvl := range []string{"debug", "info", "warn", "warning", "error", ""} {
					So(logger.SetLevelString(lvl), ShouldBeNil)
				}
			})

			Convey("Then unknown levels are rejected", func() {
				So(logger.SetLevelString("verbose"), ShouldNotBeNil)
			})
		})
	})
}
