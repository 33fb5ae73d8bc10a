package advice_test

import (
	"context"
	"testing"

	advice "github.com/okian/ascent/internal/ai/advice"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNoopService(t *testing.T) {
	Convey("Given the noop advice service", t, func() {
		var svc advice.Service = advice.NoopService{}

		Convey("When asking for advice", func() {
			out, err := svc.TeamFitAdvice(context.Background(), "resume", []string{"Team 1: Good fit."})

			Convey("Then it returns empty advice without error", func() {
				So(err, ShouldBeNil)
				So(out, ShouldBeEmpty)
			})
		})
	})
}

func TestOpenAIServiceConstruction(t *testing.T) {
	Convey("Given an API key", t, func() {
		Convey("When constructing with a custom model", func() {
			svc := advice.NewOpenAIService("test-key", advice.WithModel("gpt-4o"))

			Convey("Then the service is usable as the interface", func() {
				var _ advice.Service = svc
				So(svc, ShouldNotBeNil)
			})
		})
	})
}
