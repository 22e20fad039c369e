package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	service "github.com/okian/tixroi/internal/app"
	"github.com/okian/tixroi/internal/domain/catalog"
	"github.com/okian/tixroi/internal/domain/model"
	"github.com/okian/tixroi/internal/domain/scoring"
	"github.com/okian/tixroi/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it should start on an empty cohort-strategy catalog", func() {
			So(svc.Strategy(), ShouldEqual, scoring.CohortStrategyName)
			So(svc.Len(), ShouldEqual, 0)
			So(svc.Version(), ShouldEqual, uint64(0))
		})

		Convey("Then every id is unknown", func() {
			for _, id := range []int{0, 1, 999} {
				_, err := svc.Recommend(context.Background(), id)
				So(errors.Is(err, service.ErrNotFound), ShouldBeTrue)
			}
		})
	})
}

func TestService_Recommend(t *testing.T) {
	Convey("Given a service loaded with the sample catalog", t, func() {
		ctx := context.Background()
		svc := service.New()
		So(svc.Reload(ctx, catalog.Sample()), ShouldBeNil)

		Convey("When asking for event 1", func() {
			rec, err := svc.Recommend(ctx, 1)

			Convey("Then it should be a strong buy from its own cohort", func() {
				So(err, ShouldBeNil)
				So(rec.EventID, ShouldEqual, 1)
				So(rec.EventName, ShouldEqual, "Rock Concert A")
				So(rec.ExpectedROI, ShouldEqual, 100.0)
				So(rec.RiskLevel, ShouldEqual, model.RiskLow)
				So(rec.Recommendation, ShouldEqual, model.StrongBuy)
				So(rec.SuggestedHoldingPeriod, ShouldEqual, "14 days before event")
				So(rec.ConfidenceScore, ShouldEqual, 55.0)
				So(rec.Strategy, ShouldEqual, "cohort")
			})
		})

		Convey("When asking for event 7", func() {
			rec, err := svc.Recommend(ctx, 7)

			Convey("Then the ROI is rounded to two decimals", func() {
				So(err, ShouldBeNil)
				So(rec.ExpectedROI, ShouldEqual, 86.67)
				So(rec.Recommendation, ShouldEqual, model.StrongBuy)
				So(rec.SuggestedHoldingPeriod, ShouldEqual, "15 days before event")
			})
		})

		Convey("When asking for an unknown id", func() {
			_, err := svc.Recommend(ctx, 999)

			Convey("Then the error names the id", func() {
				So(errors.Is(err, service.ErrNotFound), ShouldBeTrue)
				So(err.Error(), ShouldEqual, "event with ID 999 not found")
			})
		})

		Convey("When asking twice", func() {
			a, errA := svc.Recommend(ctx, 3)
			b, errB := svc.Recommend(ctx, 3)

			Convey("Then the answers are identical", func() {
				So(errA, ShouldBeNil)
				So(errB, ShouldBeNil)
				So(a, ShouldResemble, b)
			})
		})
	})

	Convey("Given a catalog with a degenerate event", t, func() {
		ctx := context.Background()
		events := append(catalog.Sample(), model.Event{
			ID: 9, Name: "Empty", Category: "Concert", Venue: "Stadium X", OriginalPrice: 10,
		})
		svc := service.New()
		So(svc.Reload(ctx, events), ShouldBeNil)

		Convey("Then the degenerate event is rejected", func() {
			_, err := svc.Recommend(ctx, 9)
			So(errors.Is(err, model.ErrDegenerateEvent), ShouldBeTrue)
		})

		Convey("Then its cohort neighbour is unaffected", func() {
			rec, err := svc.Recommend(ctx, 1)
			So(err, ShouldBeNil)
			So(rec.ExpectedROI, ShouldEqual, 100.0)
			// the degenerate member still counts towards the cohort size
			So(rec.ConfidenceScore, ShouldEqual, 60.0)
		})
	})
}

func TestService_Reload(t *testing.T) {
	Convey("Given a loaded service", t, func() {
		ctx := context.Background()
		svc := service.New()
		So(svc.Reload(ctx, catalog.Sample()), ShouldBeNil)
		before, err := svc.Recommend(ctx, 1)
		So(err, ShouldBeNil)

		Convey("When reloading the same catalog", func() {
			So(svc.Reload(ctx, catalog.Sample()), ShouldBeNil)
			after, err := svc.Recommend(ctx, 1)

			Convey("Then outputs are unchanged and the version moves", func() {
				So(err, ShouldBeNil)
				So(after, ShouldResemble, before)
				So(svc.Version(), ShouldEqual, uint64(2))
			})
		})

		Convey("When reloading a catalog with duplicate ids", func() {
			dup := append(catalog.Sample(), model.Event{ID: 1, Name: "Copy"})
			err := svc.Reload(ctx, dup)

			Convey("Then the reload fails and the old catalog stays active", func() {
				So(errors.Is(err, catalog.ErrDuplicateID), ShouldBeTrue)
				So(svc.Version(), ShouldEqual, uint64(1))
				So(svc.Len(), ShouldEqual, 8)
				rec, err := svc.Recommend(ctx, 1)
				So(err, ShouldBeNil)
				So(rec, ShouldResemble, before)
			})
		})

		Convey("When reloading an empty catalog", func() {
			So(svc.Reload(ctx, nil), ShouldBeNil)

			Convey("Then every id is unknown", func() {
				_, err := svc.Recommend(ctx, 1)
				So(errors.Is(err, service.ErrNotFound), ShouldBeTrue)
			})
		})
	})
}

func TestService_Regression(t *testing.T) {
	Convey("Given a regression service", t, func() {
		ctx := context.Background()
		svc := service.New(service.WithStrategy(scoring.NewRegressionStrategy()))
		So(svc.Strategy(), ShouldEqual, scoring.RegressionStrategyName)

		Convey("When the catalog holds a single event", func() {
			So(svc.Reload(ctx, catalog.Sample()[:1]), ShouldBeNil)

			Convey("Then the untrained model is reported", func() {
				_, err := svc.Recommend(ctx, 1)
				So(errors.Is(err, scoring.ErrUntrainedModel), ShouldBeTrue)
			})

			Convey("And a larger reload replaces the model", func() {
				So(svc.Reload(ctx, catalog.Sample()), ShouldBeNil)
				rec, err := svc.Recommend(ctx, 1)
				So(err, ShouldBeNil)
				So(rec.Strategy, ShouldEqual, "regression")
				So(rec.SuggestedHoldingPeriod, ShouldBeEmpty)
				So(rec.ConfidenceScore, ShouldBeBetweenOrEqual, 30.0, 100.0)
			})
		})

		Convey("When the peak is exactly twice the original price", func() {
			day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
			events := []model.Event{
				{ID: 1, Name: "A", Category: "Concert", Venue: "X", OriginalPrice: 100,
					ResalePrices: []float64{150, 200}, Dates: []time.Time{day(1), day(5)}},
				{ID: 2, Name: "B", Category: "Concert", Venue: "Y", OriginalPrice: 50,
					ResalePrices: []float64{100}, Dates: []time.Time{day(2)}},
				{ID: 3, Name: "C", Category: "Sports", Venue: "X", OriginalPrice: 80,
					ResalePrices: []float64{120, 160}, Dates: []time.Time{day(3), day(9)}},
				{ID: 4, Name: "D", Category: "Sports", Venue: "Z", OriginalPrice: 60,
					ResalePrices: []float64{60, 120}, Dates: []time.Time{day(1), day(2)}},
			}
			So(svc.Reload(ctx, events), ShouldBeNil)

			Convey("Then every event predicts a doubling", func() {
				for _, e := range events {
					rec, err := svc.Recommend(ctx, e.ID)
					So(err, ShouldBeNil)
					So(rec.ExpectedROI, ShouldEqual, 100.0)
					So(rec.RiskLevel, ShouldEqual, model.RiskLow)
					So(rec.Recommendation, ShouldEqual, model.StrongBuy)
					So(rec.ConfidenceScore, ShouldEqual, 100.0)
				}
			})
		})
	})
}
