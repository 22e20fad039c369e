package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	service "github.com/okian/tixroi/internal/app"
	"github.com/okian/tixroi/internal/adapters/repository"
	"github.com/okian/tixroi/internal/domain/catalog"
	"github.com/okian/tixroi/internal/domain/model"
	"github.com/okian/tixroi/internal/synthetic"
	. "github.com/smartystreets/goconvey/convey"
)

func entryIDs(entries []repository.Entry) []int {
	out := make([]int, len(entries))
	for i, e := range entries {
		out[i] = e.EventID
	}
	return out
}

func TestServiceIntegration_Rank(t *testing.T) {
	Convey("Given a service with the sample catalog and a small pool", t, func() {
		svc := service.New(
			service.WithWorkerCount(3),
			service.WithQueueSize(2),
		)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		So(svc.Reload(ctx, catalog.Sample()), ShouldBeNil)

		Convey("When ranking the top three", func() {
			ranking, err := svc.Rank(ctx, 3)

			Convey("Then the best expected returns lead", func() {
				So(err, ShouldBeNil)
				So(ranking.RunID, ShouldNotBeEmpty)
				So(ranking.Version, ShouldEqual, uint64(1))
				So(ranking.Scored, ShouldEqual, 8)
				So(ranking.Skipped, ShouldEqual, 0)
				So(entryIDs(ranking.Entries), ShouldResemble, []int{1, 7, 8})
				So(ranking.Entries[0].Rank, ShouldEqual, 1)
				So(ranking.Entries[0].ExpectedROI, ShouldEqual, 100.0)
			})
		})

		Convey("When ranking more than the catalog holds", func() {
			ranking, err := svc.Rank(ctx, 100)

			Convey("Then every event is listed in ROI order", func() {
				So(err, ShouldBeNil)
				So(entryIDs(ranking.Entries), ShouldResemble, []int{1, 7, 8, 3, 4, 5, 6, 2})
			})
		})

		Convey("When each run is compared with direct queries", func() {
			ranking, err := svc.Rank(ctx, 8)
			So(err, ShouldBeNil)

			Convey("Then the board holds the same recommendations", func() {
				for _, e := range ranking.Entries {
					rec, err := svc.Recommend(ctx, e.EventID)
					So(err, ShouldBeNil)
					So(e.Recommendation, ShouldResemble, rec)
				}
			})
		})

		Convey("When the limit is not positive", func() {
			_, err := svc.Rank(ctx, 0)

			Convey("Then the run is refused", func() {
				So(errors.Is(err, repository.ErrInvalidLimit), ShouldBeTrue)
			})
		})
	})

	Convey("Given a catalog with unscorable events", t, func() {
		ctx := context.Background()
		events := append(catalog.Sample(),
			model.Event{ID: 20, Name: "No series", Category: "Concert", Venue: "Hall", OriginalPrice: 10},
			model.Event{ID: 21, Name: "Free", Category: "Concert", Venue: "Hall",
				ResalePrices: []float64{5}, Dates: []time.Time{time.Now()}},
		)
		svc := service.New(service.WithWorkerCount(2))
		So(svc.Reload(ctx, events), ShouldBeNil)

		Convey("Then they are skipped without aborting the run", func() {
			ranking, err := svc.Rank(ctx, 20)
			So(err, ShouldBeNil)
			So(ranking.Scored, ShouldEqual, 8)
			So(ranking.Skipped, ShouldEqual, 2)
			So(ranking.Entries, ShouldHaveLength, 8)
		})
	})

	Convey("Given an empty service", t, func() {
		svc := service.New()

		Convey("Then ranking returns an empty board", func() {
			ranking, err := svc.Rank(context.Background(), 5)
			So(err, ShouldBeNil)
			So(ranking.Entries, ShouldBeEmpty)
			So(ranking.Scored, ShouldEqual, 0)
		})
	})

	Convey("Given a large synthetic catalog", t, func() {
		ctx := context.Background()
		svc := service.New(service.WithWorkerCount(8), service.WithQueueSize(16))
		So(svc.Reload(ctx, synthetic.New(synthetic.WithSeed(42)).Events(500)), ShouldBeNil)

		Convey("Then the board is sorted by ROI desc, id asc", func() {
			ranking, err := svc.Rank(ctx, 500)
			So(err, ShouldBeNil)
			So(ranking.Scored+ranking.Skipped, ShouldEqual, 500)
			for i := 1; i < len(ranking.Entries); i++ {
				prev, cur := ranking.Entries[i-1], ranking.Entries[i]
				ordered := prev.ExpectedROI > cur.ExpectedROI ||
					(prev.ExpectedROI == cur.ExpectedROI && prev.EventID < cur.EventID)
				So(ordered, ShouldBeTrue)
				So(cur.Rank, ShouldEqual, i+1)
			}
		})
	})

	Convey("Given a cancelled context", t, func() {
		svc := service.New(service.WithWorkerCount(1), service.WithQueueSize(1))
		So(svc.Reload(context.Background(), catalog.Sample()), ShouldBeNil)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		Convey("Then the run reports the cancellation", func() {
			_, err := svc.Rank(ctx, 3)
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})
	})
}
