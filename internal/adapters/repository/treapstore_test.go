package repository_test

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"testing"

	repository "github.com/okian/ascent/internal/adapters/repository"
	. "github.com/smartystreets/goconvey/convey"
)

func TestTreapStoreUpdateBest(t *testing.T) {
	Convey("Given an empty store", t, func() {
		store := repository.NewTreapStore()
		ctx := context.Background()

		Convey("When recording a first score", func() {
			updated, err := store.UpdateBest(ctx, "easy", "ada", 60.0)

			Convey("Then the score is stored", func() {
				So(err, ShouldBeNil)
				So(updated, ShouldBeTrue)
				So(store.Count(ctx), ShouldEqual, 1)
			})
		})

		Convey("When a lower score arrives for the same player", func() {
			_, err := store.UpdateBest(ctx, "easy", "ada", 60.0)
			So(err, ShouldBeNil)

			updated, err := store.UpdateBest(ctx, "easy", "ada", 55.0)

			Convey("Then the best is kept", func() {
				So(err, ShouldBeNil)
				So(updated, ShouldBeFalse)
				entry, err := store.Rank(ctx, "easy", "ada")
				So(err, ShouldBeNil)
				So(entry.Score, ShouldEqual, 60.0)
			})
		})

		Convey("When a higher score arrives for the same player", func() {
			_, err := store.UpdateBest(ctx, "easy", "ada", 60.0)
			So(err, ShouldBeNil)

			updated, err := store.UpdateBest(ctx, "easy", "ada", 61.0)

			Convey("Then the best is replaced", func() {
				So(err, ShouldBeNil)
				So(updated, ShouldBeTrue)
				entry, err := store.Rank(ctx, "easy", "ada")
				So(err, ShouldBeNil)
				So(entry.Score, ShouldEqual, 61.0)
				So(store.Count(ctx), ShouldEqual, 1)
			})
		})

		Convey("When the same player scores in two modes", func() {
			_, err := store.UpdateBest(ctx, "easy", "ada", 60.0)
			So(err, ShouldBeNil)
			_, err = store.UpdateBest(ctx, "complex", "ada", 110.0)
			So(err, ShouldBeNil)

			Convey("Then modes rank independently and the player counts once", func() {
				So(store.Count(ctx), ShouldEqual, 1)
				easy, err := store.Rank(ctx, "easy", "ada")
				So(err, ShouldBeNil)
				So(easy.Score, ShouldEqual, 60.0)
				complexEntry, err := store.Rank(ctx, "complex", "ada")
				So(err, ShouldBeNil)
				So(complexEntry.Score, ShouldEqual, 110.0)
			})
		})
	})
}

func TestTreapStoreRankAndTopN(t *testing.T) {
	Convey("Given a store with several players", t, func() {
		store := repository.NewTreapStore()
		ctx := context.Background()

		scores := map[string]float64{
			"ada":   85.0,
			"brian": 60.0,
			"carol": 110.0,
			"dave":  60.0,
		}
		for id, score := range scores {
			_, err := store.UpdateBest(ctx, "easy", id, score)
			So(err, ShouldBeNil)
		}

		Convey("When asking for the top entries", func() {
			top, err := store.TopN(ctx, "easy", 3)

			Convey("Then they come back score DESC, ties by player ID ASC", func() {
				So(err, ShouldBeNil)
				So(len(top), ShouldEqual, 3)
				So(top[0].PlayerID, ShouldEqual, "carol")
				So(top[1].PlayerID, ShouldEqual, "ada")
				So(top[2].PlayerID, ShouldEqual, "brian") // beats dave on ID
				So(top[0].Rank, ShouldEqual, 1)
				So(top[2].Rank, ShouldEqual, 3)
			})
		})

		Convey("When asking for more entries than exist", func() {
			top, err := store.TopN(ctx, "easy", 50)

			Convey("Then all entries are returned", func() {
				So(err, ShouldBeNil)
				So(len(top), ShouldEqual, 4)
			})
		})

		Convey("When asking with an invalid limit", func() {
			_, err := store.TopN(ctx, "easy", 0)

			Convey("Then the call is rejected", func() {
				So(err, ShouldWrap, repository.ErrInvalidLimit)
			})
		})

		Convey("When asking for an unknown mode", func() {
			top, err := store.TopN(ctx, "impossible", 5)

			Convey("Then the board is empty, not an error", func() {
				So(err, ShouldBeNil)
				So(len(top), ShouldEqual, 0)
			})
		})

		Convey("When ranking a specific player", func() {
			entry, err := store.Rank(ctx, "easy", "dave")

			Convey("Then the in-order position is reported", func() {
				So(err, ShouldBeNil)
				So(entry.Rank, ShouldEqual, 4)
				So(entry.Score, ShouldEqual, 60.0)
			})
		})

		Convey("When ranking an unknown player", func() {
			_, err := store.Rank(ctx, "easy", "eve")

			Convey("Then not-found is returned", func() {
				So(err, ShouldWrap, repository.ErrNotFound)
			})
		})
	})
}

func TestTreapStoreOrderingProperty(t *testing.T) {
	Convey("Given many random updates", t, func() {
		store := repository.NewTreapStore()
		ctx := context.Background()
		rng := rand.New(rand.NewSource(99)) //nolint:gosec // test data

		for i := 0; i < 500; i++ {
			id := fmt.Sprintf("player-%03d", rng.Intn(100))
			_, err := store.UpdateBest(ctx, "moderate", id, rng.Float64()*200)
			So(err, ShouldBeNil)
		}

		Convey("When reading the full board", func() {
			top, err := store.TopN(ctx, "moderate", 100)

			Convey("Then scores are sorted descending", func() {
				So(err, ShouldBeNil)
				So(sort.SliceIsSorted(top, func(i, j int) bool {
					return top[i].Score > top[j].Score
				}), ShouldBeTrue)
			})

			Convey("And every player's rank matches its position", func() {
				So(err, ShouldBeNil)
				for i, e := range top {
					entry, err := store.Rank(ctx, "moderate", e.PlayerID)
					So(err, ShouldBeNil)
					So(entry.Rank, ShouldEqual, i+1)
				}
			})
		})
	})
}
