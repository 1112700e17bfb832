package dedupe_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	dedupe "github.com/okian/coachlens/internal/domain/dedupe"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemoryDeduper(t *testing.T) {
	ctx := context.Background()

	Convey("Given a new InMemoryDeduper", t, func() {
		Convey("When creating a deduper with default options", func() {
			d := dedupe.NewInMemoryDeduper()

			Convey("Then it should start empty", func() {
				So(d, ShouldNotBeNil)
				So(d.Size(), ShouldEqual, 0)
			})
		})

		Convey("When recording keys", func() {
			d := dedupe.NewInMemoryDeduper()

			Convey("And the key is new", func() {
				seen := d.SeenAndRecord(ctx, "retention__coaching/missing_rates/empathy")

				Convey("Then it should return false and record the key", func() {
					So(seen, ShouldBeFalse)
					So(d.Size(), ShouldEqual, 1)
				})
			})

			Convey("And the key was already seen", func() {
				d.SeenAndRecord(ctx, "k")
				seen := d.SeenAndRecord(ctx, "k")

				Convey("Then it should return true", func() {
					So(seen, ShouldBeTrue)
					So(d.Size(), ShouldEqual, 1)
				})
			})
		})

		Convey("When forgetting keys", func() {
			d := dedupe.NewInMemoryDeduper()
			d.SeenAndRecord(ctx, "k")
			d.Forget(ctx, "k")
			d.Forget(ctx, "never-recorded")

			Convey("Then the key is new again", func() {
				So(d.Size(), ShouldEqual, 0)
				So(d.SeenAndRecord(ctx, "k"), ShouldBeFalse)
			})
		})
	})
}

func TestDedupeEviction(t *testing.T) {
	ctx := context.Background()

	Convey("Given a deduper bounded to three keys", t, func() {
		d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(3))
		for _, k := range []string{"a", "b", "c"} {
			d.SeenAndRecord(ctx, k)
		}

		Convey("When a fourth key arrives", func() {
			d.SeenAndRecord(ctx, "d")

			Convey("Then the oldest key is evicted", func() {
				So(d.Size(), ShouldEqual, 3)
				So(d.SeenAndRecord(ctx, "b"), ShouldBeTrue)
				So(d.SeenAndRecord(ctx, "c"), ShouldBeTrue)
				So(d.SeenAndRecord(ctx, "d"), ShouldBeTrue)
				So(d.SeenAndRecord(ctx, "a"), ShouldBeFalse)
			})
		})

		Convey("When the oldest key is forgotten and recorded again", func() {
			d.Forget(ctx, "a")
			d.SeenAndRecord(ctx, "a")
			d.SeenAndRecord(ctx, "e")

			Convey("Then the re-recorded key counts as newest", func() {
				So(d.Size(), ShouldEqual, 3)
				So(d.SeenAndRecord(ctx, "a"), ShouldBeTrue)
				So(d.SeenAndRecord(ctx, "e"), ShouldBeTrue)
				So(d.SeenAndRecord(ctx, "c"), ShouldBeTrue)
			})
		})

		Convey("When many keys pass through", func() {
			for i := 0; i < 1000; i++ {
				d.SeenAndRecord(ctx, fmt.Sprintf("key-%d", i))
			}

			Convey("Then only the newest remain", func() {
				So(d.Size(), ShouldEqual, 3)
				So(d.SeenAndRecord(ctx, "key-999"), ShouldBeTrue)
				So(d.SeenAndRecord(ctx, "key-996"), ShouldBeFalse)
			})
		})
	})

	Convey("Given an unbounded deduper", t, func() {
		d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(0))
		for i := 0; i < 10000; i++ {
			d.SeenAndRecord(ctx, fmt.Sprintf("key-%d", i))
		}

		Convey("Then nothing is evicted", func() {
			So(d.Size(), ShouldEqual, 10000)
			So(d.SeenAndRecord(ctx, "key-0"), ShouldBeTrue)
		})
	})
}

func TestDedupeConcurrency(t *testing.T) {
	ctx := context.Background()

	Convey("Given concurrent callers recording the same keys", t, func() {
		d := dedupe.NewInMemoryDeduper()
		var (
			wg    sync.WaitGroup
			mu    sync.Mutex
			fresh int
		)
		for g := 0; g < 8; g++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < 100; i++ {
					if !d.SeenAndRecord(ctx, fmt.Sprintf("key-%d", i)) {
						mu.Lock()
						fresh++
						mu.Unlock()
					}
				}
			}()
		}
		wg.Wait()

		Convey("Then each key is new exactly once", func() {
			So(fresh, ShouldEqual, 100)
			So(d.Size(), ShouldEqual, 100)
		})
	})
}
