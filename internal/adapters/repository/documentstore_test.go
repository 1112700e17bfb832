package repository_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/coachlens/internal/adapters/repository"
	"github.com/okian/coachlens/internal/domain/model"
	"github.com/okian/coachlens/internal/domain/types"
	"github.com/okian/coachlens/pkg/logger"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

const doc = `{
  "overall_behavioral_effects": {
    "empathy": {
      "taxonomy": {"title": "Empathy"},
      "effect_analysis_metrics": {"effect_size": 0.2, "confidence_level": "High"}
    }
  },
  "individual_consultant_performance": {
    "c1": {"name": "Ada", "overall_metrics": {"success_rate": 61.5}}
  },
  "example_quotes": {"empathy": ["I hear you."]}
}`

var fixedNow = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func newStore() *repository.DocumentStore {
	return repository.NewDocumentStore(repository.WithClock(func() time.Time { return fixedNow }))
}

func TestDocumentStoreLoadFS(t *testing.T) {
	ctx := context.Background()

	Convey("Given a directory of analysis documents", t, func() {
		fsys := fstest.MapFS{
			"retention__coaching.json":  {Data: []byte(doc)},
			"enrollment__coaching.json": {Data: []byte(doc)},
			"notes.txt":                 {Data: []byte("ignored")},
			"badname.json":              {Data: []byte(doc)},
			"nested/x__y.json":          {Data: []byte(doc)},
		}
		s := newStore()

		Convey("When loading", func() {
			n, err := s.LoadFS(ctx, fsys)

			Convey("Then only well-named root files are loaded", func() {
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 2)
				So(s.Count(ctx), ShouldEqual, 2)
				So(s.Keys(ctx), ShouldResemble, []model.Key{
					{Dataset: "enrollment", View: "coaching"},
					{Dataset: "retention", View: "coaching"},
				})
			})

			Convey("And entries carry the decoded document", func() {
				e, err := s.Get(ctx, model.Key{Dataset: "retention", View: "coaching"})
				So(err, ShouldBeNil)
				So(e.Source, ShouldEqual, "retention__coaching.json")
				So(e.LoadedAt, ShouldEqual, fixedNow)
				So(e.Document.Effects.Keys(), ShouldResemble, []string{"empathy"})
				So(e.Document.Consultants.Len(), ShouldEqual, 1)
				So(string(e.Document.Quotes["empathy"]), ShouldEqual, `["I hear you."]`)
			})
		})
	})

	Convey("Given a directory with a broken document", t, func() {
		fsys := fstest.MapFS{
			"good__view.json":   {Data: []byte(doc)},
			"broken__view.json": {Data: []byte(`{"overall_behavioral_effects": [}`)},
		}
		s := newStore()

		Convey("When loading", func() {
			n, err := s.LoadFS(ctx, fsys)

			Convey("Then the good document is still loaded and the error is reported", func() {
				So(n, ShouldEqual, 1)
				So(errors.Is(err, repository.ErrDecode), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "broken__view.json")
				So(s.Count(ctx), ShouldEqual, 1)
			})
		})
	})
}

func TestDocumentStoreGet(t *testing.T) {
	ctx := context.Background()

	Convey("Given an empty store", t, func() {
		s := newStore()

		Convey("When getting an unknown key", func() {
			_, err := s.Get(ctx, model.Key{Dataset: "a", View: "b"})

			Convey("Then it should fail with a not found error", func() {
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
				So(errors.Is(err, types.ErrNotFound), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "a__b")
			})
		})

		Convey("When putting a document twice", func() {
			key := model.Key{Dataset: "a", View: "b"}
			first, _ := model.Decode([]byte(doc))
			second, _ := model.Decode([]byte(`{}`))
			s.Put(ctx, key, first, "one")
			s.Put(ctx, key, second, "two")

			Convey("Then the later document replaces the earlier one", func() {
				e, err := s.Get(ctx, key)
				So(err, ShouldBeNil)
				So(e.Source, ShouldEqual, "two")
				So(s.Count(ctx), ShouldEqual, 1)
			})
		})
	})
}

func TestDocumentStoreLoadDir(t *testing.T) {
	ctx := context.Background()

	Convey("Given a temp directory", t, func() {
		dir := t.TempDir()
		So(os.WriteFile(filepath.Join(dir, "retention__weekly.json"), []byte(doc), 0o600), ShouldBeNil)
		s := newStore()

		Convey("When loading it", func() {
			n, err := s.LoadDir(ctx, dir)

			Convey("Then the document is available", func() {
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 1)
			})
		})

		Convey("When the directory does not exist", func() {
			_, err := s.LoadDir(ctx, filepath.Join(dir, "missing"))

			Convey("Then a read error is returned", func() {
				So(errors.Is(err, repository.ErrRead), ShouldBeTrue)
			})
		})
	})
}
