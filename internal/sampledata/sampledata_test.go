package sampledata_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/coachlens/internal/adapters/repository"
	"github.com/okian/coachlens/internal/domain/consultants"
	"github.com/okian/coachlens/internal/domain/effects"
	"github.com/okian/coachlens/internal/domain/model"
	"github.com/okian/coachlens/internal/sampledata"
	"github.com/okian/coachlens/pkg/logger"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func encode(t *testing.T, docs map[model.Key]*model.Document) map[string]string {
	t.Helper()
	out := map[string]string{}
	for k, d := range docs {
		b, err := json.Marshal(d)
		if err != nil {
			t.Fatalf("marshal %s: %v", k, err)
		}
		out[k.String()] = string(b)
	}
	return out
}

func TestGenerate(t *testing.T) {
	Convey("Given the default configuration", t, func() {
		cfg := sampledata.DefaultConfig()

		Convey("When generating twice with the same seed", func() {
			a, errA := sampledata.Generate(cfg)
			b, errB := sampledata.Generate(cfg)

			Convey("Then the output is identical", func() {
				So(errA, ShouldBeNil)
				So(errB, ShouldBeNil)
				So(cmp.Diff(encode(t, a), encode(t, b)), ShouldBeEmpty)
			})
		})

		Convey("When generating with another seed", func() {
			a, _ := sampledata.Generate(cfg)
			cfg.Seed = 2
			b, _ := sampledata.Generate(cfg)

			Convey("Then the output differs", func() {
				So(cmp.Diff(encode(t, a), encode(t, b)), ShouldNotBeEmpty)
			})
		})

		Convey("When re-decoding a generated document", func() {
			docs, err := sampledata.Generate(cfg)
			So(err, ShouldBeNil)
			raw, err := json.Marshal(docs[cfg.Keys[0]])
			So(err, ShouldBeNil)
			doc, err := model.Decode(raw)
			So(err, ShouldBeNil)

			Convey("Then every variant shape is present", func() {
				kinds := map[model.VariantKind]int{}
				for _, kv := range doc.Effects {
					kinds[kv.Value.Kind()]++
				}
				So(kinds[model.VariantMetaAnalysis], ShouldBeGreaterThan, 0)
				So(kinds[model.VariantEffectAnalysis], ShouldBeGreaterThan, 0)
				So(kinds[model.VariantNone], ShouldBeGreaterThan, 0)
				So(doc.Effects.Len(), ShouldEqual, cfg.Features)
				So(doc.Consultants.Len(), ShouldEqual, cfg.Consultants)
			})

			Convey("And the rate resolver finds pairs for some features but not all", func() {
				withRates := 0
				for _, e := range effects.Normalize(doc.Effects) {
					if e.Rates != nil {
						withRates++
					}
				}
				So(withRates, ShouldBeGreaterThan, 0)
				So(withRates, ShouldBeLessThan, doc.Effects.Len())
			})

			Convey("And the consultants aggregate into a full ranking", func() {
				summary := consultants.Aggregate(doc.Consultants)
				So(summary.Ranked, ShouldHaveLength, cfg.Consultants)
				So(summary.TeamAverage, ShouldBeGreaterThan, 0)
			})
		})
	})

	Convey("Given an invalid configuration", t, func() {
		Convey("Then generation fails", func() {
			_, err := sampledata.Generate(sampledata.Config{})
			So(err, ShouldNotBeNil)
			_, err = sampledata.Generate(sampledata.Config{Keys: []model.Key{{Dataset: "a", View: "b"}}, Features: -1})
			So(err, ShouldNotBeNil)
		})
	})
}

func TestWrite(t *testing.T) {
	ctx := context.Background()

	Convey("Given generated documents written to a directory", t, func() {
		dir := t.TempDir()
		docs, err := sampledata.Generate(sampledata.DefaultConfig())
		So(err, ShouldBeNil)
		paths, err := sampledata.Write(ctx, dir, docs)
		So(err, ShouldBeNil)

		Convey("Then the files are named by key", func() {
			So(paths, ShouldHaveLength, 2)
			So(paths[0], ShouldEndWith, "enrollment__coaching.json")
			So(paths[1], ShouldEndWith, "retention__coaching.json")
		})

		Convey("And the document store can load them", func() {
			store := repository.NewDocumentStore()
			n, err := store.LoadDir(ctx, dir)
			So(err, ShouldBeNil)
			So(n, ShouldEqual, 2)
		})
	})
}
