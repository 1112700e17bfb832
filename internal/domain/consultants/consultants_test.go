package consultants_test

import (
	"math"
	"testing"

	"github.com/okian/coachlens/internal/domain/consultants"
	"github.com/okian/coachlens/internal/domain/model"
	"github.com/okian/coachlens/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func decode(t *testing.T, raw string) *model.Document {
	t.Helper()
	doc, err := model.Decode([]byte(raw))
	if err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	return doc
}

func ids(list []types.Consultant) []string {
	out := make([]string, len(list))
	for i, c := range list {
		out[i] = c.ID
	}
	return out
}

func TestAggregate(t *testing.T) {
	Convey("Given three consultants at 80, 60 and 40 percent", t, func() {
		doc := decode(t, `{"individual_consultant_performance": {
			"c-low":  {"name": "Lee",   "overall_metrics": {"success_rate": 0.4}},
			"c-high": {"name": "Ana",   "overall_metrics": {"success_rate": 0.8, "total_calls": 40}},
			"c-mid":  {"name": "Sam",   "overall_metrics": {"success_rate": 0.6}}
		}}`)
		summary := consultants.Aggregate(doc.Consultants)

		Convey("Then the team average is 60.0", func() {
			So(summary.TeamAverage, ShouldEqual, 60.0)
		})

		Convey("And consultants are ranked by rate, highest first", func() {
			So(ids(summary.Ranked), ShouldResemble, []string{"c-high", "c-mid", "c-low"})
			So(summary.Ranked[0].Rank, ShouldEqual, 1)
			So(summary.Ranked[2].Rank, ShouldEqual, 3)
			So(summary.Ranked[0].RateValue, ShouldAlmostEqual, 80.0)
			So(*summary.Ranked[0].TotalCalls, ShouldEqual, 40)
		})

		Convey("And each third gets its own tier", func() {
			So(summary.Ranked[0].Tier, ShouldEqual, types.TierHigh)
			So(summary.Ranked[1].Tier, ShouldEqual, types.TierMedium)
			So(summary.Ranked[2].Tier, ShouldEqual, types.TierLow)
		})
	})

	Convey("Given consultants with tied rates", t, func() {
		doc := decode(t, `{"individual_consultant_performance": {
			"z": {"overall_metrics": {"success_rate": 0.5}},
			"a": {"overall_metrics": {"success_rate": 0.5}},
			"m": {"overall_metrics": {"success_rate": 0.7}},
			"b": {"overall_metrics": {"success_rate": 0.5}}
		}}`)
		summary := consultants.Aggregate(doc.Consultants)

		Convey("Then ties keep document order", func() {
			So(ids(summary.Ranked), ShouldResemble, []string{"m", "z", "a", "b"})
		})

		Convey("And tiers are positional, so equal rates can differ", func() {
			tiers := []types.Tier{}
			for _, c := range summary.Ranked {
				tiers = append(tiers, c.Tier)
			}
			So(tiers, ShouldResemble, []types.Tier{types.TierHigh, types.TierHigh, types.TierMedium, types.TierLow})
		})

		Convey("And a missing name falls back to the id", func() {
			So(summary.Ranked[0].Name, ShouldEqual, "m")
		})
	})

	Convey("Given no consultants", t, func() {
		summary := consultants.Aggregate(nil)

		Convey("Then the ranking is empty and the average is zero", func() {
			So(summary.Ranked, ShouldBeEmpty)
			So(summary.TeamAverage, ShouldEqual, 0.0)
		})
	})
}

func TestTierFor(t *testing.T) {
	Convey("Given ranked lists of several sizes", t, func() {
		tiersOf := func(n int) []types.Tier {
			out := make([]types.Tier, n)
			for i := range out {
				out[i] = consultants.TierFor(i, n)
			}
			return out
		}
		h, m, l := types.TierHigh, types.TierMedium, types.TierLow

		Convey("Then the thirds use ceil(n/3) and ceil(2n/3)", func() {
			So(tiersOf(1), ShouldResemble, []types.Tier{h})
			So(tiersOf(2), ShouldResemble, []types.Tier{h, m})
			So(tiersOf(5), ShouldResemble, []types.Tier{h, h, m, m, l})
			So(tiersOf(6), ShouldResemble, []types.Tier{h, h, m, m, l, l})
			So(tiersOf(7), ShouldResemble, []types.Tier{h, h, h, m, m, l, l})
		})
	})
}

func TestResolvePotential(t *testing.T) {
	Convey("Given the same potential in three encodings", t, func() {
		doc := decode(t, `{"individual_consultant_performance": {"c1": {
			"overall_metrics": {"success_rate": 0.5},
			"behavioral_features": {
				"signed":   {"potential_improvement": {"potential_enrollment_increase_percentage": "+12.5%"}},
				"unsigned": {"potential_improvement": {"potential_enrollment_increase_percentage": "12.5%"}},
				"numeric":  {"potential_improvement": {"potential_enrollment_increase_percentage": 12.5}}
			}
		}}}`)
		perf, _ := doc.Consultants.Get("c1")

		Convey("Then all resolve to 12.5", func() {
			for _, kv := range perf.BehavioralFeatures {
				v, _, ok := consultants.ResolvePotential(kv.Value)
				So(ok, ShouldBeTrue)
				So(v, ShouldEqual, 12.5)
			}
		})

		Convey("And the total sums them", func() {
			So(consultants.TotalPotential(perf), ShouldEqual, 37.5)
			So(consultants.FormatPotential(consultants.TotalPotential(perf)), ShouldEqual, "+37.50")
		})
	})

	Convey("Given potentials under different source fields", t, func() {
		doc := decode(t, `{"individual_consultant_performance": {"c1": {
			"overall_metrics": {"success_rate": 0.5},
			"behavioral_features": {
				"all":       {"potential_improvement": {"potential_enrollment_increase_percentage": "1%", "potential_retention_increase_percentage": "2%"},
				              "optimal_conditions": {"potential_retention_increase_percentage": "3%", "potential_enrollment_increase_percentage": "4%"}},
				"retention": {"potential_improvement": {"potential_retention_increase_percentage": "2%"},
				              "optimal_conditions": {"potential_retention_increase_percentage": "3%"}},
				"optimal":   {"optimal_conditions": {"potential_retention_increase_percentage": "3%", "potential_enrollment_increase_percentage": "4%"}},
				"last":      {"optimal_conditions": {"potential_enrollment_increase_percentage": "4%"}},
				"none":      {"consultant_usage_percentage": "10%"},
				"broken":    {"potential_improvement": {"potential_enrollment_increase_percentage": "lots"}}
			}
		}}}`)
		perf, _ := doc.Consultants.Get("c1")
		get := func(key string) model.BehaviorMetrics {
			m, _ := perf.BehavioralFeatures.Get(key)
			return m
		}

		Convey("Then the fallback order is enrollment, retention, optimal retention, optimal enrollment", func() {
			_, src, _ := consultants.ResolvePotential(get("all"))
			So(src, ShouldEqual, consultants.SourceImprovementEnrollment)
			_, src, _ = consultants.ResolvePotential(get("retention"))
			So(src, ShouldEqual, consultants.SourceImprovementRetention)
			_, src, _ = consultants.ResolvePotential(get("optimal"))
			So(src, ShouldEqual, consultants.SourceOptimalRetention)
			_, src, _ = consultants.ResolvePotential(get("last"))
			So(src, ShouldEqual, consultants.SourceOptimalEnrollment)
		})

		Convey("And unresolved or malformed values contribute zero", func() {
			_, _, ok := consultants.ResolvePotential(get("none"))
			So(ok, ShouldBeFalse)
			v, _, ok := consultants.ResolvePotential(get("broken"))
			So(ok, ShouldBeTrue)
			So(math.IsNaN(v), ShouldBeTrue)
			So(consultants.Contribution(get("broken")), ShouldEqual, 0.0)
			So(consultants.Contribution(get("none")), ShouldEqual, 0.0)
		})

		Convey("And the total is still defined", func() {
			So(consultants.TotalPotential(perf), ShouldAlmostEqual, 1+2+3+4)
		})
	})

	Convey("Given a consultant without behaviors", t, func() {
		Convey("Then the total is +0.00", func() {
			total := consultants.TotalPotential(model.ConsultantPerformance{})
			So(total, ShouldEqual, 0.0)
			So(consultants.FormatPotential(total), ShouldEqual, "+0.00")
			So(consultants.FormatPotential(math.Copysign(0, -1)), ShouldEqual, "+0.00")
			So(consultants.FormatPotential(-1.234), ShouldEqual, "-1.23")
		})
	})
}

func TestDetail(t *testing.T) {
	Convey("Given a consultant with behavior metrics", t, func() {
		doc := decode(t, `{"individual_consultant_performance": {"c1": {
			"name": "Ana",
			"overall_metrics": {"success_rate": 0.72, "potential_increase_percentage": "+3.1%"},
			"behavioral_features": {
				"empathy": {"consultant_usage_percentage": "40%", "consultant_average_count": 1.5, "team_usage_percentage": "55%",
				            "top_quartile_usage_percentage": "80%", "potential_improvement": {"potential_enrollment_increase_percentage": "+2.25%"}},
				"recap":   {"consultant_usage_percentage": 12}
			}
		}}}`)
		summary := consultants.Aggregate(doc.Consultants)
		row, ok := consultants.Find(summary, "c1")
		So(ok, ShouldBeTrue)
		perf, _ := doc.Consultants.Get("c1")
		d := consultants.Detail(row, perf, summary.TeamAverage, map[string]string{"empathy": "Empathy statements"})

		Convey("Then the ranked row is carried over", func() {
			So(d.Name, ShouldEqual, "Ana")
			So(d.Rank, ShouldEqual, 1)
			So(d.PotentialIncrease, ShouldEqual, "+3.1%")
			So(d.TotalPotentialStr, ShouldEqual, "+2.25")
			So(d.TeamAverage, ShouldEqual, 72.0)
		})

		Convey("And each behavior is compared in document order", func() {
			So(len(d.Behaviors), ShouldEqual, 2)
			So(d.Behaviors[0].Title, ShouldEqual, "Empathy statements")
			So(d.Behaviors[0].TeamUsage, ShouldEqual, "55%")
			So(d.Behaviors[0].PotentialLabel, ShouldEqual, "+2.25")
			So(d.Behaviors[1].ConsultantUsage, ShouldEqual, "12%")
			So(d.Behaviors[1].TeamUsage, ShouldEqual, types.NotAvailable)
			So(d.Behaviors[1].PotentialLabel, ShouldEqual, types.NotAvailable)
		})
	})

	Convey("Given an unknown id", t, func() {
		_, ok := consultants.Find(types.ConsultantSummary{}, "ghost")

		Convey("Then it is not found", func() {
			So(ok, ShouldBeFalse)
		})
	})
}
