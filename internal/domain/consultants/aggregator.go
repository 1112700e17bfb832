// Package consultants ranks consultant performance and aggregates each
// consultant's potential improvement.
package consultants

import (
	"cmp"
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"

	"github.com/okian/coachlens/internal/domain/model"
	"github.com/okian/coachlens/internal/domain/types"
)

const percentScale = 100

// Aggregate ranks consultants by success rate, highest first, and computes
// the team average. Ties keep document order. Rank is the 1-based position.
func Aggregate(perfs model.Ordered[model.ConsultantPerformance]) types.ConsultantSummary {
	ranked := make([]types.Consultant, 0, perfs.Len())
	rates := make([]float64, 0, perfs.Len())
	for _, kv := range perfs {
		c := row(kv.Key, kv.Value)
		ranked = append(ranked, c)
		rates = append(rates, c.RateValue)
	}

	slices.SortStableFunc(ranked, func(a, b types.Consultant) int {
		return cmp.Compare(b.RateValue, a.RateValue)
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
		ranked[i].Tier = TierFor(i, len(ranked))
	}

	return types.ConsultantSummary{
		Ranked:      ranked,
		TeamAverage: TeamAverage(rates),
	}
}

func row(id string, p model.ConsultantPerformance) types.Consultant {
	total := TotalPotential(p)
	c := types.Consultant{
		ID:                id,
		Name:              p.Name,
		SourceRank:        p.Rank,
		RateValue:         p.OverallMetrics.SuccessRate * percentScale,
		TotalCalls:        p.OverallMetrics.TotalCalls,
		Enrolled:          p.OverallMetrics.Enrolled,
		Retained:          p.OverallMetrics.Retained,
		PotentialIncrease: types.NotAvailable,
		TotalPotential:    total,
		TotalPotentialStr: FormatPotential(total),
	}
	if c.Name == "" {
		c.Name = id
	}
	if pi := p.OverallMetrics.PotentialIncreasePercentage; pi != nil && !pi.IsZero() {
		c.PotentialIncrease = pi.Display()
	}
	return c
}

// TeamAverage is the mean rate rounded to one decimal, 0 for no consultants.
func TeamAverage(rates []float64) float64 {
	if len(rates) == 0 {
		return 0
	}
	return math.Round(stat.Mean(rates, nil)*10) / 10
}

// TierFor buckets a ranked position into thirds: indexes below ceil(n/3) are
// high, below ceil(2n/3) medium, the rest low. The bucket is positional, so
// equal rates may fall into different tiers.
func TierFor(index, n int) types.Tier {
	switch {
	case index < (n+2)/3:
		return types.TierHigh
	case index < (2*n+2)/3:
		return types.TierMedium
	default:
		return types.TierLow
	}
}

// Find returns the ranked row for a consultant id.
func Find(summary types.ConsultantSummary, id string) (types.Consultant, bool) {
	for _, c := range summary.Ranked {
		if c.ID == id {
			return c, true
		}
	}
	return types.Consultant{}, false
}

// Detail builds the per-consultant view: the ranked row plus one comparison
// per behavior, in document order. titles maps behavior keys to display
// titles and may be nil.
func Detail(c types.Consultant, p model.ConsultantPerformance, teamAverage float64, titles map[string]string) types.ConsultantDetail {
	d := types.ConsultantDetail{
		Consultant:  c,
		TeamAverage: teamAverage,
		Behaviors:   make([]types.BehaviorComparison, 0, p.BehavioralFeatures.Len()),
	}
	for _, kv := range p.BehavioralFeatures {
		m := kv.Value
		b := types.BehaviorComparison{
			Key:                    kv.Key,
			Title:                  titles[kv.Key],
			ConsultantUsage:        usage(m.ConsultantUsagePercentage),
			ConsultantAverageCount: m.ConsultantAverageCount,
			TeamUsage:              usage(m.TeamUsagePercentage),
			TopQuartileUsage:       usage(m.TopQuartileUsagePercentage),
			PotentialLabel:         types.NotAvailable,
		}
		if v, src, ok := ResolvePotential(m); ok {
			b.PotentialSource = src
			if !math.IsNaN(v) {
				b.Potential = v
				b.PotentialLabel = FormatPotential(v)
			}
		}
		d.Behaviors = append(d.Behaviors, b)
	}
	return d
}

func usage(p model.Percent) string {
	if p.IsZero() {
		return types.NotAvailable
	}
	return p.Display()
}
