package consultants

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/okian/coachlens/internal/domain/model"
)

// Potential source field names, in resolution order.
const (
	SourceImprovementEnrollment = "potential_improvement.potential_enrollment_increase_percentage"
	SourceImprovementRetention  = "potential_improvement.potential_retention_increase_percentage"
	SourceOptimalRetention      = "optimal_conditions.potential_retention_increase_percentage"
	SourceOptimalEnrollment     = "optimal_conditions.potential_enrollment_increase_percentage"
)

type potentialSource struct {
	name  string
	field func(m model.BehaviorMetrics) *model.Percent
}

// potentialSources is the only place the fallback order lives.
var potentialSources = []potentialSource{
	{SourceImprovementEnrollment, func(m model.BehaviorMetrics) *model.Percent {
		if m.PotentialImprovement == nil {
			return nil
		}
		return m.PotentialImprovement.EnrollmentIncrease
	}},
	{SourceImprovementRetention, func(m model.BehaviorMetrics) *model.Percent {
		if m.PotentialImprovement == nil {
			return nil
		}
		return m.PotentialImprovement.RetentionIncrease
	}},
	{SourceOptimalRetention, func(m model.BehaviorMetrics) *model.Percent {
		if m.OptimalConditions == nil {
			return nil
		}
		return m.OptimalConditions.RetentionIncrease
	}},
	{SourceOptimalEnrollment, func(m model.BehaviorMetrics) *model.Percent {
		if m.OptimalConditions == nil {
			return nil
		}
		return m.OptimalConditions.EnrollmentIncrease
	}},
}

// ResolvePotential picks the first present potential field and parses it.
// A present but malformed value yields NaN with ok set; no field at all
// yields ok false.
func ResolvePotential(m model.BehaviorMetrics) (value float64, source string, ok bool) {
	for _, s := range potentialSources {
		if p := s.field(m); p != nil && !p.IsZero() {
			return p.Value(), s.name, true
		}
	}
	return math.NaN(), "", false
}

// Contribution is the value a behavior adds to the total: the resolved
// potential, or 0 when unresolved or not a number.
func Contribution(m model.BehaviorMetrics) float64 {
	v, _, ok := ResolvePotential(m)
	if !ok || math.IsNaN(v) {
		return 0
	}
	return v
}

// TotalPotential sums the contributions of every behavior attached to the
// consultant, in percentage points.
func TotalPotential(p model.ConsultantPerformance) float64 {
	if p.BehavioralFeatures.Len() == 0 {
		return 0
	}
	parts := make([]float64, 0, p.BehavioralFeatures.Len())
	for _, kv := range p.BehavioralFeatures {
		parts = append(parts, Contribution(kv.Value))
	}
	return floats.Sum(parts)
}

// FormatPotential renders a total with an explicit sign and two decimals,
// e.g. "+12.50". Negative zero renders as "+0.00".
func FormatPotential(v float64) string {
	if v == 0 || math.IsNaN(v) {
		v = 0
	}
	return fmt.Sprintf("%+.2f", v)
}
