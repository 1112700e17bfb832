// Package effects normalizes behavioral features across the two metric
// schema variants and ranks them by effect size.
package effects

import (
	"strings"

	"github.com/okian/coachlens/internal/domain/model"
	"github.com/okian/coachlens/internal/domain/types"
)

// percentScale converts a unit effect size to the percentage scale used for
// display and ordering.
const percentScale = 100

// metaConfidencePrefix is prepended to meta-analysis confidence labels.
const metaConfidencePrefix = "Meta "

// Rate bases.
const (
	BasisRetention  = "retention"
	BasisEnrollment = "enrollment"
)

// EffectSize returns the weighted effect size of a meta-analysis, the effect
// size of an effect analysis, or 0 when the feature has no metrics.
func EffectSize(f model.BehavioralFeature) float64 {
	switch m := f.Metrics.(type) {
	case *model.MetaAnalysis:
		return m.WeightedEffectSize
	case *model.EffectAnalysis:
		return m.EffectSize
	default:
		return 0
	}
}

// ConfidenceLabel returns the confidence label without the "Meta " prefix,
// or NotAvailable when the feature has no metrics.
func ConfidenceLabel(f model.BehavioralFeature) string {
	switch m := f.Metrics.(type) {
	case *model.MetaAnalysis:
		return strings.TrimPrefix(m.OverallConfidence, metaConfidencePrefix)
	case *model.EffectAnalysis:
		return m.ConfidenceLevel
	default:
		return types.NotAvailable
	}
}

// ResolveRates extracts the with/without rate pair. Sources are tried in
// order: retention_rates, enrollment_rates, bare enrollment fields, bare
// retention fields. Within a rates object the basis-labelled pair comes
// before the rate_ alias. A source matches only when both halves are present.
// ok is false when nothing matched; no zero rate is invented.
func ResolveRates(m model.Metrics) (pair types.RatePair, ok bool) {
	if m == nil {
		return types.RatePair{}, false
	}
	src := m.RateSources()

	if b := src.RetentionRates; b != nil {
		if pair, ok := pairOf(BasisRetention, b.RetentionWith, b.RetentionWithout); ok {
			return pair, true
		}
		if pair, ok := pairOf(BasisRetention, b.RateWith, b.RateWithout); ok {
			return pair, true
		}
	}
	if b := src.EnrollmentRates; b != nil {
		if pair, ok := pairOf(BasisEnrollment, b.EnrollmentWith, b.EnrollmentWithout); ok {
			return pair, true
		}
		if pair, ok := pairOf(BasisEnrollment, b.RateWith, b.RateWithout); ok {
			return pair, true
		}
	}
	if pair, ok := pairOf(BasisEnrollment, src.EnrollmentWithBehavior, src.EnrollmentWithoutBehavior); ok {
		return pair, true
	}
	return pairOf(BasisRetention, src.RetentionWithBehavior, src.RetentionWithoutBehavior)
}

func pairOf(basis string, with, without *model.Percent) (types.RatePair, bool) {
	if with == nil || without == nil || with.IsZero() || without.IsZero() {
		return types.RatePair{}, false
	}
	return types.RatePair{
		WithBehavior:    with.Display(),
		WithoutBehavior: without.Display(),
		Basis:           basis,
	}, true
}

// Resolve builds the normalized view of one feature.
func Resolve(key string, f model.BehavioralFeature) types.Effect {
	size := EffectSize(f)
	e := types.Effect{
		Key:             key,
		Title:           f.Taxonomy.Title,
		Description:     f.Taxonomy.Description,
		Guidance:        f.Taxonomy.Guidance,
		Example:         f.Taxonomy.Example,
		Variant:         f.Kind().String(),
		Measured:        f.Metrics != nil,
		EffectSize:      size,
		EffectSizePct:   size * percentScale,
		EffectSizeLabel: types.NotAvailable,
		ConfidenceLabel: ConfidenceLabel(f),
		WithBehavior:    types.NotAvailable,
		WithoutBehavior: types.NotAvailable,
	}

	switch m := f.Metrics.(type) {
	case *model.MetaAnalysis:
		e.EffectSizeLabel = labelOf(m.EffectSizePercentage)
		e.SampleSizes = types.SampleSizes(m.SampleSizes)
		p := m.EvidenceStrength.CombinedPValue
		e.PValue = &p
		e.Evidence = &types.Evidence{
			SignificantFindings: m.EvidenceStrength.SignificantFindings,
			TotalDatasets:       m.EvidenceStrength.TotalDatasets,
			CombinedPValue:      m.EvidenceStrength.CombinedPValue,
		}
	case *model.EffectAnalysis:
		e.EffectSizeLabel = labelOf(m.EffectSizePercentage)
		e.SampleSizes = types.SampleSizes(m.SampleSizes)
		p := m.PValue
		e.PValue = &p
		e.Significance = m.Significance
		e.VariantTag = m.Variant
	}

	if pair, ok := ResolveRates(f.Metrics); ok {
		e.Rates = &pair
		e.WithBehavior = pair.WithBehavior
		e.WithoutBehavior = pair.WithoutBehavior
	}
	return e
}

func labelOf(p model.Percent) string {
	if p.IsZero() {
		return types.NotAvailable
	}
	return p.Display()
}

// Normalize resolves every feature of a document in source order.
func Normalize(features model.Ordered[model.BehavioralFeature]) []types.Effect {
	out := make([]types.Effect, 0, features.Len())
	for _, kv := range features {
		out = append(out, Resolve(kv.Key, kv.Value))
	}
	return out
}
