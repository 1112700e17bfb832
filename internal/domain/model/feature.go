package model

import (
	"encoding/json"
)

// VariantKind tags which metrics schema a feature was produced with.
type VariantKind int

// Metrics variants.
const (
	VariantNone VariantKind = iota
	VariantMetaAnalysis
	VariantEffectAnalysis
)

// String returns the JSON-facing name of the variant.
func (k VariantKind) String() string {
	switch k {
	case VariantMetaAnalysis:
		return "meta_analysis"
	case VariantEffectAnalysis:
		return "effect_analysis"
	default:
		return "none"
	}
}

// Source field names of the two variants.
const (
	metaAnalysisField   = "meta_analysis_metrics"
	effectAnalysisField = "effect_analysis_metrics"
)

// Taxonomy is the descriptive text of a behavior. The engine passes it through.
type Taxonomy struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Guidance    string `json:"guidance,omitempty"`
	Example     string `json:"example,omitempty"`
}

// SampleSizes counts calls with and without the behavior.
type SampleSizes struct {
	WithBehavior    int `json:"with_behavior"`
	WithoutBehavior int `json:"without_behavior"`
	Total           int `json:"total"`
}

// EvidenceStrength summarizes a meta-analysis across datasets.
type EvidenceStrength struct {
	SignificantFindings int     `json:"significant_findings"`
	TotalDatasets       int     `json:"total_datasets"`
	CombinedPValue      float64 `json:"combined_p_value"`
}

// RateBlock is a retention_rates or enrollment_rates object. Producers label
// the pair with the outcome basis or with the generic rate_ prefix.
type RateBlock struct {
	RetentionWith     *Percent `json:"retention_with_behavior_percentage,omitempty"`
	RetentionWithout  *Percent `json:"retention_without_behavior_percentage,omitempty"`
	EnrollmentWith    *Percent `json:"enrollment_with_behavior_percentage,omitempty"`
	EnrollmentWithout *Percent `json:"enrollment_without_behavior_percentage,omitempty"`
	RateWith          *Percent `json:"rate_with_behavior_percentage,omitempty"`
	RateWithout       *Percent `json:"rate_without_behavior_percentage,omitempty"`
}

// RateFields holds every place a rate pair may appear inside a metrics object.
type RateFields struct {
	RetentionRates            *RateBlock `json:"retention_rates,omitempty"`
	EnrollmentRates           *RateBlock `json:"enrollment_rates,omitempty"`
	EnrollmentWithBehavior    *Percent   `json:"enrollment_with_behavior_percentage,omitempty"`
	EnrollmentWithoutBehavior *Percent   `json:"enrollment_without_behavior_percentage,omitempty"`
	RetentionWithBehavior     *Percent   `json:"retention_with_behavior_percentage,omitempty"`
	RetentionWithoutBehavior  *Percent   `json:"retention_without_behavior_percentage,omitempty"`
}

// Metrics is the tagged metrics variant of a feature. It is either
// *MetaAnalysis or *EffectAnalysis.
type Metrics interface {
	Kind() VariantKind
	RateSources() RateFields
}

// MetaAnalysis is the schema emitted by the cross-dataset pipeline.
type MetaAnalysis struct {
	OverallConfidence    string           `json:"overall_confidence"`
	WeightedEffectSize   float64          `json:"weighted_effect_size"`
	EffectSizePercentage Percent          `json:"effect_size_percentage"`
	SampleSizes          SampleSizes      `json:"sample_sizes"`
	EvidenceStrength     EvidenceStrength `json:"evidence_strength"`
	RateFields
}

// Kind implements Metrics.
func (*MetaAnalysis) Kind() VariantKind { return VariantMetaAnalysis }

// RateSources implements Metrics.
func (m *MetaAnalysis) RateSources() RateFields { return m.RateFields }

// EffectAnalysis is the schema emitted by the single-dataset pipeline.
type EffectAnalysis struct {
	EffectSize           float64     `json:"effect_size"`
	EffectSizePercentage Percent     `json:"effect_size_percentage"`
	PValue               float64     `json:"p_value"`
	SampleSizes          SampleSizes `json:"sample_sizes"`
	ConfidenceLevel      string      `json:"confidence_level"`
	Significance         string      `json:"significance,omitempty"`
	Variant              string      `json:"variant,omitempty"`
	RateFields
}

// Kind implements Metrics.
func (*EffectAnalysis) Kind() VariantKind { return VariantEffectAnalysis }

// RateSources implements Metrics.
func (m *EffectAnalysis) RateSources() RateFields { return m.RateFields }

// BehavioralFeature is one tracked sales behavior.
//
// Metrics is nil when the source carried neither variant. When both were
// present the meta-analysis wins and Conflicting is set.
type BehavioralFeature struct {
	Taxonomy    Taxonomy
	Metrics     Metrics
	Conflicting bool
}

// Kind returns the variant tag, VariantNone when Metrics is nil.
func (f BehavioralFeature) Kind() VariantKind {
	if f.Metrics == nil {
		return VariantNone
	}
	return f.Metrics.Kind()
}

type featureJSON struct {
	Taxonomy Taxonomy        `json:"taxonomy"`
	Meta     *MetaAnalysis   `json:"meta_analysis_metrics,omitempty"`
	Effect   *EffectAnalysis `json:"effect_analysis_metrics,omitempty"`
}

// UnmarshalJSON resolves the two optional variant objects into Metrics once.
func (f *BehavioralFeature) UnmarshalJSON(data []byte) error {
	var raw featureJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*f = BehavioralFeature{Taxonomy: raw.Taxonomy}
	switch {
	case raw.Meta != nil:
		f.Metrics = raw.Meta
		f.Conflicting = raw.Effect != nil
	case raw.Effect != nil:
		f.Metrics = raw.Effect
	}
	return nil
}

// MarshalJSON writes the variant back under its source field name.
func (f BehavioralFeature) MarshalJSON() ([]byte, error) {
	raw := featureJSON{Taxonomy: f.Taxonomy}
	switch m := f.Metrics.(type) {
	case *MetaAnalysis:
		raw.Meta = m
	case *EffectAnalysis:
		raw.Effect = m
	}
	return json.Marshal(raw)
}
