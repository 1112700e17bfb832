// Package types contains the normalized view shapes shared by the domain,
// the service and the presentation adapters.
package types

import "time"

// NotAvailable is rendered wherever a value could not be resolved. It is
// distinct from a measured zero.
const NotAvailable = "N/A"

// RatePair is the outcome rate with and without a behavior, as display
// strings. Basis is "retention" or "enrollment".
type RatePair struct {
	WithBehavior    string `json:"with_behavior"`
	WithoutBehavior string `json:"without_behavior"`
	Basis           string `json:"basis"`
}

// Evidence summarizes how many datasets back a meta-analysis finding.
type Evidence struct {
	SignificantFindings int     `json:"significant_findings"`
	TotalDatasets       int     `json:"total_datasets"`
	CombinedPValue      float64 `json:"combined_p_value"`
}

// SampleSizes counts calls with and without the behavior.
type SampleSizes struct {
	WithBehavior    int `json:"with_behavior"`
	WithoutBehavior int `json:"without_behavior"`
	Total           int `json:"total"`
}

// Effect is one behavioral feature normalized across both metric variants.
//
// EffectSizePct is the effect size on the percentage scale and is the sort
// key. Measured is false when the source carried no metrics variant; the
// effect size is then 0.
type Effect struct {
	Key             string      `json:"key"`
	Title           string      `json:"title,omitempty"`
	Description     string      `json:"description,omitempty"`
	Guidance        string      `json:"guidance,omitempty"`
	Example         string      `json:"example,omitempty"`
	Variant         string      `json:"variant"`
	Measured        bool        `json:"measured"`
	EffectSize      float64     `json:"effect_size"`
	EffectSizePct   float64     `json:"effect_size_pct"`
	EffectSizeLabel string      `json:"effect_size_label"`
	ConfidenceLabel string      `json:"confidence"`
	Significance    string      `json:"significance,omitempty"`
	VariantTag      string      `json:"variant_tag,omitempty"`
	PValue          *float64    `json:"p_value,omitempty"`
	SampleSizes     SampleSizes `json:"sample_sizes"`
	Evidence        *Evidence   `json:"evidence,omitempty"`
	Rates           *RatePair   `json:"rates"`
	WithBehavior    string      `json:"with_behavior"`
	WithoutBehavior string      `json:"without_behavior"`
}

// EffectSummary holds the headline statistics over a feature collection.
type EffectSummary struct {
	Highest    *Effect `json:"highest,omitempty"`
	Lowest     *Effect `json:"lowest,omitempty"`
	Total      int     `json:"total"`
	Measured   int     `json:"measured"`
	WithRates  int     `json:"with_rates"`
	Unmeasured int     `json:"unmeasured"`
}

// Tier is the positional colour bucket of a ranked consultant.
type Tier string

// Consultant tiers, top third first.
const (
	TierHigh   Tier = "high"
	TierMedium Tier = "medium"
	TierLow    Tier = "low"
)

// Consultant is one ranked row of the performance table.
type Consultant struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Rank              int     `json:"rank"`
	SourceRank        *int    `json:"source_rank,omitempty"`
	RateValue         float64 `json:"rate_value"`
	Tier              Tier    `json:"tier"`
	TotalCalls        *int    `json:"total_calls,omitempty"`
	Enrolled          *int    `json:"enrolled,omitempty"`
	Retained          *int    `json:"retained,omitempty"`
	PotentialIncrease string  `json:"potential_increase"`
	TotalPotential    float64 `json:"total_potential"`
	TotalPotentialStr string  `json:"total_potential_label"`
}

// ConsultantSummary is the ranked table plus the team average rate.
type ConsultantSummary struct {
	Ranked      []Consultant `json:"ranked"`
	TeamAverage float64      `json:"team_average"`
}

// BehaviorComparison compares one consultant's use of a behavior with the
// team and the top quartile.
type BehaviorComparison struct {
	Key                    string  `json:"key"`
	Title                  string  `json:"title,omitempty"`
	ConsultantUsage        string  `json:"consultant_usage"`
	ConsultantAverageCount float64 `json:"consultant_average_count"`
	TeamUsage              string  `json:"team_usage"`
	TopQuartileUsage       string  `json:"top_quartile_usage"`
	Potential              float64 `json:"potential"`
	PotentialLabel         string  `json:"potential_label"`
	PotentialSource        string  `json:"potential_source,omitempty"`
}

// ConsultantDetail backs the per-consultant modal.
type ConsultantDetail struct {
	Consultant
	TeamAverage float64              `json:"team_average"`
	Behaviors   []BehaviorComparison `json:"behaviors"`
}

// PageInfo describes one page of a paginated list.
type PageInfo struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// EffectsPage is one page of ranked effects.
type EffectsPage struct {
	PageInfo
	Order string   `json:"order"`
	Items []Effect `json:"items"`
}

// ConsultantsPage is one page of ranked consultants.
type ConsultantsPage struct {
	PageInfo
	TeamAverage float64      `json:"team_average"`
	Items       []Consultant `json:"items"`
}

// DatasetInfo describes one loaded document.
type DatasetInfo struct {
	Dataset     string    `json:"dataset"`
	View        string    `json:"view"`
	Features    int       `json:"features"`
	Consultants int       `json:"consultants"`
	LoadedAt    time.Time `json:"loaded_at"`
}

// GaugeFrame is one radial progress frame for a gauge renderer.
type GaugeFrame struct {
	DisplayedValue float64 `json:"displayed_value"`
	ArcFraction    float64 `json:"arc_fraction"`
	SweepNegative  bool    `json:"sweep_negative"`
	Progress       float64 `json:"progress"`
	Done           bool    `json:"done"`
	Path           string  `json:"path"`
}
