package model

// OverallMetrics are a consultant's headline figures. SuccessRate is a unit
// fraction in [0, 1].
type OverallMetrics struct {
	SuccessRate                 float64  `json:"success_rate"`
	TotalCalls                  *int     `json:"total_calls,omitempty"`
	Enrolled                    *int     `json:"enrolled,omitempty"`
	Retained                    *int     `json:"retained,omitempty"`
	PotentialIncreasePercentage *Percent `json:"potential_increase_percentage,omitempty"`
}

// PotentialBlock carries the projected gain of matching a benchmark usage level.
type PotentialBlock struct {
	EnrollmentIncrease *Percent `json:"potential_enrollment_increase_percentage,omitempty"`
	RetentionIncrease  *Percent `json:"potential_retention_increase_percentage,omitempty"`
}

// BehaviorMetrics are one consultant's figures for one behavior.
type BehaviorMetrics struct {
	ConsultantUsagePercentage  Percent         `json:"consultant_usage_percentage"`
	ConsultantAverageCount     float64         `json:"consultant_average_count"`
	TeamUsagePercentage        Percent         `json:"team_usage_percentage"`
	TopQuartileUsagePercentage Percent         `json:"top_quartile_usage_percentage"`
	PotentialImprovement       *PotentialBlock `json:"potential_improvement,omitempty"`
	OptimalConditions          *PotentialBlock `json:"optimal_conditions,omitempty"`
}

// ConsultantPerformance is one consultant's record.
type ConsultantPerformance struct {
	Name               string                   `json:"name"`
	Rank               *int                     `json:"rank,omitempty"`
	OverallMetrics     OverallMetrics           `json:"overall_metrics"`
	BehavioralFeatures Ordered[BehaviorMetrics] `json:"behavioral_features"`
}
