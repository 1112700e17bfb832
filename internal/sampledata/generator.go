package sampledata

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand"

	"github.com/google/uuid"

	"github.com/okian/coachlens/internal/domain/model"
)

// Generate builds one document per configured key.
func Generate(cfg Config) (map[model.Key]*model.Document, error) {
	if len(cfg.Keys) == 0 {
		return nil, fmt.Errorf("sampledata: no keys configured")
	}
	if cfg.Features < 0 || cfg.Consultants < 0 {
		return nil, fmt.Errorf("sampledata: negative sizes")
	}
	n := cfg.Features
	if n > len(behaviors) {
		n = len(behaviors)
	}

	rng := rand.New(rand.NewSource(cfg.Seed)) //nolint:gosec // synthetic data
	out := make(map[model.Key]*model.Document, len(cfg.Keys))
	for _, key := range cfg.Keys {
		doc, err := generateDocument(rng, n, cfg.Consultants)
		if err != nil {
			return nil, fmt.Errorf("sampledata: %s: %w", key, err)
		}
		out[key] = doc
	}
	return out, nil
}

func generateDocument(rng *rand.Rand, features, people int) (*model.Document, error) {
	doc := &model.Document{Quotes: map[string]json.RawMessage{}}
	picked := behaviors[:features]

	for i, b := range picked {
		doc.Effects = append(doc.Effects, model.Keyed[model.BehavioralFeature]{
			Key:   b.key,
			Value: generateFeature(rng, i, b),
		})
		q, err := quotesFor(rng, b)
		if err != nil {
			return nil, err
		}
		doc.Quotes[b.key] = q
	}

	for i := 0; i < people; i++ {
		id, err := uuid.NewRandomFromReader(rng)
		if err != nil {
			return nil, err
		}
		doc.Consultants = append(doc.Consultants, model.Keyed[model.ConsultantPerformance]{
			Key:   id.String(),
			Value: generateConsultant(rng, i, picked),
		})
	}
	return doc, nil
}

// generateFeature alternates the metric variants. Every fifth feature has no
// metrics, and the rate source cycles through every supported shape.
func generateFeature(rng *rand.Rand, i int, b behavior) model.BehavioralFeature {
	f := model.BehavioralFeature{Taxonomy: model.Taxonomy{Title: b.title, Description: b.description}}
	if i%5 == 4 {
		return f
	}

	size := round(rng.NormFloat64()*0.12, 3)
	samples := sampleSizes(rng)
	rates := rateFields(rng, i)

	if i%2 == 0 {
		f.Metrics = &model.MetaAnalysis{
			OverallConfidence:    metaConfidence[rng.Intn(len(metaConfidence))],
			WeightedEffectSize:   size,
			EffectSizePercentage: model.NewPercent(signed(size * 100)),
			SampleSizes:          samples,
			EvidenceStrength: model.EvidenceStrength{
				SignificantFindings: 1 + rng.Intn(4),
				TotalDatasets:       5,
				CombinedPValue:      round(rng.Float64()*0.1, 4),
			},
			RateFields: rates,
		}
		return f
	}
	f.Metrics = &model.EffectAnalysis{
		EffectSize:           size,
		EffectSizePercentage: model.PercentOf(round(size*100, 1)),
		PValue:               round(rng.Float64()*0.2, 4),
		SampleSizes:          samples,
		ConfidenceLevel:      effectConfidence[rng.Intn(len(effectConfidence))],
		Significance:         significance(rng),
		RateFields:           rates,
	}
	return f
}

func sampleSizes(rng *rand.Rand) model.SampleSizes {
	with := 50 + rng.Intn(400)
	without := 50 + rng.Intn(400)
	return model.SampleSizes{WithBehavior: with, WithoutBehavior: without, Total: with + without}
}

func rateFields(rng *rand.Rand, i int) model.RateFields {
	with := model.NewPercent(fmt.Sprintf("%.1f%%", 40+rng.Float64()*40))
	without := model.NewPercent(fmt.Sprintf("%.1f%%", 40+rng.Float64()*40))
	switch i % 4 {
	case 0:
		return model.RateFields{RetentionRates: &model.RateBlock{RetentionWith: &with, RetentionWithout: &without}}
	case 1:
		return model.RateFields{EnrollmentRates: &model.RateBlock{RateWith: &with, RateWithout: &without}}
	case 2:
		return model.RateFields{EnrollmentWithBehavior: &with, EnrollmentWithoutBehavior: &without}
	default:
		return model.RateFields{}
	}
}

func significance(rng *rand.Rand) string {
	if rng.Intn(2) == 0 {
		return "significant"
	}
	return "not significant"
}

func generateConsultant(rng *rand.Rand, i int, picked []behavior) model.ConsultantPerformance {
	calls := 40 + rng.Intn(260)
	enrolled := rng.Intn(calls + 1)
	retained := rng.Intn(enrolled + 1)
	p := model.ConsultantPerformance{
		Name: firstNames[i%len(firstNames)] + " " + lastNames[rng.Intn(len(lastNames))],
		OverallMetrics: model.OverallMetrics{
			SuccessRate: round(0.3+rng.Float64()*0.5, 3),
			TotalCalls:  &calls,
			Enrolled:    &enrolled,
			Retained:    &retained,
		},
	}
	increase := model.NewPercent(signed(rng.Float64() * 15))
	p.OverallMetrics.PotentialIncreasePercentage = &increase

	for j, b := range picked {
		p.BehavioralFeatures = append(p.BehavioralFeatures, model.Keyed[model.BehaviorMetrics]{
			Key:   b.key,
			Value: behaviorMetrics(rng, i+j),
		})
	}
	return p
}

// behaviorMetrics cycles the potential improvement through every field the
// aggregator falls back across, including none at all.
func behaviorMetrics(rng *rand.Rand, n int) model.BehaviorMetrics {
	m := model.BehaviorMetrics{
		ConsultantUsagePercentage:  model.PercentOf(round(rng.Float64()*100, 1)),
		ConsultantAverageCount:     round(rng.Float64()*5, 2),
		TeamUsagePercentage:        model.PercentOf(round(rng.Float64()*100, 1)),
		TopQuartileUsagePercentage: model.PercentOf(round(rng.Float64()*100, 1)),
	}
	v := rng.Float64() * 6
	switch n % 5 {
	case 0:
		p := model.NewPercent(signed(v))
		m.PotentialImprovement = &model.PotentialBlock{EnrollmentIncrease: &p}
	case 1:
		p := model.PercentOf(round(v, 2))
		m.PotentialImprovement = &model.PotentialBlock{RetentionIncrease: &p}
	case 2:
		p := model.NewPercent(fmt.Sprintf("%.2f%%", v))
		m.OptimalConditions = &model.PotentialBlock{RetentionIncrease: &p}
	case 3:
		p := model.NewPercent(signed(v))
		m.OptimalConditions = &model.PotentialBlock{EnrollmentIncrease: &p}
	}
	return m
}

func quotesFor(rng *rand.Rand, b behavior) (json.RawMessage, error) {
	quotes := make(map[string][]string, len(quoteCategories))
	for _, c := range quoteCategories {
		quotes[c] = []string{fmt.Sprintf("%s example %d", b.title, 1+rng.Intn(99))}
	}
	return json.Marshal(quotes)
}

func signed(v float64) string {
	return fmt.Sprintf("%+.1f%%", v)
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
