package service

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"github.com/okian/coachlens/internal/adapters/repository"
	"github.com/okian/coachlens/internal/domain/consultants"
	"github.com/okian/coachlens/internal/domain/effects"
	"github.com/okian/coachlens/internal/domain/model"
	"github.com/okian/coachlens/internal/domain/types"
	"github.com/okian/coachlens/pkg/metrics"
)

// view is the normalized, read-only projection of one document.
type view struct {
	key      model.Key
	loadedAt time.Time

	// effects in document order; ranking copies before sorting.
	effects []types.Effect
	titles  map[string]string

	summary types.ConsultantSummary
	perfs   model.Ordered[model.ConsultantPerformance]
	quotes  map[string]json.RawMessage
}

func (s *Service) buildView(ctx context.Context, e repository.Entry) *view {
	doc := e.Document
	if doc == nil {
		doc = &model.Document{}
	}
	v := &view{
		key:      e.Key,
		loadedAt: e.LoadedAt,
		effects:  effects.Normalize(doc.Effects),
		titles:   make(map[string]string, doc.Effects.Len()),
		summary:  consultants.Aggregate(doc.Consultants),
		perfs:    doc.Consultants,
		quotes:   doc.Quotes,
	}
	for _, eff := range v.effects {
		if eff.Title != "" {
			v.titles[eff.Key] = eff.Title
		}
	}
	s.inspect(ctx, e.Key, doc, v)
	metrics.SetDatasetSize(e.Key.String(), len(v.effects), len(v.summary.Ranked))
	return v
}

// inspect reports every place where a default replaced missing or
// malformed source data.
func (s *Service) inspect(ctx context.Context, key model.Key, doc *model.Document, v *view) {
	q := s.quality
	if doc.Effects.Len() == 0 {
		q.record(ctx, key, metrics.FallbackEmptyCollection, "overall_behavioral_effects", "document has no behavioral effects")
	}
	if doc.Consultants.Len() == 0 {
		q.record(ctx, key, metrics.FallbackEmptyCollection, "individual_consultant_performance", "document has no consultants")
	}

	for i, kv := range doc.Effects {
		f := kv.Value
		switch {
		case f.Metrics == nil:
			q.record(ctx, key, metrics.FallbackMissingVariant, kv.Key, "feature has no metrics; effect size defaults to 0")
			continue
		case f.Conflicting:
			q.record(ctx, key, metrics.FallbackConflictingVariant, kv.Key, "feature carries both metric variants; using meta-analysis")
		}
		if v.effects[i].Rates == nil {
			q.record(ctx, key, metrics.FallbackMissingRates, kv.Key, "feature has no complete rate pair")
		}
	}

	for _, c := range doc.Consultants {
		for _, b := range c.Value.BehavioralFeatures {
			val, _, ok := consultants.ResolvePotential(b.Value)
			subject := c.Key + "/" + b.Key
			switch {
			case !ok:
				q.record(ctx, key, metrics.FallbackMissingPotential, subject, "behavior has no potential improvement; contributes 0")
			case math.IsNaN(val):
				q.record(ctx, key, metrics.FallbackMalformedNumber, subject, "potential improvement is not a number; contributes 0")
			}
		}
	}
}
