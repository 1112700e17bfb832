package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/okian/coachlens/internal/domain/animation"
	"github.com/okian/coachlens/internal/domain/consultants"
	"github.com/okian/coachlens/internal/domain/effects"
	"github.com/okian/coachlens/internal/domain/model"
	"github.com/okian/coachlens/internal/domain/paging"
	"github.com/okian/coachlens/internal/domain/types"
)

// Gauge geometry in SVG user units.
const (
	gaugeCenter = 60
	gaugeRadius = 50
)

// EffectsQuery selects one page of ranked effects. Page is a zero-based
// index; PageSize 0 uses the service default.
type EffectsQuery struct {
	Key      model.Key
	Order    effects.Order
	Filter   effects.Filter
	Page     int
	PageSize int
}

// ConsultantsQuery selects one page of ranked consultants.
type ConsultantsQuery struct {
	Key      model.Key
	Page     int
	PageSize int
}

// GaugeQuery samples the radial progress animation towards Value at
// Elapsed. Duration 0 uses the service default.
type GaugeQuery struct {
	Value    float64
	Elapsed  time.Duration
	Duration time.Duration
}

func (s *Service) pageSizeFor(requested int) (int, error) {
	switch {
	case requested < 0:
		return 0, fmt.Errorf("%w: page_size must not be negative", types.ErrInvalidQuery)
	case requested == 0:
		return s.pageSize, nil
	case requested > s.maxPageSize:
		return s.maxPageSize, nil
	default:
		return requested, nil
	}
}

// Datasets lists the loaded documents.
func (s *Service) Datasets(ctx context.Context) ([]types.DatasetInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	keys := s.store.Keys(ctx)
	out := make([]types.DatasetInfo, 0, len(keys))
	for _, k := range keys {
		v, ok := s.views[k]
		if !ok {
			continue
		}
		out = append(out, types.DatasetInfo{
			Dataset:     k.Dataset,
			View:        k.View,
			Features:    len(v.effects),
			Consultants: len(v.summary.Ranked),
			LoadedAt:    v.loadedAt,
		})
	}
	return out, nil
}

// Effects returns one page of filtered, ranked effects.
func (s *Service) Effects(ctx context.Context, q EffectsQuery) (types.EffectsPage, error) {
	if q.Page < 0 {
		return types.EffectsPage{}, fmt.Errorf("%w: page must not be negative", types.ErrInvalidQuery)
	}
	size, err := s.pageSizeFor(q.PageSize)
	if err != nil {
		return types.EffectsPage{}, err
	}
	order := q.Order
	if order == "" {
		order = effects.Descending
	}
	v, err := s.view(ctx, q.Key)
	if err != nil {
		return types.EffectsPage{}, err
	}

	ranked := effects.Rank(q.Filter.Apply(v.effects), order)
	return types.EffectsPage{
		PageInfo: paging.Info(q.Page, size, len(ranked)),
		Order:    string(order),
		Items:    paging.Paginate(ranked, q.Page, size),
	}, nil
}

// EffectSummary returns the headline statistics of one document.
func (s *Service) EffectSummary(ctx context.Context, key model.Key) (types.EffectSummary, error) {
	v, err := s.view(ctx, key)
	if err != nil {
		return types.EffectSummary{}, err
	}
	return effects.Summarize(v.effects), nil
}

// RankedEffects returns every effect of one document in the given order.
func (s *Service) RankedEffects(ctx context.Context, key model.Key, order effects.Order) ([]types.Effect, error) {
	v, err := s.view(ctx, key)
	if err != nil {
		return nil, err
	}
	return effects.Rank(v.effects, order), nil
}

// Consultants returns one page of the ranked consultant table.
func (s *Service) Consultants(ctx context.Context, q ConsultantsQuery) (types.ConsultantsPage, error) {
	if q.Page < 0 {
		return types.ConsultantsPage{}, fmt.Errorf("%w: page must not be negative", types.ErrInvalidQuery)
	}
	size, err := s.pageSizeFor(q.PageSize)
	if err != nil {
		return types.ConsultantsPage{}, err
	}
	v, err := s.view(ctx, q.Key)
	if err != nil {
		return types.ConsultantsPage{}, err
	}
	ranked := v.summary.Ranked
	return types.ConsultantsPage{
		PageInfo:    paging.Info(q.Page, size, len(ranked)),
		TeamAverage: v.summary.TeamAverage,
		Items:       paging.Paginate(ranked, q.Page, size),
	}, nil
}

// ConsultantSummary returns the full ranked table and team average.
func (s *Service) ConsultantSummary(ctx context.Context, key model.Key) (types.ConsultantSummary, error) {
	v, err := s.view(ctx, key)
	if err != nil {
		return types.ConsultantSummary{}, err
	}
	return v.summary, nil
}

// Consultant returns the detail view of one consultant.
func (s *Service) Consultant(ctx context.Context, key model.Key, id string) (types.ConsultantDetail, error) {
	v, err := s.view(ctx, key)
	if err != nil {
		return types.ConsultantDetail{}, err
	}
	c, ok := consultants.Find(v.summary, id)
	if !ok {
		return types.ConsultantDetail{}, fmt.Errorf("consultant %q %w", id, types.ErrNotFound)
	}
	perf, _ := v.perfs.Get(id)
	return consultants.Detail(c, perf, v.summary.TeamAverage, v.titles), nil
}

// Quotes returns the example quotes of one behavior as stored.
func (s *Service) Quotes(ctx context.Context, key model.Key, behavior string) (json.RawMessage, error) {
	v, err := s.view(ctx, key)
	if err != nil {
		return nil, err
	}
	raw, ok := v.quotes[behavior]
	if !ok {
		return nil, fmt.Errorf("quotes for %q %w", behavior, types.ErrNotFound)
	}
	return raw, nil
}

// Gauge computes one radial progress frame.
func (s *Service) Gauge(_ context.Context, q GaugeQuery) (types.GaugeFrame, error) {
	if q.Elapsed < 0 || q.Duration < 0 {
		return types.GaugeFrame{}, fmt.Errorf("%w: durations must not be negative", types.ErrInvalidQuery)
	}
	if math.IsNaN(q.Value) || math.IsInf(q.Value, 0) {
		return types.GaugeFrame{}, fmt.Errorf("%w: value must be finite", types.ErrInvalidQuery)
	}
	d := q.Duration
	if d == 0 {
		d = s.animationDuration
	}
	var epoch time.Time
	f := animation.At(animation.State{StartTime: epoch, TargetValue: q.Value, Duration: d}, epoch.Add(q.Elapsed))
	arc := animation.ArcFor(f.ArcFraction, f.SweepNegative, gaugeCenter, gaugeCenter, gaugeRadius)
	return types.GaugeFrame{
		DisplayedValue: f.DisplayedValue,
		ArcFraction:    f.ArcFraction,
		SweepNegative:  f.SweepNegative,
		Progress:       f.Progress,
		Done:           f.Done,
		Path:           arc.Path,
	}, nil
}

// AnimationDuration is the default gauge animation length.
func (s *Service) AnimationDuration() time.Duration {
	return s.animationDuration
}

// Resolve returns the document key a request for key is served from.
func (s *Service) Resolve(ctx context.Context, key model.Key) (model.Key, error) {
	v, err := s.view(ctx, key)
	if err != nil {
		return model.Key{}, err
	}
	return v.key, nil
}
