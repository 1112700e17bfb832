package effects

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/okian/coachlens/internal/domain/types"
)

// Order is the ranking direction.
type Order string

// Ranking directions.
const (
	Ascending  Order = "asc"
	Descending Order = "desc"
)

// ParseOrder accepts "asc" or "desc" in any case. Empty input means Descending.
func ParseOrder(s string) (Order, error) {
	switch Order(strings.ToLower(strings.TrimSpace(s))) {
	case "", Descending:
		return Descending, nil
	case Ascending:
		return Ascending, nil
	default:
		return "", fmt.Errorf("%w: order %q", types.ErrInvalidQuery, s)
	}
}

// Rank returns a copy of effects sorted by EffectSizePct. The sort is stable:
// equal effect sizes keep their source order in both directions.
func Rank(effects []types.Effect, order Order) []types.Effect {
	out := slices.Clone(effects)
	if out == nil {
		out = []types.Effect{}
	}
	slices.SortStableFunc(out, func(a, b types.Effect) int {
		if order == Ascending {
			return cmp.Compare(a.EffectSizePct, b.EffectSizePct)
		}
		return cmp.Compare(b.EffectSizePct, a.EffectSizePct)
	})
	return out
}

// Extremes returns the highest and lowest impact effects. On ties the first
// in source order wins, so the results equal Rank(desc)[0] and Rank(asc)[0].
func Extremes(effects []types.Effect) (highest, lowest types.Effect, ok bool) {
	if len(effects) == 0 {
		return types.Effect{}, types.Effect{}, false
	}
	sizes := make([]float64, len(effects))
	for i, e := range effects {
		sizes[i] = e.EffectSizePct
	}
	return effects[floats.MaxIdx(sizes)], effects[floats.MinIdx(sizes)], true
}

// Filter narrows a feature list. Zero value matches everything.
type Filter struct {
	// Confidence keeps effects whose label matches, case-insensitively.
	Confidence string
	// MeasuredOnly drops effects without a metrics variant.
	MeasuredOnly bool
}

// Apply returns the effects matching f in their original order.
func (f Filter) Apply(effects []types.Effect) []types.Effect {
	out := make([]types.Effect, 0, len(effects))
	for _, e := range effects {
		if f.MeasuredOnly && !e.Measured {
			continue
		}
		if f.Confidence != "" && !strings.EqualFold(e.ConfidenceLabel, f.Confidence) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Summarize computes the headline statistics shown above the effect cards.
func Summarize(effects []types.Effect) types.EffectSummary {
	s := types.EffectSummary{Total: len(effects)}
	for _, e := range effects {
		if e.Measured {
			s.Measured++
		} else {
			s.Unmeasured++
		}
		if e.Rates != nil {
			s.WithRates++
		}
	}
	if hi, lo, ok := Extremes(effects); ok {
		s.Highest = &hi
		s.Lowest = &lo
	}
	return s
}
