package api

import (
	"context"
	"net/http"
	"strings"

	service "github.com/okian/coachlens/internal/app"
	"github.com/okian/coachlens/internal/domain/effects"
	"github.com/okian/coachlens/internal/domain/model"
	"github.com/okian/coachlens/internal/domain/types"
)

// EffectsDependencies defines the interface for effect queries.
type EffectsDependencies interface {
	Effects(ctx context.Context, q service.EffectsQuery) (types.EffectsPage, error)
	EffectSummary(ctx context.Context, key model.Key) (types.EffectSummary, error)
}

// EffectsHandler handles behavioral effect requests.
type EffectsHandler struct {
	deps EffectsDependencies
}

// NewEffectsHandler creates a new effects handler.
func NewEffectsHandler(deps EffectsDependencies) *EffectsHandler {
	return &EffectsHandler{deps: deps}
}

// HandleEffects handles GET /effects?dataset&view&order&page&page_size&confidence&measured.
func (h *EffectsHandler) HandleEffects(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_effects"
	q, err := effectsQuery(r)
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	page, err := h.deps.Effects(r.Context(), q)
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// HandleSummary handles GET /effects/summary?dataset&view.
func (h *EffectsHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_effect_summary"
	s, err := h.deps.EffectSummary(r.Context(), keyFrom(r))
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func effectsQuery(r *http.Request) (service.EffectsQuery, error) {
	order, err := effects.ParseOrder(r.URL.Query().Get("order"))
	if err != nil {
		return service.EffectsQuery{}, err
	}
	page, err := intParam(r, "page", 0)
	if err != nil {
		return service.EffectsQuery{}, err
	}
	size, err := intParam(r, "page_size", 0)
	if err != nil {
		return service.EffectsQuery{}, err
	}
	measured, err := boolParam(r, "measured")
	if err != nil {
		return service.EffectsQuery{}, err
	}
	return service.EffectsQuery{
		Key:   keyFrom(r),
		Order: order,
		Filter: effects.Filter{
			Confidence:   strings.TrimSpace(r.URL.Query().Get("confidence")),
			MeasuredOnly: measured,
		},
		Page:     page,
		PageSize: size,
	}, nil
}
