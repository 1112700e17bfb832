package api

import (
	"context"
	"net/http"

	service "github.com/okian/coachlens/internal/app"
	"github.com/okian/coachlens/internal/domain/types"
)

// GaugeDependencies computes radial progress frames.
type GaugeDependencies interface {
	Gauge(ctx context.Context, q service.GaugeQuery) (types.GaugeFrame, error)
}

// GaugeHandler serves single animation frames for client-side renderers.
type GaugeHandler struct {
	deps GaugeDependencies
}

// NewGaugeHandler creates a new gauge handler.
func NewGaugeHandler(deps GaugeDependencies) *GaugeHandler {
	return &GaugeHandler{deps: deps}
}

// HandleGauge handles GET /gauge?value&elapsed_ms&duration_ms.
func (h *GaugeHandler) HandleGauge(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_gauge"
	value, err := floatParam(r, "value", 0)
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	elapsed, err := millisParam(r, "elapsed_ms")
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	duration, err := millisParam(r, "duration_ms")
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	f, err := h.deps.Gauge(r.Context(), service.GaugeQuery{Value: value, Elapsed: elapsed, Duration: duration})
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}
