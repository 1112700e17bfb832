package api

import (
	"bytes"
	"context"
	"net/http"

	"github.com/okian/coachlens/internal/adapters/charts"
	"github.com/okian/coachlens/internal/domain/effects"
	"github.com/okian/coachlens/internal/domain/model"
	"github.com/okian/coachlens/internal/domain/types"
)

// DashboardDependencies provides the full rankings of one document.
type DashboardDependencies interface {
	RankedEffects(ctx context.Context, key model.Key, order effects.Order) ([]types.Effect, error)
	ConsultantSummary(ctx context.Context, key model.Key) (types.ConsultantSummary, error)
}

// dashboardHandler handles dashboard requests
type dashboardHandler struct {
	deps     DashboardDependencies
	renderer *charts.Renderer
}

// newDashboardHandler creates a new dashboard handler
func newDashboardHandler(deps DashboardDependencies, renderer *charts.Renderer) *dashboardHandler {
	return &dashboardHandler{deps: deps, renderer: renderer}
}

// HandleDashboard handles GET /dashboard?dataset&view&order requests.
// Returns an HTML page with the effect, consultant and team average charts.
func (h *dashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_dashboard"
	key := keyFrom(r)
	order, err := effects.ParseOrder(r.URL.Query().Get("order"))
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	ranked, err := h.deps.RankedEffects(r.Context(), key, order)
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	summary, err := h.deps.ConsultantSummary(r.Context(), key)
	if err != nil {
		writeFailure(w, op, err)
		return
	}

	title := "coachlens"
	if !key.IsZero() {
		title += " " + key.String()
	}
	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, charts.Dashboard{Title: title, Effects: ranked, Consultants: summary}); err != nil {
		writeFailure(w, op, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
