// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/coachlens/internal/adapters/charts"
	service "github.com/okian/coachlens/internal/app"
	"github.com/okian/coachlens/internal/domain/effects"
	"github.com/okian/coachlens/internal/domain/model"
	"github.com/okian/coachlens/internal/domain/types"
	"github.com/okian/coachlens/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	Datasets(ctx context.Context) ([]types.DatasetInfo, error)

	Effects(ctx context.Context, q service.EffectsQuery) (types.EffectsPage, error)
	EffectSummary(ctx context.Context, key model.Key) (types.EffectSummary, error)
	RankedEffects(ctx context.Context, key model.Key, order effects.Order) ([]types.Effect, error)

	Consultants(ctx context.Context, q service.ConsultantsQuery) (types.ConsultantsPage, error)
	ConsultantSummary(ctx context.Context, key model.Key) (types.ConsultantSummary, error)
	Consultant(ctx context.Context, key model.Key, id string) (types.ConsultantDetail, error)

	Quotes(ctx context.Context, key model.Key, behavior string) (json.RawMessage, error)
	Gauge(ctx context.Context, q service.GaugeQuery) (types.GaugeFrame, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	datasetsHandler    *DatasetsHandler
	effectsHandler     *EffectsHandler
	consultantsHandler *ConsultantsHandler
	quotesHandler      *QuotesHandler
	gaugeHandler       *GaugeHandler
	dashboardHandler   *dashboardHandler

	logger logger.Logger
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	cfg := serverConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.renderer == nil {
		cfg.renderer = charts.NewRenderer()
	}
	if cfg.logger == nil {
		cfg.logger = logger.Get().Named("api")
	}

	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		datasetsHandler:    NewDatasetsHandler(deps),
		effectsHandler:     NewEffectsHandler(deps),
		consultantsHandler: NewConsultantsHandler(deps),
		quotesHandler:      NewQuotesHandler(deps),
		gaugeHandler:       NewGaugeHandler(deps),
		dashboardHandler:   newDashboardHandler(deps, cfg.renderer),
		logger:             cfg.logger,
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	route := func(pattern, endpoint string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, RequestIDMiddleware(MetricsMiddleware(h, endpoint), s.logger))
	}

	route("GET /healthz", "healthz", s.healthHandler.HandleHealth)
	route("GET /stats", "stats", s.statsHandler.HandleStats)
	route("GET /datasets", "datasets", s.datasetsHandler.HandleDatasets)
	route("GET /effects", "effects", s.effectsHandler.HandleEffects)
	route("GET /effects/summary", "effects_summary", s.effectsHandler.HandleSummary)
	route("GET /consultants", "consultants", s.consultantsHandler.HandleConsultants)
	route("GET /consultants/{id}", "consultant", s.consultantsHandler.HandleConsultant)
	route("GET /quotes/{behavior}", "quotes", s.quotesHandler.HandleQuotes)
	route("GET /gauge", "gauge", s.gaugeHandler.HandleGauge)
	route("GET /dashboard", "dashboard", s.dashboardHandler.HandleDashboard)
}

type errorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// writeJSON encodes v before the status line goes out so an encoding
// failure still reaches the client as a 500.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		logger.Get().Named("api").Error(context.Background(), "failed to encode response",
			logger.Int("status", status), logger.Error(err))
		buf.Reset()
		status = http.StatusInternalServerError
		_ = json.NewEncoder(&buf).Encode(errorResponse{
			Code:      "internal_error",
			Message:   "response could not be encoded",
			RequestID: w.Header().Get(RequestIDHeader),
		})
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		logger.Get().Named("api").Debug(context.Background(), "failed to write response", logger.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg, RequestID: w.Header().Get(RequestIDHeader)})
}
