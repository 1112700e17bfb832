package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/coachlens/internal/domain/model"
)

// QuotesDependencies returns stored example quotes.
type QuotesDependencies interface {
	Quotes(ctx context.Context, key model.Key, behavior string) (json.RawMessage, error)
}

// QuotesHandler passes example quotes through unchanged.
type QuotesHandler struct {
	deps QuotesDependencies
}

// NewQuotesHandler creates a new quotes handler.
func NewQuotesHandler(deps QuotesDependencies) *QuotesHandler {
	return &QuotesHandler{deps: deps}
}

// HandleQuotes handles GET /quotes/{behavior}.
func (h *QuotesHandler) HandleQuotes(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_quotes"
	raw, err := h.deps.Quotes(r.Context(), keyFrom(r), r.PathValue("behavior"))
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}
