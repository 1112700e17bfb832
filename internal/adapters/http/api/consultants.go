package api

import (
	"context"
	"net/http"
	"strings"

	service "github.com/okian/coachlens/internal/app"
	"github.com/okian/coachlens/internal/domain/model"
	"github.com/okian/coachlens/internal/domain/types"
)

// ConsultantsDependencies defines the interface for consultant queries.
type ConsultantsDependencies interface {
	Consultants(ctx context.Context, q service.ConsultantsQuery) (types.ConsultantsPage, error)
	Consultant(ctx context.Context, key model.Key, id string) (types.ConsultantDetail, error)
}

// ConsultantsHandler handles consultant ranking and detail requests.
type ConsultantsHandler struct {
	deps ConsultantsDependencies
}

// NewConsultantsHandler creates a new consultants handler.
func NewConsultantsHandler(deps ConsultantsDependencies) *ConsultantsHandler {
	return &ConsultantsHandler{deps: deps}
}

// HandleConsultants handles GET /consultants?dataset&view&page&page_size.
func (h *ConsultantsHandler) HandleConsultants(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_consultants"
	page, err := intParam(r, "page", 0)
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	size, err := intParam(r, "page_size", 0)
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	out, err := h.deps.Consultants(r.Context(), service.ConsultantsQuery{Key: keyFrom(r), Page: page, PageSize: size})
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleConsultant handles GET /consultants/{id}.
func (h *ConsultantsHandler) HandleConsultant(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_consultant"
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		writeFailure(w, op, NewKind(op, ErrBadRequest))
		return
	}
	d, err := h.deps.Consultant(r.Context(), keyFrom(r), id)
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}
