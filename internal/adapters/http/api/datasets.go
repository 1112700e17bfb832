package api

import (
	"context"
	"net/http"

	"github.com/okian/coachlens/internal/domain/types"
)

// DatasetsDependencies lists the loaded documents.
type DatasetsDependencies interface {
	Datasets(ctx context.Context) ([]types.DatasetInfo, error)
}

// DatasetsHandler handles dataset listing requests.
type DatasetsHandler struct {
	deps DatasetsDependencies
}

// NewDatasetsHandler creates a new datasets handler.
func NewDatasetsHandler(deps DatasetsDependencies) *DatasetsHandler {
	return &DatasetsHandler{deps: deps}
}

// HandleDatasets handles GET /datasets requests.
func (h *DatasetsHandler) HandleDatasets(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_datasets"
	ds, err := h.deps.Datasets(r.Context())
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, ds)
}
