// Package repository holds the decoded analysis documents keyed by dataset
// and view.
package repository

import (
	"context"

	"github.com/okian/coachlens/internal/domain/model"
)

// Store provides read access to loaded documents.
type Store interface {
	// Get returns the document for key.
	// Returns ErrNotFound if no document is loaded under key.
	Get(ctx context.Context, key model.Key) (Entry, error)

	// Keys returns every loaded key sorted by dataset then view.
	Keys(ctx context.Context) []model.Key

	// Count returns the number of loaded documents.
	Count(ctx context.Context) int
}
