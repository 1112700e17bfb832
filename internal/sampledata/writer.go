package sampledata

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/okian/coachlens/internal/domain/model"
	"github.com/okian/coachlens/pkg/logger"
)

// filePermission is used for generated documents.
const filePermission = 0o644

// Write stores each document as dir/<dataset>__<view>.json and returns the
// written paths in key order.
func Write(ctx context.Context, dir string, docs map[model.Key]*model.Document) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("sampledata: create %s: %w", dir, err)
	}

	keys := make([]model.Key, 0, len(docs))
	for k := range docs {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b model.Key) int {
		return strings.Compare(a.String(), b.String())
	})

	paths := make([]string, 0, len(keys))
	for _, k := range keys {
		if err := ctx.Err(); err != nil {
			return paths, err
		}
		data, err := json.MarshalIndent(docs[k], "", "  ")
		if err != nil {
			return paths, fmt.Errorf("sampledata: encode %s: %w", k, err)
		}
		p := filepath.Join(dir, k.String()+".json")
		if err := os.WriteFile(p, data, filePermission); err != nil {
			return paths, fmt.Errorf("sampledata: write %s: %w", p, err)
		}
		logger.Get().Info(ctx, "wrote sample document",
			logger.String("path", p),
			logger.Int("features", docs[k].Effects.Len()),
			logger.Int("consultants", docs[k].Consultants.Len()),
		)
		paths = append(paths, p)
	}
	return paths, nil
}
