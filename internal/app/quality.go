package service

import (
	"context"
	"strings"
	"sync"

	"github.com/okian/coachlens/internal/domain/dedupe"
	"github.com/okian/coachlens/internal/domain/model"
	"github.com/okian/coachlens/pkg/logger"
	"github.com/okian/coachlens/pkg/metrics"
)

// qualityRecorder counts every default substitution and logs each distinct
// (document, kind, subject) once per load of that document.
type qualityRecorder struct {
	seen   dedupe.Deduper
	logger logger.Logger

	mu    sync.Mutex
	byKey map[model.Key][]string
}

func newQualityRecorder(size int, l logger.Logger) *qualityRecorder {
	return &qualityRecorder{
		seen:   dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(size)),
		logger: l,
		byKey:  make(map[model.Key][]string),
	}
}

func (q *qualityRecorder) record(ctx context.Context, key model.Key, kind, subject, detail string) {
	if err := metrics.RecordFallback(kind); err != nil {
		q.logger.Error(ctx, "failed to record fallback", logger.Error(err))
	}
	id := strings.Join([]string{key.String(), kind, subject}, "/")
	if q.seen.SeenAndRecord(ctx, id) {
		return
	}
	q.mu.Lock()
	q.byKey[key] = append(q.byKey[key], id)
	q.mu.Unlock()
	metrics.RecordQualityWarning()
	q.logger.Warn(ctx, detail,
		logger.String("key", key.String()),
		logger.String("kind", kind),
		logger.String("subject", subject),
	)
}

// forget drops the warnings logged for key so a rebuilt view reports them again.
func (q *qualityRecorder) forget(ctx context.Context, key model.Key) {
	q.mu.Lock()
	ids := q.byKey[key]
	delete(q.byKey, key)
	q.mu.Unlock()
	for _, id := range ids {
		q.seen.Forget(ctx, id)
	}
}

func (q *qualityRecorder) size() int64 {
	return q.seen.Size()
}
