// Package service provides the core business service that implements
// the dependencies required by the HTTP API and the CLI.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/okian/coachlens/internal/adapters/repository"
	"github.com/okian/coachlens/internal/domain/animation"
	"github.com/okian/coachlens/internal/domain/model"
	"github.com/okian/coachlens/internal/domain/types"
	"github.com/okian/coachlens/pkg/logger"
)

// Service serves normalized effect and consultant views over the loaded
// documents.
type Service struct {
	mu sync.RWMutex

	// Core components
	store   repository.Store
	quality *qualityRecorder
	views   map[model.Key]*view

	// Configuration
	dataDir           string
	defaultKey        model.Key
	pageSize          int
	maxPageSize       int
	qualityLogSize    int
	animationDuration time.Duration

	// State
	started   bool
	startedAt time.Time

	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		pageSize:          10,
		maxPageSize:       100,
		qualityLogSize:    4096,
		animationDuration: animation.DefaultDuration,
		views:             make(map[model.Key]*view),
	}

	for _, opt := range opts {
		opt(s)
	}
	if s.maxPageSize < s.pageSize {
		s.maxPageSize = s.pageSize
	}

	return s
}

// Start loads the documents and builds every view. Without WithStore the
// data directory is loaded into a fresh DocumentStore. Start fails only if
// nothing could be loaded.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	s.quality = newQualityRecorder(s.qualityLogSize, s.logger)

	s.logger.Info(ctx, "starting coachlens service...", logger.String("data_dir", s.dataDir))

	if s.store == nil {
		ds := repository.NewDocumentStore(repository.WithLogger(s.logger.Named("repository")))
		if s.dataDir != "" {
			n, err := ds.LoadDir(ctx, s.dataDir)
			if err != nil && n == 0 {
				return fmt.Errorf("load %s: %w", s.dataDir, err)
			}
			if err != nil {
				s.logger.Warn(ctx, "some documents failed to load", logger.Error(err))
			}
		}
		s.store = ds
	}

	if err := s.rebuildLocked(ctx); err != nil {
		return err
	}
	if !s.defaultKey.IsZero() {
		if _, ok := s.views[s.defaultKey]; !ok {
			s.logger.Warn(ctx, "configured default document is not loaded",
				logger.String("key", s.defaultKey.String()))
		}
	}

	s.started = true
	s.startedAt = time.Now()
	s.logger.Info(ctx, "coachlens service started",
		logger.Int("documents", len(s.views)),
		logger.Int("pageSize", s.pageSize),
		logger.Int("maxPageSize", s.maxPageSize),
	)
	return nil
}

// Reload rebuilds every view from the store.
func (s *Service) Reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return ErrNotStarted
	}
	return s.rebuildLocked(ctx)
}

func (s *Service) rebuildLocked(ctx context.Context) error {
	keys := s.store.Keys(ctx)
	if len(keys) == 0 {
		return ErrNoDocuments
	}
	views := make(map[model.Key]*view, len(keys))
	for _, k := range keys {
		e, err := s.store.Get(ctx, k)
		if err != nil {
			return err
		}
		s.quality.forget(ctx, k)
		views[k] = s.buildView(ctx, e)
	}
	s.views = views
	return nil
}

// Stop releases the views.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.views = make(map[model.Key]*view)
	s.started = false
	s.logger.Info(context.Background(), "coachlens service stopped")
}

// view resolves which document a request targets. A zero key selects the
// configured default, then the first loaded key. A key with only a dataset
// selects that dataset's default view, then its first view.
func (s *Service) view(ctx context.Context, key model.Key) (*view, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return nil, ErrNotStarted
	}

	if key.Dataset == "" && key.View == "" {
		if v, ok := s.views[s.defaultKey]; ok {
			return v, nil
		}
		keys := s.store.Keys(ctx)
		if len(keys) == 0 {
			return nil, ErrNoDocuments
		}
		key = keys[0]
	}

	if key.View == "" {
		if key.Dataset == s.defaultKey.Dataset {
			key.View = s.defaultKey.View
		}
		if _, ok := s.views[key]; !ok {
			for _, k := range s.store.Keys(ctx) {
				if k.Dataset == key.Dataset {
					key = k
					break
				}
			}
		}
	}

	v, ok := s.views[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", repository.ErrNotFound, key)
	}
	return v, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":     s.started,
		"pageSize":    s.pageSize,
		"maxPageSize": s.maxPageSize,
		"dataDir":     s.dataDir,
	}
	if !s.defaultKey.IsZero() {
		stats["defaultKey"] = s.defaultKey.String()
	}

	if s.started {
		features, people := 0, 0
		for _, v := range s.views {
			features += len(v.effects)
			people += len(v.summary.Ranked)
		}
		stats["documents"] = len(s.views)
		stats["features"] = features
		stats["consultants"] = people
		stats["qualityWarnings"] = s.quality.size()
		stats["uptimeSeconds"] = int64(time.Since(s.startedAt).Seconds())
	}

	return stats
}

// IsNotFound reports whether err means the requested resource does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, types.ErrNotFound) || errors.Is(err, ErrNoDocuments)
}
