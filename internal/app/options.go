package service

import (
	"time"

	"github.com/okian/coachlens/internal/adapters/repository"
	"github.com/okian/coachlens/internal/domain/model"
	"github.com/okian/coachlens/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDataDir sets the directory loaded on Start when no store is given.
func WithDataDir(dir string) Option {
	return func(s *Service) {
		s.dataDir = dir
	}
}

// WithStore serves documents from an existing store instead of loading
// the data directory.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithDefaultKey selects the document used when a request names none.
func WithDefaultKey(key model.Key) Option {
	return func(s *Service) {
		s.defaultKey = key
	}
}

// WithPageSize sets the default page size.
func WithPageSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.pageSize = size
		}
	}
}

// WithMaxPageSize caps requested page sizes.
func WithMaxPageSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.maxPageSize = size
		}
	}
}

// WithQualityLogSize bounds how many distinct data-quality warnings are
// remembered for deduplication.
func WithQualityLogSize(size int) Option {
	return func(s *Service) {
		s.qualityLogSize = size
	}
}

// WithAnimationDuration sets the default gauge animation length.
func WithAnimationDuration(d time.Duration) Option {
	return func(s *Service) {
		if d >= 0 {
			s.animationDuration = d
		}
	}
}
