package repository

import (
	"time"

	"github.com/okian/coachlens/pkg/logger"
)

// Option applies a configuration option to the DocumentStore.
type Option func(*DocumentStore)

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(s *DocumentStore) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock replaces time.Now for load timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *DocumentStore) {
		if now != nil {
			s.now = now
		}
	}
}
