package api

import (
	"github.com/okian/coachlens/internal/adapters/charts"
	"github.com/okian/coachlens/pkg/logger"
)

type serverConfig struct {
	renderer *charts.Renderer
	logger   logger.Logger
}

// Option configures a Server.
type Option func(*serverConfig)

// WithRenderer sets the chart renderer behind /dashboard.
func WithRenderer(r *charts.Renderer) Option {
	return func(c *serverConfig) {
		c.renderer = r
	}
}

// WithLogger sets the request logger.
func WithLogger(l logger.Logger) Option {
	return func(c *serverConfig) {
		c.logger = l
	}
}
