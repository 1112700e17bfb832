// Package config defines service configuration structures and loading hooks.
//
// Conventions:
//   - Provide New() to build a Config with defaults.
//   - Load layers defaults, an optional YAML file and environment variables.
//   - Validation errors wrap ErrInvalidConfig.
package config

import (
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DataDir holds the analysis documents, one <dataset>__<view>.json per key.
	DataDir string `koanf:"data_dir"`

	// DefaultDataset and DefaultView select the document served when a
	// request names neither. Empty picks the first loaded key.
	DefaultDataset string `koanf:"default_dataset"`
	DefaultView    string `koanf:"default_view"`

	// PageSize is the default page size; MaxPageSize caps ?page_size.
	PageSize    int `koanf:"page_size"`
	MaxPageSize int `koanf:"max_page_size"`

	// AnimationDurationMS is the radial progress run length.
	AnimationDurationMS int `koanf:"animation_duration_ms"`

	// FrameIntervalMS is the animator tick.
	FrameIntervalMS int `koanf:"frame_interval_ms"`

	// ChartAssetsHost overrides where the dashboard loads echarts from.
	ChartAssetsHost string `koanf:"chart_assets_host"`

	// QualityLogSize bounds how many distinct data-quality warnings are
	// remembered for log deduplication.
	QualityLogSize int `koanf:"quality_log_size"`

	// Metrics naming and switches. Labels and buckets are file-only.
	MetricsEnabled   bool              `koanf:"metrics_enabled"`
	MetricsNamespace string            `koanf:"metrics_namespace"`
	MetricsSubsystem string            `koanf:"metrics_subsystem"`
	MetricsLabels    map[string]string `koanf:"metrics_labels"`
	MetricsBuckets   []float64         `koanf:"metrics_buckets"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		LogFormat:           "text",
		Addr:                ":9080",
		DataDir:             "./data",
		PageSize:            10,
		MaxPageSize:         100,
		AnimationDurationMS: 1000,
		FrameIntervalMS:     16,
		ChartAssetsHost:     "https://go-echarts.github.io/go-echarts-assets/assets/",
		QualityLogSize:      4096,
		MetricsEnabled:      true,
		MetricsNamespace:    "coachlens",
		MetricsSubsystem:    "dashboard",
	}
}

// AnimationDuration returns AnimationDurationMS as a duration.
func (c *Config) AnimationDuration() time.Duration {
	return time.Duration(c.AnimationDurationMS) * time.Millisecond
}

// FrameInterval returns FrameIntervalMS as a duration.
func (c *Config) FrameInterval() time.Duration {
	return time.Duration(c.FrameIntervalMS) * time.Millisecond
}
