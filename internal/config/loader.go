package config

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Environment variable names.
const (
	EnvPrefix = "COACHLENS_"
	EnvFile   = EnvPrefix + "CONFIG"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if COACHLENS_CONFIG is set
//  3. env (prefix COACHLENS_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv(EnvFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// COACHLENS_PAGE_SIZE -> page_size. Underscores are kept to match the
	// flat koanf tags.
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}
	// The file path variable is not a config key.
	k.Delete("config")

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field ranges and combinations.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.LogFormat != "text" && c.LogFormat != "json":
		return fmt.Errorf("%w: log_format must be text or json, got %q", ErrInvalidConfig, c.LogFormat)
	case c.PageSize <= 0:
		return fmt.Errorf("%w: page_size must be positive, got %d", ErrInvalidConfig, c.PageSize)
	case c.MaxPageSize < c.PageSize:
		return fmt.Errorf("%w: max_page_size %d is below page_size %d", ErrInvalidConfig, c.MaxPageSize, c.PageSize)
	case c.AnimationDurationMS < 0:
		return fmt.Errorf("%w: animation_duration_ms must not be negative", ErrInvalidConfig)
	case c.FrameIntervalMS <= 0:
		return fmt.Errorf("%w: frame_interval_ms must be positive", ErrInvalidConfig)
	case c.QualityLogSize < 0:
		return fmt.Errorf("%w: quality_log_size must not be negative", ErrInvalidConfig)
	case strings.TrimSpace(c.MetricsNamespace) == "":
		return fmt.Errorf("%w: metrics_namespace must not be empty", ErrInvalidConfig)
	case !sort.Float64sAreSorted(c.MetricsBuckets):
		return fmt.Errorf("%w: metrics_buckets must be ascending", ErrInvalidConfig)
	case (c.DefaultDataset == "") != (c.DefaultView == ""):
		return fmt.Errorf("%w: default_dataset and default_view must be set together", ErrInvalidConfig)
	}
	return nil
}
