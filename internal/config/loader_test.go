package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/coachlens/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.DataDir, convey.ShouldEqual, "./data")
				convey.So(cfg.PageSize, convey.ShouldEqual, 10)
				convey.So(cfg.MetricsEnabled, convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("COACHLENS_ADDR", ":8080")
			_ = os.Setenv("COACHLENS_DATA_DIR", "/srv/analysis")
			_ = os.Setenv("COACHLENS_PAGE_SIZE", "25")
			_ = os.Setenv("COACHLENS_ANIMATION_DURATION_MS", "400")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.DataDir, convey.ShouldEqual, "/srv/analysis")
				convey.So(cfg.PageSize, convey.ShouldEqual, 25)
				convey.So(cfg.AnimationDurationMS, convey.ShouldEqual, 400)
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
addr: ":9090"
log_format: json
default_dataset: retention
default_view: coaching
max_page_size: 50
metrics_namespace: lens
metrics_enabled: false
metrics_labels:
  site: eu
metrics_buckets: [0.1, 0.5, 2]
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("COACHLENS_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file and keep other defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
				convey.So(cfg.DefaultDataset, convey.ShouldEqual, "retention")
				convey.So(cfg.DefaultView, convey.ShouldEqual, "coaching")
				convey.So(cfg.MaxPageSize, convey.ShouldEqual, 50)
				convey.So(cfg.PageSize, convey.ShouldEqual, 10)
				convey.So(cfg.MetricsNamespace, convey.ShouldEqual, "lens")
				convey.So(cfg.MetricsSubsystem, convey.ShouldEqual, "dashboard")
				convey.So(cfg.MetricsEnabled, convey.ShouldBeFalse)
				convey.So(cfg.MetricsLabels, convey.ShouldResemble, map[string]string{"site": "eu"})
				convey.So(cfg.MetricsBuckets, convey.ShouldResemble, []float64{0.1, 0.5, 2})
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			tmpFile := createTempConfigFile("addr: \":9090\"\npage_size: 20\n")
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("COACHLENS_CONFIG", tmpFile)
			_ = os.Setenv("COACHLENS_ADDR", ":8080")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080") // Overridden by env
				convey.So(cfg.PageSize, convey.ShouldEqual, 20)  // From file
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("COACHLENS_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("COACHLENS_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("COACHLENS_PAGE_SIZE", "not_a_number")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

func TestConfigValidation(t *testing.T) {
	convey.Convey("Given config values that fail validation", t, func() {
		ctx := context.Background()
		cases := []struct{ name, yaml string }{
			{"empty addr", "addr: \"\"\n"},
			{"unknown log format", "log_format: xml\n"},
			{"zero page size", "page_size: 0\n"},
			{"max below default", "page_size: 20\nmax_page_size: 5\n"},
			{"negative duration", "animation_duration_ms: -1\n"},
			{"zero frame tick", "frame_interval_ms: 0\n"},
			{"half a default key", "default_dataset: retention\n"},
			{"blank metrics namespace", "metrics_namespace: \" \"\n"},
			{"unsorted buckets", "metrics_buckets: [1, 0.5]\n"},
		}

		for _, tc := range cases {
			convey.Convey("When loading "+tc.name, func() {
				tmpFile := createTempConfigFile(tc.yaml)
				defer func() { _ = os.Remove(tmpFile) }()
				_ = os.Setenv("COACHLENS_CONFIG", tmpFile)
				defer clearConfigEnvVars()

				cfg, err := config.Load(ctx)

				convey.Convey("Then it should return ErrInvalidConfig", func() {
					convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
					convey.So(cfg, convey.ShouldBeNil)
				})
			})
		}
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"COACHLENS_CONFIG",
		"COACHLENS_ADDR",
		"COACHLENS_DATA_DIR",
		"COACHLENS_PAGE_SIZE",
		"COACHLENS_ANIMATION_DURATION_MS",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "coachlens-config-*.yaml")
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
