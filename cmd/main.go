package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	app "github.com/okian/coachlens/internal/app"
	"github.com/okian/coachlens/internal/config"
	"github.com/okian/coachlens/internal/domain/model"
	"github.com/okian/coachlens/pkg/logger"
	"github.com/okian/coachlens/pkg/metrics"
)

var version = "0.1.0-dev"

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "coachlens",
		Short: "Coaching dashboard - ranked behavioral effects and consultant performance",
		Long: `coachlens loads behavioral analysis documents, reconciles their metric
variants and serves ranked effects, consultant tiers and potential
improvement as JSON, HTML charts or terminal reports.`,
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "YAML config file (overrides "+config.EnvFile+")")
	rootCmd.PersistentFlags().String("data-dir", "", "Directory of <dataset>__<view>.json documents")

	rootCmd.AddCommand(
		newServeCmd(),
		newReportCmd(),
		newGenerateCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

// loadConfig layers the --config and --data-dir flags over config.Load and
// initializes logging from the result.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		if err := os.Setenv(config.EnvFile, path); err != nil {
			return nil, fmt.Errorf("set %s: %w", config.EnvFile, err)
		}
	}

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(cmd.Context())
	if err != nil {
		return nil, err
	}
	if dir, _ := cmd.Flags().GetString("data-dir"); dir != "" {
		cfg.DataDir = dir
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat), logger.WithWriter(cmd.ErrOrStderr())); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}
	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(cmd.Context(), "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	metrics.Configure(
		metrics.WithNamespace(cfg.MetricsNamespace),
		metrics.WithSubsystem(cfg.MetricsSubsystem),
		metrics.WithMetricsEnabled(cfg.MetricsEnabled),
		metrics.WithCustomLabels(cfg.MetricsLabels),
		metrics.WithHistogramBuckets(cfg.MetricsBuckets),
	)
	return cfg, nil
}

// newService builds the service from configuration. It is not started.
func newService(cfg *config.Config) *app.Service {
	return app.New(
		app.WithLogger(logger.Get().Named("service")),
		app.WithDataDir(cfg.DataDir),
		app.WithDefaultKey(model.Key{Dataset: cfg.DefaultDataset, View: cfg.DefaultView}),
		app.WithPageSize(cfg.PageSize),
		app.WithMaxPageSize(cfg.MaxPageSize),
		app.WithQualityLogSize(cfg.QualityLogSize),
		app.WithAnimationDuration(cfg.AnimationDuration()),
	)
}

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return writeJSON(cmd.OutOrStdout(), map[string]string{"version": version})
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "coachlens version %s\n", version)
			return err
		},
	}
	cmd.Flags().Bool("json", false, "Output as JSON")
	return cmd
}
