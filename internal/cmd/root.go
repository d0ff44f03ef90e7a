package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"tarediiran-industries.com/bikeshare-tools/internal/common"
	"tarediiran-industries.com/bikeshare-tools/internal/config"
	"tarediiran-industries.com/bikeshare-tools/internal/db"
	"tarediiran-industries.com/bikeshare-tools/internal/shell"
	"tarediiran-industries.com/bikeshare-tools/internal/trips"
)

type BikeshareApp struct {
	ConfigPath  string
	DataDir     string
	MetricsAddr string

	In io.Reader
}

func Execute() error {
	common.InitLogging(os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &BikeshareApp{In: os.Stdin}
	rootCmd := NewRootCmd(app)
	return rootCmd.ExecuteContext(ctx)
}

func NewRootCmd(app *BikeshareApp) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "bikeshare",
		Short:         "Explore US bikeshare trip data by city, month and day",
		Version:       fmt.Sprintf("%s (%s)", common.Version, common.GitCommit),
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.explore(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(
		&app.ConfigPath,
		"config",
		"",
		"Path to a TOML or YAML configuration file (defaults to the built-in city files)",
	)
	cmd.PersistentFlags().StringVar(
		&app.DataDir,
		"data-dir",
		"",
		"Directory containing the city CSV files",
	)
	cmd.PersistentFlags().StringVar(
		&app.MetricsAddr,
		"metrics-addr",
		"",
		"Serve prometheus metrics on this address while running",
	)

	cmd.AddCommand(NewStatsCmd(app))
	cmd.AddCommand(NewCitiesCmd(app))

	return cmd
}

func (app *BikeshareApp) loadConfig() (config.Config, error) {
	cfg := config.Default()
	if app.ConfigPath != "" {
		var err error
		cfg, err = config.Load(app.ConfigPath)
		if err != nil {
			return config.Config{}, fmt.Errorf("config.Load: %w", err)
		}
	}

	if app.DataDir != "" {
		cfg.DataDir = app.DataDir
	}
	return cfg, nil
}

// session holds what a command needs to load trips, released by close.
type session struct {
	loader  *trips.Loader
	metrics *common.Metrics
	closers []func() error
}

func (s *session) close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		_ = s.closers[i]()
	}
}

func (app *BikeshareApp) openSession(ctx context.Context) (*session, error) {
	cfg, err := app.loadConfig()
	if err != nil {
		return nil, err
	}

	s := &session{}

	if app.MetricsAddr != "" {
		telemetry := common.NewTelemetryServer(app.MetricsAddr)
		s.metrics = common.NewMetrics(telemetry.GetRegistry())
		if err := telemetry.Start(); err != nil {
			return nil, fmt.Errorf("telemetry: %w", err)
		}
		s.closers = append(s.closers, telemetry.Stop)
	} else {
		s.metrics = common.NewMetrics(prometheus.NewRegistry())
	}

	opts := []trips.LoaderOption{trips.WithMetrics(s.metrics)}
	if cfg.UsesDatabase() {
		database, err := db.NewDatabaseConnection(ctx, cfg.Database)
		if err != nil {
			s.close()
			return nil, err
		}
		s.closers = append(s.closers, database.Close)
		opts = append(opts, trips.WithDatabase(database))
	}

	s.loader = trips.NewLoader(cfg, opts...)
	return s, nil
}

func (app *BikeshareApp) explore(cmd *cobra.Command) error {
	s, err := app.openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.close()

	in := app.In
	if in == nil {
		in = cmd.InOrStdin()
	}

	return shell.New(s.loader, in, cmd.OutOrStdout(), s.metrics).Run(cmd.Context())
}
