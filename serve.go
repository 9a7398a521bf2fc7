package main

import (
	"fmt"

	"callreport-api/config"
	"callreport-api/database"
	"callreport-api/deposits"
	"callreport-api/ffiec"
	"callreport-api/handlers"
	"callreport-api/logging"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE:  runServe,
	}

	cmd.Flags().String("addr", config.DefaultAddr, "listen address")
	cmd.Flags().String("db-path", config.DefaultDBPath, "sqlite lookup journal (empty disables)")

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cmd, cfgFile)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	mode, err := deposits.ParseMatchMode(cfg.Metric.Match)
	if err != nil {
		return err
	}

	client := newClient(cfg, logger)

	var (
		store handlers.LookupStore
		sink  deposits.Journal
	)
	if cfg.DBPath != "" {
		db, err := database.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		journal := database.NewJournal(db)
		store, sink = journal, journal
		logger.Info("lookup journal enabled", zap.String("path", cfg.DBPath))
	}

	svc := deposits.NewService(client, sink, cfg.Metric.DefaultCode, mode, logger.Named("deposits"))
	h := handlers.New(svc, store, cfg.Response.Style, logger.Named("http"))

	gin.SetMode(gin.ReleaseMode)
	logger.Info("starting callreport server",
		zap.String("addr", cfg.Addr),
		zap.String("default_mdrm", cfg.Metric.DefaultCode),
		zap.String("response_style", cfg.Response.Style),
	)

	return h.Router().Run(cfg.Addr)
}

func newClient(cfg *config.Config, logger *zap.Logger) *ffiec.Client {
	return ffiec.NewClient(
		ffiec.WithBaseURL(cfg.FFIEC.BaseURL),
		ffiec.WithTimeout(cfg.FFIEC.Timeout),
		ffiec.WithRateLimit(cfg.FFIEC.Rate, cfg.FFIEC.Burst),
		ffiec.WithLogger(logger.Named("ffiec")),
	)
}
