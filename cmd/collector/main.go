package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/Koveh/telegram-ads-collector/internal/adapter/ads"
	httpadapter "github.com/Koveh/telegram-ads-collector/internal/adapter/http"
	"github.com/Koveh/telegram-ads-collector/internal/adapter/postgres"
	"github.com/Koveh/telegram-ads-collector/internal/adapter/usecase"
	"github.com/Koveh/telegram-ads-collector/internal/config"
	"github.com/Koveh/telegram-ads-collector/internal/db"
)

var version = "dev"

var (
	cfg    config.Config
	logger *slog.Logger
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "collector",
	Short:        "Collects Telegram Ads campaign statistics into PostgreSQL",
	Version:      version,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.Load(); err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		var handler slog.Handler
		opts := &slog.HandlerOptions{Level: cfg.Log.SlogLevel()}
		switch cfg.Log.SlogFormat() {
		case "json":
			handler = slog.NewJSONHandler(os.Stdout, opts)
		default:
			handler = slog.NewTextHandler(os.Stdout, opts)
		}
		logger = slog.New(handler).With(slog.String("env", cfg.Env))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(collectCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)
}

// openPool runs migrations when configured and connects to the database.
func openPool(ctx context.Context) (*pgxpool.Pool, error) {
	if cfg.Psql.RunMigrations {
		if err := db.Migrate(cfg.Psql.Addr.String()); err != nil {
			return nil, fmt.Errorf("migration error: %w", err)
		}
		logger.Info("migrations applied")
	}
	pool, err := db.NewPostgresPool(ctx, cfg.Psql)
	if err != nil {
		return nil, fmt.Errorf("database connection error: %w", err)
	}
	return pool, nil
}

var collectCmd = &cobra.Command{
	Use:   "collect [campaign-id...]",
	Short: "Run one collection pass over the given campaigns",
	Long: `Runs the full pipeline once for each campaign: status page scrape,
registry upsert, CSV export loading, merge and reconciliation. Without
arguments the campaigns come from ADS_CAMPAIGN_IDS, or, if unset, from
every campaign already known in the registry. Intended to be invoked from
a cron or systemd timer.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		pool, err := openPool(ctx)
		if err != nil {
			logger.Error("startup failed", slog.Any("error", err))
			return err
		}
		defer pool.Close()

		repo := postgres.NewCampaignRepository(pool)
		source := ads.NewClient(cfg.Ads.BaseURL, cfg.Ads.UserAgent, cfg.Ads.Timeout)
		uc := usecase.NewCollectUseCase(source, repo, logger)

		ids := args
		if len(ids) == 0 {
			ids = cfg.Ads.CampaignIDs
		}
		res, err := uc.Collect(ctx, ids)
		if err != nil {
			return err
		}
		logger.Info("run complete",
			slog.String("run_id", res.RunID),
			slog.Int("processed", res.Processed),
			slog.Int("skipped", res.Skipped))
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the read-only dashboard API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		pool, err := openPool(ctx)
		if err != nil {
			logger.Error("startup failed", slog.Any("error", err))
			return err
		}
		defer pool.Close()

		repo := postgres.NewCampaignRepository(pool)
		source := ads.NewClient(cfg.Ads.BaseURL, cfg.Ads.UserAgent, cfg.Ads.Timeout)
		uc := usecase.NewCollectUseCase(source, repo, logger)

		handler := httpadapter.NewHandler(repo, uc, logger)
		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.HTTP.Port),
			Handler: handler.Router(),
		}

		errc := make(chan error, 1)
		go func() {
			logger.Info("server listening", slog.Int("port", int(cfg.HTTP.Port)))
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				errc <- err
			}
		}()

		select {
		case err = <-errc:
			logger.Error("server error", slog.Any("error", err))
			return err
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err = srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown error", slog.Any("error", err))
			return err
		}
		logger.Info("server gracefully stopped")
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert demo campaigns and snapshot history",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		pool, err := openPool(ctx)
		if err != nil {
			logger.Error("startup failed", slog.Any("error", err))
			return err
		}
		defer pool.Close()

		if err := db.Seed(ctx, pool); err != nil {
			logger.Error("seed failed", slog.Any("error", err))
			return err
		}
		logger.Info("demo data seeded")
		return nil
	},
}
