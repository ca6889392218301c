package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"investorportal/internal/config"
	apphttp "investorportal/internal/http"
	"investorportal/internal/log"
	"investorportal/internal/portfolio/api"
)

const shutdownTimeout = 30 * time.Second

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the portal web server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}

	cmd.Flags().String("env-file", "", "dotenv file to load (default ./.env if present)")
	cmd.Flags().String("port", "", "listen port (overrides PORT)")
	cmd.Flags().String("api-base-url", "", "investor data service base URL (overrides API_BASE_URL)")
	return cmd
}

// loadConfig reads the env file and environment, applies explicit flags on
// top, and validates the result.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()
	envFile, _ := flags.GetString("env-file")
	if err := config.LoadEnvFile(envFile); err != nil {
		return nil, err
	}
	cfg := config.Load()
	if flags.Changed("port") {
		cfg.Port, _ = flags.GetString("port")
	}
	if flags.Changed("api-base-url") {
		cfg.APIBaseURL, _ = flags.GetString("api-base-url")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func serve(ctx context.Context, cfg *config.Config) error {
	level, err := config.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger := log.New(log.Config{Level: level, Component: log.ComponentApp, Output: os.Stdout})
	log.SetDefault(logger)

	client, err := api.New(cfg.APIBaseURL, cfg.APITimeout,
		api.WithLogger(logger.WithComponent(log.ComponentUpstream).Logger))
	if err != nil {
		return fmt.Errorf("upstream client: %w", err)
	}

	srv, err := apphttp.NewServer(apphttp.Options{
		Addr:               cfg.Addr(),
		Locale:             cfg.LocaleTag(),
		Logger:             logger,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		TrustedProxies:     cfg.TrustedProxies,
	}, client)
	if err != nil {
		return fmt.Errorf("http server: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting portal server",
			log.FieldOperation, log.OpStartup,
			"addr", cfg.Addr(),
			"api_base_url", cfg.APIBaseURL,
			"locale", cfg.Locale)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received", log.FieldOperation, log.OpShutdown)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server stopped with error", log.FieldError, err.Error())
		return err
	}
	logger.Info("Server stopped gracefully")
	return nil
}
