package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	fsbi "github.com/hupe1980/fsbi"
	"github.com/hupe1980/fsbi/config"
	"github.com/hupe1980/fsbi/server"
)

func main() {
	app := &cli.App{
		Name:  "fsbid",
		Usage: "Fractal semantic bloom index server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to YAML config file",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Override the configured HTTP port",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "fsbid: %v\n", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	if c.IsSet("port") {
		cfg.Server.Port = c.Int("port")
	}

	logger := setupLogger(cfg.Logging)
	slog.SetDefault(logger)

	db, err := fsbi.New(
		fsbi.WithM(cfg.Index.M),
		fsbi.WithKLex(cfg.Index.KLex),
		fsbi.WithKSem(cfg.Index.KSem),
		fsbi.WithProjectionDim(cfg.Index.ProjectionDim),
		fsbi.WithProjectorSeed(cfg.Index.ProjectorSeed),
		fsbi.WithMaxPhraseLen(cfg.Index.MaxPhraseLen),
		fsbi.WithFlipProbability(cfg.Index.FlipProbability),
		fsbi.WithLogger(fsbi.NewLogger(logger.Handler())),
	)
	if err != nil {
		return err
	}

	srv := server.New(db, server.Options{
		Logger:    logger,
		RateLimit: cfg.Server.RateLimit,
		RateBurst: cfg.Server.RateBurst,
	})

	httpSrv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      srv.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("fsbi server listening",
			"port", cfg.Server.Port,
			"m", cfg.Index.M,
			"k_lex", cfg.Index.KLex,
			"k_sem", cfg.Index.KSem,
		)
		if err := httpSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}

func setupLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
