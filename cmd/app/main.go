package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"marketplace/cmd"
	httpin "marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/out/postgres"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "marketplace",
		Usage: "manufacturing marketplace quotation and order service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env-file",
				Value: ".env",
				Usage: "dotenv file loaded before reading the environment, if present",
			},
		},
		Before: func(c *cli.Context) error {
			return loadDotEnv(c.String("env-file"))
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP API and the quotation expiry job",
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "create or update the database schema",
				Action: migrate,
			},
		},
		DefaultCommand: "serve",
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("marketplace: %v", err)
	}
}

func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load %s: %w", path, err)
}

func newLogger(level string) *slog.Logger {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		l = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: l}))
}

func migrate(c *cli.Context) error {
	config, err := cmd.LoadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(config.LogLevel)

	db, err := postgres.Open(config.DSN(), poolConfig(config))
	if err != nil {
		return err
	}
	if err = postgres.Migrate(db.WithContext(c.Context)); err != nil {
		return err
	}

	logger.Info("schema migrated")
	return nil
}

func serve(c *cli.Context) error {
	config, err := cmd.LoadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(config.LogLevel)
	slog.SetDefault(logger)

	db, err := postgres.Open(config.DSN(), poolConfig(config))
	if err != nil {
		return err
	}
	if err = postgres.Migrate(db); err != nil {
		return err
	}

	root := cmd.NewCompositionRoot(config, db, logger)

	jobManager := root.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	return startWebServer(c.Context, root, config, logger)
}

func startWebServer(ctx context.Context, root cmd.CompositionRoot, config cmd.Config, logger *slog.Logger) error {
	server, err := root.CreateServer()
	if err != nil {
		return err
	}
	doc, err := httpin.LoadOpenAPI(ctx)
	if err != nil {
		return err
	}
	e, err := httpin.NewEcho(server, doc)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server started", "port", config.HTTPPort)
		errCh <- e.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort))
	}()

	select {
	case err = <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func poolConfig(config cmd.Config) postgres.PoolConfig {
	return postgres.PoolConfig{
		MaxOpenConns:    config.DBMaxOpenConns,
		MaxIdleConns:    config.DBMaxIdleConns,
		ConnMaxLifetime: config.DBConnMaxLifetime,
	}
}
