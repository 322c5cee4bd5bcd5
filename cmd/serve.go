package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/MikaStiebitz/Git-Gud/config"
	"github.com/MikaStiebitz/Git-Gud/levels"
	"github.com/MikaStiebitz/Git-Gud/server"
	"github.com/MikaStiebitz/Git-Gud/session"
	"github.com/MikaStiebitz/Git-Gud/utils/logging"
	"go.uber.org/zap"
)

// runServer serves browser sessions until SIGINT or SIGTERM.
func runServer(cfg *config.Config) error {
	log := logging.L()

	catalog, err := levels.LoadCatalog(cfg.Levels.Catalog)
	if err != nil {
		return err
	}
	if cfg.Levels.ProgressFile != "" {
		log.Warn("progress_file is ignored in serve mode, browser sessions keep progress in memory",
			zap.String("progress_file", cfg.Levels.ProgressFile))
	}

	sessions, err := session.NewManager(session.Options{
		TTL:         cfg.Session.TTL,
		MaxSessions: cfg.Session.MaxSessions,
		Catalog:     catalog,
	}, log)
	if err != nil {
		return err
	}
	defer sessions.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(cfg.Server, cfg.Terminal.Prompt, sessions, log).ListenAndServe(ctx)
}
