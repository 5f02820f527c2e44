// Package main is the entry point for the todo CLI.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"todo/internal/cli"
	"todo/internal/commands"
	"todo/internal/config"
	"todo/internal/storage"
	"todo/internal/task"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// One store per process, opened from the resolved config.
	factory := func(ctx context.Context, cfg *config.Config) (*storage.Session, error) {
		logger := cfg.Log()
		session, err := storage.Open(cfg, logger)
		if err != nil {
			return nil, err
		}
		session.Store.Subscribe(func(tasks []task.Task) {
			logger.Debug("tasks changed", slog.Int("count", len(tasks)))
		})
		return session, nil
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}
