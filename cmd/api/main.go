package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Zecser/Catering-and-Tourism/internal/di"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		runMigrations()
		return
	}

	a, err := di.InitializeApp()
	if err != nil {
		slog.Error("initialize application", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := a.Start(ctx); err != nil {
		a.Logger.Error("start application", "error", err)
		os.Exit(1)
	}

	serverErr := make(chan error, 1)
	go func() {
		a.Logger.Info("http server listening", "addr", a.Server.Addr, "env", a.Config.Env)
		serverErr <- a.Server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Logger.Error("http server failed", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		a.Logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.Shutdown(shutdownCtx); err != nil {
		a.Logger.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	a.Logger.Info("shutdown complete")
}

func runMigrations() {
	m, err := di.InitializeMigrationRunner()
	if err != nil {
		slog.Error("initialize migration runner", "error", err)
		os.Exit(1)
	}
	if err := m.Run(); err != nil {
		slog.Error("run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("migrations applied")
}
