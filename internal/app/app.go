package app

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/Zecser/Catering-and-Tourism/internal/config"
	"github.com/Zecser/Catering-and-Tourism/internal/observability"
	"github.com/Zecser/Catering-and-Tourism/internal/service"
)

type App struct {
	Config  *config.Config
	Logger  *slog.Logger
	Server  *http.Server
	Cleaner *service.OTPCleaner

	tracerShutdown func(context.Context) error
}

func New(cfg *config.Config, logger *slog.Logger, server *http.Server, cleaner *service.OTPCleaner) *App {
	return &App{Config: cfg, Logger: logger, Server: server, Cleaner: cleaner}
}

// Start brings up tracing and the background OTP sweep. The HTTP listener
// is owned by the caller so tests can drive the handler directly.
func (a *App) Start(ctx context.Context) error {
	tp, err := observability.InitTracing(ctx, a.Config, a.Logger)
	if err != nil {
		return err
	}
	a.tracerShutdown = tp.Shutdown

	go a.Cleaner.Run(ctx)
	return nil
}

func (a *App) Shutdown(ctx context.Context) error {
	err := a.Server.Shutdown(ctx)
	if a.tracerShutdown != nil {
		if terr := a.tracerShutdown(ctx); err == nil {
			err = terr
		}
	}
	return err
}
