package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"content_admin/internal/app"
	"content_admin/internal/config"
	"content_admin/internal/lib/logger"
)

// @title Content admin API
// @version 1.0
// @description Projects and news admin backends.
// @BasePath /
func main() {
	cfg := config.MustLoad()

	log := logger.Setup(cfg.Env)

	log.Info("starting projects admin",
		slog.String("env", cfg.Env),
		slog.String("data_file", cfg.Storage.DataFile),
		slog.String("public_file", cfg.Storage.PublicFile),
	)

	application := app.NewProjects(log, cfg)

	go func() {
		application.HTTPServer.MustRun()
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)

	<-stop
	application.Stop()

	log.Info("Gracefully stopped")
}
