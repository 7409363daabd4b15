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

func main() {
	cfg := config.MustLoad()

	log := logger.Setup(cfg.Env)

	log.Info("starting news admin",
		slog.String("env", cfg.Env),
		slog.String("data_file", cfg.Storage.DataFile),
	)

	application := app.NewNews(log, cfg)

	go func() {
		application.HTTPServer.MustRun()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)

	<-stop
	application.Stop()

	log.Info("Gracefully stopped")
}
