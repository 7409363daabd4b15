package app

import (
	"context"
	"log/slog"
	"time"

	httpapp "content_admin/internal/app/http"
	"content_admin/internal/config"
	"content_admin/internal/domain/models"
	"content_admin/internal/lib/logger/sl"
	newsservice "content_admin/internal/services/news_service"
	projectservice "content_admin/internal/services/project_service"
	"content_admin/internal/services/publisher"
	filestorage "content_admin/internal/storage/filestorage"
	"content_admin/internal/storage/jsonstore"
	redisstorage "content_admin/internal/storage/redis"
	httprouters "content_admin/internal/transport/http"
)

type App struct {
	HTTPServer *httpapp.Server
	log        *slog.Logger
	redis      *redisstorage.Client
}

// NewProjects собирает сервис проектов: основное хранилище, публичное зеркало и загрузки
func NewProjects(log *slog.Logger, cfg *config.Config) *App {
	files := mustFileStorage(cfg.Storage, filestorage.SuffixOnCollision)

	store := jsonstore.New[models.Project](log, cfg.Storage.DataFile, jsonstore.Lenient)
	mirror := jsonstore.New[models.Project](log, cfg.Storage.PublicFile, jsonstore.Lenient)

	a := &App{log: log}

	var notifier publisher.Notifier
	if cfg.Redis.RedisAddr != "" {
		a.redis = redisstorage.NewClient(cfg.Redis.RedisAddr, cfg.Redis.RedisPassword, cfg.Redis.RedisDB, cfg.Redis.Channel)

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()

		if err := a.redis.HealthCheck(ctx); err != nil {
			log.Warn("redis is not reachable, mirror notifications may fail", sl.Err(err))
		}

		notifier = a.redis
	}

	pub := publisher.New(log, mirror, notifier)

	projectService := projectservice.NewProjectService(log, store, files, pub, cfg.Storage.GalleryLimit, cfg.Cache.GalleryTTL)

	routers := httprouters.NewRouter(log, projectService, nil)

	a.HTTPServer = httpapp.New(log, cfg.HTTP, cfg.Admin, routers)
	a.HTTPServer.BuildProjectRouters(files.BaseURL(), files.GetBaseDir())

	return a
}

func NewNews(log *slog.Logger, cfg *config.Config) *App {
	files := mustFileStorage(cfg.Storage, filestorage.RandomPrefix)

	store := jsonstore.New[models.Article](log, cfg.Storage.DataFile, jsonstore.Strict)

	newsService := newsservice.NewNewsService(log, store, files)

	routers := httprouters.NewRouter(log, nil, newsService)

	a := &App{log: log}
	a.HTTPServer = httpapp.New(log, cfg.HTTP, cfg.Admin, routers)
	a.HTTPServer.BuildNewsRouters(files.BaseURL(), files.GetBaseDir())

	return a
}

func (a *App) Stop() {
	if err := a.HTTPServer.Stop(); err != nil {
		a.log.Error("failed to stop http server", sl.Err(err))
	}

	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.Error("failed to close redis", sl.Err(err))
		}
	}
}

func mustFileStorage(cfg config.StorageConfig, naming filestorage.NamingPolicy) *filestorage.LocalFileStorage {
	files, err := filestorage.NewLocalFileStorage(cfg.UploadDir, cfg.BaseURL,
		filestorage.WithAllowedExtensions(cfg.AllowedExtensions),
		filestorage.WithNaming(naming),
	)
	if err != nil {
		panic(err)
	}

	return files
}
