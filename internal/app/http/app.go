package httpapp

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"content_admin/internal/config"
	appmiddleware "content_admin/internal/middleware"
	httprouters "content_admin/internal/transport/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

type Server struct {
	log     *slog.Logger
	e       *echo.Echo
	routers *httprouters.Routers
	host    string
	port    string
	admin   config.AdminConfig
}

func New(log *slog.Logger, httpCfg config.HTTPConfig, admin config.AdminConfig, routers *httprouters.Routers) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Renderer = httprouters.NewTemplates()

	origins := httpCfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit(httpCfg.BodyLimit))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
	}))
	e.Use(session.Middleware(sessions.NewCookieStore([]byte(admin.SessionSecret))))
	e.Use(appmiddleware.PrometheusMetrics)

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogRemoteIP: true,
		LogMethod:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request",
				slog.String("method", v.Method),
				slog.String("URI", v.URI),
				slog.Int("status", v.Status),
				slog.String("remote ip", v.RemoteIP),
			)

			return nil
		},
	}))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return &Server{
		log:     log,
		e:       e,
		routers: routers,
		host:    httpCfg.Host,
		port:    httpCfg.Port,
		admin:   admin,
	}
}

// Echo is exposed for tests that drive the full middleware chain.
func (s *Server) Echo() *echo.Echo {
	return s.e
}

func (s *Server) MustRun() {
	const op = "http.Server.MustRun"

	s.log.Info(op, slog.String("addr", s.addr()))

	if err := s.Start(); err != nil {
		panic(err)
	}
}

func (s *Server) Start() error {
	const op = "http.Server.Start"

	if err := s.e.Start(s.addr()); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("%s server stopped: %w", op, err)
	}

	return nil
}

func (s *Server) Stop() error {
	const op = "http.Server.Stop"

	optCtx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	s.log.Info("stopping", slog.String("op", op))

	if err := s.e.Shutdown(optCtx); err != nil {
		return fmt.Errorf("%s could not shutdown server gracefuly: %w", op, err)
	}

	return nil
}

func (s *Server) addr() string {
	return net.JoinHostPort(s.host, s.port)
}

// BuildProjectRouters регистрирует API проектов, страницы админки и раздачу загрузок
func (s *Server) BuildProjectRouters(uploadURL, uploadDir string) {
	s.e.GET("/", httprouters.Index)
	s.e.Static(uploadURL, uploadDir)

	api := s.e.Group("/api")
	{
		api.GET("/projects", s.routers.ListProjects)
		api.GET("/projects/:id", s.routers.GetProject)
		api.GET("/gallery", s.routers.Gallery)
	}

	admin := s.e.Group("/admin", appmiddleware.AdminBasicAuth(s.admin.Username, s.admin.PasswordHash))
	{
		admin.GET("", s.routers.AdminIndex)
		admin.GET("/manage", s.routers.AdminManage)
		admin.POST("/upload", s.routers.UploadProject)
		admin.POST("/publish/:id", s.routers.PublishProject)
		admin.POST("/unpublish/:id", s.routers.UnpublishProject)
		admin.POST("/republish", s.routers.Republish)
		admin.POST("/update/:id", s.routers.UpdateProject)
	}
}

// BuildNewsRouters регистрирует API новостей. Загрузки лежат под <uploadURL>/news.
func (s *Server) BuildNewsRouters(uploadURL, uploadDir string) {
	s.e.GET("/", s.routers.NewsAdmin, appmiddleware.AdminBasicAuth(s.admin.Username, s.admin.PasswordHash))
	s.e.Static(uploadURL, uploadDir)

	news := s.e.Group("/api/news")
	{
		news.GET("", s.routers.ListNews)
		news.POST("", s.routers.CreateNews)
		news.GET("/:id", s.routers.GetNews)
		news.PUT("/:id", s.routers.UpdateNews)
		news.DELETE("/:id", s.routers.DeleteNews)
	}
}
