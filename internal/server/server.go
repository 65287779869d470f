package server

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/snehankekre/forumtopics/config"
	"github.com/snehankekre/forumtopics/internal/cache"
	"github.com/snehankekre/forumtopics/internal/forum"
	"github.com/snehankekre/forumtopics/internal/telemetry"
)

func Run(cfg *config.Config) error {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	// Unified HTTP error handler with structured JSON and logging
	baseLogger := log.New(log.Writer(), "[HTTP] ", log.LstdFlags)
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		msg := err.Error()
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if he.Message != nil {
				msg = fmt.Sprint(he.Message)
			}
		}
		req := c.Request()
		baseLogger.Printf("%d %s %s from %s: %v", code, req.Method, req.URL.Path, c.RealIP(), err)
		if !c.Response().Committed {
			_ = c.JSON(code, map[string]interface{}{"error": msg})
		}
	}

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	e.GET("/healthz", func(c echo.Context) error { return c.String(200, "ok") })

	var metrics *telemetry.Metrics
	if cfg.Telemetry.Enabled {
		metrics = telemetry.NewMetrics()
		e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	}

	responseCache, err := buildCache(cfg)
	if err != nil {
		return err
	}

	clientOpts := []forum.ClientOption{
		forum.WithHTTPClient(forum.NewHTTPClient(cfg.Forum.Timeout, cfg.Forum.Retries, 0)),
		forum.WithMaxPages(cfg.Forum.MaxPages),
	}
	if responseCache != nil {
		clientOpts = append(clientOpts, forum.WithCache(responseCache))
	}
	if metrics != nil {
		clientOpts = append(clientOpts, forum.WithMetrics(metrics))
	}
	client := forum.NewClient(cfg.Forum.BaseURL, clientOpts...)

	api := e.Group("/api")
	if cfg.Server.JWTSecret != "" {
		api.Use(EchoAuthMiddleware([]byte(cfg.Server.JWTSecret)))
	}

	h := &SearchHandler{Client: client, DefaultTop: cfg.Forum.Top}
	h.Register(api.Group("/topics"))

	return e.Start(cfg.Server.Address)
}

func buildCache(cfg *config.Config) (forum.Cache, error) {
	switch cfg.Storage.Cache {
	case "", "memory":
		return cache.NewMemory(cfg.Forum.CacheTTL), nil
	case "redis":
		client, err := cache.Conn(context.Background(),
			cfg.Storage.Redis.Host, cfg.Storage.Redis.Port,
			cfg.Storage.Redis.Password, cfg.Storage.Redis.DB,
			cfg.Storage.Redis.Timeout)
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		return cache.NewRedis(client, cfg.Forum.CacheTTL), nil
	case "none":
		return nil, nil
	}
	return nil, fmt.Errorf("invalid cache backend: %s", cfg.Storage.Cache)
}
