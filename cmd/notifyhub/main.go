package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/dmitrymomot/notifyhub/pkg/api"
	"github.com/dmitrymomot/notifyhub/pkg/config"
	"github.com/dmitrymomot/notifyhub/pkg/delivery"
	"github.com/dmitrymomot/notifyhub/pkg/httpserver"
	"github.com/dmitrymomot/notifyhub/pkg/logger"
	"github.com/dmitrymomot/notifyhub/pkg/notifications"
	"github.com/dmitrymomot/notifyhub/pkg/notifier"
	"github.com/dmitrymomot/notifyhub/pkg/presence"
	redisconn "github.com/dmitrymomot/notifyhub/pkg/redis"
	"github.com/dmitrymomot/notifyhub/pkg/transport"
)

type appConfig struct {
	Log    logger.Config
	Redis  redisconn.Config
	Server httpserver.Config
	API    api.Config
}

func main() {
	var cfg appConfig
	config.MustLoad(&cfg)

	log := logger.New(
		logger.WithConfig(cfg.Log),
		logger.WithService(notifier.ServiceName),
	)
	logger.SetAsDefault(log)

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("service exited", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg appConfig, log *slog.Logger) error {
	redisClient, err := redisconn.Connect(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	storage := notifications.NewRedisStorage(redisClient)
	registry := presence.NewRedisRegistry(redisClient)

	hub := transport.NewHub()
	defer hub.Close()

	engine := delivery.NewEngine(storage, registry, hub,
		delivery.WithLogger(log.With(logger.Component("delivery"))),
	)
	service := notifier.New(engine, storage, registry, hub,
		notifier.WithLogger(log.With(logger.Component("notifier"))),
	)

	router := api.NewRouter(cfg.API, api.Deps{
		Service: service,
		Hub:     hub,
		Health:  redisconn.Healthcheck(redisClient),
		Logger:  log.With(logger.Component("api")),
	})

	srv := httpserver.NewFromConfig(cfg.Server, httpserver.WithLogger(log))
	return srv.Run(ctx, router)
}
